package scanner

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	// Frame images arrive as PNG or JPEG.
	_ "image/jpeg"
	_ "image/png"
)

// SpoolCamera adapts a watched directory of dropped frame images to the
// Camera interface, for hardware that exports captures to disk instead of
// exposing a video device. The facing preference is accepted and recorded
// but has no effect on a spool directory.
type SpoolCamera struct {
	Dir string
}

func NewSpoolCamera(dir string) *SpoolCamera { return &SpoolCamera{Dir: dir} }

func (c *SpoolCamera) Open(ctx context.Context, constraints Constraints) (Stream, error) {
	info, err := os.Stat(c.Dir)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: spool directory %q does not exist", ErrDeviceFailure, c.Dir)
	case os.IsPermission(err):
		return nil, fmt.Errorf("%w: spool directory %q", ErrPermissionDenied, c.Dir)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrDeviceFailure, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %q is not a directory", ErrDeviceFailure, c.Dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceFailure, err)
	}
	if err := watcher.Add(c.Dir); err != nil {
		_ = watcher.Close()
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: spool directory %q", ErrPermissionDenied, c.Dir)
		}
		return nil, fmt.Errorf("%w: %v", ErrDeviceFailure, err)
	}

	s := &spoolStream{dir: c.Dir, watcher: watcher, facing: constraints.Facing}
	s.scanExisting()
	return s, nil
}

type spoolStream struct {
	dir     string
	watcher *fsnotify.Watcher
	facing  FacingMode

	mu      sync.Mutex
	pending []string
	served  map[string]bool
	closed  bool
}

func isFrameFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// scanExisting queues frames already present when the stream opens, oldest
// path first so playback order is stable.
func (s *spoolStream) scanExisting() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.served = make(map[string]bool)
	for _, e := range entries {
		if !e.IsDir() && isFrameFile(e.Name()) {
			s.pending = append(s.pending, filepath.Join(s.dir, e.Name()))
		}
	}
	sort.Strings(s.pending)
}

func (s *spoolStream) nextPending() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.pending) > 0 {
		path := s.pending[0]
		s.pending = s.pending[1:]
		if !s.served[path] {
			s.served[path] = true
			return path, true
		}
	}
	return "", false
}

func (s *spoolStream) enqueue(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.served[path] {
		return
	}
	s.pending = append(s.pending, path)
}

// Frame returns the next dropped frame, blocking until one appears, the
// context is cancelled, or the stream closes.
func (s *spoolStream) Frame(ctx context.Context) (image.Image, error) {
	for {
		if path, ok := s.nextPending(); ok {
			img, err := loadFrame(path)
			if err != nil {
				// Unreadable file: skip to the next one.
				continue
			}
			return img, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return nil, ErrDeviceFailure
			}
			if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) {
				if isFrameFile(ev.Name) {
					s.enqueue(ev.Name)
				}
			}
		case _, ok := <-s.watcher.Errors:
			if !ok {
				return nil, ErrDeviceFailure
			}
			// Watcher hiccups are not fatal; keep waiting.
		}
	}
}

func (s *spoolStream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	return s.watcher.Close()
}

func loadFrame(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
