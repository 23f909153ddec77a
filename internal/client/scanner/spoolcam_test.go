package scanner

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/require"
)

func writeFramePNG(t *testing.T, dir, name, content string) string {
	t.Helper()
	q, err := qrcode.New(content, qrcode.Medium)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, q.Image(128)))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestSpoolCamera_MissingDirIsDeviceFailure(t *testing.T) {
	cam := NewSpoolCamera(filepath.Join(t.TempDir(), "nope"))

	_, err := cam.Open(context.Background(), Constraints{Facing: FacingEnvironment})
	require.ErrorIs(t, err, ErrDeviceFailure)
}

func TestSpoolCamera_ServesExistingFramesOnce(t *testing.T) {
	dir := t.TempDir()
	writeFramePNG(t, dir, "frame-001.png", "CASE-42")

	cam := NewSpoolCamera(dir)
	stream, err := cam.Open(context.Background(), Constraints{})
	require.NoError(t, err)
	defer stream.Close()

	img, err := stream.Frame(context.Background())
	require.NoError(t, err)
	require.NotNil(t, img)

	// The same frame is never served twice; with nothing new, Frame blocks
	// until the context expires.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = stream.Frame(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSpoolCamera_PicksUpDroppedFrames(t *testing.T) {
	dir := t.TempDir()
	cam := NewSpoolCamera(dir)
	stream, err := cam.Open(context.Background(), Constraints{})
	require.NoError(t, err)
	defer stream.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type frameResult struct {
		img image.Image
		err error
	}
	done := make(chan frameResult, 1)
	go func() {
		img, err := stream.Frame(ctx)
		done <- frameResult{img: img, err: err}
	}()

	time.Sleep(20 * time.Millisecond)
	writeFramePNG(t, dir, "frame-002.png", "CASE-43")

	res := <-done
	require.NoError(t, res.err)

	readings := NewQRFrameDecoder().Decode(res.img)
	require.Len(t, readings, 1)
	require.Equal(t, "CASE-43", readings[0].Data)
}

func TestSpoolCamera_IgnoresNonFrameFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	cam := NewSpoolCamera(dir)
	stream, err := cam.Open(context.Background(), Constraints{})
	require.NoError(t, err)
	defer stream.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = stream.Frame(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
