package scanner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cjmtools/caseintake/internal/logging"
)

// State is the controller's lifecycle position. Replacing the original loose
// boolean flags with one state value removes ambiguous combinations such as
// "active" and "loading" at the same time.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateActive
	StateStopping
	// StateUnsupported is absorbing: entered when no camera capability is
	// available, never left.
	StateUnsupported
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateActive:
		return "active"
	case StateStopping:
		return "stopping"
	case StateUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// ErrAlreadyRunning is returned by Start when a stream is already held or
// being acquired. The camera is an exclusive resource; Start fails fast
// instead of queueing.
var ErrAlreadyRunning = errors.New("scanner already running")

const (
	// DefaultInterval bounds decode cadence by wall-clock time rather than
	// frame rate, capping CPU use on slow devices.
	DefaultInterval = 100 * time.Millisecond
	// DefaultMaxResults bounds the diagnostic result buffer.
	DefaultMaxResults = 5
)

// Options configure a Controller. Camera may be nil, meaning the capability
// is absent; the controller then reports unsupported. OnReading, when set,
// receives the newest reading of each successful tick.
type Options struct {
	Camera     Camera
	Decoder    FrameDecoder
	Facing     FacingMode
	Interval   time.Duration
	MaxResults int
	OnReading  func(Reading)
	Logger     logging.Logger
}

// Controller owns the camera stream lifecycle and the repeating decode tick.
// All state transitions happen under one mutex; the tick loop is a single
// goroutine, so decodes for a session are strictly sequential.
type Controller struct {
	mu       sync.Mutex
	state    State
	gen      uint64 // session generation; guards against stale loop goroutines
	stream   Stream
	cancel   context.CancelFunc
	decoding bool
	lastErr  *CameraError
	results  *resultBuffer

	camera    Camera
	decoder   FrameDecoder
	facing    FacingMode
	interval  time.Duration
	onReading func(Reading)
	logger    logging.Logger
}

func NewController(opts Options) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.Facing == "" {
		opts.Facing = FacingEnvironment
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}

	c := &Controller{
		state:     StateIdle,
		results:   newResultBuffer(opts.MaxResults),
		camera:    opts.Camera,
		decoder:   opts.Decoder,
		facing:    opts.Facing,
		interval:  opts.Interval,
		onReading: opts.OnReading,
		logger:    opts.Logger.With("module", "scanner"),
	}
	if c.camera == nil || c.decoder == nil {
		c.state = StateUnsupported
		c.lastErr = classify(ErrNotSupported)
	}
	return c
}

// Start acquires the camera stream and begins the decode tick. Valid only
// from idle; any other state fails fast without touching the device. An
// acquisition failure is classified, stored for observation and returned;
// the controller goes back to idle so the operator can retry.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateUnsupported:
		err := c.lastErr
		c.mu.Unlock()
		return err
	case StateIdle:
		// proceed
	default:
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	c.state = StateStarting
	c.lastErr = nil
	c.mu.Unlock()

	stream, err := c.camera.Open(ctx, Constraints{Facing: c.facing})

	c.mu.Lock()
	if err != nil {
		camErr := classify(err)
		c.state = StateIdle
		c.lastErr = camErr
		c.mu.Unlock()
		c.logger.Warn(ctx, "camera acquisition failed", "kind", camErr.Kind, "error", err)
		return camErr
	}

	if c.state != StateStarting {
		// Stop arrived while the stream was being acquired; release it
		// immediately and stay idle.
		c.state = StateIdle
		c.mu.Unlock()
		_ = stream.Close()
		return nil
	}

	// The loop context is derived from the caller's so component teardown
	// releases the camera even without an explicit Stop.
	loopCtx, cancel := context.WithCancel(ctx)
	c.stream = stream
	c.cancel = cancel
	c.state = StateActive
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	c.logger.Info(ctx, "scanner started", "interval", c.interval, "facing", string(c.facing))
	go c.loop(loopCtx, gen)
	return nil
}

// Stop releases the camera stream. It is a hard release of the device and is
// idempotent: calling it outside active/starting is a no-op. A decode still
// in flight is allowed to finish, but its result is discarded.
func (c *Controller) Stop() {
	c.mu.Lock()
	switch c.state {
	case StateActive:
		c.releaseActiveLocked()

	case StateStarting:
		// Mark the session dead; the Start path releases the stream once
		// acquisition returns.
		c.state = StateStopping
		c.mu.Unlock()

	default:
		c.mu.Unlock()
	}
}

// stopSession is the loop's teardown path. It only acts if the loop's
// session is still the current one, so a stale goroutine can never tear down
// a session started after it.
func (c *Controller) stopSession(gen uint64) {
	c.mu.Lock()
	if c.gen != gen || c.state != StateActive {
		c.mu.Unlock()
		return
	}
	c.releaseActiveLocked()
}

// releaseActiveLocked hard-releases the stream and returns to idle. Assumes
// c.mu is held and state is active; unlocks before returning.
func (c *Controller) releaseActiveLocked() {
	c.state = StateStopping
	cancel, stream := c.cancel, c.stream
	c.cancel, c.stream = nil, nil
	c.mu.Unlock()

	cancel()
	_ = stream.Close()

	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()
	c.logger.Info(context.Background(), "scanner stopped")
}

func (c *Controller) loop(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Covers caller teardown as well as explicit Stop.
			c.stopSession(gen)
			return
		case <-ticker.C:
			c.tick(ctx, gen)
		}
	}
}

// tick captures one frame and decodes it. At most one decode is in flight at
// a time; a tick firing while a decode is still running is skipped.
func (c *Controller) tick(ctx context.Context, gen uint64) {
	c.mu.Lock()
	if c.gen != gen || c.state != StateActive || c.decoding {
		c.mu.Unlock()
		return
	}
	c.decoding = true
	stream := c.stream
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.decoding = false
		c.mu.Unlock()
	}()

	frame, err := stream.Frame(ctx)
	if err != nil {
		// No frame is not an error condition: the next tick retries.
		return
	}

	readings := c.decoder.Decode(frame)
	if len(readings) == 0 {
		return
	}

	c.mu.Lock()
	if c.gen != gen || c.state != StateActive {
		// Stopped while decoding; discard.
		c.mu.Unlock()
		return
	}
	c.results.push(readings...)
	cb := c.onReading
	newest := readings[0]
	c.mu.Unlock()

	c.logger.Debug(ctx, "symbol decoded", "data", newest.Data)
	if cb != nil {
		cb(newest)
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsSupported reports whether the camera capability is available.
func (c *Controller) IsSupported() bool { return c.State() != StateUnsupported }

// IsScanning reports whether the decode tick is running.
func (c *Controller) IsScanning() bool { return c.State() == StateActive }

// IsActive is an alias for IsScanning kept for the presentation layer.
func (c *Controller) IsActive() bool { return c.IsScanning() }

// IsLoading reports whether stream acquisition is in progress.
func (c *Controller) IsLoading() bool { return c.State() == StateStarting }

// CanStartScanning reports whether Start would be accepted right now.
func (c *Controller) CanStartScanning() bool { return c.State() == StateIdle }

// LastError returns the most recent camera error, or nil.
func (c *Controller) LastError() *CameraError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Results returns a copy of the bounded result buffer, newest first.
func (c *Controller) Results() []Reading {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results.snapshot()
}

// ClearResults empties the result buffer.
func (c *Controller) ClearResults() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results.clear()
}
