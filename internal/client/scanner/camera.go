// Package scanner owns the camera stream lifecycle and the repeating decode
// tick that turns frames into scan results. The camera and the frame-decode
// primitive are host capabilities injected behind narrow interfaces, so the
// controller's state machine is testable without hardware.
package scanner

import (
	"context"
	"errors"
	"image"
)

// FacingMode expresses a camera orientation preference.
type FacingMode string

const (
	// FacingEnvironment prefers the rear camera.
	FacingEnvironment FacingMode = "environment"
	// FacingUser prefers the front camera.
	FacingUser FacingMode = "user"
)

// Constraints describe the requested camera stream.
type Constraints struct {
	Facing FacingMode
}

// Camera acquires an exclusive device stream. Implementations must return
// one of the sentinel errors below (possibly wrapped) so the failure can be
// classified for the operator.
type Camera interface {
	Open(ctx context.Context, c Constraints) (Stream, error)
}

// Stream is an open camera stream. Close is a hard release of the device,
// not a pause; it must be safe to call concurrently with Frame.
type Stream interface {
	// Frame captures the current frame. An error means the frame could not
	// be read; the tick treats it as "no symbol found".
	Frame(ctx context.Context) (image.Image, error)
	Close() error
}

// Sentinel acquisition errors for camera implementations.
var (
	ErrPermissionDenied = errors.New("camera access denied")
	ErrNotSupported     = errors.New("camera not supported")
	ErrDeviceFailure    = errors.New("camera device failure")
)

// ErrorKind classifies a camera failure for presentation.
type ErrorKind int

const (
	KindPermissionDenied ErrorKind = iota
	KindNotSupported
	KindDeviceFailure
)

// CameraError is a classified, operator-facing camera failure. It is never
// fatal; retrying Start is always allowed.
type CameraError struct {
	Kind    ErrorKind
	Message string
}

func (e *CameraError) Error() string { return e.Message }

func classify(err error) *CameraError {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return &CameraError{Kind: KindPermissionDenied, Message: "camera access was denied; allow camera access and retry"}
	case errors.Is(err, ErrNotSupported):
		return &CameraError{Kind: KindNotSupported, Message: "camera scanning is not available on this device"}
	default:
		return &CameraError{Kind: KindDeviceFailure, Message: "camera failed to start: " + err.Error()}
	}
}
