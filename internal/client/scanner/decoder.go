package scanner

import (
	"image"
	"time"
)

// Reading is one decoded symbol from a frame.
type Reading struct {
	Data string
	At   time.Time
}

// FrameDecoder extracts zero or more symbol readings from a frame. An
// unreadable frame yields an empty slice, never an error.
type FrameDecoder interface {
	Decode(img image.Image) []Reading
}
