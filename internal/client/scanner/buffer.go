package scanner

// resultBuffer keeps the most recent readings, newest first. Only the newest
// entry is consumed by the intake flow; the rest exist for diagnostics.
type resultBuffer struct {
	max   int
	items []Reading
}

func newResultBuffer(max int) *resultBuffer {
	return &resultBuffer{max: max}
}

// push prepends readings and truncates to the buffer's capacity.
func (b *resultBuffer) push(readings ...Reading) {
	if len(readings) == 0 {
		return
	}
	merged := make([]Reading, 0, len(readings)+len(b.items))
	merged = append(merged, readings...)
	merged = append(merged, b.items...)
	if len(merged) > b.max {
		merged = merged[:b.max]
	}
	b.items = merged
}

// snapshot returns a copy of the buffer contents, newest first.
func (b *resultBuffer) snapshot() []Reading {
	out := make([]Reading, len(b.items))
	copy(out, b.items)
	return out
}

func (b *resultBuffer) clear() {
	b.items = nil
}
