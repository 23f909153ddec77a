// Package qrsymbol renders text payloads as scannable QR symbols. The
// matrix/error-correction primitive sits behind the Generator interface so
// the renderer is testable without a real encoder.
package qrsymbol

import (
	qrcode "github.com/skip2/go-qrcode"
)

// Level selects the error-correction tier of a generated symbol.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
	LevelHighest
)

func (l Level) recovery() qrcode.RecoveryLevel {
	switch l {
	case LevelLow:
		return qrcode.Low
	case LevelHigh:
		return qrcode.High
	case LevelHighest:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// Symbol is a generated QR matrix.
type Symbol interface {
	// ModuleCount is the width of the symbol in modules, quiet zone excluded.
	ModuleCount() int
	// IsDark reports whether the module at (row, col) is dark. Out-of-range
	// coordinates are light.
	IsDark(row, col int) bool
}

// Generator produces a symbol for the given text, choosing the smallest
// version able to encode it.
type Generator interface {
	Generate(text string, level Level) (Symbol, error)
}

// QRCodeGenerator is the default Generator, backed by skip2/go-qrcode.
type QRCodeGenerator struct{}

func NewQRCodeGenerator() *QRCodeGenerator { return &QRCodeGenerator{} }

func (g *QRCodeGenerator) Generate(text string, level Level) (Symbol, error) {
	q, err := qrcode.New(text, level.recovery())
	if err != nil {
		return nil, err
	}
	// The renderer manages its own quiet zone.
	q.DisableBorder = true
	return &bitmapSymbol{grid: q.Bitmap()}, nil
}

type bitmapSymbol struct {
	grid [][]bool
}

func (s *bitmapSymbol) ModuleCount() int { return len(s.grid) }

func (s *bitmapSymbol) IsDark(row, col int) bool {
	if row < 0 || row >= len(s.grid) {
		return false
	}
	if col < 0 || col >= len(s.grid[row]) {
		return false
	}
	return s.grid[row][col]
}
