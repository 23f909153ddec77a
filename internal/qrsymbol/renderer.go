package qrsymbol

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/cjmtools/caseintake/internal/logging"
)

// Margin is the quiet zone around the symbol, in modules per side.
const Margin = 4

// Renderer turns text payloads into SVG symbols. The underlying generator is
// considered unavailable until Load has succeeded; callers are expected to
// check Ready before offering symbol generation to the operator.
type Renderer struct {
	gen    Generator
	ready  atomic.Bool
	logger logging.Logger
}

func NewRenderer(gen Generator, logger logging.Logger) *Renderer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Renderer{gen: gen, logger: logger.With("module", "qrsymbol")}
}

// Load verifies the generator with a probe symbol and marks the renderer
// ready. Safe to call more than once; a renderer that failed to load can be
// retried.
func (r *Renderer) Load(ctx context.Context) bool {
	if r.ready.Load() {
		return true
	}
	if r.gen == nil {
		return false
	}
	if _, err := r.gen.Generate("probe", LevelMedium); err != nil {
		r.logger.Warn(ctx, "symbol generator unavailable", "error", err)
		return false
	}
	r.ready.Store(true)
	return true
}

// Ready reports whether RenderSVG may produce output.
func (r *Renderer) Ready() bool { return r.ready.Load() }

// RenderSVG encodes text at error-correction level M and renders it as an
// SVG no larger than sizePx on either axis. Rendering is best-effort: if the
// renderer is not ready, the generator fails, or the symbol cannot fit the
// requested box at one pixel per module, the result is the empty string.
func (r *Renderer) RenderSVG(text string, sizePx int) (svg string) {
	if !r.ready.Load() || sizePx <= 0 {
		return ""
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error(context.Background(), "symbol rendering panicked", "panic", p)
			svg = ""
		}
	}()

	sym, err := r.gen.Generate(text, LevelMedium)
	if err != nil {
		r.logger.Warn(context.Background(), "symbol generation failed", "error", err)
		return ""
	}

	modules := sym.ModuleCount()
	if modules == 0 {
		return ""
	}

	total := modules + 2*Margin
	cell := sizePx / total
	if cell < 1 {
		return ""
	}
	dim := total * cell

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, dim, dim, dim, dim)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#ffffff"/>`, dim, dim)
	b.WriteString(`<path d="`)
	for row := 0; row < modules; row++ {
		for col := 0; col < modules; col++ {
			if !sym.IsDark(row, col) {
				continue
			}
			x := (Margin + col) * cell
			y := (Margin + row) * cell
			fmt.Fprintf(&b, "M%d,%dh%dv%dh-%dz", x, y, cell, cell, cell)
		}
	}
	b.WriteString(`" fill="#000000"/></svg>`)
	return b.String()
}
