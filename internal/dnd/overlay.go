package dnd

import (
	"math"
	"strings"

	"kanban-cli/internal/geom"

	xansi "github.com/charmbracelet/x/ansi"
)

// Overlay is the floating proxy of the dragged item. Origin is relative to the
// session offset; the proxy is drawn at origin + translation.
type Overlay struct {
	OriginX      float64
	OriginY      float64
	W            float64
	H            float64
	TranslationX float64
	TranslationY float64
	Content      string
}

func (o Overlay) Position() geom.Point {
	return geom.Point{X: o.OriginX + o.TranslationX, Y: o.OriginY + o.TranslationY}
}

func (o Overlay) Bounds() geom.Rect {
	p := o.Position()
	return geom.Rect{X: p.X, Y: p.Y, W: o.W, H: o.H}
}

const sgrReset = "\x1b[0m"

// RenderOverlay draws ov on top of the rendered frame base and returns the result.
// base is returned untouched when ov is nil. The proxy is clipped to its measured
// size and to the frame; rows and columns of base outside the proxy are kept as is.
func RenderOverlay(base string, ov *Overlay, offset geom.Point) string {
	if ov == nil {
		return base
	}
	w := int(math.Round(ov.W))
	h := int(math.Round(ov.H))
	if w <= 0 || h <= 0 {
		return base
	}
	pos := offset.Add(ov.Position())
	x := int(math.Round(pos.X))
	y := int(math.Round(pos.Y))

	lines := strings.Split(base, "\n")
	content := strings.Split(ov.Content, "\n")
	for i := 0; i < h; i++ {
		row := y + i
		if row < 0 || row >= len(lines) {
			continue
		}
		seg := ""
		if i < len(content) {
			seg = content[i]
		}
		lines[row] = spliceLine(lines[row], fitWidth(seg, w), x, w)
	}
	return strings.Join(lines, "\n")
}

func fitWidth(s string, w int) string {
	if xansi.StringWidth(s) > w {
		s = xansi.Truncate(s, w, "")
	}
	if pad := w - xansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// spliceLine replaces columns [x, x+w) of line with seg (already w cells wide).
func spliceLine(line, seg string, x, w int) string {
	if x < 0 {
		seg = xansi.Cut(seg, -x, w)
		w += x
		x = 0
	}
	if w <= 0 {
		return line
	}
	lw := xansi.StringWidth(line)
	left := xansi.Cut(line, 0, x)
	if pad := x - xansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ""
	if x+w < lw {
		right = xansi.Cut(line, x+w, lw)
	}
	return left + sgrReset + seg + sgrReset + right
}
