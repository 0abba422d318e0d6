package dnd

import (
	"strings"
	"testing"

	"kanban-cli/internal/geom"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestRenderOverlay_NoOverlayReturnsBase(t *testing.T) {
	base := "abc\ndef"
	if got := RenderOverlay(base, nil, geom.Point{}); got != base {
		t.Fatalf("got %q", got)
	}
}

func TestRenderOverlay_PlacesContentAtOriginPlusTranslation(t *testing.T) {
	base := strings.Join([]string{
		"..........",
		"..........",
		"..........",
	}, "\n")
	ov := &Overlay{OriginX: 1, OriginY: 0, W: 3, H: 2, TranslationX: 2, TranslationY: 1, Content: "AB\nCDEF"}

	got := xansi.Strip(RenderOverlay(base, ov, geom.Point{}))
	want := strings.Join([]string{
		"..........",
		"...AB ....",
		"...CDE....",
	}, "\n")
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderOverlay_ClipsAtFrameEdges(t *testing.T) {
	base := "....\n...."
	ov := &Overlay{OriginX: -1, OriginY: 1, W: 3, H: 3, Content: "XYZ\nQQQ\nRRR"}
	got := xansi.Strip(RenderOverlay(base, ov, geom.Point{}))
	want := "....\nYZ.."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderOverlay_PadsShortLines(t *testing.T) {
	base := "ab"
	ov := &Overlay{OriginX: 4, W: 2, H: 1, Content: "XY"}
	got := xansi.Strip(RenderOverlay(base, ov, geom.Pt(0, 0)))
	if got != "ab  XY" {
		t.Fatalf("got %q", got)
	}
}
