package geom

import "testing"

func TestContainsPoint_InclusiveEdges(t *testing.T) {
	r := &Rect{X: 10, Y: 20, W: 30, H: 40}
	cases := []struct {
		name string
		p    Point
		want bool
	}{
		{"top-left corner", Pt(10, 20), true},
		{"bottom-right corner", Pt(40, 60), true},
		{"center", Pt(25, 40), true},
		{"left of rect", Pt(9.5, 40), false},
		{"below rect", Pt(25, 60.01), false},
		{"right edge", Pt(40, 30), true},
	}
	for _, tc := range cases {
		if got := ContainsPoint(tc.p, r); got != tc.want {
			t.Fatalf("%s: ContainsPoint(%v, %v)=%v, want %v", tc.name, tc.p, r, got, tc.want)
		}
	}
}

func TestContainsPoint_NilRectNeverMatches(t *testing.T) {
	if ContainsPoint(Pt(0, 0), nil) {
		t.Fatalf("expected nil rect to contain nothing")
	}
}

func TestExpand(t *testing.T) {
	got := Expand(Rect{X: 5, Y: 5, W: 10, H: 4}, 2)
	want := Rect{X: 3, Y: 3, W: 14, H: 8}
	if got != want {
		t.Fatalf("Expand=%v, want %v", got, want)
	}
	if Expand(want, 0) != want {
		t.Fatalf("expected zero padding to be identity")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 10) != 0 || Clamp(11, 0, 10) != 10 || Clamp(4, 0, 10) != 4 {
		t.Fatalf("unexpected clamp results")
	}
	p := ClampPoint(Pt(50, -3), Rect{X: 0, Y: 0, W: 20, H: 20})
	if p != Pt(20, 0) {
		t.Fatalf("ClampPoint=%v", p)
	}
}
