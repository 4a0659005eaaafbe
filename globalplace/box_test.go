package globalplace

import (
	"testing"

	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/geometry"
)

func TestSideIsCeilSqrt(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 2, 4: 2, 5: 3, 9: 3, 10: 4}
	for n, want := range cases {
		if got := side(n); got != want {
			t.Errorf("side(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestLegalAnchorRejectsOutsideMargin(t *testing.T) {
	dev := device.Builder{}.WithSize(10, 10).WithMargin(2).WithClbType('c').Build()
	if legalAnchor(dev, geometry.Position{X: 0, Y: 0}, 2, 4, 6, map[int]geometry.Box{}, 0) {
		t.Error("anchor inside the margin should be illegal")
	}
	if !legalAnchor(dev, geometry.Position{X: 2, Y: 2}, 2, 4, 6, map[int]geometry.Box{}, 0) {
		t.Error("anchor inside the interior should be legal")
	}
}

func TestLegalAnchorRejectsExcessOverlap(t *testing.T) {
	dev := device.Builder{}.WithSize(20, 20).WithMargin(1).WithClbType('c').Build()
	others := map[int]geometry.Box{1: {Anchor: geometry.Position{X: 5, Y: 5}, Width: 4, Height: 4}}
	// size=4 -> limit = 4/6 = 0, any positive overlap is rejected.
	if legalAnchor(dev, geometry.Position{X: 6, Y: 6}, 4, 4, 6, others, 0) {
		t.Error("overlapping anchor should exceed the place-factor limit")
	}
	if !legalAnchor(dev, geometry.Position{X: 12, Y: 12}, 4, 4, 6, others, 0) {
		t.Error("non-overlapping anchor should be legal")
	}
}
