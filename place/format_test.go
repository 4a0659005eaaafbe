package place

import (
	"testing"

	"github.com/sarchlab/zplace/netlist"
)

func TestSerializeHeaderAndOrder(t *testing.T) {
	placement := netlist.Positions{
		"p2": {X: 1, Y: 1},
		"p0": {X: 0, Y: 0},
		"p1": {X: 2, Y: 2},
	}
	text := Serialize(placement)
	lines := splitLines(text)
	if lines[0] != placementHeaderLine1 || lines[1] != placementHeaderLine2 {
		t.Fatalf("unexpected header: %q / %q", lines[0], lines[1])
	}
	if lines[2] != "p0\t\t0\t0\t\t#p0" {
		t.Errorf("line 3 = %q, want p0 first by suffix", lines[2])
	}
	if lines[4] != "p2\t\t1\t1\t\t#p2" {
		t.Errorf("line 5 = %q, want p2 last by suffix", lines[4])
	}
}

func TestParseSerializeRoundTrip(t *testing.T) {
	placement := netlist.Positions{
		"i0":  {X: 0, Y: 1},
		"p0":  {X: 1, Y: 1},
		"p1":  {X: 2, Y: 1},
		"m0":  {X: 2, Y: 2},
		"p10": {X: 3, Y: 3},
	}
	got, err := Parse(Serialize(placement))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(got) != len(placement) {
		t.Fatalf("got %d blocks, want %d", len(got), len(placement))
	}
	for b, want := range placement {
		if got[b] != want {
			t.Errorf("block %s: got %v, want %v", b, got[b], want)
		}
	}
}

func TestParseRejectsMalformedLine(t *testing.T) {
	text := placementHeaderLine1 + "\n" + placementHeaderLine2 + "\np0\t\t0\t0\n"
	if _, err := Parse(text); err == nil {
		t.Error("expected an error for a line missing the '#' block id field")
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return lines
}
