// Package geometry provides the grid coordinates and cost primitives shared
// by every placement phase: positions, bounding boxes, Manhattan distance
// and half-perimeter wirelength.
package geometry

import "sort"

// Position addresses a grid cell.
type Position struct {
	X, Y int
}

// ManhattanDist returns the L1 distance between two positions.
func ManhattanDist(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Box is an axis-aligned bounding box, anchor inclusive, span in cells.
type Box struct {
	Anchor Position
	Width  int
	Height int
}

// Contains reports whether p lies inside the box.
func (b Box) Contains(p Position) bool {
	return p.X >= b.Anchor.X && p.X < b.Anchor.X+b.Width &&
		p.Y >= b.Anchor.Y && p.Y < b.Anchor.Y+b.Height
}

// Overlap returns the area of intersection between two boxes.
func (b Box) Overlap(o Box) int {
	x0 := max(b.Anchor.X, o.Anchor.X)
	x1 := min(b.Anchor.X+b.Width, o.Anchor.X+o.Width)
	y0 := max(b.Anchor.Y, o.Anchor.Y)
	y1 := min(b.Anchor.Y+b.Height, o.Anchor.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return 0
	}
	return (x1 - x0) * (y1 - y0)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// BoundingBox returns the smallest box covering every position, plus
// whether the input set was non-empty.
func BoundingBox(positions []Position) (minX, minY, maxX, maxY int, ok bool) {
	if len(positions) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = positions[0].X, positions[0].Y
	maxX, maxY = positions[0].X, positions[0].Y
	for _, p := range positions[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY, true
}

// Centroid returns the integer centroid (round(mean_x), round(mean_y)) of a
// set of cells. Ties round toward the lower coordinate, matching
// round-half-down semantics used throughout the placer.
func Centroid(cells []Position) Position {
	if len(cells) == 0 {
		return Position{}
	}
	sumX, sumY := 0, 0
	for _, c := range cells {
		sumX += c.X
		sumY += c.Y
	}
	return Position{
		X: roundHalfDown(float64(sumX) / float64(len(cells))),
		Y: roundHalfDown(float64(sumY) / float64(len(cells))),
	}
}

// roundHalfDown rounds to the nearest integer, breaking exact .5 ties
// toward the lower value.
func roundHalfDown(v float64) int {
	f := floor(v)
	if v-f > 0.5 {
		return int(f) + 1
	}
	return int(f)
}

func floor(v float64) float64 {
	i := int(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return float64(i)
}

// SortedByDistanceTo sorts positions by ascending Manhattan distance to
// center, breaking ties by (y, x) for determinism.
func SortedByDistanceTo(center Position, cells []Position) []Position {
	out := make([]Position, len(cells))
	copy(out, cells)
	sort.Slice(out, func(i, j int) bool {
		di, dj := ManhattanDist(center, out[i]), ManhattanDist(center, out[j])
		if di != dj {
			return di < dj
		}
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
