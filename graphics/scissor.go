// scissor.go - Axis-aligned integer clip rectangles

package graphics

// Scissor is an integer pixel rectangle restricting which pixels are
// eligible for writes.
type Scissor struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether (x, y) lies within the scissor.
func (s Scissor) Contains(x, y int) bool {
	x1 := s.X + s.Width
	y1 := s.Y + s.Height
	return x >= s.X && x < x1 && y >= s.Y && y < y1
}

// IntersectWith returns the intersection of s and other, or false if they
// are disjoint (no positive-area overlap).
func (s Scissor) IntersectWith(other Scissor) (Scissor, bool) {
	x0 := max(s.X, other.X)
	y0 := max(s.Y, other.Y)

	x1 := min(s.X+s.Width, other.X+other.Width)
	y1 := min(s.Y+s.Height, other.Y+other.Height)

	if x1 <= x0 || y1 <= y0 {
		return Scissor{}, false
	}

	return Scissor{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}

// Coordinates returns every (x, y) pair local to the scissor's own range,
// i.e. in [0, Width) x [0, Height), row-major.
func (s Scissor) Coordinates() []Coordinate {
	return coordinates(s.Width, s.Height)
}
