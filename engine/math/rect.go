package math

// Rect is an integer rectangle in window coordinates.
type Rect struct {
	X, Y          int32
	Width, Height int32
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the middle point of the rectangle.
func (r Rect) Center() (int32, int32) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// ClampPoint moves the point to the closest position inside the rectangle.
func (r Rect) ClampPoint(x, y int32) (int32, int32) {
	if r.Empty() {
		return x, y
	}
	return Clamp(x, r.X, r.X+r.Width-1), Clamp(y, r.Y, r.Y+r.Height-1)
}
