package domain

import (
	"fmt"
	"math"
)

// Location is a point on the map
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance between two locations
func (l Location) DistanceTo(other Location) float64 {
	return math.Hypot(other.X-l.X, other.Y-l.Y)
}

// Within reports whether other lies strictly inside radius
func (l Location) Within(other Location, radius float64) bool {
	return l.DistanceTo(other) < radius
}

func (l Location) String() string {
	return fmt.Sprintf("(%g, %g)", l.X, l.Y)
}
