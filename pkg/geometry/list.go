package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// List is an ordered collection of shapes that is itself a Shape.
// Hit reports the nearest qualifying intersection among all members.
type List struct {
	Shapes []core.Shape
}

// NewList creates a list holding the given shapes
func NewList(shapes ...core.Shape) *List {
	return &List{Shapes: shapes}
}

// Add appends a shape. Duplicates and overlapping geometry are allowed.
func (l *List) Add(shape core.Shape) {
	l.Shapes = append(l.Shapes, shape)
}

// Len returns the number of shapes in the list
func (l *List) Len() int {
	return len(l.Shapes)
}

// Hit intersects every shape, shrinking the upper bound to the closest t found so far
func (l *List) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
