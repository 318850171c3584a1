// Package viewport selects the part of a path that is worth sending to the
// static map renderer for a given visible area.
package viewport

import "github.com/NERVsystems/staticsnap/pkg/geo"

// PickupVisibleVertices returns the vertices of path needed to draw its
// visible portion inside bounds, in their original order.
//
// A segment is kept when either endpoint is inside bounds, or when the
// bounding box of the segment intersects bounds. The box test is a coarse
// approximation of true segment/rectangle intersection: it can keep a
// diagonal segment that only passes near a corner. When a segment is kept
// because of the box test its end vertex is treated as visible for the next
// segment, so the path continues one vertex past the viewport.
//
// Every input index is emitted at most once.
func PickupVisibleVertices(path []geo.Point, bounds geo.Bounds) []geo.Point {
	if len(path) == 0 {
		return nil
	}

	visible := make([]bool, len(path))
	added := make([]bool, len(path))
	vertices := make([]geo.Point, 0, len(path))

	emit := func(i int) {
		if !added[i] {
			vertices = append(vertices, path[i])
			added[i] = true
		}
	}

	visible[0] = bounds.Contains(path[0])
	if visible[0] {
		emit(0)
	}

	for j := 1; j < len(path); j++ {
		visible[j] = bounds.Contains(path[j])
		if !visible[j-1] && !visible[j] {
			visible[j] = bounds.Intersects(geo.BoundsOf(path[j-1], path[j]))
			if !visible[j] {
				continue
			}
		}
		emit(j - 1)
		emit(j)
	}

	return vertices
}
