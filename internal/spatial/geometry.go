package spatial

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Centroid returns the area-weighted centroid of a polygonal geometry.
// Degenerate (zero-area) shapes fall back to the center of their bounding box.
func Centroid(g orb.Geometry) orb.Point {
	if g == nil {
		return orb.Point{}
	}
	c, area := planar.CentroidArea(g)
	if area == 0 {
		return g.Bound().Center()
	}
	return c
}

// UnionCentroid 计算所有几何的整体质心
//
// Every polygon contributes in proportion to its area, which matches the
// centroid of the dissolved union when parcels do not overlap. ok is false
// when geoms holds no usable geometry.
func UnionCentroid(geoms []orb.Geometry) (orb.Point, bool) {
	coll := make(orb.Collection, 0, len(geoms))
	for _, g := range geoms {
		if g != nil {
			coll = append(coll, g)
		}
	}
	if len(coll) == 0 {
		return orb.Point{}, false
	}

	c, area := planar.CentroidArea(coll)
	if area == 0 {
		return coll.Bound().Center(), true
	}
	return c, true
}

// BoundingBox returns the bound covering every geometry
func BoundingBox(geoms []orb.Geometry) (orb.Bound, bool) {
	var b orb.Bound
	found := false
	for _, g := range geoms {
		if g == nil {
			continue
		}
		if !found {
			b = g.Bound()
			found = true
			continue
		}
		b = b.Union(g.Bound())
	}
	return b, found
}

// IsPolygonal reports whether g is a Polygon or MultiPolygon with at least one ring
func IsPolygonal(g orb.Geometry) bool {
	switch g := g.(type) {
	case orb.Polygon:
		return len(g) > 0 && len(g[0]) >= 3
	case orb.MultiPolygon:
		for _, p := range g {
			if len(p) > 0 && len(p[0]) >= 3 {
				return true
			}
		}
	}
	return false
}
