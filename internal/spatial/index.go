package spatial

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// shape is one polygon of a parcel: an outer loop and its holes
type shape struct {
	outer *s2.Loop
	holes []*s2.Loop
	rect  s2.Rect
}

func (s *shape) contains(p s2.Point, ll s2.LatLng) bool {
	if !s.rect.ContainsLatLng(ll) || !s.outer.ContainsPoint(p) {
		return false
	}
	for _, h := range s.holes {
		if h.ContainsPoint(p) {
			return false
		}
	}
	return true
}

type entry struct {
	id       string
	shapes   []shape
	centroid orb.Point
}

// Index answers "which parcel is at this coordinate" for map clicks.
// It is built once at startup and is read-only afterwards.
type Index struct {
	entries []entry
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{}
}

// Len returns the number of indexed parcels
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Add indexes a Polygon or MultiPolygon under id. Rings with fewer than three
// distinct vertices are ignored; the centroid is still kept for Nearest.
func (idx *Index) Add(id string, g orb.Geometry, centroid orb.Point) {
	e := entry{id: id, centroid: centroid}
	switch g := g.(type) {
	case orb.Polygon:
		if s, ok := buildShape(g); ok {
			e.shapes = append(e.shapes, s)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			if s, ok := buildShape(p); ok {
				e.shapes = append(e.shapes, s)
			}
		}
	}
	idx.entries = append(idx.entries, e)
}

// Locate returns the id of the first parcel whose boundary contains the point
func (idx *Index) Locate(lat, lon float64) (string, bool) {
	ll := s2.LatLngFromDegrees(lat, lon)
	p := s2.PointFromLatLng(ll)
	for i := range idx.entries {
		for j := range idx.entries[i].shapes {
			if idx.entries[i].shapes[j].contains(p, ll) {
				return idx.entries[i].id, true
			}
		}
	}
	return "", false
}

// Nearest returns the parcel whose centroid is closest to the point, provided
// it lies within maxMeters. A non-positive maxMeters disables the limit.
func (idx *Index) Nearest(lat, lon, maxMeters float64) (string, bool) {
	best := ""
	bestDist := math.Inf(1)
	for _, e := range idx.entries {
		d := HaversineDistance(lat, lon, e.centroid.Lat(), e.centroid.Lon())
		if d < bestDist {
			best, bestDist = e.id, d
		}
	}
	if best == "" || (maxMeters > 0 && bestDist > maxMeters) {
		return "", false
	}
	return best, true
}

// Resolve tries Locate first and falls back to Nearest within maxMeters
func (idx *Index) Resolve(lat, lon, maxMeters float64) (string, bool) {
	if id, ok := idx.Locate(lat, lon); ok {
		return id, true
	}
	return idx.Nearest(lat, lon, maxMeters)
}

func buildShape(p orb.Polygon) (shape, bool) {
	if len(p) == 0 {
		return shape{}, false
	}
	outer, ok := ringLoop(p[0])
	if !ok {
		return shape{}, false
	}
	s := shape{outer: outer, rect: outer.RectBound()}
	for _, r := range p[1:] {
		if h, ok := ringLoop(r); ok {
			s.holes = append(s.holes, h)
		}
	}
	return s, true
}

// ringLoop converts a GeoJSON ring into an s2 loop. The closing vertex and
// consecutive duplicates are dropped, and the loop is normalized so it
// encloses the smaller side regardless of winding order.
func ringLoop(r orb.Ring) (*s2.Loop, bool) {
	pts := make([]s2.Point, 0, len(r))
	var prev orb.Point
	for i, v := range r {
		if i > 0 && v == prev {
			continue
		}
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(v.Lat(), v.Lon())))
		prev = v
	}
	if len(pts) > 1 && len(r) > 1 && r[0] == r[len(r)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return nil, false
	}
	loop := s2.LoopFromPoints(pts)
	loop.Normalize()
	return loop, true
}
