package dataset

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"

	"github.com/jengzang/solarmap-backend-go/internal/logging"
	"github.com/jengzang/solarmap-backend-go/internal/models"
	"github.com/jengzang/solarmap-backend-go/internal/spatial"
)

// goccyCodec plugs go-json into orb's GeoJSON encoding
type goccyCodec struct{}

func (goccyCodec) Marshal(v interface{}) ([]byte, error)      { return json.Marshal(v) }
func (goccyCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

func init() {
	geojson.CustomJSONMarshaler = goccyCodec{}
	geojson.CustomJSONUnmarshaler = goccyCodec{}
}

// Boundary is one parcel outline, keyed like the attribute table
type Boundary struct {
	ID       string
	Geometry orb.Geometry
}

// Boundaries is the decoded boundary file
type Boundaries struct {
	Features []Boundary
	CRS      string // declared CRS name, empty when absent
}

// LoadBoundaries reads a GeoJSON FeatureCollection of parcel outlines and
// returns them in EPSG:4326.
func LoadBoundaries(path, idColumn string) (*Boundaries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}
	b, err := ParseBoundaries(data, idColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// ParseBoundaries decodes a FeatureCollection. The identifier is taken from
// properties[idColumn], falling back to the feature id.
func ParseBoundaries(data []byte, idColumn string) (*Boundaries, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}

	b := &Boundaries{CRS: declaredCRS(fc.ExtraMembers)}
	proj, err := projectionFor(b.CRS)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]int, len(fc.Features))
	missingGeometry := 0
	for i, f := range fc.Features {
		id := featureID(f, idColumn)
		if id == "" {
			return nil, fmt.Errorf("%w: feature %d has no %q property or id", ErrMissingJoinKey, i, idColumn)
		}
		if first, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %q in features %d and %d", ErrDuplicateID, id, first, i)
		}
		seen[id] = i

		if f.Geometry == nil {
			missingGeometry++
			continue
		}
		if !spatial.IsPolygonal(f.Geometry) {
			return nil, fmt.Errorf("%w: feature %q is %s", ErrUnsupportedGeometry, id, f.Geometry.GeoJSONType())
		}

		g := f.Geometry
		if proj != nil {
			g = project.Geometry(g, proj)
		}
		b.Features = append(b.Features, Boundary{ID: id, Geometry: g})
	}

	if missingGeometry > 0 {
		logging.Warn().Int("features", missingGeometry).Msg("Skipped boundary features without geometry")
	}
	if err := checkGeographic(b.Features); err != nil {
		return nil, err
	}
	return b, nil
}

func featureID(f *geojson.Feature, idColumn string) string {
	if v, ok := f.Properties[idColumn]; ok {
		if id := CanonicalID(v); id != "" {
			return id
		}
	}
	want := normalizeHeader(idColumn)
	for k, v := range f.Properties {
		if normalizeHeader(k) == want {
			if id := CanonicalID(v); id != "" {
				return id
			}
		}
	}
	return CanonicalID(f.ID)
}

// declaredCRS reads the legacy "crs" member:
// {"type":"name","properties":{"name":"urn:ogc:def:crs:EPSG::3857"}}
func declaredCRS(extra geojson.Properties) string {
	crs, ok := extra["crs"].(map[string]interface{})
	if !ok {
		return ""
	}
	props, ok := crs["properties"].(map[string]interface{})
	if !ok {
		return ""
	}
	name, _ := props["name"].(string)
	return strings.TrimSpace(name)
}

// projectionFor maps a declared CRS to the projection onto longitude/latitude.
// A nil projection means the coordinates are used as is: WGS84 and the
// geographic datums that sit within a metre of it (SIRGAS 2000, ETRS89,
// NAD83). Web mercator and the UTM zones of WGS84 and SIRGAS 2000 are
// reprojected; anything else is rejected.
func projectionFor(name string) (orb.Projection, error) {
	if name == "" {
		return nil, nil
	}
	upper := strings.ToUpper(name)
	if strings.HasSuffix(upper, "CRS84") {
		return nil, nil
	}

	code := upper
	if i := strings.LastIndex(upper, ":"); i >= 0 {
		code = upper[i+1:]
	}
	epsg, err := strconv.Atoi(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCRS, name)
	}

	switch {
	case epsg == 4326, epsg == 4674, epsg == 4258, epsg == 4269:
		return nil, nil
	case epsg == 3857, epsg == 900913, epsg == 3785, epsg == 102100, epsg == 102113:
		return project.Mercator.ToWGS84, nil
	case epsg >= 32601 && epsg <= 32660:
		return spatial.UTMToWGS84(epsg-32600, false), nil
	case epsg >= 32701 && epsg <= 32760:
		return spatial.UTMToWGS84(epsg-32700, true), nil
	case epsg >= 31965 && epsg <= 31976: // SIRGAS 2000 / UTM zones 11N-22N
		return spatial.UTMToWGS84(epsg-31954, false), nil
	case epsg >= 31977 && epsg <= 31985: // SIRGAS 2000 / UTM zones 17S-25S
		return spatial.UTMToWGS84(epsg-31960, true), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedCRS, name)
}

// checkGeographic rejects coordinates that cannot be longitude/latitude,
// which happens when a projected file carries no crs member.
func checkGeographic(features []Boundary) error {
	geoms := make([]orb.Geometry, len(features))
	for i, f := range features {
		geoms[i] = f.Geometry
	}
	bound, ok := spatial.BoundingBox(geoms)
	if !ok {
		return nil
	}
	if bound.Min.Lon() < -180 || bound.Max.Lon() > 180 || bound.Min.Lat() < -90 || bound.Max.Lat() > 90 {
		return fmt.Errorf("%w: coordinates outside EPSG:4326 range %v", ErrUnsupportedCRS, bound)
	}
	return nil
}

// EncodeFeatureCollection renders the merged parcels as the GeoJSON the map
// trace references. Feature ids are parcel ids.
func EncodeFeatureCollection(parcels []*models.Parcel) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, p := range parcels {
		f := geojson.NewFeature(p.Geometry)
		f.ID = p.ID
		f.Properties["id"] = p.ID
		f.Properties["neighborhood"] = p.Neighborhood
		fc.Append(f)
	}
	return fc.MarshalJSON()
}
