package dataset

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/paulmach/orb"

	"github.com/jengzang/solarmap-backend-go/internal/logging"
	"github.com/jengzang/solarmap-backend-go/internal/models"
	"github.com/jengzang/solarmap-backend-go/internal/spatial"
	"github.com/jengzang/solarmap-backend-go/internal/stats"
)

// Default map framing
const (
	DefaultZoom     = 12
	SelectedZoom    = 15
	DefaultMapStyle = "open-street-map"
)

// MergeOptions tunes the precomputed map framing
type MergeOptions struct {
	DefaultZoom  float64
	SelectedZoom float64
	MapStyle     string
}

// Base is the merged, immutable parcel table plus everything derived from it
// once at startup. It is safe for concurrent readers; nothing mutates it
// after Merge returns.
type Base struct {
	Parcels []*models.Parcel // tabular row order

	// Global monthly means over all parcels, missing values skipped
	AvgProduction [models.MonthCount]float64
	AvgRadiation  [models.MonthCount]float64

	Center       orb.Point // centroid of the union of all boundaries
	DefaultZoom  float64
	SelectedZoom float64
	MapStyle     string

	Neighborhoods []string // order of first appearance

	// Headline figures over the whole table
	TotalProduction float64
	MeanProduction  float64

	// GeoJSON is the encoded FeatureCollection served to the map
	GeoJSON []byte

	byID  map[string]*models.Parcel
	index *spatial.Index
}

// Parcel returns the parcel with the given id
func (b *Base) Parcel(id string) (*models.Parcel, bool) {
	p, ok := b.byID[CanonicalID(id)]
	return p, ok
}

// Len returns the number of merged parcels
func (b *Base) Len() int {
	return len(b.Parcels)
}

// ParcelAt resolves a map coordinate to the parcel whose boundary contains it,
// or the parcel with the nearest centroid within toleranceMeters.
func (b *Base) ParcelAt(lat, lon, toleranceMeters float64) (*models.Parcel, bool) {
	id, ok := b.index.Resolve(lat, lon, toleranceMeters)
	if !ok {
		return nil, false
	}
	return b.byID[id], true
}

// Merge inner-joins attribute rows onto boundaries by identifier and computes
// the derived aggregates. Rows missing on either side are dropped.
func Merge(rows []*models.Attributes, boundaries *Boundaries, opts MergeOptions) (*Base, error) {
	if opts.DefaultZoom == 0 {
		opts.DefaultZoom = DefaultZoom
	}
	if opts.SelectedZoom == 0 {
		opts.SelectedZoom = SelectedZoom
	}
	if opts.MapStyle == "" {
		opts.MapStyle = DefaultMapStyle
	}

	geoms := make(map[string]orb.Geometry, len(boundaries.Features))
	for _, f := range boundaries.Features {
		geoms[f.ID] = f.Geometry
	}

	base := &Base{
		DefaultZoom:  opts.DefaultZoom,
		SelectedZoom: opts.SelectedZoom,
		MapStyle:     opts.MapStyle,
		byID:         make(map[string]*models.Parcel, len(rows)),
		index:        spatial.NewIndex(),
	}

	seenNeighborhood := make(map[string]bool)
	withoutBoundary := 0
	for _, row := range rows {
		g, ok := geoms[row.ID]
		if !ok {
			withoutBoundary++
			continue
		}
		if _, dup := base.byID[row.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, row.ID)
		}

		p := row.Parcel
		p.Geometry = g
		p.Centroid = spatial.Centroid(g)
		base.Parcels = append(base.Parcels, &p)
		base.byID[p.ID] = &p
		base.index.Add(p.ID, g, p.Centroid)

		if p.Neighborhood != "" && !seenNeighborhood[p.Neighborhood] {
			seenNeighborhood[p.Neighborhood] = true
			base.Neighborhoods = append(base.Neighborhoods, p.Neighborhood)
		}
	}
	withoutAttributes := len(boundaries.Features) - len(base.Parcels)

	logging.Info().
		Int("parcels", len(base.Parcels)).
		Int("rows_without_boundary", withoutBoundary).
		Int("boundaries_without_row", withoutAttributes).
		Msg("Merged attributes and boundaries")

	if len(base.Parcels) == 0 {
		return nil, ErrEmptyMerge
	}

	all := make([]orb.Geometry, len(base.Parcels))
	production := make([][]float64, len(base.Parcels))
	radiation := make([][]float64, len(base.Parcels))
	roof := make([]float64, len(base.Parcels))
	for i, p := range base.Parcels {
		all[i] = p.Geometry
		production[i] = p.Production[:]
		radiation[i] = p.Radiation[:]
		roof[i] = p.RoofProduction
	}

	base.Center, _ = spatial.UnionCentroid(all)
	copy(base.AvgProduction[:], stats.ColumnMeans(production, models.MonthCount))
	copy(base.AvgRadiation[:], stats.ColumnMeans(radiation, models.MonthCount))
	base.TotalProduction = stats.Sum(roof)
	base.MeanProduction = stats.Mean(roof)

	data, err := EncodeFeatureCollection(base.Parcels)
	if err != nil {
		return nil, fmt.Errorf("failed to encode merged boundaries: %w", err)
	}
	base.GeoJSON = data
	logging.Debug().Str("size", humanize.Bytes(uint64(len(data)))).Msg("Encoded map boundaries")

	return base, nil
}
