// Package filter narrows the merged parcel table to the rows the dashboard
// controls select.
package filter

import (
	"errors"
	"math"

	"github.com/jengzang/solarmap-backend-go/internal/dataset"
	"github.com/jengzang/solarmap-backend-go/internal/models"
	"github.com/jengzang/solarmap-backend-go/internal/stats"
)

// ErrNoData is returned when no parcel survives the filters
var ErrNoData = errors.New("no parcels match the selected filters")

// Criteria is the state of the filter controls. Zero value selects everything.
type Criteria struct {
	Neighborhoods []string // empty means all
	Metric        string   // metric key, empty for the default
	Min           *float64
	Max           *float64
}

// FromDashboard converts the wire filter into Criteria
func FromDashboard(f models.DashboardFilter) Criteria {
	return Criteria{
		Neighborhoods: f.Neighborhoods,
		Metric:        f.Metric,
		Min:           f.Min,
		Max:           f.Max,
	}
}

// Result is the filtered subset, in base order
type Result struct {
	Parcels []*models.Parcel
	Metric  models.Metric

	// Ranged is true when a range filter applied; Lo and Hi are then the
	// resolved closed bounds (NaN when the subset had no values).
	Ranged bool
	Lo     float64
	Hi     float64
}

// Apply filters the whole merged table. See ApplyTo.
func Apply(base *dataset.Base, c Criteria) (Result, error) {
	return ApplyTo(base.Parcels, c)
}

// ApplyTo filters parcels by neighborhood, then by metric range. A missing
// bound defaults to the observed extreme of the neighborhood-filtered subset.
// Parcels whose metric value is missing never satisfy a range. The input is
// not modified and the result keeps its order, so the result can be filtered
// again with the same criteria without changing.
//
// ErrUnknownMetric and ErrNoData both mean the dashboard has nothing to show.
func ApplyTo(parcels []*models.Parcel, c Criteria) (Result, error) {
	metric, err := models.ParseMetric(c.Metric)
	if err != nil {
		return Result{Parcels: []*models.Parcel{}}, err
	}

	subset := byNeighborhood(parcels, c.Neighborhoods)
	res := Result{Parcels: subset, Metric: metric, Lo: math.NaN(), Hi: math.NaN()}

	if c.Min != nil || c.Max != nil {
		res.Ranged = true
		res.Lo, res.Hi = resolveBounds(subset, metric, c.Min, c.Max)
		res.Parcels = byRange(subset, metric, res.Lo, res.Hi)
	}

	if len(res.Parcels) == 0 {
		return res, ErrNoData
	}
	return res, nil
}

func byNeighborhood(parcels []*models.Parcel, neighborhoods []string) []*models.Parcel {
	if len(neighborhoods) == 0 {
		out := make([]*models.Parcel, len(parcels))
		copy(out, parcels)
		return out
	}

	want := make(map[string]bool, len(neighborhoods))
	for _, n := range neighborhoods {
		want[n] = true
	}
	out := make([]*models.Parcel, 0, len(parcels))
	for _, p := range parcels {
		if want[p.Neighborhood] {
			out = append(out, p)
		}
	}
	return out
}

func resolveBounds(subset []*models.Parcel, metric models.Metric, min, max *float64) (float64, float64) {
	var values []float64
	if min == nil || max == nil {
		values = make([]float64, len(subset))
		for i, p := range subset {
			values[i] = metric.Value(p)
		}
	}

	lo, hi := math.NaN(), math.NaN()
	if min != nil {
		lo = *min
	} else {
		lo = stats.Min(values)
	}
	if max != nil {
		hi = *max
	} else {
		hi = stats.Max(values)
	}
	return lo, hi
}

// byRange keeps parcels with lo <= value <= hi. NaN on any side fails.
func byRange(parcels []*models.Parcel, metric models.Metric, lo, hi float64) []*models.Parcel {
	out := make([]*models.Parcel, 0, len(parcels))
	for _, p := range parcels {
		v := metric.Value(p)
		if v >= lo && v <= hi {
			out = append(out, p)
		}
	}
	return out
}
