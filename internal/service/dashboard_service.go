package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jengzang/solarmap-backend-go/internal/dashboard"
	"github.com/jengzang/solarmap-backend-go/internal/dataset"
	"github.com/jengzang/solarmap-backend-go/internal/filter"
	"github.com/jengzang/solarmap-backend-go/internal/logging"
	"github.com/jengzang/solarmap-backend-go/internal/metrics"
	"github.com/jengzang/solarmap-backend-go/internal/models"
	"github.com/jengzang/solarmap-backend-go/internal/render"
)

var (
	// ErrParcelNotFound is returned for ids absent from the merged table
	ErrParcelNotFound = errors.New("parcel not found")
	// ErrUnknownChart is returned for chart kinds other than production and radiation
	ErrUnknownChart = errors.New("unknown chart")
)

// Chart kinds served as PNG
const (
	ChartProduction = "production"
	ChartRadiation  = "radiation"
)

// UpdatePath is where the page posts interactions
const UpdatePath = "/api/v1/dashboard/update"

// DashboardService handles business logic for the dashboard
type DashboardService struct {
	base   *dataset.Base
	layout dashboard.Layout
}

// NewDashboardService creates a new dashboard service over a loaded base
func NewDashboardService(base *dataset.Base) *DashboardService {
	metrics.ParcelsLoaded.Set(float64(base.Len()))
	return &DashboardService{
		base:   base,
		layout: dashboard.NewLayout(base, UpdatePath),
	}
}

// ParcelCount returns the size of the merged table
func (s *DashboardService) ParcelCount() int {
	return s.base.Len()
}

// Layout returns the page declaration, built once
func (s *DashboardService) Layout() dashboard.Layout {
	return s.layout
}

// GeoJSON returns the encoded boundary FeatureCollection
func (s *DashboardService) GeoJSON() []byte {
	return s.base.GeoJSON
}

// Update runs one interaction through the dispatcher
func (s *DashboardService) Update(req models.UpdateRequest) models.UpdateResponse {
	start := time.Now()

	ev := eventFor(req)
	prior := dashboard.State{Filters: req.DashboardFilter, Selection: req.SelectedID}
	st, out := dashboard.Dispatch(s.base, prior, ev)

	metrics.UpdatesTotal.WithLabelValues(ev.Kind.String()).Inc()
	metrics.UpdateDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000)
	if out.NoData {
		metrics.NoDataTotal.Inc()
	}
	logging.Debug().
		Str("event", ev.Kind.String()).
		Str("phase", string(st.Phase)).
		Str("selected", st.Selection).
		Bool("no_data", out.NoData).
		Msg("Dashboard updated")

	return models.UpdateResponse{
		Phase:      string(st.Phase),
		SelectedID: st.Selection,
		Outputs:    out,
	}
}

// eventFor maps a request to an event. A click payload without a trigger
// counts as a click.
func eventFor(req models.UpdateRequest) dashboard.Event {
	switch {
	case req.Trigger == models.TriggerReset:
		return dashboard.Event{Kind: dashboard.EventReset}
	case req.Trigger == models.TriggerClick, req.Trigger == "" && req.Click != nil:
		ev := dashboard.Event{Kind: dashboard.EventClick, Filters: req.DashboardFilter}
		if req.Click != nil {
			ev.ParcelID = req.Click.ID
			ev.Lat = req.Click.Lat
			ev.Lon = req.Click.Lon
		}
		return ev
	default:
		return dashboard.Event{Kind: dashboard.EventInput, Filters: req.DashboardFilter}
	}
}

// Parcel returns one parcel's attributes
func (s *DashboardService) Parcel(id string) (models.ParcelDetail, error) {
	p, ok := s.base.Parcel(id)
	if !ok {
		return models.ParcelDetail{}, fmt.Errorf("%w: %q", ErrParcelNotFound, id)
	}
	return p.Detail(), nil
}

// ChartPNG renders one monthly chart for the given controls and selection
func (s *DashboardService) ChartPNG(kind string, q models.ChartQuery) ([]byte, error) {
	res, err := filter.Apply(s.base, filter.Criteria{
		Neighborhoods: q.Neighborhoods,
		Metric:        q.Metric,
		Min:           q.Min,
		Max:           q.Max,
	})
	if err != nil {
		// the chart then shows the averages or the parcel placeholder
		logging.Debug().Err(err).Str("chart", kind).Msg("Chart filters matched no parcel")
	}
	out := render.Render(s.base, res.Parcels, res.Metric, q.SelectedID)

	var fig models.Figure
	switch kind {
	case ChartProduction:
		fig = out.Production
	case ChartRadiation:
		fig = out.Radiation
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, kind)
	}

	data, err := render.ChartPNG(fig, q.Width, q.Height)
	if err != nil {
		return nil, err
	}
	metrics.ChartExportsTotal.WithLabelValues(kind).Inc()
	return data, nil
}
