package service

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jengzang/solarmap-backend-go/internal/dashboard"
	"github.com/jengzang/solarmap-backend-go/internal/dataset/datasettest"
	"github.com/jengzang/solarmap-backend-go/internal/logging"
	"github.com/jengzang/solarmap-backend-go/internal/models"
	"github.com/jengzang/solarmap-backend-go/internal/render"
)

func newTestService(t *testing.T) *DashboardService {
	t.Helper()
	return NewDashboardService(datasettest.New(t, datasettest.Rows(6, "Centro", "Tirol")))
}

func TestEventFor(t *testing.T) {
	lat, lon := 1.0, 2.0
	tests := []struct {
		name string
		req  models.UpdateRequest
		want dashboard.EventKind
	}{
		{"empty", models.UpdateRequest{}, dashboard.EventInput},
		{"metric", models.UpdateRequest{Trigger: models.TriggerMetric}, dashboard.EventInput},
		{"reset", models.UpdateRequest{Trigger: models.TriggerReset, Click: &models.ClickPoint{ID: "1"}}, dashboard.EventReset},
		{"click", models.UpdateRequest{Trigger: models.TriggerClick, Click: &models.ClickPoint{ID: "1"}}, dashboard.EventClick},
		{"implicit click", models.UpdateRequest{Click: &models.ClickPoint{Lat: &lat, Lon: &lon}}, dashboard.EventClick},
		{"filter with stale click", models.UpdateRequest{Trigger: models.TriggerMin, Click: &models.ClickPoint{ID: "1"}}, dashboard.EventInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eventFor(tt.req).Kind; got != tt.want {
				t.Errorf("eventFor().Kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDashboardServiceUpdate(t *testing.T) {
	s := newTestService(t)

	resp := s.Update(models.UpdateRequest{Trigger: models.TriggerClick, Click: &models.ClickPoint{ID: "4"}})
	if resp.Phase != "selected" || resp.SelectedID != "4" {
		t.Fatalf("Update() = %s/%s, want selected/4", resp.Phase, resp.SelectedID)
	}
	if resp.Outputs.Cards.RoofProduction != "40.00" {
		t.Errorf("RoofProduction = %q, want 40.00", resp.Outputs.Cards.RoofProduction)
	}

	// the client echoes the selection back with the next filter change
	resp = s.Update(models.UpdateRequest{
		Trigger:         models.TriggerNeighborhoods,
		DashboardFilter: models.DashboardFilter{Neighborhoods: []string{"Centro"}},
		SelectedID:      resp.SelectedID,
	})
	if resp.SelectedID != "4" {
		t.Errorf("SelectedID = %q, want 4", resp.SelectedID)
	}
	if resp.Outputs.Production.Layout.Title.Text != render.NoParcelTitle {
		t.Errorf("production title = %q, want placeholder", resp.Outputs.Production.Layout.Title.Text)
	}

	resp = s.Update(models.UpdateRequest{Trigger: models.TriggerReset, SelectedID: "4"})
	if resp.Phase != "reset" || resp.SelectedID != "" {
		t.Errorf("reset = %s/%q", resp.Phase, resp.SelectedID)
	}
}

func TestDashboardServiceParcel(t *testing.T) {
	s := newTestService(t)

	d, err := s.Parcel("2.0")
	if err != nil {
		t.Fatalf("Parcel() error = %v", err)
	}
	if d.ID != "2" || d.Neighborhood != "Tirol" || float64(d.RoofProduction) != 20 {
		t.Errorf("Parcel() = %+v", d)
	}
	if _, err := s.Parcel("404"); !errors.Is(err, ErrParcelNotFound) {
		t.Errorf("Parcel(404) error = %v, want ErrParcelNotFound", err)
	}
}

func TestDashboardServiceChartPNG(t *testing.T) {
	s := newTestService(t)

	if _, err := s.ChartPNG(ChartProduction, models.ChartQuery{}); err != nil {
		t.Errorf("ChartPNG(production) error = %v", err)
	}
	if _, err := s.ChartPNG(ChartRadiation, models.ChartQuery{SelectedID: "3", Width: 400, Height: 300}); err != nil {
		t.Errorf("ChartPNG(radiation) error = %v", err)
	}
	if _, err := s.ChartPNG("income", models.ChartQuery{}); !errors.Is(err, ErrUnknownChart) {
		t.Errorf("ChartPNG(income) error = %v, want ErrUnknownChart", err)
	}
	if _, err := s.ChartPNG(ChartProduction, models.ChartQuery{SelectedID: "3", Neighborhoods: []string{"Tirol"}}); !errors.Is(err, render.ErrEmptyChart) {
		t.Errorf("ChartPNG(filtered out) error = %v, want ErrEmptyChart", err)
	}
}

func TestDashboardServiceLayout(t *testing.T) {
	s := newTestService(t)
	l := s.Layout()
	if l.Endpoints.Update != UpdatePath || len(l.Controls.Neighborhoods) != 2 {
		t.Errorf("Layout() = %+v", l.Endpoints)
	}
	if s.ParcelCount() != 6 || len(s.GeoJSON()) == 0 {
		t.Errorf("ParcelCount() = %d, GeoJSON len %d", s.ParcelCount(), len(s.GeoJSON()))
	}
}

func TestDashboardServiceChartPNGUnknownMetric(t *testing.T) {
	svc := newTestService(t)

	var logs bytes.Buffer
	logging.Init(logging.Config{Level: "debug", Format: "json", Output: &logs})
	defer logging.Init(logging.Config{Level: "info"})

	// no selection: the chart still shows the overall averages
	data, err := svc.ChartPNG(ChartRadiation, models.ChartQuery{Metric: "elevation"})
	if err != nil {
		t.Fatalf("ChartPNG() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("ChartPNG() did not return a PNG")
	}
	if got := logs.String(); !strings.Contains(got, "Chart filters matched no parcel") || !strings.Contains(got, "unknown metric") {
		t.Errorf("debug log = %q, want the filter error", got)
	}
}
