package dashboard

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/jengzang/solarmap-backend-go/internal/dataset/datasettest"
	"github.com/jengzang/solarmap-backend-go/internal/logging"
	"github.com/jengzang/solarmap-backend-go/internal/models"
	"github.com/jengzang/solarmap-backend-go/internal/render"
)

func f(v float64) *float64 { return &v }

func TestDispatchIdle(t *testing.T) {
	base := datasettest.New(t, datasettest.Rows(5))
	st, out := Dispatch(base, State{}, Event{Kind: EventInput})

	if st.Phase != PhaseIdle {
		t.Errorf("Phase = %q, want %q", st.Phase, PhaseIdle)
	}
	if len(out.Map.Data) != 1 || len(out.Map.Data[0].Locations) != 5 {
		t.Errorf("map = %+v, want all 5 parcels", out.Map.Data)
	}
	if out.Production.Layout.Title.Text != render.ProductionTitle {
		t.Errorf("production title = %q", out.Production.Layout.Title.Text)
	}
}

func TestDispatchReset(t *testing.T) {
	base := datasettest.New(t, datasettest.Rows(5, "A", "B"))
	prior := State{
		Phase:     PhaseSelected,
		Filters:   models.DashboardFilter{Neighborhoods: []string{"A"}, Metric: "panel_count", Min: f(1), Max: f(3)},
		Selection: "3",
	}

	st, out := Dispatch(base, prior, Event{Kind: EventReset, Filters: prior.Filters})
	if st.Phase != PhaseReset || st.Selection != "" || !st.Filters.IsZero() {
		t.Errorf("state = %+v, want cleared reset state", st)
	}
	if !out.Controls.IsZero() {
		t.Errorf("Controls = %+v, want cleared", out.Controls)
	}
	if !out.Map.IsEmpty() || !out.Production.IsEmpty() || !out.Radiation.IsEmpty() {
		t.Error("figures should be empty after reset")
	}
	if out.Cards != render.ResetCards() {
		t.Errorf("Cards = %+v, want reset cards", out.Cards)
	}
	if out.Cards.RoofProduction != "0.0" || out.Cards.PanelCount != "0" {
		t.Errorf("reset cards = %q/%q, want 0.0/0", out.Cards.RoofProduction, out.Cards.PanelCount)
	}
}

func TestDispatchFilterKeepsSelection(t *testing.T) {
	base := datasettest.New(t, datasettest.Rows(6, "A", "B"))

	st, out := Dispatch(base, State{}, Event{Kind: EventClick, ParcelID: "3"})
	if st.Phase != PhaseSelected || st.Selection != "3" {
		t.Fatalf("state = %+v, want parcel 3 selected", st)
	}
	if out.Cards.RoofProduction != "30.00" {
		t.Errorf("RoofProduction card = %q, want 30.00", out.Cards.RoofProduction)
	}

	// parcel 3 is in A; narrowing to A keeps it visible
	filters := models.DashboardFilter{Neighborhoods: []string{"A"}}
	st, out = Dispatch(base, st, Event{Kind: EventInput, Filters: filters})
	if st.Selection != "3" || st.Phase != PhaseSelected {
		t.Errorf("state = %+v, want selection kept", st)
	}
	if got := out.Production.Layout.Title.Text; got != "Energy production - Parcel 3" {
		t.Errorf("production title = %q", got)
	}
	if !reflect.DeepEqual(out.Controls, filters) {
		t.Errorf("Controls = %+v, want %+v", out.Controls, filters)
	}

	// switching to B filters the selected parcel out
	st, out = Dispatch(base, st, Event{Kind: EventInput, Filters: models.DashboardFilter{Neighborhoods: []string{"B"}}})
	if st.Selection != "3" {
		t.Errorf("Selection = %q, want sticky 3", st.Selection)
	}
	if out.Production.Layout.Title.Text != render.NoParcelTitle || out.Radiation.Layout.Title.Text != render.NoParcelTitle {
		t.Error("charts should show the placeholder for a filtered-out parcel")
	}
	if out.Cards != render.ZeroCards() {
		t.Errorf("Cards = %+v, want zero cards", out.Cards)
	}
	if out.Map.Layout.Map.Zoom != base.DefaultZoom || len(out.Map.Data) != 1 {
		t.Errorf("map should show the subset at the default view, got %+v", out.Map.Layout.Map)
	}
}

func TestDispatchClickByCoordinate(t *testing.T) {
	base := datasettest.New(t, datasettest.Rows(12))
	center := datasettest.Center(10)

	st, out := Dispatch(base, State{}, Event{Kind: EventClick, Lat: f(center.Lat()), Lon: f(center.Lon())})
	if st.Selection != "11" {
		t.Fatalf("Selection = %q, want 11", st.Selection)
	}
	view := out.Map.Layout.Map
	if view.Zoom != base.SelectedZoom {
		t.Errorf("zoom = %v, want %v", view.Zoom, base.SelectedZoom)
	}
	if math.Abs(view.Center.Lat-center.Lat()) > 1e-9 || math.Abs(view.Center.Lon-center.Lon()) > 1e-9 {
		t.Errorf("center = %+v, want %v", view.Center, center)
	}
	if len(out.Map.Data) != 2 || out.Map.Data[1].Name != render.SelectedMarkerName {
		t.Errorf("map traces = %+v, want selected marker", out.Map.Data)
	}

	// a click in the ocean keeps the selection
	st, _ = Dispatch(base, st, Event{Kind: EventClick, Lat: f(0), Lon: f(0)})
	if st.Selection != "11" {
		t.Errorf("Selection = %q, want 11 kept after a miss", st.Selection)
	}
}

func TestDispatchNoData(t *testing.T) {
	base := datasettest.New(t, datasettest.Rows(4))

	var logs bytes.Buffer
	logging.Init(logging.Config{Level: "debug", Format: "json", Output: &logs})
	defer logging.Init(logging.Config{Level: "info"})

	tests := []struct {
		name    string
		filters models.DashboardFilter
		wantLog string
	}{
		{"range excludes all", models.DashboardFilter{Min: f(1000)}, "no parcels match"},
		{"unknown metric", models.DashboardFilter{Metric: "elevation"}, "elevation"},
		{"unknown neighborhood", models.DashboardFilter{Neighborhoods: []string{"Nowhere"}}, "no parcels match"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.Reset()
			st, out := Dispatch(base, State{}, Event{Kind: EventInput, Filters: tt.filters})
			if got := logs.String(); !strings.Contains(got, "Filters matched no parcel") || !strings.Contains(got, tt.wantLog) {
				t.Errorf("debug log = %q, want the filter error containing %q", got, tt.wantLog)
			}
			if st.Phase != PhaseFiltered {
				t.Errorf("Phase = %q, want %q", st.Phase, PhaseFiltered)
			}
			if !out.NoData || out.Map.Layout.Title.Text != render.NoDataTitle {
				t.Errorf("map = %+v, want no-data figure", out.Map.Layout)
			}
			if out.Cards != render.ZeroCards() {
				t.Errorf("Cards = %+v", out.Cards)
			}
		})
	}
}

func TestDispatchDeterministic(t *testing.T) {
	base := datasettest.New(t, datasettest.Rows(30, "A", "B", "C"))
	st := State{Selection: "4"}
	ev := Event{Kind: EventInput, Filters: models.DashboardFilter{Neighborhoods: []string{"A", "B"}, Metric: "production_per_area", Max: f(2)}}

	st1, out1 := Dispatch(base, st, ev)
	st2, out2 := Dispatch(base, st, ev)

	a, err := json.Marshal(out1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(out2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(st1, st2) || string(a) != string(b) {
		t.Error("Dispatch should be deterministic")
	}
}

func TestNewLayout(t *testing.T) {
	base := datasettest.New(t, datasettest.Rows(5, "Centro", "Tirol"))
	l := NewLayout(base, "/api/v1/dashboard/update")

	if len(l.Controls.Neighborhoods) != 2 || l.Controls.Neighborhoods[1].Value != "Tirol" {
		t.Errorf("neighborhood options = %+v", l.Controls.Neighborhoods)
	}
	if len(l.Controls.Metrics) != len(models.Metrics) || l.Controls.Metrics[0].Value != "production_per_area" || l.Controls.Metrics[1].Value != "roof_production" {
		t.Errorf("metric options = %+v", l.Controls.Metrics)
	}
	if l.Headline[0].Value != "5" || l.Headline[1].Value != "150" || l.Headline[2].Value != "30.00" {
		t.Errorf("headline = %+v", l.Headline)
	}
	if l.Initial.Phase != PhaseIdle || len(l.Initial.Outputs.Map.Data) != 1 {
		t.Errorf("initial = %+v", l.Initial.Phase)
	}
	if l.MapStyle != "open-street-map" {
		t.Errorf("MapStyle = %q", l.MapStyle)
	}
}

func TestCardRows(t *testing.T) {
	rows := CardRows(render.ZeroCards())
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	for i, row := range rows {
		if len(row) != 4 {
			t.Errorf("len(rows[%d]) = %d, want 4", i, len(row))
		}
	}
	if rows[2][3] != (Card{}) {
		t.Errorf("last card = %+v, want empty padding", rows[2][3])
	}
	if rows[1][2].ID != "panel_count" || rows[1][2].Value != "0" {
		t.Errorf("panel count card = %+v", rows[1][2])
	}
}

func TestEventKindString(t *testing.T) {
	for kind, want := range map[EventKind]string{EventInput: "input", EventClick: "click", EventReset: "reset", EventKind(9): "unknown"} {
		if got := kind.String(); got != want {
			t.Errorf("EventKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestHeadlineFollowsSummary(t *testing.T) {
	base := datasettest.New(t, datasettest.Rows(6, "A", "B"))
	l := NewLayout(base, "/api/v1/dashboard/update")

	_, out := Dispatch(base, State{}, Event{Kind: EventInput, Filters: models.DashboardFilter{Neighborhoods: []string{"B"}}})
	data, err := json.Marshal(out.Summary)
	if err != nil {
		t.Fatal(err)
	}
	var summary map[string]string
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatal(err)
	}

	// B holds parcels 2, 4 and 6: roof production 20 + 40 + 60
	want := map[string]string{"parcels": "3", "total_production": "120", "mean_production": "40.00"}
	for _, card := range l.Headline {
		got, ok := summary[card.ID]
		if !ok {
			t.Errorf("summary has no value for headline %q", card.ID)
			continue
		}
		if got != want[card.ID] {
			t.Errorf("summary[%s] = %q, want %q", card.ID, got, want[card.ID])
		}
	}
}
