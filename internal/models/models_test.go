package models

import (
	"errors"
	"math"
	"testing"

	json "github.com/goccy/go-json"
)

func TestParseMetric(t *testing.T) {
	tests := []struct {
		input   string
		want    Metric
		wantErr bool
	}{
		{"", DefaultMetric, false},
		{"roof_production", MetricRoofProduction, false},
		{" Production_Per_Area ", MetricProductionPerArea, false},
		{"panel_count", MetricPanelCount, false},
		{"Bairros", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMetric(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownMetric) {
				t.Errorf("ParseMetric(%q) error = %v, want ErrUnknownMetric", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMetric(%q) = (%q, %v), want %q", tt.input, got, err, tt.want)
		}
	}
}

func TestMetricValue(t *testing.T) {
	a := NewAttributes("7", 1)
	a.RoofProduction = 120.5
	a.PanelCount = 14

	if v := MetricRoofProduction.Value(&a.Parcel); v != 120.5 {
		t.Errorf("roof_production = %v, want 120.5", v)
	}
	if v := MetricPanelCount.Value(&a.Parcel); v != 14 {
		t.Errorf("panel_count = %v, want 14", v)
	}
	if v := MetricBuildingArea.Value(&a.Parcel); !math.IsNaN(v) {
		t.Errorf("unset building_area = %v, want NaN", v)
	}
	if v := Metric("nope").Value(&a.Parcel); !math.IsNaN(v) {
		t.Errorf("unknown metric value = %v, want NaN", v)
	}
	for _, m := range Metrics {
		if !m.Valid() {
			t.Errorf("metric %q listed but not valid", m)
		}
		if m.Label() == string(m) {
			t.Errorf("metric %q has no label", m)
		}
	}
	if len(Metrics) != len(metricDefs) {
		t.Errorf("Metrics lists %d entries, %d defined", len(Metrics), len(metricDefs))
	}
}

func TestFields(t *testing.T) {
	if len(Fields) != 2*MonthCount+11 {
		t.Fatalf("len(Fields) = %d, want %d", len(Fields), 2*MonthCount+11)
	}
	seen := make(map[string]bool)
	for _, f := range Fields {
		if seen[f.Name] {
			t.Errorf("duplicate field %q", f.Name)
		}
		seen[f.Name] = true
	}

	var p Parcel
	f, ok := FieldByName("radiation_mar")
	if !ok {
		t.Fatal("radiation_mar not found")
	}
	*f.Ref(&p) = 5.5
	if p.Radiation[2] != 5.5 {
		t.Errorf("Radiation[2] = %v, want 5.5", p.Radiation[2])
	}
	if _, ok := FieldByName("neighborhood"); ok {
		t.Error("neighborhood is not a numeric field")
	}
}

func TestFloatJSON(t *testing.T) {
	data, err := json.Marshal([]Float{1.5, Float(math.NaN()), Float(math.Inf(1)), 0})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[1.5,null,null,0]" {
		t.Errorf("Marshal = %s, want [1.5,null,null,0]", data)
	}

	var back []Float
	if err := json.Unmarshal([]byte("[2,null]"), &back); err != nil {
		t.Fatal(err)
	}
	if back[0] != 2 || !math.IsNaN(float64(back[1])) {
		t.Errorf("Unmarshal = %v, want [2 NaN]", back)
	}
}

func TestParcelDetail(t *testing.T) {
	a := NewAttributes("3", 1)
	a.Neighborhood = "Centro"
	a.Production[0] = 10
	d := a.Detail()
	if d.ID != "3" || d.Neighborhood != "Centro" {
		t.Errorf("Detail = %+v", d)
	}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal(detail) error = %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["building_area"] != nil {
		t.Errorf("building_area = %v, want null", raw["building_area"])
	}
}

func TestDashboardFilterIsZero(t *testing.T) {
	if !(DashboardFilter{}).IsZero() {
		t.Error("empty filter should be zero")
	}
	v := 1.0
	if (DashboardFilter{Min: &v}).IsZero() {
		t.Error("filter with min should not be zero")
	}
}
