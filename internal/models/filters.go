package models

// Update triggers sent by the dashboard page
const (
	TriggerNeighborhoods = "neighborhoods"
	TriggerMetric        = "metric"
	TriggerMin           = "min"
	TriggerMax           = "max"
	TriggerClick         = "click"
	TriggerReset         = "reset"
)

// DashboardFilter represents the filter controls of the dashboard
type DashboardFilter struct {
	Neighborhoods []string `json:"neighborhoods" binding:"omitempty,dive,max=256"`
	Metric        string   `json:"metric" binding:"omitempty,max=64"`
	Min           *float64 `json:"min"` // nil when the input is empty
	Max           *float64 `json:"max"` // nil when the input is empty
}

// IsZero reports whether no control is set
func (f DashboardFilter) IsZero() bool {
	return len(f.Neighborhoods) == 0 && f.Metric == "" && f.Min == nil && f.Max == nil
}

// ClickPoint identifies a map click, by feature id or by coordinates
type ClickPoint struct {
	ID  string   `json:"id" binding:"omitempty,max=128"`
	Lat *float64 `json:"lat" binding:"omitempty,latitude"`
	Lon *float64 `json:"lon" binding:"omitempty,longitude"`
}

// UpdateRequest represents the body of POST /api/v1/dashboard/update
type UpdateRequest struct {
	Trigger string `json:"trigger" binding:"omitempty,oneof=neighborhoods metric min max click reset"`
	DashboardFilter
	SelectedID string      `json:"selected_id" binding:"omitempty,max=128"`
	Click      *ClickPoint `json:"click"`
}

// ChartQuery represents query parameters for chart image export
type ChartQuery struct {
	SelectedID    string   `form:"selected_id" binding:"omitempty,max=128"`
	Neighborhoods []string `form:"neighborhood"`
	Metric        string   `form:"metric"`
	Min           *float64 `form:"min"`
	Max           *float64 `form:"max"`
	Width         int      `form:"width" binding:"omitempty,min=200,max=2000"`
	Height        int      `form:"height" binding:"omitempty,min=150,max=1500"`
}
