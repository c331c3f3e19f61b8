package models

// Cards holds the formatted values of the parcel statistic cards
type Cards struct {
	BuildingArea             string `json:"building_area"`
	MaxRadiation             string `json:"max_radiation"`
	ProductionPerArea        string `json:"production_per_area"`
	RoofProduction           string `json:"roof_production"`
	PanelsDailyOutput        string `json:"panels_daily_output"`
	PanelsMonthlyOutput      string `json:"panels_monthly_output"`
	PanelCount               string `json:"panel_count"`
	DailyPotential           string `json:"daily_potential"`
	TotalIncome              string `json:"total_income"`
	PerCapitaIncome          string `json:"per_capita_income"`
	HouseholdPerCapitaIncome string `json:"household_per_capita_income"`
}

// Summary holds the formatted headline figures of a set of parcels
type Summary struct {
	Parcels         string `json:"parcels"`
	TotalProduction string `json:"total_production"` // kW, no decimals
	MeanProduction  string `json:"mean_production"`  // kW per parcel
}

// Outputs is everything the dashboard redraws after an interaction
type Outputs struct {
	Map        Figure          `json:"map"`
	Production Figure          `json:"production"`
	Radiation  Figure          `json:"radiation"`
	Controls   DashboardFilter `json:"controls"`
	Cards      Cards           `json:"cards"`
	Summary    Summary         `json:"summary"`
	NoData     bool            `json:"no_data"`
}

// UpdateResponse is the payload of a dashboard update
type UpdateResponse struct {
	Phase      string  `json:"phase"`
	SelectedID string  `json:"selected_id,omitempty"`
	Outputs    Outputs `json:"outputs"`
}
