package models

import (
	"math"

	"github.com/paulmach/orb"
)

// MonthCount is the number of monthly production/radiation columns per parcel
const MonthCount = 12

// Months labels the monthly columns in calendar order
var Months = [MonthCount]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Parcel represents one building/parcel with its solar attributes and boundary
type Parcel struct {
	ID           string `json:"id"`
	Neighborhood string `json:"neighborhood"`

	// Monthly series
	Production [MonthCount]float64 `json:"production"` // kW
	Radiation  [MonthCount]float64 `json:"radiation"`  // kW/m²

	// Roof and panel estimates
	RoofProduction      float64 `json:"roof_production"`       // kW
	BuildingArea        float64 `json:"building_area"`         // m²
	MaxRadiation        float64 `json:"max_radiation"`         // kW/m²
	ProductionPerArea   float64 `json:"production_per_area"`   // kW per m²
	PanelsDailyOutput   float64 `json:"panels_daily_output"`   // kWh/day
	PanelsMonthlyOutput float64 `json:"panels_monthly_output"` // kWh/month
	PanelCount          float64 `json:"panel_count"`
	DailyPotential      float64 `json:"daily_potential"` // kW·day/m²

	// Income statistics of the census tract
	TotalIncome              float64 `json:"total_income"`
	PerCapitaIncome          float64 `json:"per_capita_income"`
	HouseholdPerCapitaIncome float64 `json:"household_per_capita_income"`

	Geometry orb.Geometry `json:"-"` // Polygon or MultiPolygon, EPSG:4326
	Centroid orb.Point    `json:"-"`
}

// Attributes is a parcel row as read from the tabular source, before the join
type Attributes struct {
	Parcel
	Row int // 1-based source row, for error messages
}

// NewAttributes returns an attribute row with every numeric field unset (NaN)
func NewAttributes(id string, row int) *Attributes {
	a := &Attributes{Row: row}
	a.ID = id
	nan := math.NaN()
	for _, f := range Fields {
		*f.Ref(&a.Parcel) = nan
	}
	return a
}

// Field is one numeric parcel column under its canonical snake_case name
type Field struct {
	Name string
	Ref  func(p *Parcel) *float64
}

var monthKeys = [MonthCount]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// Fields lists every numeric column in storage order
var Fields = buildFields()

func buildFields() []Field {
	fields := make([]Field, 0, 2*MonthCount+11)
	for i := 0; i < MonthCount; i++ {
		i := i
		fields = append(fields, Field{"production_" + monthKeys[i], func(p *Parcel) *float64 { return &p.Production[i] }})
	}
	for i := 0; i < MonthCount; i++ {
		i := i
		fields = append(fields, Field{"radiation_" + monthKeys[i], func(p *Parcel) *float64 { return &p.Radiation[i] }})
	}
	return append(fields,
		Field{"roof_production", func(p *Parcel) *float64 { return &p.RoofProduction }},
		Field{"building_area", func(p *Parcel) *float64 { return &p.BuildingArea }},
		Field{"max_radiation", func(p *Parcel) *float64 { return &p.MaxRadiation }},
		Field{"production_per_area", func(p *Parcel) *float64 { return &p.ProductionPerArea }},
		Field{"panels_daily_output", func(p *Parcel) *float64 { return &p.PanelsDailyOutput }},
		Field{"panels_monthly_output", func(p *Parcel) *float64 { return &p.PanelsMonthlyOutput }},
		Field{"panel_count", func(p *Parcel) *float64 { return &p.PanelCount }},
		Field{"daily_potential", func(p *Parcel) *float64 { return &p.DailyPotential }},
		Field{"total_income", func(p *Parcel) *float64 { return &p.TotalIncome }},
		Field{"per_capita_income", func(p *Parcel) *float64 { return &p.PerCapitaIncome }},
		Field{"household_per_capita_income", func(p *Parcel) *float64 { return &p.HouseholdPerCapitaIncome }},
	)
}

// FieldByName returns the column with the given canonical name
func FieldByName(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ParcelDetail is the JSON view of a parcel; missing values encode as null
type ParcelDetail struct {
	ID                       string            `json:"id"`
	Neighborhood             string            `json:"neighborhood"`
	Production               [MonthCount]Float `json:"production"`
	Radiation                [MonthCount]Float `json:"radiation"`
	RoofProduction           Float             `json:"roof_production"`
	BuildingArea             Float             `json:"building_area"`
	MaxRadiation             Float             `json:"max_radiation"`
	ProductionPerArea        Float             `json:"production_per_area"`
	PanelsDailyOutput        Float             `json:"panels_daily_output"`
	PanelsMonthlyOutput      Float             `json:"panels_monthly_output"`
	PanelCount               Float             `json:"panel_count"`
	DailyPotential           Float             `json:"daily_potential"`
	TotalIncome              Float             `json:"total_income"`
	PerCapitaIncome          Float             `json:"per_capita_income"`
	HouseholdPerCapitaIncome Float             `json:"household_per_capita_income"`
	Centroid                 LatLon            `json:"centroid"`
}

// Detail converts the parcel into its JSON view
func (p *Parcel) Detail() ParcelDetail {
	d := ParcelDetail{
		ID:                       p.ID,
		Neighborhood:             p.Neighborhood,
		RoofProduction:           Float(p.RoofProduction),
		BuildingArea:             Float(p.BuildingArea),
		MaxRadiation:             Float(p.MaxRadiation),
		ProductionPerArea:        Float(p.ProductionPerArea),
		PanelsDailyOutput:        Float(p.PanelsDailyOutput),
		PanelsMonthlyOutput:      Float(p.PanelsMonthlyOutput),
		PanelCount:               Float(p.PanelCount),
		DailyPotential:           Float(p.DailyPotential),
		TotalIncome:              Float(p.TotalIncome),
		PerCapitaIncome:          Float(p.PerCapitaIncome),
		HouseholdPerCapitaIncome: Float(p.HouseholdPerCapitaIncome),
		Centroid:                 LatLon{Lat: p.Centroid.Lat(), Lon: p.Centroid.Lon()},
	}
	for i := 0; i < MonthCount; i++ {
		d.Production[i] = Float(p.Production[i])
		d.Radiation[i] = Float(p.Radiation[i])
	}
	return d
}

// LatLon is a map coordinate in degrees
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
