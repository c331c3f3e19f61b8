package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownMetric is returned when a metric key does not name a supported column
var ErrUnknownMetric = errors.New("unknown metric")

// Metric identifies a numeric parcel column that can drive map coloring and range filtering
type Metric string

const (
	MetricRoofProduction           Metric = "roof_production"
	MetricProductionPerArea        Metric = "production_per_area"
	MetricBuildingArea             Metric = "building_area"
	MetricMaxRadiation             Metric = "max_radiation"
	MetricPanelsDailyOutput        Metric = "panels_daily_output"
	MetricPanelsMonthlyOutput      Metric = "panels_monthly_output"
	MetricPanelCount               Metric = "panel_count"
	MetricDailyPotential           Metric = "daily_potential"
	MetricTotalIncome              Metric = "total_income"
	MetricPerCapitaIncome          Metric = "per_capita_income"
	MetricHouseholdPerCapitaIncome Metric = "household_per_capita_income"
)

// DefaultMetric is used when no metric is selected
const DefaultMetric = MetricRoofProduction

type metricDef struct {
	label    string
	accessor func(p *Parcel) float64
}

var metricDefs = map[Metric]metricDef{
	MetricRoofProduction:           {"Roof energy production (kW)", func(p *Parcel) float64 { return p.RoofProduction }},
	MetricProductionPerArea:        {"Production capacity per m² (kW)", func(p *Parcel) float64 { return p.ProductionPerArea }},
	MetricBuildingArea:             {"Building area (m²)", func(p *Parcel) float64 { return p.BuildingArea }},
	MetricMaxRadiation:             {"Max solar radiation (kW/m²)", func(p *Parcel) float64 { return p.MaxRadiation }},
	MetricPanelsDailyOutput:        {"Panel output (kWh/day)", func(p *Parcel) float64 { return p.PanelsDailyOutput }},
	MetricPanelsMonthlyOutput:      {"Panel output (kWh/month)", func(p *Parcel) float64 { return p.PanelsMonthlyOutput }},
	MetricPanelCount:               {"Panels required", func(p *Parcel) float64 { return p.PanelCount }},
	MetricDailyPotential:           {"Mean daily PV potential (kW·day/m²)", func(p *Parcel) float64 { return p.DailyPotential }},
	MetricTotalIncome:              {"Total income (R$)", func(p *Parcel) float64 { return p.TotalIncome }},
	MetricPerCapitaIncome:          {"Income per capita (R$)", func(p *Parcel) float64 { return p.PerCapitaIncome }},
	MetricHouseholdPerCapitaIncome: {"Household income per capita (R$)", func(p *Parcel) float64 { return p.HouseholdPerCapitaIncome }},
}

// Metrics lists the supported metrics in dropdown order.
// The first two are the ones the dashboard has always offered.
var Metrics = []Metric{
	MetricProductionPerArea,
	MetricRoofProduction,
	MetricBuildingArea,
	MetricMaxRadiation,
	MetricPanelsDailyOutput,
	MetricPanelsMonthlyOutput,
	MetricPanelCount,
	MetricDailyPotential,
	MetricTotalIncome,
	MetricPerCapitaIncome,
	MetricHouseholdPerCapitaIncome,
}

// ParseMetric resolves a metric key. An empty key selects DefaultMetric.
func ParseMetric(key string) (Metric, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return DefaultMetric, nil
	}
	m := Metric(strings.ToLower(key))
	if _, ok := metricDefs[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, key)
	}
	return m, nil
}

// Valid reports whether m is a supported metric
func (m Metric) Valid() bool {
	_, ok := metricDefs[m]
	return ok
}

// Label returns the human readable column title
func (m Metric) Label() string {
	if def, ok := metricDefs[m]; ok {
		return def.label
	}
	return string(m)
}

// Value reads the metric from a parcel; NaN marks a missing value
func (m Metric) Value(p *Parcel) float64 {
	def, ok := metricDefs[m]
	if !ok {
		return math.NaN()
	}
	return def.accessor(p)
}
