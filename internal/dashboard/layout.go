package dashboard

import (
	"github.com/jengzang/solarmap-backend-go/internal/dataset"
	"github.com/jengzang/solarmap-backend-go/internal/models"
	"github.com/jengzang/solarmap-backend-go/internal/render"
)

// Page texts
const (
	PageTitle       = "⚡ Interactive dashboard for client prospecting - Solar Map ⚡"
	PageDescription = "Explore properties with high potential for solar energy generation. " +
		"Check the estimated photovoltaic production capacity, detailed monthly average solar radiation " +
		"and indicators that help choose the best places to install solar systems. " +
		"Find ideal opportunities for savings and sustainability based on technical and environmental criteria."
)

// Option is a dropdown entry
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Card is a titled value box. An empty card pads a row.
type Card struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label,omitempty"`
	Value string `json:"value,omitempty"`
}

// Controls declares the filter inputs
type Controls struct {
	Neighborhoods           []Option `json:"neighborhoods"`
	NeighborhoodPlaceholder string   `json:"neighborhood_placeholder"`
	Metrics                 []Option `json:"metrics"`
	MetricPlaceholder       string   `json:"metric_placeholder"`
	MinPlaceholder          string   `json:"min_placeholder"`
	MaxPlaceholder          string   `json:"max_placeholder"`
	ResetLabel              string   `json:"reset_label"`
}

// Endpoints tells the page where to send updates
type Endpoints struct {
	Update  string `json:"update"`
	GeoJSON string `json:"geojson"`
	Charts  string `json:"charts"`
}

// Layout is the declarative page description served to the client
type Layout struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Headline    []Card    `json:"headline"`
	Controls    Controls  `json:"controls"`
	CardRows    [][]Card  `json:"card_rows"`
	Endpoints   Endpoints `json:"endpoints"`
	MapStyle    string    `json:"map_style"`
	Initial     Initial   `json:"initial"`
}

// Initial is what the page shows before the first interaction
type Initial struct {
	Phase   Phase          `json:"phase"`
	Outputs models.Outputs `json:"outputs"`
}

// cardsPerRow is the width of a statistic card row
const cardsPerRow = 4

type cardDef struct {
	id    string
	label string
	value func(c models.Cards) string
}

var cardDefs = []cardDef{
	{"building_area", "Building area (m²)", func(c models.Cards) string { return c.BuildingArea }},
	{"max_radiation", "Max solar radiation (kW/m²)", func(c models.Cards) string { return c.MaxRadiation }},
	{"production_per_area", "Capacity per m² (kW)", func(c models.Cards) string { return c.ProductionPerArea }},
	{"roof_production", "Roof production (kW)", func(c models.Cards) string { return c.RoofProduction }},
	{"panels_daily_output", "Panel production (kWh/day)", func(c models.Cards) string { return c.PanelsDailyOutput }},
	{"panels_monthly_output", "Panel production (kWh/month)", func(c models.Cards) string { return c.PanelsMonthlyOutput }},
	{"panel_count", "Panels required", func(c models.Cards) string { return c.PanelCount }},
	{"daily_potential", "Mean daily potential (kW·day/m²)", func(c models.Cards) string { return c.DailyPotential }},
	{"total_income", "Total income (R$)", func(c models.Cards) string { return c.TotalIncome }},
	{"per_capita_income", "Income per capita (R$)", func(c models.Cards) string { return c.PerCapitaIncome }},
	{"household_per_capita_income", "Household income per capita (R$)", func(c models.Cards) string { return c.HouseholdPerCapitaIncome }},
}

// NewLayout declares the page for base, with the initial outputs rendered
// from an idle state.
func NewLayout(base *dataset.Base, updateURL string) Layout {
	st, out := Dispatch(base, State{}, Event{Kind: EventInput})

	summary := render.BaseSummary(base)
	l := Layout{
		Title:       PageTitle,
		Description: PageDescription,
		Headline: []Card{
			{ID: "parcels", Label: "Total parcels", Value: summary.Parcels},
			{ID: "total_production", Label: "Estimated total production (kW)", Value: summary.TotalProduction},
			{ID: "mean_production", Label: "Average production per parcel (kW)", Value: summary.MeanProduction},
		},
		Controls: Controls{
			Neighborhoods:           make([]Option, 0, len(base.Neighborhoods)),
			NeighborhoodPlaceholder: "Select one or more neighborhoods",
			Metrics:                 make([]Option, 0, len(models.Metrics)),
			MetricPlaceholder:       "Select the metric",
			MinPlaceholder:          "Minimum value",
			MaxPlaceholder:          "Maximum value",
			ResetLabel:              "Clear filters",
		},
		CardRows: CardRows(out.Cards),
		Endpoints: Endpoints{
			Update:  updateURL,
			GeoJSON: render.GeoJSONURL,
			Charts:  "/api/v1/charts",
		},
		MapStyle: base.MapStyle,
		Initial:  Initial{Phase: st.Phase, Outputs: out},
	}
	for _, n := range base.Neighborhoods {
		l.Controls.Neighborhoods = append(l.Controls.Neighborhoods, Option{Label: n, Value: n})
	}
	for _, m := range models.Metrics {
		l.Controls.Metrics = append(l.Controls.Metrics, Option{Label: m.Label(), Value: string(m)})
	}
	return l
}

// CardRows lays the statistic cards out in rows of four, padding the last row
// with empty cards.
func CardRows(c models.Cards) [][]Card {
	var rows [][]Card
	for start := 0; start < len(cardDefs); start += cardsPerRow {
		row := make([]Card, 0, cardsPerRow)
		for i := start; i < start+cardsPerRow; i++ {
			if i >= len(cardDefs) {
				row = append(row, Card{})
				continue
			}
			d := cardDefs[i]
			row = append(row, Card{ID: d.id, Label: d.label, Value: d.value(c)})
		}
		rows = append(rows, row)
	}
	return rows
}
