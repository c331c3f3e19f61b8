package render

import (
	"github.com/jengzang/solarmap-backend-go/internal/dataset"
	"github.com/jengzang/solarmap-backend-go/internal/models"
	"github.com/jengzang/solarmap-backend-go/internal/stats"
)

// ParcelCards formats the statistic cards of one parcel
func ParcelCards(p *models.Parcel) models.Cards {
	return models.Cards{
		BuildingArea:             FormatDecimal(p.BuildingArea),
		MaxRadiation:             FormatDecimal(p.MaxRadiation),
		ProductionPerArea:        FormatDecimal(p.ProductionPerArea),
		RoofProduction:           FormatDecimal(p.RoofProduction),
		PanelsDailyOutput:        FormatDecimal(p.PanelsDailyOutput),
		PanelsMonthlyOutput:      FormatDecimal(p.PanelsMonthlyOutput),
		PanelCount:               FormatInteger(p.PanelCount),
		DailyPotential:           FormatDecimal(p.DailyPotential),
		TotalIncome:              FormatDecimal(p.TotalIncome),
		PerCapitaIncome:          FormatDecimal(p.PerCapitaIncome),
		HouseholdPerCapitaIncome: FormatDecimal(p.HouseholdPerCapitaIncome),
	}
}

// ZeroCards are shown when no parcel is selected, or the selected one is
// filtered out.
func ZeroCards() models.Cards {
	return fillCards(FormatDecimal(0), FormatInteger(0))
}

// ResetCards are shown right after the reset button. They use one decimal,
// unlike ZeroCards.
func ResetCards() models.Cards {
	return fillCards("0.0", "0")
}

func fillCards(decimal, integer string) models.Cards {
	return models.Cards{
		BuildingArea:             decimal,
		MaxRadiation:             decimal,
		ProductionPerArea:        decimal,
		RoofProduction:           decimal,
		PanelsDailyOutput:        decimal,
		PanelsMonthlyOutput:      decimal,
		PanelCount:               integer,
		DailyPotential:           decimal,
		TotalIncome:              decimal,
		PerCapitaIncome:          decimal,
		HouseholdPerCapitaIncome: decimal,
	}
}

// Summarize formats the headline figures of a set of parcels
func Summarize(parcels []*models.Parcel) models.Summary {
	roof := make([]float64, len(parcels))
	for i, p := range parcels {
		roof[i] = p.RoofProduction
	}
	return models.Summary{
		Parcels:         FormatCount(len(parcels)),
		TotalProduction: FormatInteger(stats.Sum(roof)),
		MeanProduction:  FormatDecimal(stats.Mean(roof)),
	}
}

// BaseSummary formats the headline figures precomputed for the whole table
func BaseSummary(base *dataset.Base) models.Summary {
	return models.Summary{
		Parcels:         FormatCount(base.Len()),
		TotalProduction: FormatInteger(base.TotalProduction),
		MeanProduction:  FormatDecimal(base.MeanProduction),
	}
}
