// Package render turns a filtered parcel subset into the figures and card
// strings the dashboard shows.
package render

import (
	"github.com/jengzang/solarmap-backend-go/internal/dataset"
	"github.com/jengzang/solarmap-backend-go/internal/models"
)

// Render builds every output for subset. selectedID is the parcel clicked on
// the map, empty when none; it only affects the view when the parcel is in
// subset. An invalid metric renders the no-data map.
func Render(base *dataset.Base, subset []*models.Parcel, metric models.Metric, selectedID string) models.Outputs {
	selectedID = dataset.CanonicalID(selectedID)
	selected := find(subset, selectedID)

	out := models.Outputs{
		Map:        MapFigure(base, subset, metric, selected),
		Production: ProductionChart(base, selectedID, selected),
		Radiation:  RadiationChart(base, selectedID, selected),
		Cards:      ZeroCards(),
		Summary:    Summarize(subset),
		NoData:     len(subset) == 0 || !metric.Valid(),
	}
	if selected != nil {
		out.Cards = ParcelCards(selected)
	}
	return out
}

// Reset is the output right after the filters are cleared: blank figures,
// reset cards and the whole-table headline.
func Reset(base *dataset.Base) models.Outputs {
	return models.Outputs{
		Map:        models.NewFigure(),
		Production: models.NewFigure(),
		Radiation:  models.NewFigure(),
		Cards:      ResetCards(),
		Summary:    BaseSummary(base),
	}
}

func find(parcels []*models.Parcel, id string) *models.Parcel {
	if id == "" {
		return nil
	}
	for _, p := range parcels {
		if p.ID == id {
			return p
		}
	}
	return nil
}
