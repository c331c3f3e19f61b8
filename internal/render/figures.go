package render

import (
	"github.com/jengzang/solarmap-backend-go/internal/dataset"
	"github.com/jengzang/solarmap-backend-go/internal/models"
)

// Figure texts
const (
	NoDataTitle         = "No data matches the selected filters"
	NoParcelTitle       = "No data for this parcel"
	ProductionTitle     = "Average energy production (kW)"
	RadiationTitle      = "Average solar radiation (kW/m²)"
	ParcelProduction    = "Energy production - Parcel "
	ParcelRadiation     = "Solar radiation - Parcel "
	OverallAverageName  = "Overall average"
	SelectedMarkerName  = "Selected"
	MonthAxisTitle      = "Month"
	ProductionAxisTitle = "kW"
	RadiationAxisTitle  = "kW/m²"
)

// Map styling
const (
	GeoJSONURL     = "/api/v1/parcels/geojson"
	FeatureIDKey   = "id"
	ColorScale     = "Viridis"
	MapOpacity     = 0.6
	MarkerSize     = 15
	MarkerColor    = "red"
	MapHeight      = 700
	ChartHeight    = 400
	choroplethType = "choroplethmap"
	scatterMapType = "scattermap"
)

// MapFigure draws the choropleth of subset colored by metric. selected is nil
// unless the selected parcel is part of subset; it then recenters the map.
func MapFigure(base *dataset.Base, subset []*models.Parcel, metric models.Metric, selected *models.Parcel) models.Figure {
	fig := models.NewFigure()
	if len(subset) == 0 || !metric.Valid() {
		fig.Layout.Title = &models.Title{Text: NoDataTitle}
		return fig
	}

	locations := make([]string, len(subset))
	z := make([]models.Float, len(subset))
	for i, p := range subset {
		locations[i] = p.ID
		z[i] = models.Float(metric.Value(p))
	}
	fig.Data = append(fig.Data, models.Trace{
		Type:         choroplethType,
		GeoJSON:      GeoJSONURL,
		FeatureIDKey: FeatureIDKey,
		Locations:    locations,
		Z:            z,
		ColorScale:   ColorScale,
		ColorBar:     &models.Title{Text: metric.Label()},
		Marker:       &models.Marker{Opacity: MapOpacity},
	})

	view := &models.MapView{
		Style:  base.MapStyle,
		Center: models.LatLon{Lat: base.Center.Lat(), Lon: base.Center.Lon()},
		Zoom:   base.DefaultZoom,
	}
	if selected != nil {
		view.Center = models.LatLon{Lat: selected.Centroid.Lat(), Lon: selected.Centroid.Lon()}
		view.Zoom = base.SelectedZoom
		fig.Data = append(fig.Data, models.Trace{
			Type:   scatterMapType,
			Mode:   "markers",
			Name:   SelectedMarkerName,
			Lat:    []float64{selected.Centroid.Lat()},
			Lon:    []float64{selected.Centroid.Lon()},
			Marker: &models.Marker{Size: MarkerSize, Color: MarkerColor},
		})
	}
	fig.Layout.Map = view
	fig.Layout.Height = MapHeight
	return fig
}

// chartSpec describes one of the two monthly charts
type chartSpec struct {
	average     *[models.MonthCount]float64
	values      func(p *models.Parcel) [models.MonthCount]float64
	title       string
	parcelTitle string
	unit        string
}

func productionSpec(base *dataset.Base) chartSpec {
	return chartSpec{
		average:     &base.AvgProduction,
		values:      func(p *models.Parcel) [models.MonthCount]float64 { return p.Production },
		title:       ProductionTitle,
		parcelTitle: ParcelProduction,
		unit:        ProductionAxisTitle,
	}
}

func radiationSpec(base *dataset.Base) chartSpec {
	return chartSpec{
		average:     &base.AvgRadiation,
		values:      func(p *models.Parcel) [models.MonthCount]float64 { return p.Radiation },
		title:       RadiationTitle,
		parcelTitle: ParcelRadiation,
		unit:        RadiationAxisTitle,
	}
}

// ProductionChart draws the monthly production bars
func ProductionChart(base *dataset.Base, selectedID string, selected *models.Parcel) models.Figure {
	return monthlyChart(productionSpec(base), selectedID, selected)
}

// RadiationChart draws the monthly radiation bars
func RadiationChart(base *dataset.Base, selectedID string, selected *models.Parcel) models.Figure {
	return monthlyChart(radiationSpec(base), selectedID, selected)
}

// monthlyChart covers three cases: no selection shows the global averages,
// a visible selection shows its values against the average, and a selection
// outside the subset gets a placeholder.
func monthlyChart(spec chartSpec, selectedID string, selected *models.Parcel) models.Figure {
	fig := models.NewFigure()
	if selectedID != "" && selected == nil {
		fig.Layout.Title = &models.Title{Text: NoParcelTitle}
		return fig
	}

	months := models.Months[:]
	fig.Layout.XAxis = &models.Axis{Title: &models.Title{Text: MonthAxisTitle}}
	fig.Layout.YAxis = &models.Axis{Title: &models.Title{Text: spec.unit}}
	fig.Layout.Height = ChartHeight

	if selected == nil {
		fig.Layout.Title = &models.Title{Text: spec.title}
		fig.Data = append(fig.Data, models.Trace{Type: "bar", X: months, Y: models.Floats(spec.average[:])})
		return fig
	}

	values := spec.values(selected)
	fig.Layout.Title = &models.Title{Text: spec.parcelTitle + selected.ID}
	fig.Data = append(fig.Data,
		models.Trace{Type: "bar", X: months, Y: models.Floats(values[:])},
		models.Trace{Type: "scatter", Mode: "lines", Name: OverallAverageName, X: months, Y: models.Floats(spec.average[:])},
	)
	return fig
}
