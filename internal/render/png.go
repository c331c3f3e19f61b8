package render

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jengzang/solarmap-backend-go/internal/models"
)

// ErrEmptyChart is returned when a figure has no monthly series to draw
var ErrEmptyChart = errors.New("chart has no data")

// Default PNG size
const (
	DefaultChartWidth  = 800
	DefaultChartHeight = 400
)

var monthAbbrev = [models.MonthCount]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// ChartPNG rasterizes one of the monthly chart figures. Bars are drawn as a
// dotted series and the overall average, when present, as a dashed line.
func ChartPNG(fig models.Figure, width, height int) ([]byte, error) {
	if len(fig.Data) == 0 {
		return nil, ErrEmptyChart
	}
	if width <= 0 {
		width = DefaultChartWidth
	}
	if height <= 0 {
		height = DefaultChartHeight
	}

	xs := make([]float64, models.MonthCount)
	ticks := make([]chart.Tick, models.MonthCount)
	for i := range xs {
		xs[i] = float64(i + 1)
		ticks[i] = chart.Tick{Value: xs[i], Label: monthAbbrev[i]}
	}

	series := []chart.Series{}
	maxY := 0.0
	for _, tr := range fig.Data {
		if len(tr.Y) != models.MonthCount {
			continue
		}
		ys := make([]float64, len(tr.Y))
		for i, v := range tr.Y {
			y := float64(v)
			if math.IsNaN(y) || math.IsInf(y, 0) {
				y = 0
			}
			ys[i] = y
			maxY = math.Max(maxY, y)
		}

		style := chart.Style{StrokeWidth: 2, StrokeColor: chart.ColorBlue, DotWidth: 4, DotColor: chart.ColorBlue}
		name := tr.Name
		if tr.Mode == "lines" {
			style = chart.Style{StrokeWidth: 2, StrokeColor: chart.ColorAlternateGray, StrokeDashArray: []float64{5, 5}}
		} else if name == "" {
			name = "Value"
		}
		series = append(series, chart.ContinuousSeries{Name: name, XValues: xs, YValues: ys, Style: style})
	}
	if len(series) == 0 {
		return nil, ErrEmptyChart
	}

	// go-chart rejects a zero height range
	if maxY <= 0 {
		maxY = 1
	}

	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}, FillColor: drawing.ColorWhite},
		XAxis:      chart.XAxis{Name: MonthAxisTitle, Ticks: ticks, Range: &chart.ContinuousRange{Min: 0.5, Max: float64(models.MonthCount) + 0.5}},
		YAxis:      chart.YAxis{Name: axisTitle(fig.Layout.YAxis), Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.1}},
		Series:     series,
	}
	if fig.Layout.Title != nil {
		ch.Title = fig.Layout.Title.Text
	}
	if len(series) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func axisTitle(a *models.Axis) string {
	if a == nil || a.Title == nil {
		return ""
	}
	return a.Title.Text
}
