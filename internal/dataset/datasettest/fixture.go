// Package datasettest builds small merged datasets for tests.
package datasettest

import (
	"strconv"
	"testing"

	"github.com/paulmach/orb"

	"github.com/jengzang/solarmap-backend-go/internal/dataset"
	"github.com/jengzang/solarmap-backend-go/internal/models"
)

// Grid layout of the fixture parcels, near Natal/RN
const (
	OriginLon = -35.25
	OriginLat = -5.85
	Step      = 0.002 // distance between parcel corners
	Size      = 0.001 // parcel side length
	Columns   = 10
)

// Rows returns n attribute rows with ids "1".."n". Neighborhoods are assigned
// round robin. Row i (0-based) has:
//
//	RoofProduction    = 10*(i+1)
//	ProductionPerArea = (i+1)/10
//	BuildingArea      = 50 + i
//	PanelCount        = i+1
//	Production[m]     = i + m
//	Radiation[m]      = 5 + m
//
// Remaining numerics are 1.
func Rows(n int, neighborhoods ...string) []*models.Attributes {
	if len(neighborhoods) == 0 {
		neighborhoods = []string{"Centro"}
	}
	rows := make([]*models.Attributes, n)
	for i := range rows {
		a := models.NewAttributes(strconv.Itoa(i+1), i+2)
		a.Neighborhood = neighborhoods[i%len(neighborhoods)]
		a.RoofProduction = float64(10 * (i + 1))
		a.ProductionPerArea = float64(i+1) / 10
		a.BuildingArea = float64(50 + i)
		a.PanelCount = float64(i + 1)
		a.MaxRadiation = 1
		a.PanelsDailyOutput = 1
		a.PanelsMonthlyOutput = 1
		a.DailyPotential = 1
		a.TotalIncome = 1
		a.PerCapitaIncome = 1
		a.HouseholdPerCapitaIncome = 1
		for m := 0; m < models.MonthCount; m++ {
			a.Production[m] = float64(i + m)
			a.Radiation[m] = float64(5 + m)
		}
		rows[i] = a
	}
	return rows
}

// Square returns the outline of the i-th grid cell
func Square(i int) orb.Polygon {
	x := OriginLon + float64(i%Columns)*Step
	y := OriginLat + float64(i/Columns)*Step
	return orb.Polygon{orb.Ring{{x, y}, {x + Size, y}, {x + Size, y + Size}, {x, y + Size}, {x, y}}}
}

// Center returns the centroid of the i-th grid cell
func Center(i int) orb.Point {
	x := OriginLon + float64(i%Columns)*Step + Size/2
	y := OriginLat + float64(i/Columns)*Step + Size/2
	return orb.Point{x, y}
}

// Boundaries returns one grid square per row, matched by id
func Boundaries(rows []*models.Attributes) *dataset.Boundaries {
	b := &dataset.Boundaries{}
	for i, r := range rows {
		b.Features = append(b.Features, dataset.Boundary{ID: r.ID, Geometry: Square(i)})
	}
	return b
}

// New merges rows with grid boundaries using the default zooms
func New(tb testing.TB, rows []*models.Attributes) *dataset.Base {
	tb.Helper()
	base, err := dataset.Merge(rows, Boundaries(rows), dataset.MergeOptions{})
	if err != nil {
		tb.Fatalf("dataset.Merge() error = %v", err)
	}
	return base
}
