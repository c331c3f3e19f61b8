package stats

import (
	"math"
)

// Missing values are NaN throughout; every aggregate here skips them.

// Count returns the number of non-NaN values
func Count(values []float64) int {
	n := 0
	for _, v := range values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Sum adds the non-NaN values. An all-missing slice sums to 0.
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		if !math.IsNaN(v) {
			sum += v
		}
	}
	return sum
}

// Mean calculates the arithmetic mean of the non-NaN values.
// It returns NaN when nothing is left to average.
func Mean(values []float64) float64 {
	var sum float64
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Min returns the minimum non-NaN value, NaN if there is none
func Min(values []float64) float64 {
	min := math.NaN()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum non-NaN value, NaN if there is none
func Max(values []float64) float64 {
	max := math.NaN()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return max
}

// ColumnMeans averages a row-major table column by column.
// Rows may be ragged; a missing cell counts as NaN.
func ColumnMeans(rows [][]float64, columns int) []float64 {
	sums := make([]float64, columns)
	counts := make([]int, columns)
	for _, row := range rows {
		for j := 0; j < columns && j < len(row); j++ {
			if math.IsNaN(row[j]) {
				continue
			}
			sums[j] += row[j]
			counts[j]++
		}
	}

	means := make([]float64, columns)
	for j := range means {
		if counts[j] == 0 {
			means[j] = math.NaN()
			continue
		}
		means[j] = sums[j] / float64(counts[j])
	}
	return means
}
