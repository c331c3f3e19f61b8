package render

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// cardPrinter groups thousands with "," and uses "." for decimals
var cardPrinter = message.NewPrinter(language.English)

// FormatDecimal renders v with thousands separators and two decimals,
// rounded half to even on the exact binary value. Missing values render as
// zero.
func FormatDecimal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return cardPrinter.Sprintf("%.2f", v)
}

// FormatInteger renders v rounded with thousands separators and no decimals
func FormatInteger(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return cardPrinter.Sprintf("%.0f", v)
}

// FormatCount renders a plain parcel count
func FormatCount(n int) string {
	return strconv.Itoa(n)
}
