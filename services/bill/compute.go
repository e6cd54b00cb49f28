package bill

import (
	"math"
	"strconv"
	"strings"

	"hospitalpanel/models"
)

// GSTRate is the rate of each of the two tax components (CGST and SGST)
// applied to the subtotal, 18% combined.
const GSTRate = 0.09

// ParseAmount is the single point where a typed quantity or charge becomes a
// number: blank or unparsable input counts as zero here and only here. The
// stored field value is never coerced.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// LineAmount returns quantity × unit charges for one item.
func LineAmount(item models.LineItem) float64 {
	return ParseAmount(item.Quantity) * ParseAmount(item.UnitCharges)
}

// Subtotal sums LineAmount over all items.
func Subtotal(items []models.LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += LineAmount(item)
	}
	return total
}

// Tax returns subtotal × rate.
func Tax(subtotal, rate float64) float64 {
	return subtotal * rate
}

// Total is subtotal plus CGST plus SGST, always recomputed from the current
// line items so edits after an un-confirm are reflected immediately.
func Total(items []models.LineItem) float64 {
	sub := Subtotal(items)
	return sub + Tax(sub, GSTRate) + Tax(sub, GSTRate)
}

// FormatAmount renders a computed amount the way the upload form expects it.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
