package usecase

import (
	"math"

	"studio-booking/internal/data/entity"
)

// paymentEpsilon is the tolerance for "is fully paid" checks; a 1-cent gap
// still counts as unpaid.
const paymentEpsilon = 0.009

// TotalLine is one checkout line as seen by the totals calculator.
type TotalLine struct {
	Amount float64
	Qty    int
}

// ComputeTotals sums the lines and applies the optional discount. The
// discount is capped at the subtotal and the total never goes below zero.
func ComputeTotals(items []TotalLine, discountType *entity.DiscountType, discountValue float64) (subtotal, total float64) {
	for _, item := range items {
		qty := item.Qty
		if qty <= 0 {
			qty = 1
		}
		subtotal += item.Amount * float64(qty)
	}

	var discount float64
	if discountType != nil {
		switch *discountType {
		case entity.DiscountTypePct:
			discount = subtotal * discountValue / 100
		case entity.DiscountTypeValue:
			discount = discountValue
		}
		if discount < 0 {
			discount = 0
		}
		if discount > subtotal {
			discount = subtotal
		}
	}

	total = subtotal - discount
	if total < 0 {
		total = 0
	}

	return subtotal, total
}

// Round2 rounds half-up at two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func almostGTE(a, b float64) bool {
	return a+paymentEpsilon >= b
}
