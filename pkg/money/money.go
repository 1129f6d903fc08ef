// Package money centralizes monetary arithmetic so every stored amount
// carries exactly two decimal places, rounded half-up.
package money

import "github.com/shopspring/decimal"

// Round rounds an amount to two decimal places, half-up.
func Round(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return v
}

// Subtotal computes quantity * unitPrice rounded to two decimal places.
func Subtotal(unitPrice float64, quantity int) float64 {
	v, _ := decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		Float64()
	return v
}

// Sum adds amounts and rounds the result to two decimal places.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	v, _ := total.Round(2).Float64()
	return v
}
