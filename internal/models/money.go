package models

import "github.com/shopspring/decimal"

// HST computes the tax on an amount at the given fractional rate, rounded to
// 2 decimal places.
func HST(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(2)
}

// TotalWithHST returns amount + HST(amount, rate).
func TotalWithHST(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Add(HST(amount, rate))
}

// RoundCurrency normalizes a monetary value to 2 decimal places.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ZeroBalance is the balance assigned to a newly added driver.
func ZeroBalance() decimal.Decimal {
	return decimal.Zero.Round(2)
}
