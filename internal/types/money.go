// README: Common money value object used across modules.
package types

import (
	"fmt"
	"math"
)

type Money struct {
	Amount   int64
	Currency string
}

// RoundMoney converts a provider-reported float price into an integer Money.
// This is the only place fractional prices are rounded; everything downstream
// treats the amount as verbatim.
func RoundMoney(amount float64, currency string) Money {
	return Money{Amount: int64(math.Round(amount)), Currency: currency}
}

// Symbol returns the display symbol for the currency, falling back to the code.
func (m Money) Symbol() string {
	switch m.Currency {
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "JPY":
		return "¥"
	case "TWD":
		return "NT$"
	case "THB":
		return "฿"
	case "INR":
		return "₹"
	default:
		return m.Currency + " "
	}
}

// Display renders the amount with its currency symbol, e.g. "€512".
func (m Money) Display() string {
	return fmt.Sprintf("%s%d", m.Symbol(), m.Amount)
}
