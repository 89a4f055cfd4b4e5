package models

import "fmt"

// CurrencySymbol prefixes every rendered amount. The backend stores plain
// numbers; the symbol is display-only and can be overridden from config.
var CurrencySymbol = "₹"

// TotalUnavailable is shown in place of a total while the quantity input is
// cleared. An empty quantity has no total, and it is not zero.
const TotalUnavailable = "---"

// FormatMoney renders an amount with the configured currency symbol.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%s%.2f", CurrencySymbol, amount)
}
