package shared

import (
	"homura.shop/app/internal/storefront"
)

// FormatMoney renders a MoneyV2 amount with its currency symbol, e.g. "$19.00".
func FormatMoney(m storefront.Money) string {
	amount := m.Amount.StringFixed(2)
	if m.CurrencyCode == "JPY" {
		amount = m.Amount.StringFixed(0)
	}
	switch sym := currencySymbol(m.CurrencyCode); sym {
	case "":
		return amount + " " + m.CurrencyCode
	default:
		return sym + amount
	}
}

func currencySymbol(code string) string {
	switch code {
	case "USD", "CAD", "AUD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "JPY":
		return "¥"
	case "TRY":
		return "₺"
	default:
		return ""
	}
}
