package shared

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"homura.shop/app/internal/storefront"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		amount, code, want string
	}{
		{"19.0", "USD", "$19.00"},
		{"7.5", "EUR", "€7.50"},
		{"1200", "JPY", "¥1200"},
		{"3.333", "CHF", "3.33 CHF"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			m := storefront.Money{Amount: decimal.RequireFromString(tc.amount), CurrencyCode: tc.code}
			assert.Equal(t, tc.want, FormatMoney(m))
		})
	}
}
