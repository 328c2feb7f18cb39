package price

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		unit   string
		rate   string
		taxFee string
		total  string
	}{
		{"100.00", "10", "10", "110"},
		{"100.00", "5", "5", "105"},
		{"0", "20", "0", "0"},
		{"19.99", "5", "0.9995", "20.9895"},
		{"49.50", "18", "8.91", "58.41"},
	}

	for _, tt := range tests {
		unit := decimal.RequireFromString(tt.unit)
		rate := decimal.RequireFromString(tt.rate)

		taxFee, total := Quote(unit, rate)

		if !taxFee.Equal(decimal.RequireFromString(tt.taxFee)) {
			t.Errorf("Quote(%s, %s): tax fee %s, expected %s", tt.unit, tt.rate, taxFee, tt.taxFee)
		}
		if !total.Equal(decimal.RequireFromString(tt.total)) {
			t.Errorf("Quote(%s, %s): total %s, expected %s", tt.unit, tt.rate, total, tt.total)
		}

		// The identity the cart arithmetic relies on.
		if !unit.Add(taxFee).Equal(total) {
			t.Errorf("Quote(%s, %s): unit + taxFee != total", tt.unit, tt.rate)
		}
	}
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"110.00", 11000},
		{"88.00", 8800},
		{"20.9895", 2099},
		{"0", 0},
	}

	for _, tt := range tests {
		if got := MinorUnits(decimal.RequireFromString(tt.amount)); got != tt.want {
			t.Errorf("MinorUnits(%s) = %d, expected %d", tt.amount, got, tt.want)
		}
	}
}
