// Package country resolves the tax rate charged for a buyer's country.
package country

import "github.com/shopspring/decimal"

// Unknown or missing countries silently fall back to these defaults. That is
// deliberate product behavior, not error suppression: the storefront always
// quotes a price, charging the default rate when the country is unrecognized.
var (
	DefaultName = "Bangladesh"

	DefaultTaxRate = decimal.NewFromInt(5)
)

type Country struct {
	Name    string          `json:"name" db:"name"`
	TaxRate decimal.Decimal `json:"taxRate" db:"tax_rate"`
	Active  bool            `json:"active" db:"active"`
}
