package country

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

func Fetch(ctx context.Context, db sqlx.ExtContext, name string) (Country, error) {
	const q = `SELECT name, tax_rate, active FROM countries WHERE name = $1`

	var c Country
	if err := sqlx.GetContext(ctx, db, &c, q, name); err != nil {
		return Country{}, fmt.Errorf("fetching country[%s]: %w", name, err)
	}

	return c, nil
}

// Resolve returns the label and tax rate to charge for name, degrading to
// the defaults when the country is unknown, inactive or unspecified.
func Resolve(ctx context.Context, db sqlx.ExtContext, name string) (string, decimal.Decimal, error) {
	if name == "" {
		return DefaultName, DefaultTaxRate, nil
	}

	c, err := Fetch(ctx, db, name)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultName, DefaultTaxRate, nil
	}
	if err != nil {
		return "", decimal.Decimal{}, err
	}

	if !c.Active {
		return DefaultName, DefaultTaxRate, nil
	}

	return c.Name, c.TaxRate, nil
}
