package pgconv

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var ErrInvalidDecimalValue = errors.New("invalid decimal value")

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// DecimalFromText parses a numeric column selected as text. Monetary columns
// are always read through this helper so float rounding never touches prices.
func DecimalFromText(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidDecimalValue
	}
	return d, nil
}

// DecimalToText renders a price for a numeric bind parameter.
func DecimalToText(d decimal.Decimal) string {
	return d.StringFixed(2)
}
