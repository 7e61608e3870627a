package sqlite

import (
	"fmt"

	"fjacquet/taxi-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Column converters between the TEXT storage forms and the model types.

func parseAmount(column, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("column %s: invalid amount %q: %w", column, s, err)
	}
	return d, nil
}

func parseDate(column, s string) (models.Date, error) {
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, fmt.Errorf("column %s: %w", column, err)
	}
	return d, nil
}

func parseYesNo(column, s string) (models.YesNo, error) {
	var y models.YesNo
	if err := y.UnmarshalCSV(s); err != nil {
		return false, fmt.Errorf("column %s: %w", column, err)
	}
	return y, nil
}

func yesNoText(y models.YesNo) string {
	s, _ := y.MarshalCSV()
	return s
}
