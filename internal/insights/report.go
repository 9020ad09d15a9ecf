package insights

import (
	"fmt"

	"github.com/Dan9191/delinquency-assistant/internal/models"
)

// NoDataMessage is the whole report when no record falls in the period
func NoDataMessage(period models.Period) string {
	return fmt.Sprintf("Nenhum dado disponível para %s.", period.Long())
}

// Generate builds the insight report for the period
func Generate(records []models.Record, period models.Period) (string, error) {
	if period.Month < 1 || period.Month > 12 {
		return "", fmt.Errorf("invalid report period: month %d", period.Month)
	}

	summary := Build(Filter(records, period), period)
	if summary == nil {
		return NoDataMessage(period), nil
	}
	return summary.Render(), nil
}
