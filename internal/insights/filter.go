// Package insights turns the consolidated delinquency table into the
// markdown-like report used as grounding context for the chat assistant.
package insights

import (
	"strings"
	"time"

	"github.com/Dan9191/delinquency-assistant/internal/models"
)

// referenceDateLayout accepts both zero-padded and bare day/month values
const referenceDateLayout = "2/1/2006"

// ParseReferenceDate parses a DD/MM/YYYY reference date
func ParseReferenceDate(value string) (time.Time, bool) {
	t, err := time.Parse(referenceDateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Filter keeps the records that belong to the period. Rows with an
// unparseable reference date or an unknown state code are dropped silently.
// State codes of the kept rows are normalized so each state forms one group.
func Filter(records []models.Record, period models.Period) []models.Record {
	filtered := make([]models.Record, 0, len(records))
	for _, r := range records {
		t, ok := ParseReferenceDate(r.ReferenceDate)
		if !ok || !period.Contains(t) {
			continue
		}
		if _, known := Region(r.State); !known {
			continue
		}
		r.State = NormalizeState(r.State)
		filtered = append(filtered, r)
	}
	return filtered
}
