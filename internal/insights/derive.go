package insights

import (
	"strings"

	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/shopspring/decimal"
)

// Client types
const (
	ClientIndividual = "PF"
	ClientBusiness   = "PJ"
)

// clientTypes is the fixed order per-type sections are rendered in
var clientTypes = []string{ClientIndividual, ClientBusiness}

var hundred = decimal.NewFromInt(100)

// Derived holds the per-record columns computed before aggregation
type Derived struct {
	Region           string
	ClientType       string
	DelinquencyRate  float64
	ProblematicRatio float64
	Projected90      decimal.Decimal
	Restructuring    decimal.Decimal
}

// Derive computes the derived columns of a single record
func Derive(r models.Record) Derived {
	region, _ := Region(r.State)

	projected := decimal.Zero
	if r.Active.IsPositive() {
		projected = r.DueWithin90.Mul(r.Delinquent).Div(r.Active)
	}

	return Derived{
		Region:           region,
		ClientType:       ClientType(r.Client),
		DelinquencyRate:  percent(r.Delinquent, r.Active),
		ProblematicRatio: percent(r.Problematic, r.Active),
		Projected90:      projected,
		Restructuring:    r.Problematic.Sub(r.Delinquent),
	}
}

// ClientType maps the raw client label to PF (individual) or PJ (business)
func ClientType(label string) string {
	if strings.Contains(label, "Física") {
		return ClientIndividual
	}
	return ClientBusiness
}

// percent returns num/den*100, or 0 when den is zero
func percent(num, den decimal.Decimal) float64 {
	if den.IsZero() {
		return 0
	}
	return num.Div(den).Mul(hundred).InexactFloat64()
}

// quotient returns num/den, or 0 when den is zero
func quotient(num decimal.Decimal, den int64) decimal.Decimal {
	if den == 0 {
		return decimal.Zero
	}
	return num.Div(decimal.NewFromInt(den))
}
