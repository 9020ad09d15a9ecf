package insights

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// money formats an amount as "1,234,567.89"
func money(d decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", d.InexactFloat64())
}

// count formats an integer with thousands separators
func count(n int64) string {
	return humanize.Comma(n)
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
