package insights

import (
	"sort"
	"strings"

	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/shopspring/decimal"
)

// row is a filtered record together with its derived columns
type row struct {
	models.Record
	Derived
}

// Totals holds the summed columns of a group
type Totals struct {
	Active        decimal.Decimal
	Delinquent    decimal.Decimal
	Problematic   decimal.Decimal
	DueWithin90   decimal.Decimal
	Projected90   decimal.Decimal
	Restructuring decimal.Decimal
	Operations    int64
}

func (t *Totals) add(r row) {
	t.Active = t.Active.Add(r.Active)
	t.Delinquent = t.Delinquent.Add(r.Delinquent)
	t.Problematic = t.Problematic.Add(r.Problematic)
	t.DueWithin90 = t.DueWithin90.Add(r.DueWithin90)
	t.Projected90 = t.Projected90.Add(r.Projected90)
	t.Restructuring = t.Restructuring.Add(r.Restructuring)
	t.Operations += r.Operations
}

// Rate is the delinquency rate of the summed values
func (t Totals) Rate() float64 {
	return percent(t.Delinquent, t.Active)
}

// ProblematicRatio is problematic assets over active portfolio
func (t Totals) ProblematicRatio() float64 {
	return percent(t.Problematic, t.Active)
}

// AveragePerOperation is the delinquent amount per operation
func (t Totals) AveragePerOperation() decimal.Decimal {
	return quotient(t.Delinquent, t.Operations)
}

// Risk90 is the projected 90-day delinquency over the amount due in 90 days
func (t Totals) Risk90() float64 {
	return percent(t.Projected90, t.DueWithin90)
}

// ProjectedIncrease is the projected 90-day delinquency over current delinquency
func (t Totals) ProjectedIncrease() float64 {
	return percent(t.Projected90, t.Delinquent)
}

// RestructuringShare is the restructuring indicator over problematic assets
func (t Totals) RestructuringShare() float64 {
	return percent(t.Restructuring, t.Problematic)
}

// Group is one bucket of a group-by
type Group struct {
	Keys []string
	Totals
}

// Label joins the group keys for display
func (g Group) Label() string {
	return strings.Join(g.Keys, " - ")
}

// groupBy sums rows per key. Groups come back ordered by key.
func groupBy(rows []row, key func(row) []string) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, r := range rows {
		keys := key(r)
		id := strings.Join(keys, "\x00")
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, Group{Keys: keys})
		}
		groups[i].add(r)
	}
	sort.Slice(groups, func(i, j int) bool {
		return lessKeys(groups[i].Keys, groups[j].Keys)
	})
	return groups
}

func lessKeys(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// sortedBy returns a copy of groups ordered by metric, highest first.
// Ties keep key order.
func sortedBy(groups []Group, metric func(Group) float64) []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		return metric(out[i]) > metric(out[j])
	})
	return out
}

// sortedByAmount orders a copy of groups by a summed amount, highest first
func sortedByAmount(groups []Group, amount func(Group) decimal.Decimal) []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		return amount(out[i]).GreaterThan(amount(out[j]))
	})
	return out
}

func byVolume(groups []Group) []Group {
	return sortedByAmount(groups, func(g Group) decimal.Decimal { return g.Delinquent })
}

func byRate(groups []Group) []Group {
	return sortedBy(groups, func(g Group) float64 { return g.Rate() })
}

// byMaterialRate ranks by rate among groups whose active portfolio exceeds floor
func byMaterialRate(groups []Group, floor decimal.Decimal) []Group {
	return byRate(where(groups, func(g Group) bool { return g.Active.GreaterThan(floor) }))
}

func where(groups []Group, keep func(Group) bool) []Group {
	var out []Group
	for _, g := range groups {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

func top(groups []Group, n int) []Group {
	if len(groups) > n {
		return groups[:n]
	}
	return groups
}
