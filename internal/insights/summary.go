package insights

import (
	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/shopspring/decimal"
)

// Materiality floors for rate rankings
var (
	MaterialityFloor           = decimal.NewFromInt(1_000_000)
	OccupationMaterialityFloor = decimal.NewFromInt(500_000)
)

// Ranking pairs the volume and rate leaders of one dimension
type Ranking struct {
	ByVolume []Group
	ByRate   []Group
}

// Recommendations are the high-risk groups that get an action sentence
type Recommendations struct {
	Sectors    []Group
	Regions    []Group
	Modalities []Group
}

// Executive holds the closing summary figures
type Executive struct {
	Rate                  float64
	LeadingRegion         Group
	LeadingRegionShare    float64
	LeadingSector         Group
	LeadingSectorShare    float64
	RiskiestModality      Group
	MeanProjectedIncrease float64
}

// Summary is every aggregate of the report for one period
type Summary struct {
	Period models.Period
	Total  Totals

	Regions     []Group
	States      Ranking
	Sectors     Ranking
	ClientTypes []Group
	// Sizes and ClientModalities are keyed by client type
	Sizes            map[string][]Group
	ClientModalities map[string]Ranking
	Modalities       Ranking
	Occupations      Ranking
	Projections      []Group
	Restructuring    []Group

	Recommendations Recommendations
	Executive       Executive
}

// Share is the group's part of the total delinquent amount, in percent
func (s *Summary) Share(g Group) float64 {
	return percent(g.Delinquent, s.Total.Delinquent)
}

// Build aggregates records that already passed Filter. It returns nil when
// there is nothing to aggregate.
func Build(filtered []models.Record, period models.Period) *Summary {
	if len(filtered) == 0 {
		return nil
	}

	rows := make([]row, len(filtered))
	for i, r := range filtered {
		rows[i] = row{Record: r, Derived: Derive(r)}
	}

	s := &Summary{
		Period:           period,
		Sizes:            make(map[string][]Group, len(clientTypes)),
		ClientModalities: make(map[string]Ranking, len(clientTypes)),
	}
	for _, r := range rows {
		s.Total.add(r)
	}

	regions := groupBy(rows, func(r row) []string { return []string{r.Region} })
	s.Regions = byVolume(regions)

	states := groupBy(rows, func(r row) []string { return []string{r.State} })
	s.States = Ranking{
		ByVolume: top(byVolume(states), 5),
		ByRate:   top(byMaterialRate(states, MaterialityFloor), 5),
	}

	sectors := groupBy(rows, func(r row) []string { return []string{r.Sector} })
	s.Sectors = Ranking{
		ByVolume: top(byVolume(sectors), 5),
		ByRate:   top(byMaterialRate(sectors, MaterialityFloor), 5),
	}

	s.ClientTypes = groupBy(rows, func(r row) []string { return []string{r.ClientType} })

	sizes := groupBy(rows, func(r row) []string { return []string{r.ClientType, r.Size} })
	clientModalities := groupBy(rows, func(r row) []string { return []string{r.ClientType, r.Modality} })
	for _, ct := range clientTypes {
		ofType := func(g Group) bool { return g.Keys[0] == ct }
		s.Sizes[ct] = byVolume(where(sizes, ofType))
		mods := where(clientModalities, ofType)
		s.ClientModalities[ct] = Ranking{
			ByVolume: top(byVolume(mods), 3),
			ByRate:   top(byMaterialRate(mods, MaterialityFloor), 3),
		}
	}

	modalities := groupBy(rows, func(r row) []string { return []string{r.Modality} })
	s.Modalities = Ranking{
		ByVolume: top(byVolume(modalities), 6),
		ByRate:   top(byMaterialRate(modalities, MaterialityFloor), 5),
	}

	var individuals []row
	for _, r := range rows {
		if r.ClientType == ClientIndividual {
			individuals = append(individuals, r)
		}
	}
	occupations := groupBy(individuals, func(r row) []string { return []string{r.Occupation} })
	s.Occupations = Ranking{
		ByVolume: top(byVolume(occupations), 5),
		ByRate:   top(byMaterialRate(occupations, OccupationMaterialityFloor), 5),
	}

	s.Projections = top(sortedByAmount(sizes, func(g Group) decimal.Decimal { return g.Projected90 }), 8)

	// The top six are taken first; groups without problematic assets are
	// then left out, so fewer than six lines may be reported.
	restructuring := top(sortedByAmount(sizes, func(g Group) decimal.Decimal { return g.Restructuring }), 6)
	s.Restructuring = where(restructuring, func(g Group) bool { return g.Problematic.IsPositive() })

	modalitiesByRate := byRate(modalities)
	s.Recommendations = Recommendations{
		Sectors:    top(byRate(sectors), 3),
		Regions:    top(byRate(regions), 2),
		Modalities: top(modalitiesByRate, 3),
	}

	leadingRegion := s.Regions[0]
	leadingSector := byVolume(sectors)[0]
	s.Executive = Executive{
		Rate:                  s.Total.Rate(),
		LeadingRegion:         leadingRegion,
		LeadingRegionShare:    s.Share(leadingRegion),
		LeadingSector:         leadingSector,
		LeadingSectorShare:    s.Share(leadingSector),
		RiskiestModality:      modalitiesByRate[0],
		MeanProjectedIncrease: meanProjectedIncrease(sizes),
	}

	return s
}

// meanProjectedIncrease is the unweighted mean across groups
func meanProjectedIncrease(groups []Group) float64 {
	if len(groups) == 0 {
		return 0
	}
	var sum float64
	for _, g := range groups {
		sum += g.ProjectedIncrease()
	}
	return sum / float64(len(groups))
}
