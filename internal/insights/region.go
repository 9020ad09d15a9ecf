package insights

import "strings"

// Region names
const (
	RegionNorth      = "Norte"
	RegionNortheast  = "Nordeste"
	RegionCenterWest = "Centro-Oeste"
	RegionSoutheast  = "Sudeste"
	RegionSouth      = "Sul"
)

var stateRegions = map[string]string{
	"AC": RegionNorth, "AM": RegionNorth, "AP": RegionNorth, "PA": RegionNorth,
	"RO": RegionNorth, "RR": RegionNorth, "TO": RegionNorth,
	"AL": RegionNortheast, "BA": RegionNortheast, "CE": RegionNortheast,
	"MA": RegionNortheast, "PB": RegionNortheast, "PE": RegionNortheast,
	"PI": RegionNortheast, "RN": RegionNortheast, "SE": RegionNortheast,
	"GO": RegionCenterWest, "MT": RegionCenterWest, "MS": RegionCenterWest, "DF": RegionCenterWest,
	"SP": RegionSoutheast, "RJ": RegionSoutheast, "MG": RegionSoutheast, "ES": RegionSoutheast,
	"PR": RegionSouth, "RS": RegionSouth, "SC": RegionSouth,
}

// NormalizeState returns the canonical form of a state code, e.g. " sp" -> "SP"
func NormalizeState(state string) string {
	return strings.ToUpper(strings.TrimSpace(state))
}

// Region returns the region a state code belongs to
func Region(state string) (string, bool) {
	region, ok := stateRegions[NormalizeState(state)]
	return region, ok
}
