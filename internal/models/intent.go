package models

// Intent is the category a user question is classified into
type Intent string

const (
	IntentComparison Intent = "COMPARAÇÃO"
	IntentRanking    Intent = "RANKING"
	IntentSpecific   Intent = "ESPECÍFICO"
	IntentTrend      Intent = "TENDÊNCIA"
	IntentGeneral    Intent = "GERAL"
)

// IntentFromDigit maps the classifier's numeric answer to an Intent.
// Anything unrecognised falls back to IntentGeneral.
func IntentFromDigit(digit string) Intent {
	switch digit {
	case "1":
		return IntentComparison
	case "2":
		return IntentRanking
	case "3":
		return IntentSpecific
	case "4":
		return IntentTrend
	default:
		return IntentGeneral
	}
}
