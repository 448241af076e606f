package sheetpulse

import "strings"

// classRule is one step of the asset classification cascade: when any of
// its keywords appears in the scanned text, the rule's class applies.
// Rules are evaluated top to bottom; order is the heuristic.
type classRule struct {
	keywords []string
	class    AssetClass
}

// classRules maps name/type keywords to asset classes. The asset name is a
// stronger signal than a possibly mis-mapped type column, so the same table
// is run over "name type" concatenated.
var classRules = []classRule{
	{[]string{"tfsa", "fhsa", "rrsp", "resp", "lira", "401k", "ira", "pension"}, ClassInvestment},
	{[]string{"crypto", "bitcoin", "ethereum", "stock", "etf", "fund", "brokerage", "invest"}, ClassInvestment},
	{[]string{"chequing", "checking", "savings", "cash", "hisa", "emergency"}, ClassCash},
	{[]string{"house", "home", "condo", "car", "vehicle", "property", "real estate"}, ClassFixed},
}

// ClassifyAsset derives the coarse class of an asset from its name and
// declared type. The declared type only wins when it is specific; a generic
// type ("Other", empty) defers entirely to the name scan.
func ClassifyAsset(name, declaredType string) AssetClass {
	text := strings.ToLower(name + " " + declaredType)
	for _, rule := range classRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.class
			}
		}
	}
	return ClassOther
}

// IsInvestmentAsset reports whether the asset counts toward the investment
// portfolio rather than cash or fixed assets.
func IsInvestmentAsset(a Asset) bool { return a.Class == ClassInvestment }

// IsCashAsset reports whether the asset is liquid cash.
func IsCashAsset(a Asset) bool { return a.Class == ClassCash }

// registeredAccountLabels are the known registered-account names scanned
// for when injecting cash balances into the reconciled portfolio.
var registeredAccountLabels = []string{"TFSA", "FHSA", "RRSP", "RESP", "LIRA"}

// registeredAccountOf returns the registered-account label matched by the
// asset's name or type, or "" when none matches.
func registeredAccountOf(a Asset) string {
	text := strings.ToLower(a.Name + " " + a.Type)
	for _, label := range registeredAccountLabels {
		if strings.Contains(text, strings.ToLower(label)) {
			return label
		}
	}
	return ""
}

// isExplicitCashLine reports whether an asset line explicitly declares
// itself as the cash/uninvested portion of an account.
func isExplicitCashLine(a Asset) bool {
	text := strings.ToLower(a.Name + " " + a.Type)
	return strings.Contains(text, "cash") || strings.Contains(text, "uninvested")
}
