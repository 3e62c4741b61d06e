// Package search implements the deterministic text-analysis pieces of the
// query pipeline: the keyword intent classifier and the FAQ matcher. Both
// are pure functions over their inputs, dependency-free, and safe for
// concurrent use.
package search

import "strings"

// Intent tags form a fixed closed set; Classify always returns one of them.
const (
	IntentSales      = "sales"
	IntentHR         = "hr"
	IntentFinance    = "finance"
	IntentInventory  = "inventory"
	IntentProduction = "production"
	IntentGeneral    = "general"
)

// intentRule binds an intent tag to its trigger keywords. Order matters:
// overlapping keywords between intents are resolved by position in the
// rules slice, not by any best-match scoring, so the slice order must stay
// stable.
type intentRule struct {
	intent   string
	keywords []string
}

var intentRules = []intentRule{
	{IntentSales, []string{"sales", "revenue", "customer", "order", "deal", "pipeline", "commission"}},
	{IntentHR, []string{"employee", "leave", "salary", "payroll", "vacation", "benefits", "attendance"}},
	{IntentFinance, []string{"invoice", "payment", "expense", "budget", "cost", "financial", "tax"}},
	{IntentInventory, []string{"stock", "inventory", "warehouse", "product", "item", "supply"}},
	{IntentProduction, []string{"manufacture", "production", "assemble", "quality", "defect"}},
}

// Classify maps free text to an intent tag by substring keyword presence,
// in fixed priority order. Inputs with no keyword hit classify as general.
// The function is total and deterministic.
func Classify(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.intent
			}
		}
	}
	return IntentGeneral
}

// Intents returns the closed set of intent tags in priority order, general
// last.
func Intents() []string {
	out := make([]string, 0, len(intentRules)+1)
	for _, r := range intentRules {
		out = append(out, r.intent)
	}
	return append(out, IntentGeneral)
}
