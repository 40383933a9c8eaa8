package dialogue

import (
	"regexp"
	"strconv"
)

// minGroceryBudget is the floor below which extracted numbers are treated as
// parsing artifacts (quantities, head counts) rather than a budget.
const minGroceryBudget = 50

// defaultTakeoutBudget applies when a craving carries no amount at all.
const defaultTakeoutBudget = 100

var (
	// Currency-prefixed amount: "R1000", "R 1000", "$75". Highest priority.
	currencyAmountPattern = regexp.MustCompile(`(?i)[R$]\s?(\d+)`)

	// Explicit budget keyword: "budget 600", "budget R600".
	budgetKeywordPattern = regexp.MustCompile(`(?i)budget\s*[R$]?\s?(\d+)`)

	// Any integer, for the max-of-plausible-numbers fallback.
	integerPattern = regexp.MustCompile(`\d+`)

	// Takeout uses a single looser pattern with an optional currency symbol.
	takeoutAmountPattern = regexp.MustCompile(`(?i)[R$]?(\d+)`)
)

// extractGroceryBudget pulls a budget out of free text. Rules run in priority
// order and the first hit wins; a result below minGroceryBudget means the
// caller should ask a clarifying question instead of guessing.
func extractGroceryBudget(input string) (float64, bool) {
	var budget float64

	if m := currencyAmountPattern.FindStringSubmatch(input); m != nil {
		budget = mustParseInt(m[1])
	} else if m := budgetKeywordPattern.FindStringSubmatch(input); m != nil {
		budget = mustParseInt(m[1])
	} else {
		for _, raw := range integerPattern.FindAllString(input, -1) {
			if n := mustParseInt(raw); n >= minGroceryBudget && n > budget {
				budget = n
			}
		}
	}

	if budget < minGroceryBudget {
		return 0, false
	}
	return budget, true
}

// extractTakeoutBudget reads the first amount in the input, defaulting to 100.
func extractTakeoutBudget(input string) float64 {
	if m := takeoutAmountPattern.FindStringSubmatch(input); m != nil {
		return mustParseInt(m[1])
	}
	return defaultTakeoutBudget
}

func mustParseInt(raw string) float64 {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return float64(n)
}
