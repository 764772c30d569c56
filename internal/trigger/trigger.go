// Package trigger computes the payable threshold a contract must reach
// before its commission is released. The rule arrives as free text from
// the ERP ("10% + ITBI", "5%", ...); resolution is substring matching
// with a regex fallback, and unparseable rules silently resolve to the
// default. No I/O happens here.
package trigger

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultRule is applied when the rule text is empty or unparseable:
// 10% of the cash value plus the fixed ITBI transfer tax.
const DefaultRule = "10% + ITBI"

var (
	defaultPercentage = decimal.NewFromFloat(0.10)
	fivePercent       = decimal.NewFromFloat(0.05)
	sixPercent        = decimal.NewFromFloat(0.06)
	hundred           = decimal.NewFromInt(100)

	// Accepts both "." and "," as decimal separator, e.g. "7,5 %".
	percentPattern = regexp.MustCompile(`(\d+[,.]?\d*)\s*%`)
)

// ResolveRule interprets a free-text commission rule into a percentage
// and whether the fixed transfer tax is added on top. Matching is
// case-insensitive, in priority order: "10%"+tax marker, "10%", "5%",
// "6%", then a generic percentage extraction. Text with no recognizable
// percentage falls back to the default rule — a silent default, not an
// error, so malformed ERP input never blocks the calculation.
func ResolveRule(ruleText string) (decimal.Decimal, bool) {
	if strings.TrimSpace(ruleText) == "" {
		ruleText = DefaultRule
	}

	rule := strings.ToLower(strings.TrimSpace(ruleText))
	hasTax := strings.Contains(rule, "itbi")

	switch {
	case strings.Contains(rule, "10%") && hasTax:
		return defaultPercentage, true
	case strings.Contains(rule, "10%"):
		return defaultPercentage, false
	case strings.Contains(rule, "5%"):
		return fivePercent, false
	case strings.Contains(rule, "6%"):
		return sixPercent, false
	}

	if m := percentPattern.FindStringSubmatch(rule); m != nil {
		raw := strings.ReplaceAll(m[1], ",", ".")
		if pct, err := decimal.NewFromString(raw); err == nil {
			return pct.Div(hundred), hasTax
		}
	}

	return defaultPercentage, true
}

// Threshold computes the trigger value for a contract:
// cashValue * percentage, plus the transfer tax when the rule includes
// it. Callers coerce missing financials to zero before calling.
func Threshold(cashValue, taxValue decimal.Decimal, ruleText string) decimal.Decimal {
	pct, includeTax := ResolveRule(ruleText)
	threshold := cashValue.Mul(pct)
	if includeTax {
		threshold = threshold.Add(taxValue)
	}
	return threshold
}

// Reached reports whether the amount paid meets the threshold. The
// boundary is inclusive, but a zero or negative threshold never counts
// as reached: missing contract data must not mark untouched contracts
// as triggered.
func Reached(amountPaid, threshold decimal.Decimal) bool {
	if threshold.LessThanOrEqual(decimal.Zero) {
		return false
	}
	return amountPaid.GreaterThanOrEqual(threshold)
}
