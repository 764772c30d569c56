package trigger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolveRule(t *testing.T) {
	cases := []struct {
		rule       string
		percentage string
		includeTax bool
	}{
		{"10% + ITBI", "0.1", true},
		{"10% + itbi", "0.1", true},
		{"  Gatilho de 10% mais ITBI  ", "0.1", true},
		{"10%", "0.1", false},
		{"5%", "0.05", false},
		{"5% do valor à vista", "0.05", false},
		{"6%", "0.06", false},
		{"7%", "0.07", false},
		{"7,5%", "0.075", false},
		{"7.5 % + ITBI", "0.075", true},
		{"12% + ITBI", "0.12", true},
	}
	for _, tc := range cases {
		pct, tax := ResolveRule(tc.rule)
		if !pct.Equal(dec(tc.percentage)) {
			t.Errorf("ResolveRule(%q) percentage = %s, want %s", tc.rule, pct, tc.percentage)
		}
		if tax != tc.includeTax {
			t.Errorf("ResolveRule(%q) includeTax = %v, want %v", tc.rule, tax, tc.includeTax)
		}
	}
}

// Empty or unparseable rule text silently resolves to the default
// (10% + transfer tax). This masks malformed ERP input on purpose:
// a data-entry mistake must not block the trigger calculation.
func TestResolveRule_SilentDefault(t *testing.T) {
	for _, rule := range []string{"", "   ", "regra especial", "sem percentual", "abc"} {
		pct, tax := ResolveRule(rule)
		if !pct.Equal(dec("0.1")) || !tax {
			t.Errorf("ResolveRule(%q) = (%s, %v), want default (0.1, true)", rule, pct, tax)
		}
	}
}

func TestThreshold(t *testing.T) {
	cases := []struct {
		name      string
		cash, tax string
		rule      string
		want      string
	}{
		{"default rule adds tax", "100000", "5000", "", "15000"},
		{"explicit default", "100000", "5000", "10% + ITBI", "15000"},
		{"ten percent no tax", "100000", "5000", "10%", "10000"},
		{"five percent", "200000", "0", "5%", "10000"},
		{"six percent ignores tax", "100000", "9999", "6%", "6000"},
		{"extracted percent with tax", "100000", "1000", "12% + ITBI", "13000"},
		{"zero inputs", "0", "0", "", "0"},
	}
	for _, tc := range cases {
		got := Threshold(dec(tc.cash), dec(tc.tax), tc.rule)
		if !got.Equal(dec(tc.want)) {
			t.Errorf("%s: Threshold(%s, %s, %q) = %s, want %s", tc.name, tc.cash, tc.tax, tc.rule, got, tc.want)
		}
	}
}

func TestReached(t *testing.T) {
	cases := []struct {
		name            string
		paid, threshold string
		want            bool
	}{
		{"boundary is inclusive", "100", "100", true},
		{"above threshold", "150", "100", true},
		{"below threshold", "99.99", "100", false},
		{"zero threshold never triggers", "0", "0", false},
		{"zero threshold with payments", "100000", "0", false},
		{"negative threshold never triggers", "100", "-1", false},
	}
	for _, tc := range cases {
		if got := Reached(dec(tc.paid), dec(tc.threshold)); got != tc.want {
			t.Errorf("%s: Reached(%s, %s) = %v, want %v", tc.name, tc.paid, tc.threshold, got, tc.want)
		}
	}
}

func TestThreshold_EndToEnd(t *testing.T) {
	// 5% of 200000 = 10000; paying exactly 10000 triggers.
	threshold := Threshold(dec("200000"), dec("0"), "5%")
	if !threshold.Equal(dec("10000")) {
		t.Fatalf("threshold = %s, want 10000", threshold)
	}
	if !Reached(dec("10000"), threshold) {
		t.Fatal("expected trigger reached at exact threshold")
	}

	// Missing rule text: 10% of 100000 + 5000 tax = 15000.
	threshold = Threshold(dec("100000"), dec("5000"), "")
	if !threshold.Equal(dec("15000")) {
		t.Fatalf("default threshold = %s, want 15000", threshold)
	}
}
