package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/loandesk/internal/model"
)

// Engine-side bounds. These are the fast local filter applied during pattern
// matching; the authoritative check lives in internal/validate.
const (
	minFacilityAmount = 100_000
	maxFacilityAmount = 100_000_000_000
	minRate           = 0.1
	maxRate           = 20
	minBorrowerLen    = 3
	maxBorrowerLen    = 100
	minESGLen         = 10
	maxESGLen         = 200
)

// candidate is a raw value produced by a pattern processor. String fields use
// text, numeric fields use num.
type candidate struct {
	text string
	num  float64
}

// processorFunc maps (primary capture, full matched text, whole document) to
// a raw candidate value. The full match and document let processors
// cross-reference a shared span, e.g. recovering the authoritative
// parenthesized figure from a clause whose capture was the spelled-out form.
type processorFunc func(capture, matched, doc string) (candidate, bool)

// patternRule is one per-field extraction rule: an ordered list of patterns
// (first-declared wins ties, but every occurrence of every pattern is
// evaluated and the highest-confidence valid hit is kept), a processor, a
// validator, and a base confidence weight.
type patternRule struct {
	field    string
	patterns []*regexp.Regexp
	process  processorFunc
	validate func(candidate) bool
	weight   float64
}

var (
	parenAmountRe = regexp.MustCompile(`\(\s*(?:USD|US)?\s*\$?\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*\)`)
	parenCodeRe   = regexp.MustCompile(`\(\s*([A-Za-z]{3})\s*\)`)
	bpsRe         = regexp.MustCompile(`(?i)\b(?:bps|basis\s+points?)\b`)
	amountSuffixRe = regexp.MustCompile(`(?i)[0-9][0-9,.]*\s*(million|billion|thousand|mm|bn|[mbk])\b`)
)

// currencySymbols maps currency symbols to ISO codes for symbol inference.
var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
}

// patternLibrary is the fixed rule set, one entry per LoanRecord field. Built
// once at package init and never mutated, so it is safe to share across
// concurrent extractions.
var patternLibrary = []patternRule{
	{
		field: model.FieldBorrowerName,
		patterns: []*regexp.Regexp{
			// "between TECHCORP INDUSTRIES INC., a Delaware corporation"
			regexp.MustCompile(`(?i)\bbetween\s+(?:the\s+)?([^,\n]{3,100})\s*,\s*an?\s+[A-Za-z]+\s+(?:corporation|company|partnership|entity|organization|bank|association)`),
			// "ACME HOLDINGS LLC (the "Borrower")"
			regexp.MustCompile(`(?i)([^,;\n(]{3,100}?)\s*\(\s*(?:the\s+)?"?borrower"?\s*\)`),
			// "Borrower: Acme Holdings LLC"
			regexp.MustCompile(`(?i)\bborrower\s*[:\-]\s*([^,;\n]{3,100})`),
		},
		process: func(capture, _, _ string) (candidate, bool) {
			name := cleanBorrowerName(capture)
			if name == "" {
				return candidate{}, false
			}
			return candidate{text: name}, true
		},
		validate: func(c candidate) bool {
			return len(c.text) >= minBorrowerLen && len(c.text) <= maxBorrowerLen
		},
		weight: 0.85,
	},
	{
		field: model.FieldFacilityAmount,
		patterns: []*regexp.Regexp{
			// "aggregate principal amount of FIVE HUNDRED MILLION DOLLARS ($500,000,000)"
			regexp.MustCompile(`(?i)\baggregate\s+principal\s+amount\s+of\s+([A-Za-z][A-Za-z\- ]+?)\s+dollars?\s*\(\s*(?:USD|US)?\s*\$?\s*[0-9][0-9,]*(?:\.[0-9]+)?\s*\)`),
			// "$50,000,000 facility" / "$350 million term loan"
			regexp.MustCompile(`(?i)\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:million|billion|mm|bn|[mb])?\b[^.\n]{0,40}?\b(?:facility|facilities|loan|credit)`),
			// "facility in the amount of $250,000,000"
			regexp.MustCompile(`(?i)\b(?:facility|facilities|loan|credit)\b[^.\n]{0,50}?\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:million|billion|mm|bn|[mb])?\b`),
			// "Facility Amount: 500 million"
			regexp.MustCompile(`(?i)\b(?:facility\s+amount|loan\s+amount|principal\s+amount|total\s+commitments?|commitment)\s*[:=]\s*(?:USD\s*)?\$?\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:million|billion|thousand|mm|bn|[mbk])?\b`),
		},
		process:  processAmount,
		validate: func(c candidate) bool { return c.num >= minFacilityAmount && c.num <= maxFacilityAmount },
		weight:   0.9,
	},
	{
		field: model.FieldCurrency,
		patterns: []*regexp.Regexp{
			// "denominated in United States Dollars (USD)"
			regexp.MustCompile(`(?i)\bdenominated\s+in\s+[A-Za-z ]+?\s*\(\s*([A-Za-z]{3})\s*\)`),
			// "Currency: USD"
			regexp.MustCompile(`(?i)\bcurrency\s*[:=]?\s*\(?([A-Za-z]{3})\)?`),
			// bare code
			regexp.MustCompile(`\b(USD|EUR|GBP|JPY|CHF|CAD|AUD)\b`),
			// symbol inference
			regexp.MustCompile(`([$€£¥])`),
		},
		process:  processCurrency,
		validate: func(c candidate) bool { return model.IsSupportedCurrency(c.text) },
		weight:   0.9,
	},
	{
		field: model.FieldInterestRateMargin,
		patterns: []*regexp.Regexp{
			// "SOFR plus 2.75% per annum" / "LIBOR plus 250 bps"
			regexp.MustCompile(`(?i)\b(?:term\s+)?(?:sofr|libor|euribor|sonia|prime\s+rate|base\s+rate|benchmark\s+rate|reference\s+rate)\s*(?:rate)?\s*plus\s*(?:a\s+margin\s+of\s+)?([0-9]+(?:\.[0-9]+)?)\s*(?:%|bps|basis\s+points?)`),
			// "margin of 2.75%" / "spread: 300 bps"
			regexp.MustCompile(`(?i)\b(?:margin|spread|interest\s+rate|pricing)\s*(?:of|is|[:=])?\s*([0-9]+(?:\.[0-9]+)?)\s*(?:%|bps|basis\s+points?)`),
		},
		process:  processMargin,
		validate: func(c candidate) bool { return c.num >= minRate && c.num <= maxRate },
		weight:   0.85,
	},
	{
		field: model.FieldLeverageCovenant,
		patterns: []*regexp.Regexp{
			// "Total Leverage Ratio not to exceed 4.25:1.00"
			regexp.MustCompile(`(?i)\b(?:total\s+)?(?:net\s+)?leverage\s+ratio\b[^.\n]{0,60}?(?:not\s+to\s+exceed|shall\s+not\s+exceed|no\s+greater\s+than|less\s+than|maximum\s+of)\s*([0-9]+(?:\.[0-9]+)?)`),
			// "leverage: 4.5x" / "debt ratio of 3.0x"
			regexp.MustCompile(`(?i)\b(?:leverage|debt)(?:\s+ratio)?\s*(?:of|[:=])?\s*([0-9]+(?:\.[0-9]+)?)\s*x\b`),
		},
		process: func(capture, _, _ string) (candidate, bool) {
			v, ok := parseNumber(capture)
			if !ok {
				return candidate{}, false
			}
			return candidate{num: v}, true
		},
		validate: func(c candidate) bool { return c.num >= minRate && c.num <= maxRate },
		weight:   0.9,
	},
	{
		field: model.FieldESGTarget,
		patterns: []*regexp.Regexp{
			// "ESG targets: reduce carbon emissions by 30% by 2030"
			regexp.MustCompile(`(?i)\b(?:esg|sustainability|sustainability-linked|environmental|carbon|green)\s+(?:target|commitment|objective|provision|covenant|kpi|performance\s+target)s?\s*[:,]?\s*([^.!?\n]{10,200})`),
			// "reduction of greenhouse gas emissions by 25%"
			regexp.MustCompile(`(?i)\b(reduc[a-z]*\s+(?:of\s+|in\s+)?(?:carbon|co2|greenhouse\s+gas|ghg)\s+emissions?[^.!?\n]{0,160})`),
		},
		process: func(capture, _, _ string) (candidate, bool) {
			text := strings.TrimSpace(capture)
			if len(text) > maxESGLen {
				text = strings.TrimSpace(text[:maxESGLen])
			}
			if text == "" {
				return candidate{}, false
			}
			return candidate{text: text}, true
		},
		validate: func(c candidate) bool {
			return len(c.text) >= minESGLen && len(c.text) <= maxESGLen
		},
		weight: 0.75,
	},
}

// processAmount parses a facility amount. A parenthesized numeric figure in
// the matched clause is authoritative over the spelled-out form; plain
// numeric captures honor million/billion suffixes found in the match.
func processAmount(capture, matched, _ string) (candidate, bool) {
	if m := parenAmountRe.FindStringSubmatch(matched); m != nil {
		if v, ok := parseNumber(m[1]); ok {
			return candidate{num: v}, true
		}
	}
	if v, ok := parseNumber(capture); ok {
		if m := amountSuffixRe.FindStringSubmatch(matched); m != nil {
			v *= suffixMultiplier(m[1])
		}
		return candidate{num: v}, true
	}
	if v, ok := parseNumberWords(capture); ok {
		return candidate{num: v}, true
	}
	return candidate{}, false
}

// processCurrency resolves a currency code, preferring an explicit
// parenthesized 3-letter code in the matched clause over symbol inference.
func processCurrency(capture, matched, _ string) (candidate, bool) {
	if m := parenCodeRe.FindStringSubmatch(matched); m != nil {
		return candidate{text: strings.ToUpper(m[1])}, true
	}
	if code, ok := currencySymbols[capture]; ok {
		return candidate{text: code}, true
	}
	if len(capture) == 3 {
		return candidate{text: strings.ToUpper(capture)}, true
	}
	return candidate{}, false
}

// processMargin parses an interest rate margin. Basis points divide by 100,
// and values above 50 are defensively rescaled: a margin that large is a
// percent value captured as a whole-number-times-100 artifact.
func processMargin(capture, matched, _ string) (candidate, bool) {
	v, ok := parseNumber(capture)
	if !ok {
		return candidate{}, false
	}
	if bpsRe.MatchString(matched) {
		v /= 100
	}
	if v > 50 {
		v /= 100
	}
	return candidate{num: v}, true
}

// cleanBorrowerName strips leading articles and trailing punctuation from a
// captured borrower name. Trailing periods are kept: legal names end in
// suffixes like "INC." whose period is part of the name.
func cleanBorrowerName(name string) string {
	name = strings.TrimSpace(name)
	for _, article := range []string{"the ", "The ", "THE ", "a ", "A "} {
		if strings.HasPrefix(name, article) {
			name = name[len(article):]
			break
		}
	}
	name = strings.TrimRight(name, ` ,;:!?"'`)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))
}

// PatternSummary describes one rule of the pattern library for diagnostics.
type PatternSummary struct {
	Field    string   `yaml:"field" json:"field"`
	Patterns []string `yaml:"patterns" json:"patterns"`
	Weight   float64  `yaml:"weight" json:"weight"`
}

// PatternSummaries returns a summary of every rule in declaration order.
func PatternSummaries() []PatternSummary {
	out := make([]PatternSummary, 0, len(patternLibrary))
	for _, rule := range patternLibrary {
		exprs := make([]string, 0, len(rule.patterns))
		for _, re := range rule.patterns {
			exprs = append(exprs, re.String())
		}
		out = append(out, PatternSummary{Field: rule.field, Patterns: exprs, Weight: rule.weight})
	}
	return out
}
