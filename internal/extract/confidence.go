package extract

import (
	"strings"

	"github.com/sells-group/loandesk/internal/model"
)

// Per-field weights for overall confidence. ESG is a bonus on top of the core
// fields rather than a core weight: its absence is normal, not a miss.
var confidenceWeights = map[string]float64{
	model.FieldBorrowerName:       0.25,
	model.FieldFacilityAmount:     0.30,
	model.FieldCurrency:           0.15,
	model.FieldInterestRateMargin: 0.20,
	model.FieldLeverageCovenant:   0.10,
}

const (
	esgBonusWeight = 0.10
	// fieldReliability discounts each present field: pattern extraction is
	// never fully trusted even when a validator passed.
	fieldReliability = 0.9
)

// domainKeywords are the loan-domain terms used by the document quality
// heuristic.
var domainKeywords = []string{
	"borrower", "lender", "facility", "covenant", "default",
	"security", "guarantee", "interest", "repayment", "maturity",
}

// Fixed per-field hints for missing fields.
var fieldSuggestions = map[string]string{
	model.FieldBorrowerName:       `Borrower name not found. Check for a recital like "between <name>, a <jurisdiction> corporation" or an explicit Borrower label.`,
	model.FieldFacilityAmount:     `Facility amount not found. Look for "aggregate principal amount" or a dollar figure near "facility", "loan", or "credit".`,
	model.FieldCurrency:           `Currency not found. Look for a "denominated in" clause or an explicit ISO currency code.`,
	model.FieldInterestRateMargin: `Interest rate margin not found. Look for a reference rate (e.g. SOFR) plus a percentage or basis-point spread.`,
	model.FieldLeverageCovenant:   `Leverage covenant not found. Look for a "Total Leverage Ratio not to exceed" clause or a debt ratio.`,
}

const esgSuggestion = "No ESG targets found. This is likely a traditional loan without sustainability features."

// Score computes the overall confidence for a corrected record and the
// human-readable suggestions for whatever is still missing. Confidence is the
// reliability-discounted weighted share of populated fields, normalized by
// the weight actually present, scaled by a document quality factor, and
// clamped to [0,1]. Both local and remote extraction paths score through
// here so their results are directly comparable.
func Score(rec model.LoanRecord, text string) (float64, []string) {
	var earned, present float64
	for _, field := range rec.PresentFields() {
		if w, ok := confidenceWeights[field]; ok {
			earned += w * fieldReliability
			present += w
		}
		if field == model.FieldESGTarget {
			earned += esgBonusWeight * fieldReliability
			present += esgBonusWeight
		}
	}

	var confidence float64
	if present > 0 {
		confidence = (earned / present) * documentQuality(text)
	}
	confidence = min(max(confidence, 0), 1)

	suggestions := make([]string, 0, len(model.FieldNames))
	missing := missingFields(rec)
	for _, field := range model.FieldNames[:len(model.FieldNames)-1] {
		if missing[field] {
			suggestions = append(suggestions, fieldSuggestions[field])
		}
	}
	if rec.ESGTarget == "" || rec.ESGTarget == model.ESGSentinel {
		suggestions = append(suggestions, esgSuggestion)
	}

	return confidence, suggestions
}

// documentQuality scores how much the text looks like a real loan agreement:
// 0.5 base, up to +0.2 for length, up to +0.3 for domain keyword coverage.
func documentQuality(text string) float64 {
	quality := 0.5

	if len(text) > 5_000 {
		quality += 0.1
	}
	if len(text) > 10_000 {
		quality += 0.1
	}

	lower := strings.ToLower(text)
	found := 0
	for _, kw := range domainKeywords {
		if strings.Contains(lower, kw) {
			found++
		}
	}
	quality += 0.3 * float64(found) / float64(len(domainKeywords))

	return min(quality, 1.0)
}

func missingFields(rec model.LoanRecord) map[string]bool {
	present := make(map[string]bool, len(model.FieldNames))
	for _, f := range rec.PresentFields() {
		present[f] = true
	}
	missing := make(map[string]bool, len(model.FieldNames))
	for _, f := range model.FieldNames {
		if !present[f] {
			missing[f] = true
		}
	}
	return missing
}
