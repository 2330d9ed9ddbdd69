package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/loandesk/internal/model"
)

var (
	// organizationRe matches capitalized token runs ending in a legal entity
	// suffix ("Techcorp Industries Inc.", "ACME HOLDINGS LLC").
	organizationRe = regexp.MustCompile(`\b[A-Z][\w&.'\-]*(?:\s+(?:of|and|&|[A-Z][\w&.'\-]*)){0,6}\s+(?i:incorporated|corporation|company|limited|inc|llc|corp|ltd|plc|llp|lp|gmbh|ag|co)\.?(?:\s|,|;|$)`)

	// moneyTokenRe matches currency-symbol amounts with optional magnitude
	// suffixes ("$350 million", "€25,000,000").
	moneyTokenRe = regexp.MustCompile(`[$€£¥]\s?([0-9][0-9,]*(?:\.[0-9]+)?)(?:\s?(?i:million|billion|thousand|mm|bn|[mbk])\b)?`)

	// percentTokenRe matches percentage tokens for margin inference.
	percentTokenRe = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*%`)
)

// marginContextWords disambiguate a percentage as an interest margin when any
// of them appear near the token.
var marginContextWords = []string{"interest", "margin", "rate", "spread", "pricing"}

// marginContextWindow is the number of characters inspected on each side of a
// percentage token.
const marginContextWindow = 50

// enhance fills fields the pattern matcher missed using lightweight
// natural-language heuristics. It is strictly additive: a field populated by
// the matcher is never overwritten.
func enhance(text string, rec model.LoanRecord) model.LoanRecord {
	if rec.BorrowerName == "" {
		rec.BorrowerName = findOrganization(text)
	}
	if rec.FacilityAmount == 0 {
		rec.FacilityAmount = findLargestAmount(text)
	}
	if rec.InterestRateMargin == 0 {
		rec.InterestRateMargin = findMarginNearKeyword(text)
	}
	return rec
}

// findOrganization returns the first organization-like name that appears in
// the first half of the document, or "" when none does. Recitals name the
// borrower early; organizations mentioned late are usually agents or lenders.
func findOrganization(text string) string {
	half := len(text) / 2
	for _, loc := range organizationRe.FindAllStringIndex(text, -1) {
		if loc[0] >= half {
			break
		}
		name := cleanBorrowerName(text[loc[0]:loc[1]])
		if len(name) >= minBorrowerLen && len(name) <= maxBorrowerLen {
			return name
		}
	}
	return ""
}

// findLargestAmount returns the largest money token of at least 1,000,000
// anywhere in the document, or 0 when none qualifies.
func findLargestAmount(text string) float64 {
	var largest float64
	for _, m := range moneyTokenRe.FindAllStringSubmatch(text, -1) {
		v, ok := parseNumber(m[1])
		if !ok {
			continue
		}
		if sm := amountSuffixRe.FindStringSubmatch(m[0]); sm != nil {
			v *= suffixMultiplier(sm[1])
		}
		if v >= 1_000_000 && v > largest {
			largest = v
		}
	}
	return largest
}

// findMarginNearKeyword returns the first in-range percentage token whose
// surrounding window mentions an interest-pricing keyword, or 0. Matching
// runs on the lowercased text: case folding can change byte lengths
// (U+212A lowers to a 1-byte "k"), so offsets from the original text must
// never be used to slice the lowered copy.
func findMarginNearKeyword(text string) float64 {
	lower := strings.ToLower(text)
	for _, loc := range percentTokenRe.FindAllStringSubmatchIndex(lower, -1) {
		v, ok := parseNumber(lower[loc[2]:loc[3]])
		if !ok || v < minRate || v > maxRate {
			continue
		}
		start := max(loc[0]-marginContextWindow, 0)
		end := min(loc[1]+marginContextWindow, len(lower))
		window := lower[start:end]
		for _, kw := range marginContextWords {
			if strings.Contains(window, kw) {
				return v
			}
		}
	}
	return 0
}
