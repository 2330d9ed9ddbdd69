package extract

import "github.com/sells-group/loandesk/internal/model"

// earlyDocFraction is the leading portion of a document in which a match
// earns a prominence bonus: loan agreements front-load borrower, amount, and
// currency terms in the recitals.
const earlyDocFraction = 0.3

// matchPatterns applies the pattern library to preprocessed text. Every
// occurrence of every pattern is run through its rule's processor and
// validator; the highest-confidence valid candidate per field wins, with ties
// resolved in favor of the first-declared pattern's first occurrence. Fields
// with no valid candidate are simply left absent.
func matchPatterns(text string) model.LoanRecord {
	var rec model.LoanRecord
	for _, rule := range patternLibrary {
		cand, ok := bestCandidate(rule, text)
		if !ok {
			continue
		}
		assignField(&rec, rule.field, cand)
	}
	return rec
}

func bestCandidate(rule patternRule, text string) (candidate, bool) {
	var best candidate
	bestConf := -1.0

	for _, re := range rule.patterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			matched := text[loc[0]:loc[1]]
			capture := matched
			if len(loc) >= 4 && loc[2] >= 0 {
				capture = text[loc[2]:loc[3]]
			}
			cand, ok := rule.process(capture, matched, text)
			if !ok || !rule.validate(cand) {
				continue
			}
			// Strict inequality keeps the earlier pattern/occurrence on ties.
			if conf := matchConfidence(rule.weight, loc[0], loc[1]-loc[0], len(text)); conf > bestConf {
				bestConf = conf
				best = cand
			}
		}
	}

	return best, bestConf >= 0
}

// matchConfidence scores one occurrence: the rule's base weight, +0.1 when
// the match starts within the first 30% of the document, +0.05 when the
// matched span exceeds 20 characters, capped at 1.0.
func matchConfidence(weight float64, start, span, docLen int) float64 {
	conf := weight
	if docLen > 0 && float64(start) < earlyDocFraction*float64(docLen) {
		conf += 0.1
	}
	if span > 20 {
		conf += 0.05
	}
	if conf > 1 {
		conf = 1
	}
	return conf
}

func assignField(rec *model.LoanRecord, field string, cand candidate) {
	switch field {
	case model.FieldBorrowerName:
		rec.BorrowerName = cand.text
	case model.FieldFacilityAmount:
		rec.FacilityAmount = cand.num
	case model.FieldCurrency:
		rec.Currency = cand.text
	case model.FieldInterestRateMargin:
		rec.InterestRateMargin = cand.num
	case model.FieldLeverageCovenant:
		rec.LeverageCovenant = cand.num
	case model.FieldESGTarget:
		rec.ESGTarget = cand.text
	}
}
