package extract

import (
	"strings"

	"github.com/sells-group/loandesk/internal/model"
)

// correct applies business-rule corrections to the merged field set. Pure
// post-processing; the only cross-field rule is the USD default, which fires
// only when an amount was found without any currency signal.
func correct(rec model.LoanRecord, text string) model.LoanRecord {
	if rec.FacilityAmount != 0 {
		// A figure under the minimum was almost certainly expressed in
		// millions without the suffix being captured; one over the maximum
		// is a units mis-scale.
		if rec.FacilityAmount < minFacilityAmount {
			rec.FacilityAmount *= 1e6
		} else if rec.FacilityAmount > maxFacilityAmount {
			rec.FacilityAmount /= 1e3
		}
	}

	if symbolCode := currencyFromSymbols(text); symbolCode != "" && rec.Currency != "" && rec.Currency != symbolCode {
		rec.Currency = symbolCode
	}
	if rec.Currency == "" && rec.FacilityAmount != 0 {
		rec.Currency = "USD"
	}

	if rec.InterestRateMargin > 50 {
		rec.InterestRateMargin /= 100
	}

	if rec.BorrowerName != "" {
		rec.BorrowerName = cleanBorrowerName(rec.BorrowerName)
	}

	if strings.TrimSpace(rec.ESGTarget) == "" {
		rec.ESGTarget = model.ESGSentinel
	}

	return rec
}

// currencyFromSymbols infers a currency from the first currency symbol in the
// document body, or returns "" when no symbol appears.
func currencyFromSymbols(text string) string {
	for _, r := range text {
		if code, ok := currencySymbols[string(r)]; ok {
			return code
		}
	}
	return ""
}
