// Package validate is the authoritative record validation and sanitization
// layer. Every extraction path (local pattern engine, remote Claude adapter,
// manual corrections submitted over HTTP) funnels through the same checks;
// the engine's per-pattern validators are only a fast local filter.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/currency"

	"github.com/sells-group/loandesk/internal/model"
)

// Authoritative per-field bounds.
const (
	MinFacilityAmount = 100_000
	MaxFacilityAmount = 100_000_000_000
	MinRate           = 0.1
	MaxRate           = 20
	MinBorrowerLen    = 3
	MaxBorrowerLen    = 100
	MinESGLen         = 10
	MaxESGLen         = 200
)

// borrowerCharsetRe is the business-name character set.
var borrowerCharsetRe = regexp.MustCompile(`^[A-Za-z0-9&.,'()\- ]+$`)

// Result is the outcome of validating a LoanRecord.
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// requiredFields must be present for a record to validate. Margin, leverage,
// and ESG are legitimately absent from many term sheets and are surfaced as
// suggestions by the extraction layer instead.
var requiredFields = []string{
	model.FieldBorrowerName,
	model.FieldFacilityAmount,
	model.FieldCurrency,
}

// Record checks required presence, per-field bounds, and character-set
// constraints. Errors name the offending field so callers can present them
// for manual correction.
func Record(rec model.LoanRecord) Result {
	var errs []string

	present := make(map[string]bool)
	for _, f := range rec.PresentFields() {
		present[f] = true
	}
	for _, f := range requiredFields {
		if !present[f] {
			errs = append(errs, fmt.Sprintf("%s is required", f))
		}
	}

	if rec.BorrowerName != "" {
		if !BorrowerNameValid(rec.BorrowerName) {
			errs = append(errs, fmt.Sprintf("%s must be %d-%d characters of business-name text", model.FieldBorrowerName, MinBorrowerLen, MaxBorrowerLen))
		}
	}
	if rec.FacilityAmount != 0 && !FacilityAmountValid(rec.FacilityAmount) {
		errs = append(errs, fmt.Sprintf("%s must be between %d and %d", model.FieldFacilityAmount, MinFacilityAmount, MaxFacilityAmount))
	}
	if rec.Currency != "" && !CurrencyValid(rec.Currency) {
		errs = append(errs, fmt.Sprintf("%s must be a supported ISO-4217 code (%s)", model.FieldCurrency, strings.Join(model.SupportedCurrencies, ", ")))
	}
	if rec.InterestRateMargin != 0 && !RateValid(rec.InterestRateMargin) {
		errs = append(errs, fmt.Sprintf("%s must be between %v and %v percent", model.FieldInterestRateMargin, MinRate, MaxRate))
	}
	if rec.LeverageCovenant != 0 && !RateValid(rec.LeverageCovenant) {
		errs = append(errs, fmt.Sprintf("%s must be between %v and %v", model.FieldLeverageCovenant, MinRate, MaxRate))
	}
	if rec.ESGTarget != "" && rec.ESGTarget != model.ESGSentinel && !ESGTargetValid(rec.ESGTarget) {
		errs = append(errs, fmt.Sprintf("%s must be %d-%d characters", model.FieldESGTarget, MinESGLen, MaxESGLen))
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// BorrowerNameValid checks length and the business-name charset.
func BorrowerNameValid(name string) bool {
	return len(name) >= MinBorrowerLen && len(name) <= MaxBorrowerLen && borrowerCharsetRe.MatchString(name)
}

// FacilityAmountValid checks the principal bounds.
func FacilityAmountValid(amount float64) bool {
	return amount >= MinFacilityAmount && amount <= MaxFacilityAmount
}

// CurrencyValid checks that the code parses as ISO-4217 and is in the
// supported set.
func CurrencyValid(code string) bool {
	if _, err := currency.ParseISO(code); err != nil {
		return false
	}
	return model.IsSupportedCurrency(code)
}

// RateValid checks the shared percentage/ratio bounds used by the interest
// margin and the leverage covenant.
func RateValid(v float64) bool {
	return v >= MinRate && v <= MaxRate
}

// ESGTargetValid checks the free-text length bounds.
func ESGTargetValid(target string) bool {
	return len(target) >= MinESGLen && len(target) <= MaxESGLen
}
