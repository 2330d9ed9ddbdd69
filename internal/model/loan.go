package model

// JSON field names of LoanRecord, shared by the extraction engine, the
// validation layer, and the HTTP API.
const (
	FieldBorrowerName       = "borrowerName"
	FieldFacilityAmount     = "facilityAmount"
	FieldCurrency           = "currency"
	FieldInterestRateMargin = "interestRateMargin"
	FieldLeverageCovenant   = "leverageCovenant"
	FieldESGTarget          = "esgTarget"
)

// FieldNames lists all LoanRecord fields in canonical order.
var FieldNames = []string{
	FieldBorrowerName,
	FieldFacilityAmount,
	FieldCurrency,
	FieldInterestRateMargin,
	FieldLeverageCovenant,
	FieldESGTarget,
}

// ESGSentinel is the fallback value for ESGTarget when a document contains no
// sustainability language. Many legitimate loan agreements simply lack ESG
// provisions; the sentinel keeps that case distinct from an extraction failure.
const ESGSentinel = "No specific ESG targets identified in this agreement"

// SupportedCurrencies is the fixed set of ISO-4217 codes the engine accepts.
var SupportedCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CHF", "CAD", "AUD"}

var supportedCurrencySet = func() map[string]bool {
	m := make(map[string]bool, len(SupportedCurrencies))
	for _, c := range SupportedCurrencies {
		m[c] = true
	}
	return m
}()

// IsSupportedCurrency reports whether code is in the supported currency set.
func IsSupportedCurrency(code string) bool {
	return supportedCurrencySet[code]
}

// LoanRecord is the structured output of loan-agreement extraction. The zero
// value of a field means the field was not extracted: every valid value is
// nonzero (amounts are at least 100,000, margins at least 0.1, strings
// non-empty), so absence needs no pointer types.
type LoanRecord struct {
	BorrowerName       string  `json:"borrowerName,omitempty"`
	FacilityAmount     float64 `json:"facilityAmount,omitempty"`
	Currency           string  `json:"currency,omitempty"`
	InterestRateMargin float64 `json:"interestRateMargin,omitempty"`
	LeverageCovenant   float64 `json:"leverageCovenant,omitempty"`
	ESGTarget          string  `json:"esgTarget,omitempty"`
}

// PresentFields returns the names of populated fields in canonical order.
// ESGTarget counts as present only when it holds genuinely extracted text,
// not the fallback sentinel.
func (r LoanRecord) PresentFields() []string {
	fields := make([]string, 0, len(FieldNames))
	if r.BorrowerName != "" {
		fields = append(fields, FieldBorrowerName)
	}
	if r.FacilityAmount != 0 {
		fields = append(fields, FieldFacilityAmount)
	}
	if r.Currency != "" {
		fields = append(fields, FieldCurrency)
	}
	if r.InterestRateMargin != 0 {
		fields = append(fields, FieldInterestRateMargin)
	}
	if r.LeverageCovenant != 0 {
		fields = append(fields, FieldLeverageCovenant)
	}
	if r.ESGTarget != "" && r.ESGTarget != ESGSentinel {
		fields = append(fields, FieldESGTarget)
	}
	return fields
}

// ExtractionResult is the envelope returned by every extraction strategy.
type ExtractionResult struct {
	Data             LoanRecord `json:"data"`
	Confidence       float64    `json:"confidence"`
	ExtractedFields  []string   `json:"extractedFields"`
	Suggestions      []string   `json:"suggestions"`
	ProcessingTimeMs int64      `json:"processingTimeMs"`
}
