package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/loandesk/internal/model"
)

func validRecord() model.LoanRecord {
	return model.LoanRecord{
		BorrowerName:       "TECHCORP INDUSTRIES INC.",
		FacilityAmount:     500_000_000,
		Currency:           "USD",
		InterestRateMargin: 2.75,
		LeverageCovenant:   4.25,
		ESGTarget:          model.ESGSentinel,
	}
}

func TestRecord_ValidRecord(t *testing.T) {
	res := Record(validRecord())
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func TestRecord_RequiredFields(t *testing.T) {
	res := Record(model.LoanRecord{})
	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors, 3)
	assert.Contains(t, res.Errors, "borrowerName is required")
	assert.Contains(t, res.Errors, "facilityAmount is required")
	assert.Contains(t, res.Errors, "currency is required")
}

func TestRecord_MarginAndLeverageOptional(t *testing.T) {
	rec := validRecord()
	rec.InterestRateMargin = 0
	rec.LeverageCovenant = 0
	assert.True(t, Record(rec).IsValid)
}

func TestRecord_SentinelESGIsAcceptable(t *testing.T) {
	rec := validRecord()
	rec.ESGTarget = model.ESGSentinel
	assert.True(t, Record(rec).IsValid)
}

func TestRecord_BadBorrowerCharset(t *testing.T) {
	rec := validRecord()
	rec.BorrowerName = "Acme <script> Corp"
	res := Record(rec)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors[0], "borrowerName")
}

func TestRecord_AmountOutOfBounds(t *testing.T) {
	rec := validRecord()
	rec.FacilityAmount = 50_000
	res := Record(rec)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors[0], "facilityAmount")
}

func TestRecord_MultipleErrorsAccumulate(t *testing.T) {
	rec := validRecord()
	rec.FacilityAmount = 1e12
	rec.InterestRateMargin = 99
	res := Record(rec)
	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors, 2)
}

func TestBorrowerNameValid(t *testing.T) {
	assert.True(t, BorrowerNameValid("TECHCORP INDUSTRIES INC."))
	assert.True(t, BorrowerNameValid("O'Brien & Sons (Holdings) Ltd."))
	assert.False(t, BorrowerNameValid("ab"))
	assert.False(t, BorrowerNameValid(strings.Repeat("A", 101)))
	assert.False(t, BorrowerNameValid("Acme <Corp>"))
	assert.False(t, BorrowerNameValid(""))
}

func TestFacilityAmountValid(t *testing.T) {
	assert.True(t, FacilityAmountValid(100_000))
	assert.True(t, FacilityAmountValid(100_000_000_000))
	assert.False(t, FacilityAmountValid(99_999))
	assert.False(t, FacilityAmountValid(100_000_000_001))
}

func TestCurrencyValid(t *testing.T) {
	assert.True(t, CurrencyValid("USD"))
	assert.True(t, CurrencyValid("CHF"))
	// Real ISO code outside the supported set.
	assert.False(t, CurrencyValid("NOK"))
	assert.False(t, CurrencyValid("US"))
	assert.False(t, CurrencyValid(""))
}

func TestRateValid(t *testing.T) {
	assert.True(t, RateValid(0.1))
	assert.True(t, RateValid(20))
	assert.False(t, RateValid(0.05))
	assert.False(t, RateValid(20.5))
}

func TestESGTargetValid(t *testing.T) {
	assert.True(t, ESGTargetValid("reduce carbon emissions by 30%"))
	assert.False(t, ESGTargetValid("too short"))
	assert.False(t, ESGTargetValid(strings.Repeat("x", 201)))
}
