package llm

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/loandesk/internal/model"
	"github.com/sells-group/loandesk/internal/validate"
)

// cleanJSON strips markdown code fences and any prose around the outermost
// JSON object. Models wrap output in fences often enough that strict
// decoding would fail on otherwise usable responses.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}

// parseRecord decodes a model response into a LoanRecord. Numeric fields
// arriving as strings ("$500,000,000", "2.75%") are coerced; fields that are
// absent, null, or uncoercible are left unset. Returns false when the
// response holds no JSON object at all.
func parseRecord(text string) (model.LoanRecord, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(cleanJSON(text)), &raw); err != nil {
		zap.L().Warn("llm: response is not a JSON object", zap.Error(err))
		return model.LoanRecord{}, false
	}

	var rec model.LoanRecord
	rec.BorrowerName = stringField(raw, model.FieldBorrowerName)
	rec.FacilityAmount = numberField(raw, model.FieldFacilityAmount)
	rec.Currency = stringField(raw, model.FieldCurrency)
	rec.InterestRateMargin = numberField(raw, model.FieldInterestRateMargin)
	rec.LeverageCovenant = numberField(raw, model.FieldLeverageCovenant)
	rec.ESGTarget = stringField(raw, model.FieldESGTarget)
	return rec, true
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return strings.TrimSpace(s)
}

func numberField(raw map[string]any, key string) float64 {
	switch v := raw[key].(type) {
	case float64:
		return v
	case string:
		n, err := validate.Number(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// dropInvalidFields clears any field that fails the authoritative validators
// so a hallucinated value never reaches callers.
func dropInvalidFields(rec model.LoanRecord) model.LoanRecord {
	if rec.BorrowerName != "" && !validate.BorrowerNameValid(rec.BorrowerName) {
		rec.BorrowerName = ""
	}
	if rec.FacilityAmount != 0 && !validate.FacilityAmountValid(rec.FacilityAmount) {
		rec.FacilityAmount = 0
	}
	if rec.Currency != "" && !validate.CurrencyValid(rec.Currency) {
		rec.Currency = ""
	}
	if rec.InterestRateMargin != 0 && !validate.RateValid(rec.InterestRateMargin) {
		rec.InterestRateMargin = 0
	}
	if rec.LeverageCovenant != 0 && !validate.RateValid(rec.LeverageCovenant) {
		rec.LeverageCovenant = 0
	}
	if rec.ESGTarget != "" && !validate.ESGTargetValid(rec.ESGTarget) {
		rec.ESGTarget = ""
	}
	return rec
}
