package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/loandesk/internal/model"
)

// htmlSignificant strips characters that are meaningful to HTML so extracted
// strings can be rendered without escaping surprises.
var htmlSignificant = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "&", "")

var (
	numericJunkRe = regexp.MustCompile(`[$€£¥,%\s]`)
	spaceRunRe    = regexp.MustCompile(`\s{2,}`)
)

// Sanitize returns a copy of the record with HTML-significant characters
// stripped from string fields, internal whitespace collapsed, and the
// currency code uppercased.
func Sanitize(rec model.LoanRecord) model.LoanRecord {
	rec.BorrowerName = sanitizeString(rec.BorrowerName)
	rec.ESGTarget = sanitizeString(rec.ESGTarget)
	rec.Currency = strings.ToUpper(strings.TrimSpace(htmlSignificant.Replace(rec.Currency)))
	return rec
}

func sanitizeString(s string) string {
	s = htmlSignificant.Replace(s)
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Number coerces a numeric-like string to a plain number: currency symbols,
// percent signs, comma grouping, and whitespace are stripped before parsing.
// "$1,250,000" -> 1250000 and "2.75%" -> 2.75.
func Number(s string) (float64, error) {
	cleaned := numericJunkRe.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, eris.Errorf("validate: %q is not numeric", s)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "validate: parse number %q", s)
	}
	return v, nil
}
