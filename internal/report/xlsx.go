// Package report writes batch extraction results to an XLSX workbook for
// review by loan operations staff.
package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/loandesk/internal/model"
	"github.com/sells-group/loandesk/internal/validate"
)

// DocumentResult pairs one document with its extraction and validation
// outcome.
type DocumentResult struct {
	Path       string                  `json:"path"`
	Result     *model.ExtractionResult `json:"result"`
	Validation validate.Result         `json:"validation"`
	Err        string                  `json:"error,omitempty"`
}

var resultHeader = []string{
	"Document", "Borrower", "Facility Amount", "Currency",
	"Margin %", "Leverage", "ESG Target", "Confidence",
	"Time (ms)", "Valid", "Errors / Suggestions",
}

// WriteXLSX writes one row per document plus a summary sheet.
func WriteXLSX(path, runID string, results []DocumentResult) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet("Results")
	if err != nil {
		return eris.Wrap(err, "report: add results sheet")
	}

	header := sheet.AddRow()
	for _, h := range resultHeader {
		header.AddCell().Value = h
	}

	fieldHits := make(map[string]int, len(model.FieldNames))
	var confidenceSum float64

	for _, dr := range results {
		row := sheet.AddRow()
		row.AddCell().Value = dr.Path

		if dr.Result == nil {
			for range resultHeader[1 : len(resultHeader)-1] {
				row.AddCell()
			}
			row.AddCell().Value = dr.Err
			continue
		}

		rec := dr.Result.Data
		row.AddCell().Value = rec.BorrowerName
		addNumber(row, rec.FacilityAmount)
		row.AddCell().Value = rec.Currency
		addNumber(row, rec.InterestRateMargin)
		addNumber(row, rec.LeverageCovenant)
		row.AddCell().Value = rec.ESGTarget
		row.AddCell().SetFloat(dr.Result.Confidence)
		row.AddCell().SetInt64(dr.Result.ProcessingTimeMs)
		row.AddCell().SetBool(dr.Validation.IsValid)
		row.AddCell().Value = joinNotes(dr.Validation.Errors, dr.Result.Suggestions)

		for _, field := range dr.Result.ExtractedFields {
			fieldHits[field]++
		}
		confidenceSum += dr.Result.Confidence
	}

	summary, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}
	addPair(summary, "Run ID", runID)
	addPairInt(summary, "Documents", len(results))
	if len(results) > 0 {
		addPairFloat(summary, "Mean confidence", confidenceSum/float64(len(results)))
	}
	for _, field := range model.FieldNames {
		addPairInt(summary, field+" extracted", fieldHits[field])
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}

func addNumber(row *xlsx.Row, v float64) {
	cell := row.AddCell()
	if v != 0 {
		cell.SetFloat(v)
	}
}

func addPair(sheet *xlsx.Sheet, label, value string) {
	row := sheet.AddRow()
	row.AddCell().Value = label
	row.AddCell().Value = value
}

func addPairInt(sheet *xlsx.Sheet, label string, value int) {
	row := sheet.AddRow()
	row.AddCell().Value = label
	row.AddCell().SetInt(value)
}

func addPairFloat(sheet *xlsx.Sheet, label string, value float64) {
	row := sheet.AddRow()
	row.AddCell().Value = label
	row.AddCell().SetFloat(value)
}

func joinNotes(errs, suggestions []string) string {
	notes := make([]string, 0, len(errs)+len(suggestions))
	notes = append(notes, errs...)
	notes = append(notes, suggestions...)
	out := ""
	for i, n := range notes {
		if i > 0 {
			out += " | "
		}
		out += n
	}
	return out
}
