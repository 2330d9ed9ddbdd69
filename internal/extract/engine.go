package extract

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/loandesk/internal/model"
)

// Engine is the rule-based local extraction strategy. It holds no mutable
// state: the pattern library is immutable and every call works on its own
// input, so a single Engine is safe for concurrent use.
type Engine struct{}

// NewEngine returns the local pattern-matching engine.
func NewEngine() *Engine {
	return &Engine{}
}

const formatNotRecognized = "Document format not recognized. Verify the input is plain loan agreement text."

// Extract runs the full pipeline: preprocess, pattern match, heuristic
// enhancement, business-rule correction, confidence scoring. It never fails:
// missing fields become suggestions, and an unexpected internal panic is
// converted into an empty zero-confidence result at this boundary. The
// context and error return exist only to satisfy the Extractor contract: the
// pipeline is pure computation with nothing to cancel, and the error is
// always nil.
func (e *Engine) Extract(_ context.Context, documentText string) (result *model.ExtractionResult, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("extract: engine panic recovered", zap.Any("panic", r))
			result = &model.ExtractionResult{
				ExtractedFields:  []string{},
				Suggestions:      []string{formatNotRecognized},
				ProcessingTimeMs: time.Since(start).Milliseconds(),
			}
			err = nil
		}
	}()

	text := Preprocess(documentText)
	rec := matchPatterns(text)
	rec = enhance(text, rec)
	rec = correct(rec, text)
	confidence, suggestions := Score(rec, text)

	fields := rec.PresentFields()
	zap.L().Debug("extract: document processed",
		zap.Int("doc_chars", len(text)),
		zap.Strings("fields", fields),
		zap.Float64("confidence", confidence),
	)

	return &model.ExtractionResult{
		Data:             rec,
		Confidence:       confidence,
		ExtractedFields:  fields,
		Suggestions:      suggestions,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}, nil
}
