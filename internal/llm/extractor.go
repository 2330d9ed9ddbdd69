// Package llm is the remote extraction strategy: Claude reads the document
// and returns a JSON LoanRecord, which is sanitized, validated, and scored
// with the same confidence scorer as the local pattern engine so the two
// strategies emit directly comparable results.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/loandesk/internal/extract"
	"github.com/sells-group/loandesk/internal/model"
	"github.com/sells-group/loandesk/internal/validate"
	"github.com/sells-group/loandesk/pkg/anthropic"
)

// Config holds the remote extractor settings.
type Config struct {
	Model             string
	MaxTokens         int64
	RequestsPerSecond float64
}

// Extractor implements extract.Extractor against the Anthropic API.
type Extractor struct {
	client  anthropic.Client
	cfg     Config
	limiter *rate.Limiter
}

// New creates a remote extractor. A non-positive rate disables throttling.
func New(client anthropic.Client, cfg Config) *Extractor {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}
	return &Extractor{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
	}
}

const unusableResponse = "The model response could not be interpreted as loan terms. Retry or fall back to the local engine."

// Extract sends the document to Claude and converts the response into an
// ExtractionResult. Transport failures are errors; content failures (a
// response that is not a usable JSON record) degrade to a zero-confidence
// result, matching the local engine's never-throw posture.
func (x *Extractor) Extract(ctx context.Context, documentText string) (*model.ExtractionResult, error) {
	start := time.Now()

	if err := x.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "llm: rate limit wait")
	}

	resp, err := x.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     x.cfg.Model,
		MaxTokens: x.cfg.MaxTokens,
		System:    systemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(extractPrompt, documentText)},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "llm: extract document")
	}
	resp.Usage.LogCost(resp.Model, "extract")

	rec, ok := parseRecord(resp.Text())
	if !ok {
		return &model.ExtractionResult{
			ExtractedFields:  []string{},
			Suggestions:      []string{unusableResponse},
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	rec = validate.Sanitize(rec)
	rec = dropInvalidFields(rec)
	if rec.ESGTarget == "" {
		rec.ESGTarget = model.ESGSentinel
	}

	confidence, suggestions := extract.Score(rec, documentText)
	fields := rec.PresentFields()

	zap.L().Info("llm: document extracted",
		zap.String("model", x.cfg.Model),
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
