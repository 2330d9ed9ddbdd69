package extract

import (
	"context"

	"github.com/sells-group/loandesk/internal/model"
)

// Extractor is the contract every extraction strategy implements. The local
// pattern engine and the remote Claude adapter both satisfy it; callers pick
// a strategy, the strategies never pick for them.
type Extractor interface {
	Extract(ctx context.Context, documentText string) (*model.ExtractionResult, error)
}
