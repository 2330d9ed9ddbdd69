package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/loandesk/internal/config"
	"github.com/sells-group/loandesk/internal/extract"
	"github.com/sells-group/loandesk/internal/llm"
	"github.com/sells-group/loandesk/pkg/anthropic"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "loandesk",
	Short: "Loan agreement term extraction",
	Long:  "Extracts structured loan terms (borrower, facility amount, currency, margin, covenants, ESG targets) from free-text loan agreements, via a local pattern engine or Claude.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newExtractor builds the requested extraction strategy. An empty name falls
// back to the configured default engine.
func newExtractor(name string) (extract.Extractor, error) {
	if name == "" {
		name = cfg.Extract.Engine
	}
	switch name {
	case "local":
		return extract.NewEngine(), nil
	case "claude":
		if cfg.Anthropic.Key == "" {
			return nil, fmt.Errorf("engine %q requires anthropic.key (LOANDESK_ANTHROPIC_KEY)", name)
		}
		return llm.New(anthropic.NewClient(cfg.Anthropic.Key), llm.Config{
			Model:             cfg.Anthropic.Model,
			MaxTokens:         cfg.Anthropic.MaxTokens,
			RequestsPerSecond: cfg.Anthropic.RequestsPerSecond,
		}), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want local or claude)", name)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
