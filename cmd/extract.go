package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/loandesk/internal/doctext"
	"github.com/sells-group/loandesk/internal/model"
	"github.com/sells-group/loandesk/internal/validate"
)

var (
	extractEngine   string
	extractValidate bool
)

// extractOutput is the JSON envelope printed by the extract command.
type extractOutput struct {
	*model.ExtractionResult
	Validation *validate.Result `json:"validation,omitempty"`
}

var extractCmd = &cobra.Command{
	Use:   "extract <document|->",
	Short: "Extract loan terms from a single document",
	Long:  "Reads a loan agreement (.txt, .md, or .pdf; \"-\" for stdin) and prints the extracted terms as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("extract"); err != nil {
			return err
		}

		var text string
		if args[0] == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return eris.Wrap(err, "read stdin")
			}
			text = string(data)
		} else {
			reader := doctext.NewReader(cfg.Extract.PdfToTextPath)
			var err error
			text, err = reader.Read(ctx, args[0])
			if err != nil {
				return err
			}
		}

		extractor, err := newExtractor(extractEngine)
		if err != nil {
			return err
		}

		result, err := extractor.Extract(ctx, text)
		if err != nil {
			return err
		}

		zap.L().Info("extraction complete",
			zap.String("document", args[0]),
			zap.Strings("fields", result.ExtractedFields),
			zap.Float64("confidence", result.Confidence),
		)

		out := extractOutput{ExtractionResult: result}
		if extractValidate {
			v := validate.Record(result.Data)
			out.Validation = &v
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractEngine, "engine", "", "extraction engine: local or claude (default from config)")
	extractCmd.Flags().BoolVar(&extractValidate, "validate", false, "include downstream validation result")
	rootCmd.AddCommand(extractCmd)
}
