package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/loandesk/internal/extract"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Print the extraction pattern library as YAML",
	Long:  "Dumps every per-field rule (patterns, base weight) for inspection when tuning extraction coverage.",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		if err := enc.Encode(extract.PatternSummaries()); err != nil {
			return eris.Wrap(err, "encode pattern library")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}
