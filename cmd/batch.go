package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/loandesk/internal/doctext"
	"github.com/sells-group/loandesk/internal/extract"
	"github.com/sells-group/loandesk/internal/report"
	"github.com/sells-group/loandesk/internal/validate"
)

var (
	batchEngine      string
	batchReportPath  string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Extract loan terms from every document in a directory",
	Long:  "Walks a directory for .txt, .md, and .pdf documents, extracts each concurrently, prints JSONL to stdout, and optionally writes an XLSX review report.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("batch"); err != nil {
			return err
		}

		paths, err := collectDocuments(args[0])
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return eris.Errorf("no supported documents under %s", args[0])
		}

		extractor, err := newExtractor(batchEngine)
		if err != nil {
			return err
		}

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.MaxConcurrentDocs
		}

		runID := uuid.NewString()
		zap.L().Info("batch run started",
			zap.String("run_id", runID),
			zap.Int("documents", len(paths)),
			zap.Int("concurrency", concurrency),
		)

		results := runBatch(ctx, extractor, paths, concurrency)

		enc := json.NewEncoder(os.Stdout)
		for _, dr := range results {
			if err := enc.Encode(dr); err != nil {
				return eris.Wrap(err, "encode result")
			}
		}

		if batchReportPath != "" {
			if err := report.WriteXLSX(batchReportPath, runID, results); err != nil {
				return err
			}
			zap.L().Info("batch report written", zap.String("path", batchReportPath))
		}

		return nil
	},
}

// collectDocuments walks root and returns supported document paths in a
// stable order.
func collectDocuments(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && doctext.Supported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "walk %s", root)
	}
	sort.Strings(paths)
	return paths, nil
}

// runBatch extracts every document with bounded concurrency. Per-document
// failures are recorded, not fatal: one unreadable PDF should not sink a run.
func runBatch(ctx context.Context, extractor extract.Extractor, paths []string, concurrency int) []report.DocumentResult {
	reader := doctext.NewReader(cfg.Extract.PdfToTextPath)

	results := make([]report.DocumentResult, len(paths))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			dr := report.DocumentResult{Path: path}

			text, err := reader.Read(ctx, path)
			if err == nil {
				res, exErr := extractor.Extract(ctx, text)
				if exErr != nil {
					err = exErr
				} else {
					dr.Result = res
					dr.Validation = validate.Record(res.Data)
				}
			}
			if err != nil {
				dr.Err = err.Error()
				zap.L().Warn("document failed",
					zap.String("path", path),
					zap.Error(err),
				)
			}

			mu.Lock()
			results[i] = dr
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func init() {
	batchCmd.Flags().StringVar(&batchEngine, "engine", "", "extraction engine: local or claude (default from config)")
	batchCmd.Flags().StringVar(&batchReportPath, "report", "", "write an XLSX review report to this path")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max concurrent documents (default from config)")
	rootCmd.AddCommand(batchCmd)
}
