package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/loandesk/internal/extract"
	"github.com/sells-group/loandesk/internal/model"
	"github.com/sells-group/loandesk/internal/validate"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the extraction HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		engines := map[string]extract.Extractor{"local": extract.NewEngine()}
		if cfg.Anthropic.Key != "" {
			claude, err := newExtractor("claude")
			if err != nil {
				return err
			}
			engines["claude"] = claude
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(engines, cfg.Server.AllowedOrigins),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownServer(srv)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

const shutdownTimeout = 10 * time.Second

// shutdownServer drains in-flight requests. The signal context is already
// canceled by the time shutdown starts, so the drain window needs its own
// deadline.
func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Warn("server shutdown", zap.Error(err))
	}
}

// newRouter builds the API routes. Extraction strategies are injected so
// tests can run against the local engine only.
func newRouter(engines map[string]extract.Extractor, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/extract", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Text   string `json:"text"`
			Engine string `json:"engine"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Text == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}
		if body.Engine == "" {
			body.Engine = "local"
		}
		extractor, ok := engines[body.Engine]
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("engine %q not available", body.Engine))
			return
		}

		result, err := extractor.Extract(req.Context(), body.Text)
		if err != nil {
			zap.L().Error("extraction failed",
				zap.String("engine", body.Engine),
				zap.Error(err),
			)
			writeError(w, http.StatusBadGateway, "extraction failed")
			return
		}

		validation := validate.Record(result.Data)
		writeJSON(w, http.StatusOK, extractOutput{ExtractionResult: result, Validation: &validation})
	})

	r.Post("/api/records/validate", func(w http.ResponseWriter, req *http.Request) {
		var raw map[string]any
		if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		rec := recordFromRaw(raw)
		rec = validate.Sanitize(rec)
		validation := validate.Record(rec)
		writeJSON(w, http.StatusOK, map[string]any{
			"record":     rec,
			"validation": validation,
		})
	})

	return r
}

// recordFromRaw builds a LoanRecord from a manual-correction payload. Numeric
// fields may arrive as formatted strings ("$1,250,000", "2.75%") and are
// coerced; uncoercible values are left absent for validation to flag.
func recordFromRaw(raw map[string]any) model.LoanRecord {
	str := func(key string) string {
		s, _ := raw[key].(string)
		return s
	}
	num := func(key string) float64 {
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

	return model.LoanRecord{
		BorrowerName:       str(model.FieldBorrowerName),
		FacilityAmount:     num(model.FieldFacilityAmount),
		Currency:           str(model.FieldCurrency),
		InterestRateMargin: num(model.FieldInterestRateMargin),
		LeverageCovenant:   num(model.FieldLeverageCovenant),
		ESGTarget:          str(model.FieldESGTarget),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
