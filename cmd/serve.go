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

	"github.com/ledgerline/proforma-cli/internal/config"
	"github.com/ledgerline/proforma-cli/internal/model"
	"github.com/ledgerline/proforma-cli/internal/proforma"
	"github.com/ledgerline/proforma-cli/internal/sensitivity"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(proforma.NewEngine(cfg.Solver), cfg.Sensitivity),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// sensitivityRequest is the POST /v1/sensitivity body: base assumptions plus
// the override grid.
type sensitivityRequest struct {
	Assumptions json.RawMessage      `json:"assumptions"`
	Overrides   map[string][]float64 `json:"overrides"`
}

// newRouter builds the HTTP surface. It is a thin marshaling layer over the
// engine; no pipeline logic lives here.
func newRouter(engine *proforma.Engine, sensCfg config.SensitivityConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/proforma", func(w http.ResponseWriter, req *http.Request) {
		a, ok := decodeAssumptionsRequest(w, req)
		if !ok {
			return
		}

		out, verrs := engine.Run(a)
		if len(verrs) > 0 {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": verrs})
			return
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Post("/v1/sensitivity", func(w http.ResponseWriter, req *http.Request) {
		var body sensitivityRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if len(body.Overrides) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "overrides are required"})
			return
		}

		a, verrs := model.DecodeAssumptions(body.Assumptions)
		if len(verrs) > 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verrs})
			return
		}

		timeout := time.Duration(sensCfg.TimeoutSecs) * time.Second
		if timeout <= 0 {
			timeout = 5 * time.Minute
		}
		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		runner := sensitivity.NewRunner(engine, sensCfg.Concurrency)
		result := runner.RunGrid(ctx, a, sensitivity.Grid(body.Overrides))
		writeJSON(w, http.StatusOK, result)
	})

	return r
}

// decodeAssumptionsRequest parses the request body into assumptions,
// writing a 400 with the field-level errors when decoding fails.
func decodeAssumptionsRequest(w http.ResponseWriter, req *http.Request) (model.Assumptions, bool) {
	var raw json.RawMessage
	if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return model.Assumptions{}, false
	}

	a, verrs := model.DecodeAssumptions(raw)
	if len(verrs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verrs})
		return model.Assumptions{}, false
	}
	return a, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("serve: encode response", zap.Error(err))
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
