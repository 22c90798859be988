package cmd

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rulekit"
	"github.com/dmitrymomot/rulekit/pkg/config"
	"github.com/dmitrymomot/rulekit/pkg/httpserver"
	"github.com/dmitrymomot/rulekit/pkg/httpvalidate"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/schemastore"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schema directory over HTTP",
		Long: `Starts an HTTP service validating request bodies against the schemas of
RULEKIT_SCHEMA_DIR:

  POST /validate/{schema}   validate a JSON, form or multipart body
  GET  /schemas             list schema names
  GET  /rules               list registered rules
  GET  /healthz             readiness of the lookup backend`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd.Context(), g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			var httpCfg httpserver.Config
			if err := config.Load(&httpCfg); err != nil {
				return err
			}
			if addr != "" {
				httpCfg.Addr = addr
			}

			store := schemastore.New(a.cfg.SchemaDir, a.validator,
				schemastore.WithCacheSize(a.cfg.SchemaCacheSize),
				schemastore.WithLogger(a.log),
			)
			router := NewRouter(a.validator, store, a.log, a.checks)

			return httpserver.New(httpCfg, httpserver.WithLogger(a.log)).Run(cmd.Context(), router)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR")
	return cmd
}

// NewRouter exposes store over HTTP.
func NewRouter(v *rulekit.Validator, store *schemastore.Store, log *slog.Logger, checks map[string]httpserver.Check) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/healthz", httpserver.Health(log, checks))

	r.Get("/rules", func(w http.ResponseWriter, _ *http.Request) {
		_ = httpvalidate.WriteJSON(w, http.StatusOK, describe(v.Registry().Entries(), ""))
	})

	r.Get("/schemas", func(w http.ResponseWriter, _ *http.Request) {
		names, err := store.Names()
		if err != nil {
			_ = httpvalidate.WriteError(w, err)
			return
		}
		_ = httpvalidate.WriteJSON(w, http.StatusOK, map[string]any{"schemas": names})
	})

	r.Post("/validate/{schema}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "schema")
		s, err := store.Get(name)
		if err != nil {
			if errors.Is(err, schemastore.ErrSchemaNotFound) || errors.Is(err, schemastore.ErrInvalidName) {
				err = &httpvalidate.HTTPError{Code: http.StatusNotFound, Message: "schema not found", Err: err}
			} else {
				log.ErrorContext(req.Context(), "schema unavailable", logger.Schema(name), logger.Error(err))
			}
			_ = httpvalidate.WriteError(w, err)
			return
		}

		values, results, err := httpvalidate.Validate(req, v, s, httpvalidate.DefaultMaxMemory)
		if err != nil {
			log.ErrorContext(req.Context(), "validation failed", logger.Schema(name), logger.Error(err))
			_ = httpvalidate.WriteError(w, err)
			return
		}
		if !results.Valid() {
			_ = httpvalidate.WriteValidationError(w, results)
			return
		}
		_ = httpvalidate.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "data": values})
	})

	return r
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
