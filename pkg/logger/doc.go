// Package logger builds *slog.Logger values for the rulekit binaries.
//
// New applies functional options (format, level, output, static attributes)
// and wraps the handler with LogHandlerDecorator, which adds attributes pulled
// from the context of each call:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.Service),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.DebugContext(ctx, "rule failed",
//		logger.Field("age"),
//		logger.Rule("integer::between"),
//	)
//
// The attribute helpers in attr.go keep key names consistent between the
// engine, the HTTP middleware and the CLI. Error, Errors and Schema return an
// empty attribute for nil or empty input, so callers need no extra checks.
//
// Library packages default to Nop and accept a logger through their own
// WithLogger options; only binaries call New.
package logger
