// Package logger provides the sink-facing base logger of the module: a
// leveled, labeled, taggable logger emitting through Go's slog handlers,
// configured by functional options or environment variables.
//
// This is the concrete end of the chain. Local loggers (pkg/local) wrap a
// *Logger - or each other - and carry their effective level, label, and
// attributes down to it on each emission's context; Log honors the
// carried values over the ambient ones for that record.
//
// # Architecture
//
// New builds a slog text or JSON handler driven by a dynamic LevelVar, so
// SetLevel and WithLevel take effect immediately, and wraps it with a
// decorator running registered ContextExtractor callbacks against every
// record's context. Scoped tag overlays (Tag) ride the derived
// context.Context rather than logger state, which gives cleanup and
// per-request isolation for free.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("billing"),
//	    logger.WithTags(attrs.Map{"region": "eu"}),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//
//	log.Info(ctx, "processed", attrs.Map{"took_ms": 12})
//
//	// Temporary debug window, restored on every exit path:
//	_ = log.WithLevel(ctx, severity.Debug, func(ctx context.Context) error {
//	    log.Debug(ctx, "verbose detail")
//	    return nil
//	})
//
// # Configuration
//
// NewFromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_LABEL, and LOG_OUTPUT,
// loading a .env file when present. Invalid values fail fast with
// ErrEnvConfig at construction time.
//
// # Scope Attributes
//
// Scope overlays managed by pkg/logscope are injected by local loggers at
// emission. When this logger is used directly, without a local wrapper,
// register logscope.LoggerExtractor with WithContextExtractors to surface
// scope attributes on records.
package logger
