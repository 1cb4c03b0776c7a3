// Package logger builds the application's structured logger.
//
// Loggers are plain *slog.Logger values. Two additions sit on top of the
// standard library:
//
//   - Context extractors inject request-scoped attributes (request ID,
//     contact surface ID) into every record logged with a context.
//   - When a Sentry DSN is configured, records are fanned out to Sentry as
//     well as stdout. Errors become Sentry issues; warnings are kept as logs.
//
// # Usage
//
//	log, flush := logger.New(logger.Config{
//		Level:     "info",
//		SentryDSN: os.Getenv("SENTRY_DSN"),
//	}, middlewares.RequestIDExtractor())
//	defer flush(2 * time.Second)
//
//	log.InfoContext(ctx, "contact delivered", slog.String("surface_id", id))
//
// Use [NewNope] as a default when no logger is injected.
package logger
