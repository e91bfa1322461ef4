// Package logging configures process-wide logging from environment variables
// and hands out named slog loggers that share a single console sink.
//
// Call Setup once, as early as possible in main. After that any package can
// obtain a named logger with Logger; its minimum severity is resolved against
// a process-wide registry of per-name thresholds, so noisy subsystems can be
// silenced (or opened up) without a code change:
//
//	LOG_LEVEL=DEBUG                → root threshold
//	LOGLEVEL_AZURE_CORE=WARNING    → logger "azure.core" set to WARNING
//	LOGLEVEL_HTTP_CLIENT=debug     → logger "http.client" set to DEBUG
//
// Invalid values are skipped with a warning; nothing here is fatal.
package logging
