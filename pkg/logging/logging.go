package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	envLogLevel      = "LOG_LEVEL"
	envLogFormat     = "LOG_FORMAT"
	envLogDateFormat = "LOG_DATE_FORMAT"

	// overridePrefix marks environment variables that set the minimum severity
	// of a single logger: LOGLEVEL_<NAME>=<LEVEL>, underscores in <NAME>
	// becoming dots in the logger name.
	overridePrefix = "LOGLEVEL_"
)

const (
	// DefaultFormat renders "14:05:32 [I] functions: processing request".
	DefaultFormat = "${time} [${level}] ${name}: ${message}"

	// DefaultDateFormat is the time layout used by the ${time} token.
	DefaultDateFormat = "15:04:05"
)

// noisyLoggers maps known chatty subsystem logger prefixes to the severity
// they are clamped to before LOGLEVEL_* overrides apply. Add entries here as
// noisy dependencies are discovered.
var noisyLoggers = map[string]slog.Level{
	// Azure SDK
	"azure":          slog.LevelWarn,
	"azure.core":     slog.LevelWarn,
	"azure.identity": slog.LevelWarn,
	"azure.storage":  slog.LevelWarn,
	"azure.monitor":  slog.LevelWarn,
	// HTTP / network
	"http.client": slog.LevelWarn,
	// RPC and telemetry
	"grpc": slog.LevelWarn,
	"otel": slog.LevelWarn,
}

type options struct {
	level      *slog.Level
	format     string
	dateFormat string
	noisy      map[string]slog.Level
	writer     io.Writer
}

// Option customizes Setup. Every option has an environment-variable
// equivalent; explicit options win over the environment.
type Option func(*options)

// WithLevel fixes the root threshold instead of reading LOG_LEVEL.
func WithLevel(l slog.Level) Option {
	return func(o *options) { o.level = &l }
}

// WithFormat fixes the output template instead of reading LOG_FORMAT.
func WithFormat(format string) Option {
	return func(o *options) { o.format = format }
}

// WithDateFormat fixes the ${time} layout instead of reading LOG_DATE_FORMAT.
func WithDateFormat(layout string) Option {
	return func(o *options) { o.dateFormat = layout }
}

// WithNoisyLoggers merges extra logger→severity suppressions on top of the
// built-in baseline.
func WithNoisyLoggers(levels map[string]slog.Level) Option {
	return func(o *options) {
		if o.noisy == nil {
			o.noisy = make(map[string]slog.Level)
		}
		for name, l := range levels {
			o.noisy[name] = l
		}
	}
}

// WithWriter sends output somewhere other than stdout. Mainly for tests.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.writer = w }
}

// Deliberate process-wide state: one sink, configured once by Setup and shared
// by every logger for the process lifetime. There is no teardown.
var state struct {
	mu   sync.Mutex
	sink *sink
}

// Setup configures logging globally and returns a ready-to-use logger named
// baseName. Call it once, as early as possible in main; later calls are
// idempotent (they return a logger on the already-installed sink and ignore
// their options, never duplicating the sink).
//
// In order, Setup installs the console sink as the slog default, sets the root
// threshold from LOG_LEVEL (default INFO), clamps the built-in noisy-subsystem
// baseline to WARNING, then applies every LOGLEVEL_* override found in the
// environment. Overrides win over the baseline. Nothing here is fatal: invalid
// levels and malformed templates are logged and replaced by defaults.
func Setup(baseName string, opts ...Option) *slog.Logger {
	state.mu.Lock()
	defer state.mu.Unlock()

	if state.sink != nil {
		return namedLocked(baseName)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.writer == nil {
		o.writer = os.Stdout
	}
	if o.dateFormat == "" {
		o.dateFormat = os.Getenv(envLogDateFormat)
	}
	if o.dateFormat == "" {
		o.dateFormat = DefaultDateFormat
	}
	if o.format == "" {
		o.format = os.Getenv(envLogFormat)
	}
	if o.format == "" {
		o.format = DefaultFormat
	}

	tmpl, tmplErr := parseTemplate(o.format)
	if tmplErr != nil {
		tmpl, _ = parseTemplate(DefaultFormat)
	}

	level := slog.LevelInfo
	var levelErr error
	if o.level != nil {
		level = *o.level
	} else if raw := os.Getenv(envLogLevel); raw != "" {
		if parsed, err := ParseLevel(raw); err != nil {
			levelErr = err
		} else {
			level = parsed
		}
	}

	state.sink = &sink{
		w:          o.writer,
		tmpl:       tmpl,
		dateLayout: o.dateFormat,
		levels:     newRegistry(),
	}
	state.sink.levels.setRoot(level)
	slog.SetDefault(namedLocked("root"))

	// The sink exists now, so configuration problems can go through it.
	diag := namedLocked("logging")
	if tmplErr != nil {
		diag.Warn("invalid LOG_FORMAT, using default", slog.String("error", tmplErr.Error()))
	}
	if levelErr != nil {
		diag.Warn("invalid LOG_LEVEL, defaulting to INFO", slog.String("error", levelErr.Error()))
	}

	for name, l := range noisyLoggers {
		state.sink.levels.set(name, l)
	}
	for name, l := range o.noisy {
		state.sink.levels.set(name, l)
	}

	applyEnvOverrides(diag)

	return namedLocked(baseName)
}

// Logger returns a named logger sharing the configured sink. Before Setup has
// run it falls back to the process default logger.
func Logger(name string) *slog.Logger {
	state.mu.Lock()
	defer state.mu.Unlock()

	if state.sink == nil {
		return slog.Default()
	}
	return namedLocked(name)
}

// SetLevel adjusts the minimum severity for one logger name at runtime. A
// no-op before Setup.
func SetLevel(name string, l slog.Level) {
	state.mu.Lock()
	defer state.mu.Unlock()

	if state.sink == nil {
		return
	}
	state.sink.levels.set(name, l)
}

// Reset clears the process-wide configuration so Setup can run again.
// Intended for tests.
func Reset() {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.sink = nil
}

func namedLocked(name string) *slog.Logger {
	return slog.New(&consoleHandler{name: name, sink: state.sink})
}

// applyEnvOverrides performs the single startup pass over the environment for
// LOGLEVEL_* variables. Invalid entries warn and are skipped; they never
// disturb the baseline.
func applyEnvOverrides(diag *slog.Logger) {
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(strings.ToUpper(key), overridePrefix) {
			continue
		}

		rawName := key[len(overridePrefix):]
		if rawName == "" {
			diag.Warn("LOGLEVEL_ variable has no logger name", slog.String("key", key))
			continue
		}

		name := strings.ToLower(strings.ReplaceAll(rawName, "_", "."))
		level, err := ParseLevel(value)
		if err != nil {
			diag.Warn("invalid LOGLEVEL_ override, skipping",
				slog.String("key", key),
				slog.String("value", value),
				slog.String("error", err.Error()))
			continue
		}

		state.sink.levels.set(name, level)
		diag.Debug("env override applied",
			slog.String("logger", name),
			slog.String("level", levelName(level)))
	}
}
