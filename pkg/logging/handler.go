package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// sink is the single console destination shared by every named logger. The
// mutex serializes whole lines, so records from concurrent request handlers
// never interleave.
type sink struct {
	mu         sync.Mutex
	w          io.Writer
	tmpl       *template
	dateLayout string
	levels     *registry
}

func (s *sink) write(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := io.WriteString(s.w, line)
	return err
}

// consoleHandler is a slog.Handler bound to one logger name. Enabled consults
// the shared level registry, so suppressed records are dropped before any
// formatting work happens.
type consoleHandler struct {
	name   string
	sink   *sink
	attrs  []slog.Attr
	groups []string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.sink.levels.effective(h.name)
}

func (h *consoleHandler) Handle(_ context.Context, rec slog.Record) error {
	ts := rec.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var sb strings.Builder
	h.sink.tmpl.render(&sb, ts, rec.Level, h.name, rec.Message, h.sink.dateLayout)

	prefix := h.groupPrefix()
	for _, a := range h.attrs {
		appendAttr(&sb, prefix, a)
	}
	rec.Attrs(func(a slog.Attr) bool {
		appendAttr(&sb, prefix, a)
		return true
	})
	sb.WriteByte('\n')

	return h.sink.write(sb.String())
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func (h *consoleHandler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

func appendAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner = prefix + a.Key + "."
		}
		for _, g := range a.Value.Group() {
			appendAttr(sb, inner, g)
		}
		return
	}

	sb.WriteByte(' ')
	sb.WriteString(prefix)
	sb.WriteString(a.Key)
	sb.WriteByte('=')
	sb.WriteString(a.Value.String())
}
