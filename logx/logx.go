// Package logx provides the slog handler used across bunnygl: one line per
// record, tagged with a timestamp, the sending component and the severity,
// colored by severity when the output is a terminal.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// Levels beyond the four defined by slog.
const (
	LevelTrace = slog.Level(-8)
	LevelFatal = slog.Level(12)
)

// ComponentKey is the attribute that names the sender of a record.
const ComponentKey = "component"

// Options configures a Handler.
type Options struct {
	// Level is the minimum level written. The default is slog.LevelInfo.
	Level slog.Leveler
	// Profile forces a color profile instead of detecting it from the writer.
	Profile *termenv.Profile
	// Now returns the record time; it defaults to the record's own time.
	Now func() time.Time
}

// Handler is a slog.Handler writing colored, severity-tagged lines.
type Handler struct {
	opts      Options
	out       *termenv.Output
	mu        *sync.Mutex
	component string
	attrs     string
	prefix    string
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler returns a Handler writing to w.
func NewHandler(w io.Writer, opts *Options) *Handler {
	h := &Handler{mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	var outOpts []termenv.OutputOption
	if h.opts.Profile != nil {
		outOpts = append(outOpts, termenv.WithProfile(*h.opts.Profile))
	}
	h.out = termenv.NewOutput(w, outOpts...)
	return h
}

// New returns a logger backed by a Handler writing to w.
func New(w io.Writer, opts *Options) *slog.Logger {
	return slog.New(NewHandler(w, opts))
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	t := r.Time
	if h.opts.Now != nil {
		t = h.opts.Now()
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(t.Format(time.TimeOnly))
	b.WriteString("] ")

	component := h.component
	var attrs strings.Builder
	attrs.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == ComponentKey && h.prefix == "" {
			component = a.Value.String()
			return true
		}
		appendAttr(&attrs, h.prefix, a)
		return true
	})

	if component != "" {
		b.WriteString(component)
		b.WriteString(" ")
	}
	b.WriteString(LevelName(r.Level))
	b.WriteString(": ")
	b.WriteString(r.Message)
	b.WriteString(attrs.String())

	line := h.colorize(r.Level, b.String()) + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line)
	return err
}

func (h *Handler) colorize(level slog.Level, s string) string {
	style := h.out.String(s)
	switch {
	case level >= LevelFatal:
		style = style.Foreground(termenv.ANSIBrightWhite).Background(termenv.ANSIRed)
	case level >= slog.LevelError:
		style = style.Foreground(termenv.ANSIRed)
	case level >= slog.LevelWarn:
		style = style.Foreground(termenv.ANSIYellow)
	case level >= slog.LevelInfo:
		style = style.Foreground(termenv.ANSIGreen)
	case level >= slog.LevelDebug:
		style = style.Foreground(termenv.ANSICyan)
	default:
		style = style.Foreground(termenv.ANSIBlue)
	}
	return style.String()
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		if a.Key == ComponentKey && h.prefix == "" {
			h2.component = a.Value.String()
			continue
		}
		appendAttr(&b, h.prefix, a)
	}
	h2.attrs = b.String()
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(b, p, ga)
		}
		return
	}

	b.WriteString(" ")
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteString("=")
	v := a.Value.String()
	if v == "" || strings.ContainsAny(v, " \t\n\"=") {
		v = strconv.Quote(v)
	}
	b.WriteString(v)
}

// LevelName returns the fixed-width tag printed for level.
func LevelName(level slog.Level) string {
	switch {
	case level >= LevelFatal:
		return "FATAL"
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN "
	case level >= slog.LevelInfo:
		return "INFO "
	case level >= slog.LevelDebug:
		return "DEBUG"
	}
	return "TRACE"
}

// ParseLevel maps a configuration name to a level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "fatal":
		return LevelFatal, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// Trace logs at LevelTrace.
func Trace(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

// exit is replaced in tests.
var exit = os.Exit

// Fatal logs at LevelFatal and terminates the process with status 1.
func Fatal(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelFatal, msg, args...)
	exit(1)
}
