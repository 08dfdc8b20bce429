// Package logging provides structured, context-aware logging for the Delta
// site on top of log/slog.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LogLevel is the minimum severity a logger writes.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// slogLevel maps a LogLevel onto the slog scale.
func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Logger is the structured logger every package takes. Messages are
// context-first so request ids carried by ctx reach the output.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
	Error(ctx context.Context, err error, msg string, fields ...interface{})

	With(fields ...interface{}) Logger
	WithComponent(component string) Logger
}

// SiteLogger implements Logger on top of slog. Values are immutable; With
// and WithComponent return copies.
type SiteLogger struct {
	handler   slog.Handler
	component string
	attrs     []slog.Attr
}

// LoggerConfig configures NewLogger.
type LoggerConfig struct {
	Level     LogLevel
	Format    string // "json" or "text"
	Output    io.Writer
	AddSource bool
	Component string
}

// DefaultConfig logs info and above as text to stderr.
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{Level: LevelInfo, Format: "text", Output: os.Stderr}
}

// NewLogger builds a logger from config; nil means DefaultConfig.
func NewLogger(config *LoggerConfig) *SiteLogger {
	if config == nil {
		config = DefaultConfig()
	}
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: config.Level.slogLevel(), AddSource: config.AddSource}
	var handler slog.Handler = slog.NewTextHandler(output, opts)
	if config.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	}

	return &SiteLogger{handler: handler, component: config.Component}
}

// Nop returns a logger that discards everything.
func Nop() *SiteLogger {
	return NewLogger(&LoggerConfig{Level: LevelError, Output: io.Discard})
}

func (l *SiteLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, slog.LevelDebug, nil, msg, fields)
}

func (l *SiteLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, slog.LevelInfo, nil, msg, fields)
}

// Warn logs msg with err, which may be nil.
func (l *SiteLogger) Warn(ctx context.Context, err error, msg string, fields ...interface{}) {
	l.log(ctx, slog.LevelWarn, err, msg, fields)
}

func (l *SiteLogger) Error(ctx context.Context, err error, msg string, fields ...interface{}) {
	l.log(ctx, slog.LevelError, err, msg, fields)
}

// With returns a logger that adds key/value pairs to every entry. A key
// given again replaces the earlier value.
func (l *SiteLogger) With(fields ...interface{}) Logger {
	return l.with(fields...)
}

func (l *SiteLogger) with(fields ...interface{}) *SiteLogger {
	attrs := make([]slog.Attr, 0, len(l.attrs)+len(fields)/2)
	added := toAttrs(fields)
	for _, a := range l.attrs {
		if !hasKey(added, a.Key) {
			attrs = append(attrs, a)
		}
	}
	attrs = append(attrs, added...)

	next := *l
	next.attrs = attrs
	return &next
}

// WithComponent returns a logger tagged with component.
func (l *SiteLogger) WithComponent(component string) Logger {
	next := *l
	next.component = component
	return &next
}

func (l *SiteLogger) log(ctx context.Context, level slog.Level, err error, msg string, fields []interface{}) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.handler.Enabled(ctx, level) {
		return
	}

	record := slog.NewRecord(time.Now(), level, msg, 0)
	if l.component != "" {
		record.AddAttrs(slog.String("component", l.component))
	}
	if id := RequestID(ctx); id != "" {
		record.AddAttrs(slog.String("request_id", id))
	}
	if err != nil {
		record.AddAttrs(slog.String("error", err.Error()))
	}
	record.AddAttrs(l.attrs...)
	record.AddAttrs(toAttrs(fields)...)

	_ = l.handler.Handle(ctx, record)
}

// toAttrs pairs up alternating keys and values; non-string keys and a
// trailing key without a value are dropped.
func toAttrs(fields []interface{}) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		if key, ok := fields[i].(string); ok {
			attrs = append(attrs, slog.Any(key, fields[i+1]))
		}
	}
	return attrs
}

func hasKey(attrs []slog.Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

type requestIDKey struct{}

// WithRequestID returns a context whose log entries carry id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// SanitizeForLog keeps visitor-supplied text out of logs in full. Contact
// messages can be long and personal, so only a bounded prefix is kept.
func SanitizeForLog(data string) string {
	const limit = 120
	runes := []rune(data)
	if len(runes) > limit {
		return string(runes[:limit]) + "...[TRUNCATED]"
	}
	return data
}

// PerfLogger times one operation, such as an export.
type PerfLogger struct {
	Logger
	started time.Time
}

// StartOperation starts timing operation.
func (l *SiteLogger) StartOperation(operation string) *PerfLogger {
	return &PerfLogger{Logger: l.with("operation", operation), started: time.Now()}
}

// Elapsed returns the time since StartOperation.
func (p *PerfLogger) Elapsed() time.Duration {
	return time.Since(p.started)
}

// End logs the operation's duration.
func (p *PerfLogger) End(ctx context.Context) {
	p.Info(ctx, "Operation completed", "duration_ms", p.Elapsed().Milliseconds())
}

// EndWithError logs the failure and the duration.
func (p *PerfLogger) EndWithError(ctx context.Context, err error) {
	p.Error(ctx, err, "Operation failed", "duration_ms", p.Elapsed().Milliseconds())
}
