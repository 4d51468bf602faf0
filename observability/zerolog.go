package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerolog wraps an already configured zerolog.Logger.
func NewZerolog(zl zerolog.Logger) *ZerologLogger { return &ZerologLogger{zl: zl} }

// NewConsole returns a human-readable console logger at the given level
// ("debug", "info", "warn", "error", "quiet"; anything else means info).
// A nil out writes to stderr.
func NewConsole(level string, out io.Writer) *ZerologLogger {
	if out == nil {
		out = os.Stderr
	}
	w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	zl := zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "quiet":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func (l *ZerologLogger) Debug(msg string, fields ...Field) { l.emit(l.zl.Debug(), msg, fields) }
func (l *ZerologLogger) Info(msg string, fields ...Field)  { l.emit(l.zl.Info(), msg, fields) }
func (l *ZerologLogger) Warn(msg string, fields ...Field)  { l.emit(l.zl.Warn(), msg, fields) }
func (l *ZerologLogger) Error(msg string, fields ...Field) { l.emit(l.zl.Error(), msg, fields) }

func (l *ZerologLogger) With(fields ...Field) Logger {
	zctx := l.zl.With()
	for _, f := range fields {
		zctx = zctx.Interface(f.Key(), f.Value())
	}
	return &ZerologLogger{zl: zctx.Logger()}
}

func (l *ZerologLogger) emit(ev *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		ev = ev.Interface(f.Key(), f.Value())
	}
	ev.Msg(msg)
}
