package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger writes human-readable console lines for local runs.
type ZerologLogger struct {
	l zerolog.Logger
}

// NewConsoleLogger returns a zerolog ConsoleWriter logger at the given level.
func NewConsoleLogger(w io.Writer, level slog.Level) *ZerologLogger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	l := zerolog.New(out).Level(zerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{l: l}
}

func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level <= slog.LevelDebug:
		return zerolog.DebugLevel
	case level <= slog.LevelInfo:
		return zerolog.InfoLevel
	case level <= slog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Debug(), msg, args, contextArgs(ctx))
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Info(), msg, args, contextArgs(ctx))
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Warn(), msg, args, contextArgs(ctx))
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Error(), msg, args, contextArgs(ctx))
}

func (z *ZerologLogger) With(args ...any) Logger {
	c := z.l.With()
	for k, v := range pairs(args) {
		c = c.Interface(k, v)
	}
	return &ZerologLogger{l: c.Logger()}
}

func (z *ZerologLogger) emit(e *zerolog.Event, msg string, args, extra []any) {
	if e == nil {
		return
	}
	for _, set := range [][]any{args, extra} {
		for k, v := range pairs(set) {
			if err, ok := v.(error); ok {
				e = e.AnErr(k, err)
				continue
			}
			e = e.Interface(k, v)
		}
	}
	e.Msg(msg)
}

// pairs yields key–value pairs with sensitive values redacted. A dangling
// value is reported under "!BADKEY", as slog does.
func pairs(args []any) func(yield func(string, any) bool) {
	return func(yield func(string, any) bool) {
		for i := 0; i < len(args); i += 2 {
			if i+1 >= len(args) {
				yield("!BADKEY", args[i])
				return
			}
			key := fmt.Sprint(args[i])
			val := args[i+1]
			if IsSensitive(key) {
				val = Redacted
			}
			if !yield(key, val) {
				return
			}
		}
	}
}
