package tracing

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

const (
	ExecutionTime   = "exe_time"
	InnerError      = "inner_error"
	UserId          = "user_id"
	UserName        = "user_name"
	ChatType        = "chat_type"
	ChatId          = "chat_id"
	MessageId       = "message_id"
	MessageDate     = "message_date"
	CommandIssued   = "command_issued"
	CommandRoute    = "command_route"
	InvocationId    = "invocation_id"
	InputLength     = "input_length"
	PositionalCount = "positional_count"
	KeywordCount    = "keyword_count"
	ParseErrorKind  = "parse_error_kind"
	ErrorTitle      = "error_title"
	Emotion         = "emotion"
	Scope           = "scope"
	OutsiderKind    = "outsider_kind"
)

type Logger struct {
	log *slog.Logger
	ctx context.Context
}

func NewConsoleLogger() *Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	logger.InfoContext(ctx, "Initializing logger")
	return &Logger{log: logger, ctx: context.Background()}
}

// NewDiscardLogger drops every record; used by tests and the offline CLI.
func NewDiscardLogger() *Logger {
	return &Logger{log: slog.New(slog.NewJSONHandler(io.Discard, nil)), ctx: context.Background()}
}

// Slog exposes the underlying logger for libraries that accept *slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.log
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{log: l.log.With(args...), ctx: l.ctx}
}

func (l *Logger) D(msg string, args ...any) {
	l.log.DebugContext(l.ctx, msg, args...)
}

func (l *Logger) I(msg string, args ...any) {
	l.log.InfoContext(l.ctx, msg, args...)
}

func (l *Logger) W(msg string, args ...any) {
	l.log.WarnContext(l.ctx, msg, args...)
}

func (l *Logger) E(msg string, args ...any) {
	l.log.ErrorContext(l.ctx, msg, args...)
}

func (l *Logger) F(msg string, args ...any) {
	l.log.ErrorContext(l.ctx, msg, args...)
	panic(msg)
}
