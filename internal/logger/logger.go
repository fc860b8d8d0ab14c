package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// Logger is the leveled logging interface shared by handlers, services and
// clients. The context is used to pick up the Lambda request ID when the
// process runs inside the Lambda runtime.
type Logger interface {
	Debug(ctx context.Context, format string, args ...interface{})
	Info(ctx context.Context, format string, args ...interface{})
	Warn(ctx context.Context, format string, args ...interface{})
	Error(ctx context.Context, format string, args ...interface{})
}

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

type stdLogger struct {
	out *log.Logger
	min int
}

// New creates a Logger that writes to stdout at the given minimum level.
// Unknown levels fall back to info.
func New(level string) Logger {
	return &stdLogger{
		out: log.New(os.Stdout, "", log.LstdFlags),
		min: parseLevel(level),
	}
}

func parseLevel(level string) int {
	switch strings.ToLower(level) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (l *stdLogger) Debug(ctx context.Context, format string, args ...interface{}) {
	l.logf(ctx, levelDebug, "[DEBUG]", format, args...)
}

func (l *stdLogger) Info(ctx context.Context, format string, args ...interface{}) {
	l.logf(ctx, levelInfo, "[INFO]", format, args...)
}

func (l *stdLogger) Warn(ctx context.Context, format string, args ...interface{}) {
	l.logf(ctx, levelWarn, "[WARN]", format, args...)
}

func (l *stdLogger) Error(ctx context.Context, format string, args ...interface{}) {
	l.logf(ctx, levelError, "[ERROR]", format, args...)
}

func (l *stdLogger) logf(ctx context.Context, level int, tag, format string, args ...interface{}) {
	if level < l.min {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		l.out.Printf("%s [%s] %s", tag, lc.AwsRequestID, msg)
		return
	}
	l.out.Printf("%s %s", tag, msg)
}
