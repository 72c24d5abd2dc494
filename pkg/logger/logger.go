package logger

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/qcompose/pkg/settings"
)

// Define an unexported custom type for the context key to prevent collisions.
type loggerContextKey struct{}

const (
	RootCommandKey = "root_command"
	SubCommandKey  = "sub_command"
	SessionKey     = "session"
	CommitKey      = "commit"
	VersionKey     = "version"
	BuildTimeKey   = "build_time"
	GoVersionKey   = "go_version"
	TimeStampKey   = "timestamp"
	MessageKey     = "message"
)

// Output targets understood by Options.Output besides a file path.
const (
	OutputStderr  = "stderr"
	OutputDiscard = "discard"
)

// Options controls where and how verbosely the process-wide logger writes.
type Options struct {
	// Level is the minimum zap level (-1 debug, 0 info, 1 warn, 2 error).
	Level int8
	// Output is OutputStderr, OutputDiscard, or a file path opened for append.
	Output string
}

var (
	once sync.Once // Ensures Setup runs only once

	// globalZapLogger is the underlying *zap.Logger, kept for Sync().
	globalZapLogger *zap.Logger

	// globalLogrLogger is what application code receives when the context
	// carries no logger of its own.
	globalLogrLogger *logr.Logger

	// closeSink releases a file sink opened by Setup.
	closeSink func()

	defaultNoopLogger logr.Logger = logr.Discard()
)

// Setup initializes the global Zap and Logr loggers. Only the first call has an
// effect; later calls return the already configured logger.
// A file output that cannot be opened falls back to a no-op logger and the
// error is returned so the caller can report it.
func Setup(opts Options) (*logr.Logger, error) {
	var setupErr error
	once.Do(func() {
		output := strings.TrimSpace(opts.Output)
		if output == OutputDiscard {
			globalLogrLogger = &defaultNoopLogger
			return
		}

		sink := zapcore.Lock(os.Stderr)
		if output != "" && output != OutputStderr {
			ws, closer, err := zap.Open(output)
			if err != nil {
				setupErr = errors.Wrapf(err, "open log output %q", output)
				globalLogrLogger = &defaultNoopLogger
				return
			}
			sink = ws
			closeSink = closer
		}

		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderCfg.TimeKey = TimeStampKey
		encoderCfg.MessageKey = MessageKey

		goVersion := "unknown"
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			goVersion = buildInfo.GoVersion
		}
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			sink,
			zap.NewAtomicLevelAt(zapcore.Level(opts.Level)),
		).With(
			[]zapcore.Field{
				zap.String(CommitKey, settings.VersionInformation.Commit),
				zap.String(VersionKey, settings.VersionInformation.BuildVersion),
				zap.String(BuildTimeKey, settings.VersionInformation.BuildTime),
				zap.String(GoVersionKey, goVersion),
			},
		)

		globalZapLogger = zap.New(core,
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
			zap.WithFatalHook(zapcore.WriteThenPanic),
		)

		gl := zapr.NewLogger(globalZapLogger)
		globalLogrLogger = &gl
	})
	if globalLogrLogger == nil {
		return &defaultNoopLogger, setupErr
	}
	return globalLogrLogger, setupErr
}

// WithLogger returns a new context with the provided logr.Logger attached.
// If the context already carries the same logger instance, ctx is returned as is.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		if lp == log {
			return ctx
		}
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext retrieves the logr.Logger from the context, falling back to the
// global logger and then to a no-op logger.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	} else if log := globalLogrLogger; log != nil {
		return log
	}
	return &defaultNoopLogger
}

// Sync flushes buffered entries and closes a file sink if one was opened.
// Call it before the process exits.
func Sync() {
	if globalZapLogger != nil {
		if err := globalZapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
			fmt.Fprintf(os.Stderr, "WARNING: failed to sync zap logger: %v\n", err)
		}
	}
	if closeSink != nil {
		closeSink()
		closeSink = nil
	}
}

// isIgnorableSyncError returns true for common Sync errors on pipes/TTYs.
// Windows consoles can return ERROR_INVALID_HANDLE wrapped in *os.PathError,
// which does not compare equal to syscall.EINVAL, so we also string-match.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}

func GetNoopLogger() *logr.Logger {
	return &defaultNoopLogger
}

// WithValues returns a new logger carrying the additional key/value pairs.
func WithValues(lgr *logr.Logger, keysAndValues ...any) *logr.Logger {
	nlgr := lgr.WithValues(keysAndValues...)
	return &nlgr
}
