package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// base logger, used for derived loggers handed to callers
	baseLogger *zap.SugaredLogger

	// default logger for the package-level helpers (skips the wrapper frame)
	defaultLogger *zap.SugaredLogger
)

// initializes the logger based on environment
func init() {
	Replace(New(os.Getenv("ENVIRONMENT"), os.Getenv("LOG_FILE")))
}

// builds a zap logger for the given environment.
// production: JSON on stdout at INFO, development: console on stderr at DEBUG.
// when logFile is set every entry at INFO and above is also written there with rotation.
func New(env, logFile string) *zap.Logger {
	level := zapcore.DebugLevel
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	output := zapcore.Lock(os.Stderr)

	if env == "production" {
		level = zapcore.InfoLevel
		encoder = zapcore.NewJSONEncoder(productionEncoderConfig())
		output = zapcore.Lock(os.Stdout)
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder, output, level)}

	if logFile != "" {
		cores = append(cores, fileCore(logFile))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// builds a logger that writes only to logFile, for programs that own the terminal.
// an empty logFile discards everything.
func NewFile(logFile string) *zap.Logger {
	if logFile == "" {
		return zap.NewNop()
	}

	return zap.New(fileCore(logFile), zap.AddCaller())
}

func fileCore(logFile string) zapcore.Core {
	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	return zapcore.NewCore(
		zapcore.NewJSONEncoder(productionEncoderConfig()),
		zapcore.AddSync(rotator),
		zapcore.InfoLevel,
	)
}

func productionEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg
}

// swaps the package logger and returns a func restoring the previous one
func Replace(l *zap.Logger) func() {
	prevBase, prevDefault := baseLogger, defaultLogger

	baseLogger = l.Sugar()
	defaultLogger = l.WithOptions(zap.AddCallerSkip(1)).Sugar()

	return func() {
		baseLogger, defaultLogger = prevBase, prevDefault
	}
}

// returns the default logger instance
func Default() *zap.SugaredLogger {
	return baseLogger
}

// creates a logger with additional context fields
func With(args ...any) *zap.SugaredLogger {
	return baseLogger.With(args...)
}

// returns the request-scoped logger stored in ctx, or the default one
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return baseLogger
	}

	if l, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return l
	}

	return baseLogger
}

// adds logger to context
func WithContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

type loggerKey struct{}

// flushes buffered entries, call before exit
func Sync() {
	_ = baseLogger.Sync() //nolint:errcheck // stderr sync fails on some platforms
}

func Debug(msg string, args ...any) {
	defaultLogger.Debugw(msg, args...)
}

func Info(msg string, args ...any) {
	defaultLogger.Infow(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warnw(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Errorw(msg, args...)
}

// logs an error with context
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Errorw(msg, args...)
}

// logs a fatal error and exits (for CLI tools)
func Fatal(msg string, args ...any) {
	defaultLogger.Errorw(msg, args...)
	Sync()
	os.Exit(1)
}

// logs a fatal error with error and exits (for CLI tools)
func FatalErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	Fatal(msg, args...)
}
