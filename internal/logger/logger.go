// Package logger builds the process-wide slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Environment selects the log format.
type Environment string

// Known environments.
const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ParseEnvironment maps a string to an Environment, defaulting to development.
func ParseEnvironment(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod", "production":
		return EnvProduction
	default:
		return EnvDevelopment
	}
}

type options struct {
	level      slog.Level
	logToFile  bool
	logFile    string
	maxSizeMB  int
	maxBackups int
	output     io.Writer
}

// Option configures New.
type Option func(*options)

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithLogToFile also writes logs to a rotating file.
func WithLogToFile(enabled bool) Option {
	return func(o *options) { o.logToFile = enabled }
}

// WithLogFile sets the rotating log file path.
func WithLogFile(path string) Option {
	return func(o *options) { o.logFile = path }
}

// WithRotation sets the maximum file size in megabytes and the number of old
// files to keep.
func WithRotation(maxSizeMB, maxBackups int) Option {
	return func(o *options) {
		o.maxSizeMB = maxSizeMB
		o.maxBackups = maxBackups
	}
}

// WithOutput replaces stderr as the console writer.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// New returns a logger for env. Development logs are colored text via tint,
// production logs are JSON. File output, when enabled, is always JSON.
func New(env Environment, opts ...Option) *slog.Logger {
	o := options{
		level:      slog.LevelInfo,
		logFile:    "logs/mudra.log",
		maxSizeMB:  50,
		maxBackups: 5,
		output:     os.Stderr,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var console slog.Handler
	if env == EnvProduction {
		console = slog.NewJSONHandler(o.output, &slog.HandlerOptions{Level: o.level})
	} else {
		console = tint.NewHandler(o.output, &tint.Options{
			Level:      o.level,
			TimeFormat: time.Kitchen,
		})
	}

	if !o.logToFile {
		return slog.New(console)
	}

	file := &lumberjack.Logger{
		Filename:   o.logFile,
		MaxSize:    o.maxSizeMB,
		MaxBackups: o.maxBackups,
		Compress:   true,
	}
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: o.level})

	return slog.New(slogmulti.Fanout(console, fileHandler))
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
