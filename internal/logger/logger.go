package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ekisa-team/homeprice/internal/env"
)

const (
	defaultLogFile    = "logs/homeprice.log"
	defaultMaxSizeMB  = 50
	defaultMaxBackups = 5
	defaultMaxAgeDays = 28
)

// Options configures the logger built by New.
type Options struct {
	Level     slog.Level
	LogToFile bool
	LogFile   string
	Stdout    io.Writer
}

// Option mutates Options.
type Option func(*Options)

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(o *Options) { o.Level = level }
}

// WithLogToFile enables writing JSON logs to a rotating file in addition to stdout.
func WithLogToFile(enabled bool) Option {
	return func(o *Options) { o.LogToFile = enabled }
}

// WithLogFile sets the rotating log file path.
func WithLogFile(path string) Option {
	return func(o *Options) {
		if path != "" {
			o.LogFile = path
		}
	}
}

// WithWriter replaces stdout as the console destination.
func WithWriter(w io.Writer) Option {
	return func(o *Options) { o.Stdout = w }
}

// New builds a slog.Logger for the given environment. Development gets a
// coloured tint handler, production gets JSON. File output is always JSON.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := Options{
		Level:   slog.LevelInfo,
		LogFile: defaultLogFile,
		Stdout:  os.Stdout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var console slog.Handler
	if environment.IsProduction() {
		console = slog.NewJSONHandler(o.Stdout, &slog.HandlerOptions{Level: o.Level})
	} else {
		console = tint.NewHandler(o.Stdout, &tint.Options{
			Level:      o.Level,
			TimeFormat: time.Kitchen,
		})
	}

	if !o.LogToFile {
		return slog.New(console)
	}

	file := &lumberjack.Logger{
		Filename:   o.LogFile,
		MaxSize:    defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAgeDays,
		Compress:   true,
	}

	return slog.New(slogmulti.Fanout(
		console,
		slog.NewJSONHandler(file, &slog.HandlerOptions{Level: o.Level}),
	))
}

// ParseLevel converts a config level name into a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
