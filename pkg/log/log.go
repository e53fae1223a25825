package log

import (
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"
)

func init() {
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"
}

// Option configures a logger created by New.
type Option func(*options)

type options struct {
	out   io.Writer
	level zerolog.Level
}

// WithOutput writes JSON lines to w instead of the default output.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithLevel sets the minimum level. It defaults to info.
func WithLevel(level zerolog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// New returns a zerolog logger. Inside Kubernetes it writes JSON to stderr,
// elsewhere human readable lines to stdout.
func New(opts ...Option) *zerolog.Logger {
	o := options{level: zerolog.InfoLevel}
	for _, opt := range opts {
		opt(&o)
	}

	output := o.out
	if output == nil {
		if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
			output = os.Stderr
		} else {
			output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02T15:04:05.999Z07:00"}
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	logger := zerolog.New(output).Level(o.level).With().Timestamp().Logger()
	return &logger
}

// Logr wraps a zerolog logger for kflow.WithLogr. V(1) messages are logged at
// debug level, V(2) at trace.
func Logr(l *zerolog.Logger) logr.Logger {
	return zerologr.New(l)
}

// ParseLevel parses a level name like "debug" or "warn". An empty name is
// info.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(name)
}
