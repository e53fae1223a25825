package kflow

import (
	"log/slog"

	"github.com/birdayz/kflow/internal/execution"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
)

// Option is a function that configures an App
type Option func(*App)

// WithLogr sets the logger for the application
var WithLogr = func(log logr.Logger) Option {
	return func(s *App) {
		s.log = log
	}
}

// WithLog sets a slog logger for the application
var WithLog = func(log *slog.Logger) Option {
	return func(s *App) {
		s.log = logr.FromSlogHandler(log.Handler())
	}
}

// WithMetrics registers the node metrics on reg. Without it no metrics are
// collected.
var WithMetrics = func(reg prometheus.Registerer) Option {
	return func(s *App) {
		s.registerer = reg
	}
}

// FailureHandler is called once for every node that fails, on that node's
// goroutine. It must not block.
type FailureHandler = execution.FailureHandler

// WithFailureHandler sets a handler for processing failures, for example to
// report them to the hosting application. Failures are also returned by Join.
var WithFailureHandler = func(handler FailureHandler) Option {
	return func(s *App) {
		s.onFailure = handler
	}
}
