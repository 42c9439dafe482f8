// Package cli implements the opencga command-line interface.
//
// This package provides one command per variant storage operation of the
// OpenCGA REST API, plus helpers to browse the available routes, store
// access tokens per profile and inspect the resolved configuration. The CLI
// is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - operation: Submit a variant storage operation (one subcommand per route)
//   - routes: List the operation routes, or pick one interactively
//   - session: Save, show and clear token profiles
//   - config: Show the configuration file path and resolved values
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes one line per HTTP request and response. Loggers are passed
// through context.Context.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/opencga/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "aggregate-variant accepted (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// logHooks writes HTTP client events to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) logHooks {
	return logHooks{logger: l}
}

func (h logHooks) OnRequest(_ context.Context, req observability.RequestInfo) {
	h.logger.Debug("http request", "id", req.ID, "method", req.Method, "host", req.Host, "path", req.Path)
}

func (h logHooks) OnResponse(_ context.Context, req observability.RequestInfo, status int, d time.Duration) {
	h.logger.Debug("http response", "id", req.ID, "status", status, "elapsed", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, req observability.RequestInfo, err error) {
	h.logger.Debug("http error", "id", req.ID, "method", req.Method, "path", req.Path, "err", err)
}

var _ observability.HTTPHooks = logHooks{}
