// Package cli implements the initializr command-line interface.
//
// The commands load a configuration file (--config, default
// ./initializr.toml), build the catalog it describes and work against it:
// describing project requests, listing versions, drawing version bindings
// and serving the catalog over HTTP. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
//   - describe: Resolve a project request into a project description
//   - pick: Pick dependencies interactively, then describe
//   - metadata: Print the catalog metadata document
//   - versions: Refresh from the release feed and list versions
//   - graph: Draw framework to platform bindings (DOT or SVG)
//   - serve: Serve the catalog over HTTP with periodic refresh
//   - cache: Manage the local feed cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so library code logs with the same
// settings.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing "HH:MM:SS.ms" timestamped lines to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one step of a command.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time as a "took" field and
// any extra key/value pairs, e.g. "Resolved project took=3ms deps=2".
func (p *progress) done(msg string, keyvals ...any) {
	kv := append([]any{"took", time.Since(p.start).Round(time.Millisecond)}, keyvals...)
	p.logger.Info(msg, kv...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() when the command runs outside of it.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
