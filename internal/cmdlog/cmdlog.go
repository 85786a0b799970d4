package cmdlog

import (
	"time"

	"trustscope/internal/logging"
	"trustscope/internal/metrics"
)

// Run executes a CLI command body, counting and logging its outcome.
func Run(cmd string, f func() error) error {
	metrics.IncCommandRun(cmd)
	start := time.Now()
	err := f()
	fields := map[string]any{"elapsed_ms": time.Since(start).Milliseconds()}
	if err != nil {
		metrics.IncCommandError(cmd)
		fields["error"] = err.Error()
		logging.Error(cmd+"_error", fields)
	} else {
		logging.Debug(cmd+"_ok", fields)
	}
	return err
}
