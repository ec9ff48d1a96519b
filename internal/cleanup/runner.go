package cleanup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/assocpipe/apreset/internal/database"
	"github.com/assocpipe/apreset/internal/metrics"
)

// Execer is the subset of a transaction the step loop needs. *sql.Tx
// satisfies it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// StepResult records the outcome of a single executed step. Err is the
// swallowed statement error, nil on success.
type StepResult struct {
	Step
	Err      error
	Duration time.Duration
}

// Report summarizes a complete cleanup run.
type Report struct {
	RunID    string
	Results  []StepResult
	Started  time.Time
	Finished time.Time
}

// Failed returns the number of steps whose statement errored.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Runner executes a cleanup plan against a connected database.
type Runner struct {
	db        *sql.DB
	dialect   database.Dialect
	plan      []Step
	logger    *slog.Logger
	collector *metrics.Collector

	// StatementTimeout bounds each individual statement. Zero disables the
	// bound.
	StatementTimeout time.Duration
}

// NewRunner creates a runner over the default plan.
func NewRunner(db *sql.DB, dialect database.Dialect, logger *slog.Logger, collector *metrics.Collector) *Runner {
	return &Runner{
		db:        db,
		dialect:   dialect,
		plan:      DefaultPlan(),
		logger:    logger,
		collector: collector,
	}
}

// Run opens one transaction, attempts every step of the plan, and commits
// unconditionally. A step failure is logged and counted but never aborts the
// sequence and never surfaces to the caller; the returned error covers only
// the transaction machinery itself. There is no rollback path: the run is a
// best-effort reset, and on MySQL the DDL steps autocommit regardless.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:   uuid.New().String(),
		Started: time.Now(),
	}

	logger := r.logger.With("run_id", report.RunID)
	logger.Info("starting cleanup run", "steps", len(r.plan), "dialect", string(r.dialect))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("failed to begin transaction: %w", err)
	}

	report.Results = r.runSteps(ctx, tx, logger)

	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("failed to commit transaction: %w", err)
	}

	report.Finished = time.Now()
	if r.collector != nil {
		r.collector.ObserveRun(report.Finished.Sub(report.Started))
	}

	logger.Info("cleanup run finished",
		"steps", len(report.Results),
		"failed", report.Failed(),
		"duration", report.Finished.Sub(report.Started))

	return report, nil
}

// runSteps executes every step through the per-step error boundary: the
// statement error is recorded, logged, and counted, then the loop moves on.
func (r *Runner) runSteps(ctx context.Context, ex Execer, logger *slog.Logger) []StepResult {
	results := make([]StepResult, 0, len(r.plan))

	for _, step := range r.plan {
		start := time.Now()
		err := r.execStep(ctx, ex, step)
		result := StepResult{Step: step, Err: err, Duration: time.Since(start)}
		results = append(results, result)

		if r.collector != nil {
			r.collector.ObserveStatement(string(step.Op), err)
		}

		if err != nil {
			logger.Warn("cleanup statement failed, continuing",
				"table", step.Table,
				"operation", string(step.Op),
				"error", err)
			continue
		}

		logger.Debug("cleanup statement succeeded",
			"table", step.Table,
			"operation", string(step.Op),
			"duration", result.Duration)
	}

	return results
}

func (r *Runner) execStep(ctx context.Context, ex Execer, step Step) error {
	if r.StatementTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.StatementTimeout)
		defer cancel()
	}

	_, err := ex.ExecContext(ctx, step.SQL(r.dialect))
	return err
}
