// Package runner executes selected puzzle days: it runs each day's generator
// and solutions in declaration order, timing every step and reporting it.
package runner

import (
	"context"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/aoc-runner/internal/registry"
	"github.com/sells-group/aoc-runner/internal/report"
	"github.com/sells-group/aoc-runner/internal/selection"
)

// State is the execution state of a single day.
type State int

// Day states. StateAllSolutionsSkipped and StateDone are terminal.
const (
	// StateNotStarted is the state before the input is handed over.
	StateNotStarted State = iota
	// StateGeneratorRunning covers the timed generator call.
	StateGeneratorRunning
	// StateGeneratorFailed follows a fallible generator returning an error.
	StateGeneratorFailed
	// StateGeneratorSucceeded follows a generator producing a value.
	StateGeneratorSucceeded
	// StateSolutionsRunning covers the solution calls in declaration order.
	StateSolutionsRunning
	// StateAllSolutionsSkipped ends a day whose generator failed.
	StateAllSolutionsSkipped
	// StateDone ends a day whose solutions all ran.
	StateDone
)

var stateNames = map[State]string{
	StateNotStarted:          "not_started",
	StateGeneratorRunning:    "generator_running",
	StateGeneratorFailed:     "generator_failed",
	StateGeneratorSucceeded:  "generator_succeeded",
	StateSolutionsRunning:    "solutions_running",
	StateAllSolutionsSkipped: "all_solutions_skipped",
	StateDone:                "done",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateAllSolutionsSkipped || s == StateDone
}

// DayResult collects every outcome of one day, in report order.
type DayResult struct {
	Day      int
	State    State
	Outcomes []Outcome
}

// Inputs supplies raw puzzle text for a day.
type Inputs interface {
	Fetch(ctx context.Context, day int, src selection.Source) (string, error)
}

// Expected supplies known answers for comparison.
type Expected interface {
	FetchExpected(ctx context.Context, day, part int) (string, bool, error)
}

// Option configures a Runner.
type Option func(*Runner)

// WithExpected enables comparison against known answers.
func WithExpected(e Expected) Option {
	return func(r *Runner) {
		r.expected = e
	}
}

// Runner executes days sequentially and prints their outcomes.
type Runner struct {
	printer   *report.Printer
	expected  Expected
	benchmark func(func(*testing.B)) testing.BenchmarkResult
}

// New creates a Runner that reports through printer.
func New(printer *report.Printer, opts ...Option) *Runner {
	r := &Runner{
		printer:   printer,
		benchmark: testing.Benchmark,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run fetches input for each day and executes it. An input error aborts the
// run; generator and solution failures only affect their own day.
func (r *Runner) Run(ctx context.Context, days []*registry.Day, in Inputs, src selection.Source) ([]DayResult, error) {
	results := make([]DayResult, 0, len(days))
	for i, day := range days {
		if i != 0 {
			r.printer.Blank()
		}
		r.printer.Day(day.Number)

		raw, err := in.Fetch(ctx, day.Number, src)
		if err != nil {
			return results, eris.Wrapf(err, "could not fetch input for day %d", day.Number)
		}

		res := r.RunDay(ctx, day, raw)
		if !res.State.Terminal() {
			return results, eris.Errorf("day %d stopped in state %s", day.Number, res.State)
		}
		results = append(results, res)
	}
	return results, nil
}

// RunDay executes one day against raw input and prints each step as it
// completes.
func (r *Runner) RunDay(ctx context.Context, day *registry.Day, raw string) DayResult {
	res := DayResult{Day: day.Number, State: StateNotStarted}

	res.State = StateGeneratorRunning
	gen := RunGenerator(day.Generator, raw)
	if gen.Timed {
		r.emit(&res, gen.Outcome())
	}

	if gen.Err != nil {
		res.State = StateGeneratorFailed
		zap.L().Debug("generator failed, skipping solutions",
			zap.Int("day", day.Number),
			zap.Error(gen.Err),
		)
		for _, sol := range day.Solutions {
			r.emit(&res, SkipSolution(sol))
		}
		res.State = StateAllSolutionsSkipped
		return res
	}

	res.State = StateSolutionsRunning
	for _, sol := range day.Solutions {
		o := RunSolution(sol, gen.Value)
		if !o.Failed {
			o.Status = r.compare(ctx, day.Number, sol, o.Value)
		}
		r.emit(&res, o)
	}
	res.State = StateDone
	return res
}

func (r *Runner) emit(res *DayResult, o Outcome) {
	res.Outcomes = append(res.Outcomes, o)
	r.printer.Print(o.Line())
}

// compare classifies value against the known answer. It returns nil when
// comparison is disabled or the solution has no part number.
func (r *Runner) compare(ctx context.Context, day int, sol registry.Solution, value string) *report.Status {
	if r.expected == nil {
		return nil
	}
	part := sol.Part()
	if part <= 0 {
		return nil
	}

	status := report.StatusUnknown
	want, ok, err := r.expected.FetchExpected(ctx, day, part)
	switch {
	case err != nil:
		zap.L().Warn("could not fetch expected answer",
			zap.Int("day", day),
			zap.Int("part", part),
			zap.Error(err),
		)
	case !ok:
	case strings.TrimSpace(want) == strings.TrimSpace(value):
		status = report.StatusMatch
	default:
		status = report.StatusMismatch
	}
	return &status
}
