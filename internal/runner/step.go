package runner

import (
	"fmt"
	"time"

	"github.com/sells-group/aoc-runner/internal/registry"
	"github.com/sells-group/aoc-runner/internal/report"
)

// GeneratorLabel is the report label of the generation step.
const GeneratorLabel = "generator"

// Outcome is the result of one executed, failed or skipped step.
type Outcome struct {
	Label    string
	Duration *time.Duration
	Value    string
	Err      string
	Failed   bool
	Skipped  bool
	Status   *report.Status
}

// Line converts the outcome to a report line.
func (o Outcome) Line() report.Line {
	l := report.Line{Label: o.Label, Duration: o.Duration, Status: o.Status}
	switch {
	case o.Skipped:
		l.Output = report.Skipped()
	case o.Failed:
		l.Output = report.Failure(o.Err)
	case o.Label != GeneratorLabel:
		l.Output = report.Value(o.Value)
	}
	return l
}

// GenResult is the outcome of running a day's generator.
type GenResult struct {
	Value   any
	Elapsed time.Duration
	// Timed is false for GeneratorNone, which emits no report line.
	Timed bool
	Err   error
}

// Outcome converts a timed generator result to a report outcome.
func (g GenResult) Outcome() Outcome {
	elapsed := g.Elapsed
	o := Outcome{Label: GeneratorLabel, Duration: &elapsed}
	if g.Err != nil {
		o.Failed = true
		o.Err = g.Err.Error()
	}
	return o
}

// RunGenerator applies g to raw, timing the call. A required generator that
// panics takes the process down with it.
func RunGenerator(g registry.Generator, raw string) GenResult {
	if g.Mode == registry.GeneratorNone {
		return GenResult{Value: raw}
	}

	start := time.Now()
	v, err := g.Run(raw)
	elapsed := time.Since(start)

	if err != nil && g.Mode == registry.GeneratorRequired {
		panic(fmt.Sprintf("required generator failed: %v", err))
	}
	return GenResult{Value: v, Elapsed: elapsed, Timed: true, Err: err}
}

// RunSolution applies s to the generated value, timing the call.
func RunSolution(s registry.Solution, value any) Outcome {
	start := time.Now()
	v, err := s.Run(value)
	elapsed := time.Since(start)

	o := Outcome{Label: s.Name, Duration: &elapsed}
	if err != nil {
		o.Failed = true
		o.Err = err.Error()
		return o
	}
	o.Value = fmt.Sprint(v)
	return o
}

// SkipSolution is the outcome of a solution whose generator failed.
func SkipSolution(s registry.Solution) Outcome {
	return Outcome{Label: s.Name, Skipped: true}
}
