package runner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/aoc-runner/internal/registry"
	"github.com/sells-group/aoc-runner/internal/report"
	"github.com/sells-group/aoc-runner/internal/selection"
)

// BenchResult is the estimate for one solution.
type BenchResult struct {
	Day      int
	Solution string
	PerOp    time.Duration
	Runs     int
}

// Bench runs every solution of every day many times and reports the mean
// time per call. The generator runs once per day, untimed; if it fails the
// day's solutions are skipped. Each solution runs once first, and a failing
// one is reported instead of measured.
func (r *Runner) Bench(ctx context.Context, days []*registry.Day, in Inputs, src selection.Source) ([]BenchResult, error) {
	var results []BenchResult
	for i, day := range days {
		if i != 0 {
			r.printer.Blank()
		}
		r.printer.Day(day.Number)

		raw, err := in.Fetch(ctx, day.Number, src)
		if err != nil {
			return results, eris.Wrapf(err, "could not fetch input for day %d", day.Number)
		}

		value, err := day.Generator.Run(raw)
		if err != nil {
			r.printer.Print(report.Line{Label: GeneratorLabel, Output: report.Failure(err.Error())})
			for _, sol := range day.Solutions {
				r.printer.Print(SkipSolution(sol).Line())
			}
			continue
		}

		for _, sol := range day.Solutions {
			if err := ctx.Err(); err != nil {
				return results, eris.Wrap(err, "bench interrupted")
			}

			// A solution that fails has no meaningful timing.
			if o := RunSolution(sol, value); o.Failed {
				r.printer.Print(o.Line())
				continue
			}

			res := r.benchSolution(day.Number, sol, value)
			results = append(results, res)
			perOp := res.PerOp
			r.printer.Print(report.Line{
				Label:    sol.Name,
				Duration: &perOp,
				Output:   report.Value(fmt.Sprintf("%d runs", res.Runs)),
			})
		}
	}
	return results, nil
}

func (r *Runner) benchSolution(day int, sol registry.Solution, value any) BenchResult {
	br := r.benchmark(func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = sol.Run(value)
		}
	})
	return BenchResult{
		Day:      day,
		Solution: sol.Name,
		PerOp:    time.Duration(br.NsPerOp()),
		Runs:     br.N,
	}
}
