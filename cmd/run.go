package main

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/aoc-runner/internal/days"
	"github.com/sells-group/aoc-runner/internal/input"
	"github.com/sells-group/aoc-runner/internal/report"
	"github.com/sells-group/aoc-runner/internal/runner"
	"github.com/sells-group/aoc-runner/internal/selection"
)

// execute resolves the command line against the registered days and runs
// or benchmarks the selection. The report goes to out; warnings, logs and
// the token prompt go to diag.
func execute(ctx context.Context, out, diag io.Writer, stdin io.Reader, f selection.Flags) error {
	sel, err := selection.Resolve(f)
	if err != nil {
		return err
	}

	reg := days.Registry()
	if cfg.Year > 0 {
		reg.Year = cfg.Year
	}

	color, err := report.ParseColorMode(cfg.Report.Color)
	if err != nil {
		return err
	}
	printer := report.New(out,
		report.WithWidth(cfg.Report.Width),
		report.WithColor(color),
		report.WithDiagnostics(diag),
	)

	selected, ignored := selection.Select(reg, sel.Days)
	for _, w := range sel.Warnings(len(selected), ignored) {
		printer.Warn(w...)
	}
	if len(selected) == 0 {
		zap.L().Debug("no days to run", zap.Int("registered", reg.Len()))
		return nil
	}

	limit := rate.Limit(cfg.HTTP.RateLimit)
	if cfg.HTTP.RateLimit == 0 {
		limit = rate.Inf
	}
	client := input.NewClient(input.ClientOptions{
		BaseURL:   cfg.HTTP.BaseURL,
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.HTTP.Timeout,
		Limiter:   rate.NewLimiter(limit, cfg.HTTP.Burst),
	})
	defer client.Close()

	cache := input.NewCache(cfg.Cache.InputDir, cfg.Cache.OutputDir)
	tokens := input.NewTokenStore(cfg.Cache.TokenPath, stdin, diag)
	provider := input.NewProvider(reg.Year, cache, client, tokens,
		input.WithStdin(stdin),
		input.WithPrinter(printer),
	)

	var opts []runner.Option
	if sel.Source.Kind == selection.SourceDownload && cfg.Expected.Enabled {
		opts = append(opts, runner.WithExpected(provider))
	}
	r := runner.New(printer, opts...)

	zap.L().Debug("starting run",
		zap.Int("year", provider.Year()),
		zap.Int("width", printer.Width()),
		zap.Int("days", len(selected)),
		zap.Stringer("source", sel.Source),
		zap.Bool("bench", sel.Bench),
	)

	if sel.Bench {
		_, err = r.Bench(ctx, selected, provider, sel.Source)
	} else {
		_, err = r.Run(ctx, selected, provider, sel.Source)
	}
	if err != nil {
		return eris.Wrap(err, "run")
	}
	return nil
}
