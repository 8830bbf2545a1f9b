// Package input supplies raw puzzle text for a day from a file, standard
// input, or the puzzle site with an on-disk cache.
package input

import (
	"context"
	"errors"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/aoc-runner/internal/report"
	"github.com/sells-group/aoc-runner/internal/selection"
)

// answerRx extracts previously submitted answers from a day's page, in
// page order.
var answerRx = regexp.MustCompile(`Your puzzle answer was <code>(.*?)</code>\.`)

// LinePrinter receives progress lines such as the download timing.
type LinePrinter interface {
	Print(report.Line)
}

// Tokens supplies the session token.
type Tokens interface {
	Token() (string, error)
}

// Option configures a Provider.
type Option func(*Provider)

// WithStdin sets the reader used for the stdin source.
func WithStdin(r io.Reader) Option {
	return func(p *Provider) {
		p.stdin = r
	}
}

// WithPrinter sets where download progress lines go.
func WithPrinter(lp LinePrinter) Option {
	return func(p *Provider) {
		p.printer = lp
	}
}

// Provider fetches puzzle input and expected answers for one event year.
type Provider struct {
	year    int
	cache   *Cache
	client  *Client
	tokens  Tokens
	stdin   io.Reader
	printer LinePrinter

	stdinText *string
	// answers holds the answers scraped per day during this run.
	answers   map[int][]string
}

// NewProvider creates a Provider.
func NewProvider(year int, cache *Cache, client *Client, tokens Tokens, opts ...Option) *Provider {
	p := &Provider{
		year:    year,
		cache:   cache,
		client:  client,
		tokens:  tokens,
		stdin:   os.Stdin,
		answers: make(map[int][]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Year returns the event year the provider fetches for.
func (p *Provider) Year() int {
	return p.year
}

// Fetch returns the raw input for day from src.
func (p *Provider) Fetch(ctx context.Context, day int, src selection.Source) (string, error) {
	switch src.Kind {
	case selection.SourceFile:
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return "", eris.Wrapf(err, "input: read file %s", src.Path)
		}
		return string(data), nil
	case selection.SourceStdin:
		return p.readStdin()
	default:
		return p.download(ctx, day)
	}
}

// readStdin reads standard input once; later days reuse the same text.
func (p *Provider) readStdin() (string, error) {
	if p.stdinText != nil {
		return *p.stdinText, nil
	}
	data, err := io.ReadAll(p.stdin)
	if err != nil {
		return "", eris.Wrap(err, "input: read stdin")
	}
	text := string(data)
	p.stdinText = &text
	return text, nil
}

func (p *Provider) download(ctx context.Context, day int) (string, error) {
	path := p.cache.InputPath(p.year, day)
	return p.cache.GetOrFetch(path, func() (string, error) {
		token, err := p.tokens.Token()
		if err != nil {
			return "", eris.Wrap(err, "input: session token")
		}

		start := time.Now()
		body, err := p.client.Get(ctx, p.client.InputURL(p.year, day), token)
		if err != nil {
			return "", eris.Wrapf(err, "input: download day %d", day)
		}
		elapsed := time.Since(start)

		if p.printer != nil {
			p.printer.Print(report.Line{Label: "downloaded input file", Duration: &elapsed})
		}
		zap.L().Info("downloaded input",
			zap.Int("year", p.year),
			zap.Int("day", day),
			zap.Duration("elapsed", elapsed),
		)
		return body, nil
	})
}

// FetchExpected returns the previously accepted answer for a day's part. A
// puzzle without a recorded answer yields ok == false and no error.
func (p *Provider) FetchExpected(ctx context.Context, day, part int) (answer string, ok bool, err error) {
	path := p.cache.AnswerPath(p.year, day, part)
	if text, found := p.cache.Read(path); found {
		return text, true, nil
	}

	answers, err := p.pageAnswers(ctx, day)
	if err != nil {
		return "", false, err
	}
	if part < 1 || part > len(answers) {
		return "", false, nil
	}
	return answers[part-1], true, nil
}

// pageAnswers scrapes a day's page at most once per run and caches every
// answer found on it. A missing page counts as a page without answers.
func (p *Provider) pageAnswers(ctx context.Context, day int) ([]string, error) {
	if answers, ok := p.answers[day]; ok {
		return answers, nil
	}

	token, err := p.tokens.Token()
	if err != nil {
		return nil, eris.Wrap(err, "input: session token")
	}

	page, err := p.client.Get(ctx, p.client.PageURL(p.year, day), token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			p.answers[day] = nil
			return nil, nil
		}
		return nil, eris.Wrapf(err, "input: fetch answers for day %d", day)
	}

	answers := ParseAnswers(page)
	for i, a := range answers {
		p.cache.store(p.cache.AnswerPath(p.year, day, i+1), a)
	}
	p.answers[day] = answers
	return answers, nil
}

// ParseAnswers returns the answers recorded on a puzzle page, in order.
func ParseAnswers(page string) []string {
	matches := answerRx.FindAllStringSubmatch(page, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}
