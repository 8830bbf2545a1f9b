package input

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/sells-group/aoc-runner/internal/report"
	"github.com/sells-group/aoc-runner/internal/selection"
)

type staticTokens string

func (s staticTokens) Token() (string, error) { return string(s), nil }

type failingTokens struct{}

func (failingTokens) Token() (string, error) { return "", errors.New("no token") }

type recordingPrinter struct {
	lines []report.Line
}

func (r *recordingPrinter) Print(l report.Line) { r.lines = append(r.lines, l) }

type puzzleSite struct {
	srv   *httptest.Server
	calls atomic.Int32
}

func newPuzzleSite(t *testing.T, handler http.HandlerFunc) *puzzleSite {
	t.Helper()
	site := &puzzleSite{}
	site.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site.calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(site.srv.Close)
	return site
}

func newTestProvider(t *testing.T, baseURL string, tokens Tokens, opts ...Option) (*Provider, *Cache) {
	t.Helper()
	dir := t.TempDir()
	cache := NewCache(filepath.Join(dir, "input"), filepath.Join(dir, "output"))
	client := NewClient(ClientOptions{
		BaseURL:   baseURL,
		UserAgent: "test-agent",
		Timeout:   5 * time.Second,
		Limiter:   rate.NewLimiter(rate.Inf, 1),
	})
	t.Cleanup(client.Close)
	return NewProvider(2019, cache, client, tokens, opts...), cache
}

func TestFetch_DownloadWritesCache(t *testing.T) {
	site := newPuzzleSite(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2019/day/1/input", r.URL.Path)
		assert.Equal(t, "session=abc", r.Header.Get("Cookie"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte("12\n14\n"))
	})
	printer := &recordingPrinter{}
	p, cache := newTestProvider(t, site.srv.URL, staticTokens("abc"), WithPrinter(printer))

	got, err := p.Fetch(context.Background(), 1, selection.Source{Kind: selection.SourceDownload})
	require.NoError(t, err)
	assert.Equal(t, "12\n14", got)
	assert.Equal(t, int32(1), site.calls.Load())

	data, err := os.ReadFile(cache.InputPath(2019, 1))
	require.NoError(t, err)
	assert.Equal(t, "12\n14", string(data))

	require.Len(t, printer.lines, 1)
	assert.Equal(t, "downloaded input file", printer.lines[0].Label)
	assert.NotNil(t, printer.lines[0].Duration)
}

func TestFetch_CachedInputSkipsNetwork(t *testing.T) {
	site := newPuzzleSite(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})
	p, cache := newTestProvider(t, site.srv.URL, failingTokens{})
	require.NoError(t, cache.Write(cache.InputPath(2019, 4), "  cached input\n\n"))

	src := selection.Source{Kind: selection.SourceDownload}
	first, err := p.Fetch(context.Background(), 4, src)
	require.NoError(t, err)
	second, err := p.Fetch(context.Background(), 4, src)
	require.NoError(t, err)

	assert.Equal(t, "  cached input", first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(0), site.calls.Load())
}

func TestFetch_RoundTripTrimsTrailingNewline(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"single newline", "line one\nline two\n", "line one\nline two"},
		{"leading indentation", "    [D]    \n[N] [C]    \n", "    [D]    \n[N] [C]    "},
		{"blank trailing line", "1,2,3\n\n", "1,2,3"},
		{"no newline", "abc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newPuzzleSite(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			p, cache := newTestProvider(t, site.srv.URL, staticTokens("abc"))
			src := selection.Source{Kind: selection.SourceDownload}

			fetched, err := p.Fetch(context.Background(), 5, src)
			require.NoError(t, err)
			reread, err := p.Fetch(context.Background(), 5, src)
			require.NoError(t, err)

			assert.Equal(t, tt.want, fetched)
			assert.Equal(t, fetched, reread)
			assert.Equal(t, int32(1), site.calls.Load())

			// A fresh provider over the same cache sees the same text.
			again := NewProvider(2019, cache, p.client, failingTokens{})
			fromDisk, err := again.Fetch(context.Background(), 5, src)
			require.NoError(t, err)
			assert.Equal(t, fetched, fromDisk)
		})
	}
}

func TestFetch_DownloadErrors(t *testing.T) {
	site := newPuzzleSite(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	p, cache := newTestProvider(t, site.srv.URL, staticTokens("abc"))

	_, err := p.Fetch(context.Background(), 3, selection.Source{Kind: selection.SourceDownload})
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusBadRequest, fe.StatusCode)

	_, statErr := os.Stat(cache.InputPath(2019, 3))
	assert.True(t, os.IsNotExist(statErr), "failed download must not be cached")
}

func TestFetch_TokenError(t *testing.T) {
	site := newPuzzleSite(t, func(w http.ResponseWriter, r *http.Request) {})
	p, _ := newTestProvider(t, site.srv.URL, failingTokens{})

	_, err := p.Fetch(context.Background(), 1, selection.Source{Kind: selection.SourceDownload})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token")
	assert.Equal(t, int32(0), site.calls.Load())
}

func TestFetch_File(t *testing.T) {
	p, _ := newTestProvider(t, "http://unused.invalid", failingTokens{})
	path := filepath.Join(t.TempDir(), "custom.txt")
	require.NoError(t, os.WriteFile(path, []byte("raw\n"), 0o644))

	got, err := p.Fetch(context.Background(), 1, selection.Source{Kind: selection.SourceFile, Path: path})
	require.NoError(t, err)
	assert.Equal(t, "raw\n", got)

	_, err = p.Fetch(context.Background(), 1, selection.Source{Kind: selection.SourceFile, Path: path + ".missing"})
	assert.Error(t, err)
}

func TestFetch_StdinIsReadOnce(t *testing.T) {
	p, _ := newTestProvider(t, "http://unused.invalid", failingTokens{}, WithStdin(strings.NewReader("from stdin")))
	src := selection.Source{Kind: selection.SourceStdin}

	first, err := p.Fetch(context.Background(), 1, src)
	require.NoError(t, err)
	second, err := p.Fetch(context.Background(), 2, src)
	require.NoError(t, err)

	assert.Equal(t, "from stdin", first)
	assert.Equal(t, first, second)
}

const answeredPage = `<article><p>--- Day 1 ---</p></article>
<p>Your puzzle answer was <code>3423511</code>.</p><article><p>--- Part Two ---</p></article>
<p>Your puzzle answer was <code>5132379</code>.</p>`

func TestFetchExpected_ScrapesAndCaches(t *testing.T) {
	site := newPuzzleSite(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2019/day/1", r.URL.Path)
		w.Write([]byte(answeredPage))
	})
	p, cache := newTestProvider(t, site.srv.URL, staticTokens("abc"))
	ctx := context.Background()

	got, ok, err := p.FetchExpected(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "5132379", got)

	// Part one was cached by the same page fetch.
	got, ok, err = p.FetchExpected(ctx, 1, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3423511", got)
	assert.Equal(t, int32(1), site.calls.Load())

	text, found := cache.Read(cache.AnswerPath(2019, 1, 1))
	assert.True(t, found)
	assert.Equal(t, "3423511", text)
}

func TestFetchExpected_NotSolvedYet(t *testing.T) {
	site := newPuzzleSite(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<p>Your puzzle answer was <code>7</code>.</p>`))
	})
	p, cache := newTestProvider(t, site.srv.URL, staticTokens("abc"))

	got, ok, err := p.FetchExpected(context.Background(), 5, 2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, got)

	_, found := cache.Read(cache.AnswerPath(2019, 5, 2))
	assert.False(t, found)
}

func TestFetchExpected_PageFetchedOncePerDay(t *testing.T) {
	site := newPuzzleSite(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<p>Your puzzle answer was <code>7</code>.</p>`))
	})
	p, _ := newTestProvider(t, site.srv.URL, staticTokens("abc"))
	ctx := context.Background()

	got, ok, err := p.FetchExpected(ctx, 3, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "7", got)

	for i := 0; i < 2; i++ {
		_, ok, err = p.FetchExpected(ctx, 3, 2)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, int32(1), site.calls.Load())
}

func TestFetchExpected_NotFoundPageRememberedForRun(t *testing.T) {
	site := newPuzzleSite(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	p, _ := newTestProvider(t, site.srv.URL, staticTokens("abc"))

	for part := 1; part <= 2; part++ {
		_, ok, err := p.FetchExpected(context.Background(), 25, part)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, int32(1), site.calls.Load())
}

func TestFetchExpected_NotFoundPage(t *testing.T) {
	site := newPuzzleSite(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	p, _ := newTestProvider(t, site.srv.URL, staticTokens("abc"))

	_, ok, err := p.FetchExpected(context.Background(), 25, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFetchExpected_ServerError(t *testing.T) {
	site := newPuzzleSite(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	p, _ := newTestProvider(t, site.srv.URL, staticTokens("abc"))

	_, ok, err := p.FetchExpected(context.Background(), 1, 1)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestParseAnswers(t *testing.T) {
	assert.Equal(t, []string{"3423511", "5132379"}, ParseAnswers(answeredPage))
	assert.Empty(t, ParseAnswers("<p>no answers here</p>"))
}

func TestProviderYear(t *testing.T) {
	p, _ := newTestProvider(t, "http://unused.invalid", failingTokens{})
	assert.Equal(t, 2019, p.Year())
}
