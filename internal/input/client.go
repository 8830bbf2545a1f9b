package input

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the puzzle site.
const DefaultBaseURL = "https://adventofcode.com"

// DefaultUserAgent identifies the tool to the puzzle site.
const DefaultUserAgent = "github.com/sells-group/aoc-runner"

// ErrNotFound matches a FetchError for a missing page.
var ErrNotFound = eris.New("not found")

// FetchError reports a non-200 response from the puzzle site.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *FetchError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// ClientOptions configures the puzzle site client.
type ClientOptions struct {
	BaseURL   string
	UserAgent string
	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration
	// Limiter throttles requests. Nil means one request per second.
	Limiter *rate.Limiter
}

// Client performs authenticated GET requests against the puzzle site.
type Client struct {
	http    *http.Client
	opts    ClientOptions
	limiter *rate.Limiter
}

// NewClient creates a Client with the given options.
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(1, 1)
	}
	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		opts:    opts,
		limiter: limiter,
	}
}

// InputURL is the puzzle input location for a day.
func (c *Client) InputURL(year, day int) string {
	return fmt.Sprintf("%s/%d/day/%d/input", c.opts.BaseURL, year, day)
}

// PageURL is the puzzle description page for a day.
func (c *Client) PageURL(year, day int) string {
	return fmt.Sprintf("%s/%d/day/%d", c.opts.BaseURL, year, day)
}

// Get fetches rawURL with the session cookie and returns the body.
func (c *Client) Get(ctx context.Context, rawURL, session string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Cookie", "session="+session)

	zap.L().Debug("fetching", zap.String("url", rawURL))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrapf(err, "get %s", rawURL)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", eris.Wrap(&FetchError{URL: rawURL, StatusCode: resp.StatusCode}, "get")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrapf(err, "read body of %s", rawURL)
	}
	return string(body), nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}
