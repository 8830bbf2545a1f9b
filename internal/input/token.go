package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/term"
)

// DefaultTokenPath returns <user config dir>/aoc/token.txt, or ".token" when
// the platform has no user config directory.
func DefaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".token"
	}
	return filepath.Join(dir, "aoc", "token.txt")
}

// TokenStore supplies the session token, asking for it at most once per
// environment.
type TokenStore struct {
	Path   string
	In     io.Reader
	Out    io.Writer
	cache  *Cache
	cached string
}

// NewTokenStore creates a store backed by path that prompts on in/out.
func NewTokenStore(path string, in io.Reader, out io.Writer) *TokenStore {
	if path == "" {
		path = DefaultTokenPath()
	}
	return &TokenStore{
		Path:  path,
		In:    in,
		Out:   out,
		cache: &Cache{},
	}
}

// Token returns the cached token or prompts for it.
func (s *TokenStore) Token() (string, error) {
	if s.cached != "" {
		return s.cached, nil
	}
	token, err := s.cache.GetOrFetch(s.Path, s.prompt)
	if err != nil {
		return "", err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", eris.Errorf("token: %s is empty", s.Path)
	}
	s.cached = token
	return token, nil
}

func (s *TokenStore) prompt() (string, error) {
	if s.In == nil {
		return "", eris.Errorf("token: no cached token at %s and no input to prompt on", s.Path)
	}
	if s.Out != nil {
		fmt.Fprint(s.Out, "Write your connection token: ")
	}

	var line string
	if f, ok := s.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		if s.Out != nil {
			fmt.Fprintln(s.Out)
		}
		if err != nil {
			return "", eris.Wrap(err, "token: read from terminal")
		}
		line = string(raw)
	} else {
		read, err := bufio.NewReader(s.In).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", eris.Wrap(err, "token: read")
		}
		line = read
	}

	token := strings.TrimSpace(line)
	if token == "" {
		return "", eris.New("token: empty session token")
	}
	return token, nil
}
