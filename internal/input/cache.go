package input

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Cache stores fetched puzzle inputs and answers as flat text files. A file
// that exists is never refetched.
type Cache struct {
	InputDir  string
	OutputDir string
}

// NewCache creates a cache rooted at the given directories.
func NewCache(inputDir, outputDir string) *Cache {
	if inputDir == "" {
		inputDir = "input"
	}
	if outputDir == "" {
		outputDir = "output"
	}
	return &Cache{InputDir: inputDir, OutputDir: outputDir}
}

// InputPath is input/<year>/day<day>.txt.
func (c *Cache) InputPath(year, day int) string {
	return filepath.Join(c.InputDir, strconv.Itoa(year), "day"+strconv.Itoa(day)+".txt")
}

// AnswerPath is output/<year>/day<day>-<part>.txt.
func (c *Cache) AnswerPath(year, day, part int) string {
	return filepath.Join(c.OutputDir, strconv.Itoa(year), "day"+strconv.Itoa(day)+"-"+strconv.Itoa(part)+".txt")
}

// Normalize strips trailing line breaks. Leading and inner whitespace is
// part of the puzzle and kept as is.
func Normalize(text string) string {
	return strings.TrimRight(text, "\r\n")
}

// Read returns the normalized contents of path and whether it exists.
func (c *Cache) Read(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return Normalize(string(data)), true
}

// Write stores text at path, creating parent directories.
func (c *Cache) Write(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "cache: create directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return eris.Wrapf(err, "cache: write %s", path)
	}
	return nil
}

// GetOrFetch returns the cached contents of path, or calls fetch and stores
// its result. Both paths return the same normalized text. A failed store is
// logged and the fetched text still returned.
func (c *Cache) GetOrFetch(path string, fetch func() (string, error)) (string, error) {
	if text, ok := c.Read(path); ok {
		return text, nil
	}

	text, err := fetch()
	if err != nil {
		return "", err
	}
	text = Normalize(text)

	c.store(path, text)
	return text, nil
}

func (c *Cache) store(path, text string) {
	if err := c.Write(path, text); err != nil {
		zap.L().Warn("could not write cache file",
			zap.String("path", path),
			zap.Error(err),
		)
	}
}
