// Package selection turns command-line choices into the ordered set of days
// to execute and the source their input comes from.
package selection

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/aoc-runner/internal/registry"
)

var (
	// ErrConflictingFlags is returned for mutually exclusive flag pairs.
	ErrConflictingFlags = eris.New("conflicting flags")
	// ErrMalformedDay is returned for a day token that is not a positive number.
	ErrMalformedDay = eris.New("malformed day number")
)

// SourceKind identifies where puzzle input is read from.
type SourceKind int

const (
	SourceDownload SourceKind = iota
	SourceFile
	SourceStdin
)

// Source is the input origin for a run.
type Source struct {
	Kind SourceKind
	Path string
}

// Fixed reports whether the same input is fed to every selected day.
func (s Source) Fixed() bool {
	return s.Kind == SourceFile || s.Kind == SourceStdin
}

func (s Source) String() string {
	switch s.Kind {
	case SourceFile:
		return "file " + s.Path
	case SourceStdin:
		return "stdin"
	default:
		return "download"
	}
}

// DayMode selects which registered days run.
type DayMode int

const (
	DaysLatest DayMode = iota
	DaysAll
	DaysExplicit
)

// Days is the day choice of a run.
type Days struct {
	Mode    DayMode
	Numbers []int
}

// RunSelection is everything derived from the command line for one run.
type RunSelection struct {
	Source Source
	Days   Days
	Bench  bool
}

// Flags are the raw command-line values Resolve consumes.
type Flags struct {
	Stdin bool
	File  string
	Days  []string
	All   bool
	Bench bool
}

// Resolve validates flag combinations and builds a RunSelection.
func Resolve(f Flags) (RunSelection, error) {
	var sel RunSelection

	switch {
	case f.Stdin && f.File != "":
		return sel, eris.Wrap(ErrConflictingFlags, "--stdin and --file cannot be used together")
	case f.Stdin:
		sel.Source = Source{Kind: SourceStdin}
	case f.File != "":
		sel.Source = Source{Kind: SourceFile, Path: f.File}
	default:
		sel.Source = Source{Kind: SourceDownload}
	}

	days, err := ParseDays(f.Days)
	if err != nil {
		return sel, err
	}

	switch {
	case f.All && len(days) > 0:
		return sel, eris.Wrap(ErrConflictingFlags, "--day cannot be combined with --all")
	case f.All:
		sel.Days = Days{Mode: DaysAll}
	case len(days) > 0:
		sel.Days = Days{Mode: DaysExplicit, Numbers: days}
	default:
		sel.Days = Days{Mode: DaysLatest}
	}

	sel.Bench = f.Bench
	return sel, nil
}

// ParseDays parses day tokens. A token is a number, optionally prefixed with
// "day", or a comma-separated list of those.
func ParseDays(tokens []string) ([]int, error) {
	var out []int
	for _, tok := range tokens {
		for _, part := range strings.Split(tok, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(strings.TrimPrefix(part, "day"))
			if err != nil || n <= 0 {
				return nil, eris.Wrapf(ErrMalformedDay, "%q", part)
			}
			out = append(out, n)
		}
	}
	return out, nil
}

// Select returns the registered days to run, in execution order, and the
// requested day numbers that are not registered.
func Select(reg *registry.Registry, days Days) (selected []*registry.Day, ignored []int) {
	switch days.Mode {
	case DaysAll:
		return reg.Days(), nil
	case DaysExplicit:
		seen := make(map[int]bool, len(days.Numbers))
		for _, n := range days.Numbers {
			if seen[n] {
				continue
			}
			seen[n] = true
			d, err := reg.Lookup(n)
			if err != nil {
				ignored = append(ignored, n)
				continue
			}
			selected = append(selected, d)
		}
		return selected, ignored
	default:
		if latest := reg.Latest(); latest != nil {
			return []*registry.Day{latest}, nil
		}
		return nil, nil
	}
}

// Warnings returns the diagnostics a run with this selection should print
// before executing the selected days.
func (s RunSelection) Warnings(selected int, ignored []int) [][]string {
	var out [][]string
	if len(ignored) > 0 {
		parts := make([]string, 0, len(ignored))
		for _, n := range ignored {
			parts = append(parts, strconv.Itoa(n))
		}
		out = append(out, []string{"Ignoring unimplemented days: " + strings.Join(parts, ", ")})
	}
	if selected > 1 && s.Source.Fixed() {
		out = append(out, []string{
			"You are using a personalized input over several days which can",
			"be misleading. If you only intend to run solutions for a",
			"specific day, you can specify it by using the `-d DAY_NUM` flag.",
		})
	}
	return out
}
