package registry

import (
	"reflect"
	"regexp"
	"strconv"

	"github.com/rotisserie/eris"
)

// GeneratorMode describes how a day turns raw input into the value its
// solutions consume.
type GeneratorMode int

const (
	// GeneratorNone passes the raw input through unchanged.
	GeneratorNone GeneratorMode = iota
	// GeneratorRequired cannot fail; a panic is a programming error.
	GeneratorRequired
	// GeneratorFallible may return an error, which skips the day's solutions.
	GeneratorFallible
)

func (m GeneratorMode) String() string {
	switch m {
	case GeneratorNone:
		return "none"
	case GeneratorRequired:
		return "required"
	case GeneratorFallible:
		return "fallible"
	default:
		return "unknown"
	}
}

// SolutionMode describes whether a solution can fail.
type SolutionMode int

const (
	// SolutionRequired always produces a value.
	SolutionRequired SolutionMode = iota
	// SolutionFallible produces a value or an explanatory failure.
	SolutionFallible
)

func (m SolutionMode) String() string {
	switch m {
	case SolutionRequired:
		return "required"
	case SolutionFallible:
		return "fallible"
	default:
		return "unknown"
	}
}

// ErrEmptyOutput is the failure reported by an optional solution that
// produced nothing.
var ErrEmptyOutput = eris.New("empty output")

// Generator transforms the raw input. The zero value is GeneratorNone.
type Generator struct {
	Mode GeneratorMode
	run  func(string) (any, error)
}

// Gen wraps an infallible generator.
func Gen[T any](fn func(string) T) Generator {
	return Generator{
		Mode: GeneratorRequired,
		run: func(raw string) (any, error) {
			return fn(raw), nil
		},
	}
}

// GenFallible wraps a generator that can reject its input.
func GenFallible[T any](fn func(string) (T, error)) Generator {
	return Generator{
		Mode: GeneratorFallible,
		run: func(raw string) (any, error) {
			v, err := fn(raw)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

// Run applies the generator to raw. For GeneratorNone it returns raw.
func (g Generator) Run(raw string) (any, error) {
	if g.Mode == GeneratorNone || g.run == nil {
		return raw, nil
	}
	return g.run(raw)
}

// Solution is one named answer-producing step of a day.
type Solution struct {
	Name string
	Mode SolutionMode
	run  func(any) (any, error)
}

// Sol wraps an infallible solution.
func Sol[T, R any](name string, fn func(T) R) Solution {
	return Solution{
		Name: name,
		Mode: SolutionRequired,
		run: func(in any) (any, error) {
			v, err := cast[T](in)
			if err != nil {
				return nil, err
			}
			return fn(v), nil
		},
	}
}

// SolFallible wraps a solution that returns an error on failure.
func SolFallible[T, R any](name string, fn func(T) (R, error)) Solution {
	return Solution{
		Name: name,
		Mode: SolutionFallible,
		run: func(in any) (any, error) {
			v, err := cast[T](in)
			if err != nil {
				return nil, err
			}
			out, err := fn(v)
			if err != nil {
				return nil, err
			}
			return out, nil
		},
	}
}

// SolOptional wraps a solution that may produce no answer at all.
func SolOptional[T, R any](name string, fn func(T) (R, bool)) Solution {
	return Solution{
		Name: name,
		Mode: SolutionFallible,
		run: func(in any) (any, error) {
			v, err := cast[T](in)
			if err != nil {
				return nil, err
			}
			out, ok := fn(v)
			if !ok {
				return nil, ErrEmptyOutput
			}
			return out, nil
		},
	}
}

// Run invokes the solution on the generated value.
func (s Solution) Run(in any) (any, error) {
	if s.run == nil {
		return nil, eris.Errorf("solution %q has no function", s.Name)
	}
	return s.run(in)
}

var partRx = regexp.MustCompile(`(\d+)$`)

// Part returns the part number encoded in the trailing digits of the
// solution name ("part1", "part_2"), or 0 if there is none.
func (s Solution) Part() int {
	m := partRx.FindStringSubmatch(s.Name)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func cast[T any](in any) (T, error) {
	v, ok := in.(T)
	if !ok {
		var zero T
		return zero, eris.Errorf("solution expects %s, got %T", reflect.TypeOf((*T)(nil)).Elem(), in)
	}
	return v, nil
}
