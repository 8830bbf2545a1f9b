// Package registry holds the static table of puzzle days: for each day
// number, an optional generator and the ordered list of solutions.
package registry

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

var (
	// ErrUnknownDay is returned when a day number has no registered entry.
	ErrUnknownDay = eris.New("day not registered")
	// ErrDuplicateDay is returned when a day number is registered twice.
	ErrDuplicateDay = eris.New("day already registered")
	// ErrInvalidDay is returned for malformed day entries.
	ErrInvalidDay = eris.New("invalid day entry")
)

// Day is one registered puzzle day. Its identity is Number.
type Day struct {
	Number    int
	Generator Generator
	Solutions []Solution
}

// Registry maps day numbers to their entries for a single event year.
// Days are kept in declaration order.
type Registry struct {
	Year     int
	days     []*Day
	byNumber map[int]*Day
}

// New creates an empty registry for the given event year.
func New(year int) *Registry {
	return &Registry{
		Year:     year,
		byNumber: make(map[int]*Day),
	}
}

// Register adds a day to the registry.
func (r *Registry) Register(d Day) error {
	if d.Number <= 0 {
		return eris.Wrapf(ErrInvalidDay, "day number %d must be positive", d.Number)
	}
	if len(d.Solutions) == 0 {
		return eris.Wrapf(ErrInvalidDay, "day %d has no solutions", d.Number)
	}
	if _, ok := r.byNumber[d.Number]; ok {
		return eris.Wrapf(ErrDuplicateDay, "day %d", d.Number)
	}
	entry := d
	entry.Solutions = append([]Solution(nil), d.Solutions...)
	r.days = append(r.days, &entry)
	r.byNumber[d.Number] = &entry
	return nil
}

// MustRegister is like Register but panics on error. Meant for the
// program-start registration table.
func (r *Registry) MustRegister(days ...Day) {
	for _, d := range days {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
}

// Days returns every registered day in declaration order.
func (r *Registry) Days() []*Day {
	out := make([]*Day, len(r.days))
	copy(out, r.days)
	return out
}

// Numbers returns the registered day numbers in declaration order.
func (r *Registry) Numbers() []int {
	out := make([]int, 0, len(r.days))
	for _, d := range r.days {
		out = append(out, d.Number)
	}
	return out
}

// Lookup returns the entry for day n.
func (r *Registry) Lookup(n int) (*Day, error) {
	if d, ok := r.byNumber[n]; ok {
		return d, nil
	}
	return nil, eris.Wrapf(ErrUnknownDay, "day %d (available: %s)", n, r.available())
}

// Latest returns the day with the highest number, or nil for an empty
// registry.
func (r *Registry) Latest() *Day {
	var latest *Day
	for _, d := range r.days {
		if latest == nil || d.Number > latest.Number {
			latest = d
		}
	}
	return latest
}

// Len returns the number of registered days.
func (r *Registry) Len() int {
	return len(r.days)
}

func (r *Registry) available() string {
	nums := r.Numbers()
	sort.Ints(nums)
	parts := make([]string, 0, len(nums))
	for _, n := range nums {
		parts = append(parts, "day"+strconv.Itoa(n))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
