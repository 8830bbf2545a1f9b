// Package days holds the puzzle solutions compiled into the aoc binary.
package days

import "github.com/sells-group/aoc-runner/internal/registry"

// Year is the event the registered days belong to.
const Year = 2019

// Registry returns the table of implemented days, in declaration order.
func Registry() *registry.Registry {
	r := registry.New(Year)
	r.MustRegister(
		registry.Day{
			Number:    1,
			Generator: registry.Gen(day1Generator),
			Solutions: []registry.Solution{
				registry.Sol("part_1", day1Part1),
				registry.Sol("part_2", day1Part2),
			},
		},
		registry.Day{
			Number:    2,
			Generator: registry.GenFallible(parseIntcode),
			Solutions: []registry.Solution{
				registry.SolFallible("part_1", day2Part1),
				registry.SolOptional("part_2", day2Part2),
			},
		},
	)
	return r
}
