package days

import (
	"fmt"
	"strconv"
	"strings"
)

// day1Generator parses one module mass per line. Malformed input is a bug in
// the puzzle file, so it panics.
func day1Generator(input string) []uint64 {
	var masses []uint64
	for _, line := range strings.Split(strings.TrimSpace(input), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			panic(fmt.Sprintf("invalid number %q: %v", line, err))
		}
		masses = append(masses, n)
	}
	return masses
}

func fuel(mass uint64) uint64 {
	if mass < 9 {
		return 0
	}
	return mass/3 - 2
}

func day1Part1(masses []uint64) uint64 {
	var total uint64
	for _, m := range masses {
		total += fuel(m)
	}
	return total
}

func day1Part2(masses []uint64) uint64 {
	var total uint64
	for _, m := range masses {
		for f := fuel(m); f > 0; f = fuel(f) {
			total += f
		}
	}
	return total
}
