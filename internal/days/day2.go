package days

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

const day2Target = 19690720

func parseIntcode(input string) ([]int, error) {
	fields := strings.Split(strings.TrimSpace(input), ",")
	program := make([]int, 0, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, eris.Wrapf(err, "opcode %d", i)
		}
		program = append(program, n)
	}
	if len(program) < 4 {
		return nil, eris.Errorf("program too short: %d values", len(program))
	}
	return program, nil
}

// runIntcode executes a copy of program with the given noun and verb and
// returns the value left at address 0.
func runIntcode(program []int, noun, verb int) (int, error) {
	mem := append([]int(nil), program...)
	mem[1], mem[2] = noun, verb

	at := func(addr int) (int, error) {
		if addr < 0 || addr >= len(mem) {
			return 0, eris.Errorf("address %d out of range", addr)
		}
		return mem[addr], nil
	}

	for pc := 0; pc < len(mem); pc += 4 {
		op := mem[pc]
		if op == 99 {
			return mem[0], nil
		}
		if op != 1 && op != 2 {
			return 0, eris.Errorf("unknown opcode %d at %d", op, pc)
		}
		if pc+3 >= len(mem) {
			return 0, eris.Errorf("truncated instruction at %d", pc)
		}
		a, err := at(mem[pc+1])
		if err != nil {
			return 0, err
		}
		b, err := at(mem[pc+2])
		if err != nil {
			return 0, err
		}
		dst := mem[pc+3]
		if _, err := at(dst); err != nil {
			return 0, err
		}
		if op == 1 {
			mem[dst] = a + b
		} else {
			mem[dst] = a * b
		}
	}
	return 0, eris.New("program ended without halting")
}

func day2Part1(program []int) (int, error) {
	return runIntcode(program, 12, 2)
}

func day2Part2(program []int) (int, bool) {
	for noun := 0; noun < 100; noun++ {
		for verb := 0; verb < 100; verb++ {
			out, err := runIntcode(program, noun, verb)
			if err == nil && out == day2Target {
				return 100*noun + verb, true
			}
		}
	}
	return 0, false
}
