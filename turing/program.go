package turing

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLine bounds the length of a line, and so the initial word, in a
// program file.
const maxLine = 1 << 24

// Program holds everything needed to construct a Machine.
type Program struct {
	Instructions []Instruction
	Tape         []bool
	State        int
	Pos          int
}

// Machine returns a new Machine running p.
func (p *Program) Machine() *Machine {
	return NewMachine(p.Instructions, p.Tape, p.State, p.Pos)
}

// ParseTape converts a word of 0s and 1s to tape cells.
// Any character other than '1' is a blank.
func ParseTape(s string) []bool {
	cells := make([]bool, 0, len(s))
	for _, r := range s {
		cells = append(cells, r == '1')
	}
	return cells
}

// ReadProgram parses a program file: one instruction per line up to the
// first blank line, then the initial word, state and position, one per line.
// The state and position may be omitted.
func ReadProgram(r io.Reader) (*Program, error) {
	var lines []string
	s := bufio.NewScanner(r)
	s.Buffer(nil, maxLine)
	for s.Scan() {
		lines = append(lines, strings.TrimSpace(s.Text()))
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	p := &Program{State: DefaultState, Pos: DefaultPosition}
	n := 0
	for ; n < len(lines) && lines[n] != ""; n++ {
		in, err := ParseInstruction(lines[n])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		p.Instructions = append(p.Instructions, in)
	}
	n++ // blank separator

	if n < len(lines) {
		p.Tape = ParseTape(lines[n])
	}
	n++
	if n < len(lines) && lines[n] != "" {
		v, err := strconv.Atoi(lines[n])
		if err != nil || v < 0 {
			return nil, fmt.Errorf("line %d: invalid state %q", n+1, lines[n])
		}
		p.State = v
	}
	n++
	if n < len(lines) && lines[n] != "" {
		v, err := strconv.Atoi(lines[n])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid position %q", n+1, lines[n])
		}
		p.Pos = v
	}
	return p, nil
}
