package turing

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Direction is the offset applied to the head position by a transition.
type Direction int

const (
	Left  Direction = -1
	Stay  Direction = 0
	Right Direction = 1
)

// ParseDirection returns the Direction named by c, one of L, S or R.
func ParseDirection(c byte) (Direction, bool) {
	switch c {
	case 'L':
		return Left, true
	case 'S':
		return Stay, true
	case 'R':
		return Right, true
	}
	return 0, false
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Stay:
		return "S"
	case Right:
		return "R"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Instruction is a single transition rule: when in StartState reading
// StartValue, write EndValue, move by Dir and become EndState.
type Instruction struct {
	StartState int
	StartValue bool
	EndState   int
	EndValue   bool
	Dir        Direction
}

var ErrInvalidInstruction = errors.New("invalid instruction")

var instrRE = regexp.MustCompile(`^q([0-9]+)([01])q([0-9]+)([01])([LSR])$`)

// ParseInstruction parses the compact form of an instruction,
// for example "q01q20L".
func ParseInstruction(s string) (Instruction, error) {
	m := instrRE.FindStringSubmatch(s)
	if m == nil {
		return Instruction{}, fmt.Errorf("%w %q", ErrInvalidInstruction, s)
	}
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return Instruction{}, fmt.Errorf("%w %q: %v", ErrInvalidInstruction, s, err)
	}
	end, err := strconv.Atoi(m[3])
	if err != nil {
		return Instruction{}, fmt.Errorf("%w %q: %v", ErrInvalidInstruction, s, err)
	}
	dir, _ := ParseDirection(m[5][0])
	return Instruction{
		StartState: start,
		StartValue: m[2] == "1",
		EndState:   end,
		EndValue:   m[4] == "1",
		Dir:        dir,
	}, nil
}

func (in Instruction) String() string {
	return fmt.Sprintf("q%d %c -> q%d %c %s",
		in.StartState, bit(in.StartValue), in.EndState, bit(in.EndValue), in.Dir)
}

func bit(v bool) byte {
	if v {
		return '1'
	}
	return '0'
}
