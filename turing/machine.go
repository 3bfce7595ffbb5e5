// Package turing implements a single-tape deterministic Turing machine
// over a bit tape, called Machine, that executes one transition per Step.
package turing

import (
	"fmt"
	"strings"
)

const (
	DefaultState    = 1
	DefaultPosition = 0
)

// Machine is a Turing machine with a transition table, a Tape, and the
// current state and head position.
type Machine struct {
	state int
	pos   int
	steps int
	tape  *Tape

	table map[key]Instruction
	order []key // first insertion order of table keys
}

type key struct {
	state int
	value bool
}

// NewMachine returns a Machine in the given state with its head at pos,
// over a tape holding a copy of cells.
// If instrs contains more than one instruction for the same state and value
// then the last one wins.
func NewMachine(instrs []Instruction, cells []bool, state, pos int) *Machine {
	m := &Machine{
		state: state,
		pos:   pos,
		tape:  NewTape(cells),
		table: make(map[key]Instruction, len(instrs)),
	}
	for _, in := range instrs {
		k := key{in.StartState, in.StartValue}
		if _, ok := m.table[k]; !ok {
			m.order = append(m.order, k)
		}
		m.table[k] = in
	}
	return m
}

func (m *Machine) State() int  { return m.state }
func (m *Machine) Pos() int    { return m.pos }
func (m *Machine) Steps() int  { return m.steps }
func (m *Machine) Tape() *Tape { return m.tape }

// Instructions returns the transition table in listing order.
func (m *Machine) Instructions() []Instruction {
	ins := make([]Instruction, len(m.order))
	for i, k := range m.order {
		ins[i] = m.table[k]
	}
	return ins
}

// Value returns the tape value under the head.
func (m *Machine) Value() bool { return m.tape.Read(m.pos) }

// SetValue writes v under the head.
func (m *Machine) SetValue(v bool) { m.tape.Write(m.pos, v) }

// Step executes one transition and reports whether the machine is halted.
// A halted machine is left unchanged.
func (m *Machine) Step() (halted bool) {
	if m.state == 0 {
		return true
	}
	in, ok := m.table[key{m.state, m.Value()}]
	if !ok {
		return true
	}
	m.steps++
	m.SetValue(in.EndValue)
	m.state = in.EndState
	m.pos += int(in.Dir)
	return false
}

// Halted reports whether Step would do nothing.
func (m *Machine) Halted() bool { return m.Halt() != Running }

// Halt reports why the machine is halted, or Running if it is not.
func (m *Machine) Halt() HaltCode {
	if m.state == 0 {
		return HaltState
	}
	if _, ok := m.table[key{m.state, m.Value()}]; !ok {
		return Undefined
	}
	return Running
}

// Err returns a HaltError describing the halt, or nil if the machine is
// still running.
func (m *Machine) Err() error {
	c := m.Halt()
	if c == Running {
		return nil
	}
	return HaltError{HaltCode: c, State: m.state, Value: m.Value(), Pos: m.pos}
}

// Describe returns the step count, state and tape, with a caret under the
// head position.
func (m *Machine) Describe() string {
	return fmt.Sprintf("Step #%d\nSTATE: q%d\n%s\n%s^\n----------------",
		m.steps, m.state, m.tape, strings.Repeat(" ", max(0, m.tape.Cursor(m.pos))))
}

// DescribeInstructions lists the transition table.
func (m *Machine) DescribeInstructions() string {
	var b strings.Builder
	b.WriteString("Instruction set:\n")
	for _, in := range m.Instructions() {
		b.WriteString(in.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// HaltError describes the configuration in which a machine halted.
type HaltError struct {
	HaltCode
	State int
	Value bool
	Pos   int
}

func (e HaltError) Error() string {
	return fmt.Sprintf("%s in q%d reading %c at %d", e.HaltCode, e.State, bit(e.Value), e.Pos)
}

// HaltCode signifies why a machine stopped.
type HaltCode byte

const (
	Running   HaltCode = iota
	HaltState          // reached state 0
	Undefined          // no instruction for the current state and value
)

func (c HaltCode) String() string {
	switch c {
	case Running:
		return "running"
	case HaltState:
		return "halt"
	case Undefined:
		return "undefined instruction"
	}
	return fmt.Sprintf("unknown (%.2x)", byte(c))
}
