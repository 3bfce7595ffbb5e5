// Package sim drives Turing machines for interactive front ends.
package sim

import (
	"context"
	"log"
	"time"

	"github.com/nf/tux/turing"
)

// StateKind describes why a StateFunc was called.
type StateKind int

const (
	StepState  StateKind = iota // a transition was executed
	PauseState                  // execution was paused
	BreakState                  // execution reached a breakpoint
	HaltState                   // the machine halted
	ClearState                  // a new machine was started
)

// StateFunc is called by Runner on its own goroutine with the machine it
// is running. It must not retain m.
type StateFunc func(m *turing.Machine, k StateKind)

type debugCmd struct {
	cmd   string
	state int
}

// Runner executes a machine built from a Program, one step every delay,
// and accepts commands that pause, step and reset it.
type Runner struct {
	dev   bool
	delay time.Duration
	state StateFunc

	reset     chan *turing.Program
	resetDone chan bool
	debug     chan debugCmd
	done      chan struct{}
}

// NewRunner returns a Runner that calls f after every state change.
// In dev mode the Runner starts paused and keeps running after the machine
// halts, so that it may be reset.
func NewRunner(devMode bool, delay time.Duration, f StateFunc) *Runner {
	if f == nil {
		f = func(*turing.Machine, StateKind) {}
	}
	return &Runner{
		dev:       devMode,
		delay:     delay,
		state:     f,
		reset:     make(chan *turing.Program),
		resetDone: make(chan bool),
		debug:     make(chan debugCmd),
		done:      make(chan struct{}),
	}
}

// Reset replaces the running machine with one built from p.
// It may only be called in dev mode, while Run is executing.
func (r *Runner) Reset(p *turing.Program) {
	if !r.dev {
		panic("Reset called while not running in dev mode")
	}
	select {
	case r.reset <- p:
		<-r.resetDone
	case <-r.done:
	}
}

// Debug sends a command to the Runner. It blocks until Run receives it,
// and does nothing once Run has returned.
// The break command takes a state; a negative state clears all breakpoints.
func (r *Runner) Debug(cmd string, state int) {
	select {
	case r.debug <- debugCmd{cmd, state}:
	case <-r.done:
	}
}

// Run executes p until it halts (or, in dev mode, until it receives the
// exit command) or ctx is done. Run may only be called once.
func (r *Runner) Run(ctx context.Context, p *turing.Program) error {
	defer close(r.done)

	var (
		m      = p.Machine()
		paused = r.dev
		breaks = map[int]bool{}
	)
	r.state(m, ClearState)
	if paused {
		r.state(m, PauseState)
	}
	halted := r.checkHalt(m)
	if halted && !r.dev {
		return nil
	}

	step := func() {
		m.Step()
		if halted = r.checkHalt(m); halted {
			return
		}
		if breaks[m.State()] {
			paused = true
			r.state(m, BreakState)
			return
		}
		r.state(m, StepState)
	}

	for {
		var tick <-chan time.Time
		if !paused && !halted {
			tick = time.After(r.delay)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()

		case np := <-r.reset:
			p = np
			m, paused = p.Machine(), true
			r.state(m, ClearState)
			r.state(m, PauseState)
			halted = r.checkHalt(m)
			r.resetDone <- true

		case c := <-r.debug:
			switch c.cmd {
			case "exit":
				return nil
			case "s", "step":
				if !halted {
					paused = true
					step()
				}
			case "c", "cont":
				paused = false
			case "p", "pause":
				if !paused && !halted {
					paused = true
					r.state(m, PauseState)
				}
			case "b", "break":
				if c.state < 0 {
					breaks = map[int]bool{}
					log.Print("sim: cleared breakpoints")
				} else {
					breaks[c.state] = true
					log.Printf("sim: break at q%d", c.state)
				}
			case "r", "reset":
				m, paused = p.Machine(), true
				r.state(m, ClearState)
				r.state(m, PauseState)
				halted = r.checkHalt(m)
			default:
				log.Printf("sim: unknown command %q", c.cmd)
			}

		case <-tick:
			step()
		}

		if halted && !r.dev {
			return nil
		}
	}
}

// checkHalt reports whether m is halted, and notifies the StateFunc if so.
func (r *Runner) checkHalt(m *turing.Machine) bool {
	if !m.Halted() {
		return false
	}
	r.state(m, HaltState)
	log.Printf("sim: %v after %d steps", m.Err(), m.Steps())
	return true
}

// Fanout returns a StateFunc that calls each of fs in turn.
func Fanout(fs ...StateFunc) StateFunc {
	return func(m *turing.Machine, k StateKind) {
		for _, f := range fs {
			f(m, k)
		}
	}
}
