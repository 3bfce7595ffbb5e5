package main

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/tux/sim"
	"github.com/nf/tux/turing"
)

type debugger struct {
	run *sim.Runner

	log   *tview.TextView
	instr *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application

	mu     sync.Mutex
	prog   *turing.Program
	breaks []int
}

func (d *debugger) program() *turing.Program {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.prog
}

func (d *debugger) setProgram(p *turing.Program) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prog = p
}

var debugCommands = []string{"step", "cont", "pause", "break", "reset", "exit"}

func newDebugger() *debugger {
	d := &debugger{
		log: tview.NewTextView().
			SetMaxLines(1000),
		instr: tview.NewTextView().
			SetWrap(false).
			SetDynamicColors(true),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.instr.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.instr, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 6, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetAutocompleteFunc(d.complete)
	d.input.SetAutocompletedFunc(func(t string, index, src int) bool {
		if src != tview.AutocompletedNavigate {
			d.input.SetText(t)
		}
		return src == tview.AutocompletedEnter || src == tview.AutocompletedClick
	})
	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := d.input.GetText()
		if cmd == "" {
			return
		}
		d.input.SetText("")
		if cmd == "exit" {
			d.app.Stop()
			return
		}
		d.command(cmd)
	})
	return d
}

// complete suggests commands, and states for the break command.
func (d *debugger) complete(t string) (entries []string) {
	if t == "" {
		return nil
	}
	if cmd, arg, ok := strings.Cut(t, " "); ok {
		switch cmd {
		case "b", "break":
			for _, s := range states(d.program()) {
				if l := fmt.Sprintf("q%d", s); strings.HasPrefix(l, arg) {
					entries = append(entries, cmd+" "+l)
				}
			}
		}
		return
	}
	for _, c := range debugCommands {
		if strings.HasPrefix(c, t) {
			entries = append(entries, c)
		}
	}
	return
}

// command executes a debugger command other than exit.
func (d *debugger) command(cmd string) {
	if cmd, arg, ok := strings.Cut(cmd, " "); ok {
		switch cmd {
		case "b", "break":
			s, err := parseState(arg)
			if err != nil {
				log.Printf("invalid state %q", arg)
				return
			}
			d.mu.Lock()
			d.breaks = append(d.breaks, s)
			d.mu.Unlock()
			d.run.Debug(cmd, s)
			return
		}
		log.Printf("unknown command %q", cmd)
		return
	}
	switch cmd {
	case "b", "break":
		d.mu.Lock()
		d.breaks = nil
		d.mu.Unlock()
		d.run.Debug(cmd, -1)
	case "s", "step", "c", "cont", "p", "pause", "r", "reset":
		d.run.Debug(cmd, 0)
	default:
		log.Printf("unknown command %q", cmd)
	}
}

func parseState(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "q"))
	if err == nil && v < 0 {
		err = fmt.Errorf("negative state %d", v)
	}
	return v, err
}

// states returns the states named by the instructions of p, in order.
func states(p *turing.Program) []int {
	if p == nil {
		return nil
	}
	seen := map[int]bool{}
	var ss []int
	for _, in := range p.Instructions {
		for _, s := range []int{in.StartState, in.EndState} {
			if !seen[s] {
				seen[s] = true
				ss = append(ss, s)
			}
		}
	}
	sort.Ints(ss)
	return ss
}

func (d *debugger) Run() error { return d.app.Run() }

func (d *debugger) StateFunc(m *turing.Machine, k sim.StateKind) {
	var (
		instr = d.instrContent(m)
		state = stateMsg(m, k)
	)
	d.app.QueueUpdateDraw(func() {
		switch k {
		case sim.StepState, sim.ClearState:
			d.state.SetTextColor(tcell.ColorBlack)
			d.state.SetBackgroundColor(tcell.ColorDarkGrey)
		case sim.BreakState:
			d.state.SetTextColor(tcell.ColorYellow)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case sim.PauseState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case sim.HaltState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkRed)
		}
		d.instr.SetText(instr)
		d.state.SetText(state)
	})
}

func stateMsg(m *turing.Machine, k sim.StateKind) string {
	kind := "       "
	switch k {
	case sim.BreakState:
		kind = "[break]"
	case sim.PauseState:
		kind = "[pause]"
	case sim.HaltState:
		kind = "[HALT!]"
	}
	msg := m.Describe()
	if k == sim.HaltState {
		msg += "\n" + m.Err().Error()
	}
	return kind + " " + msg
}

// instrContent lists the instructions of m, marking the one that applies
// next and the breakpoints.
func (d *debugger) instrContent(m *turing.Machine) string {
	d.mu.Lock()
	breaks := append([]int(nil), d.breaks...)
	d.mu.Unlock()

	var b strings.Builder
	for _, s := range breaks {
		fmt.Fprintf(&b, "break q%d\n", s)
	}
	if len(breaks) > 0 {
		b.WriteByte('\n')
	}
	for _, in := range m.Instructions() {
		if in.StartState == m.State() && in.StartValue == m.Value() {
			fmt.Fprintf(&b, "[yellow]> %s[-]\n", in)
		} else {
			fmt.Fprintf(&b, "  %s\n", in)
		}
	}
	return b.String()
}
