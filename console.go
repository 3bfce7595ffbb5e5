package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/nf/tux/turing"
)

type prompter interface {
	Prompt(prompt string) (string, error)
}

// acknowledger waits between steps of the text trace.
type acknowledger interface {
	Ack() error
}

// errStopped is returned by Ack when the user asks to stop the machine.
var errStopped = errors.New("stopped")

// console reads lines from the terminal with line editing and history.
type console struct {
	l       *liner.State
	history string
}

func newConsole(history bool) *console {
	c := &console{l: liner.NewLiner()}
	c.l.SetCtrlCAborts(true)
	if history {
		c.history = historyFile()
		if f, err := os.Open(c.history); err == nil {
			c.l.ReadHistory(f)
			f.Close()
		}
	}
	return c
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tux_history")
}

func (c *console) Prompt(prompt string) (string, error) {
	line, err := c.l.Prompt(prompt)
	if err == liner.ErrPromptAborted {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		c.l.AppendHistory(line)
	}
	return line, nil
}

// Ack waits for enter. Entering q stops the machine.
func (c *console) Ack() error {
	line, err := c.l.Prompt("")
	if err == liner.ErrPromptAborted || err == io.EOF {
		return errStopped
	}
	if err != nil {
		return err
	}
	switch strings.TrimSpace(line) {
	case "q", "quit":
		return errStopped
	}
	return nil
}

func (c *console) Close() error {
	if c.history != "" {
		if f, err := os.Create(c.history); err == nil {
			c.l.WriteHistory(f)
			f.Close()
		}
	}
	return c.l.Close()
}

// sleeper acknowledges every step after a fixed delay.
type sleeper time.Duration

func (s sleeper) Ack() error {
	time.Sleep(time.Duration(s))
	return nil
}

// enterProgram prompts for the instructions, initial word, state and
// position of a program.
func enterProgram(w io.Writer, p prompter) (*turing.Program, error) {
	prog := &turing.Program{}

	fmt.Fprintln(w, "Enter instructions")
	for {
		line, err := p.Prompt("")
		if err != nil {
			return nil, fmt.Errorf("reading instructions: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		in, err := turing.ParseInstruction(line)
		if err != nil {
			fmt.Fprintln(w, "Bad instruction, enter again")
			continue
		}
		prog.Instructions = append(prog.Instructions, in)
	}

	word, err := p.Prompt("Enter initial word: ")
	if err != nil {
		return nil, fmt.Errorf("reading initial word: %w", err)
	}
	prog.Tape = turing.ParseTape(strings.TrimSpace(word))

	prog.State, err = promptInt(w, p, "Initial state [default 1]: ", turing.DefaultState, 0)
	if err != nil {
		return nil, fmt.Errorf("reading initial state: %w", err)
	}
	prog.Pos, err = promptInt(w, p, "Initial position [default 0]: ", turing.DefaultPosition, math.MinInt)
	if err != nil {
		return nil, fmt.Errorf("reading initial position: %w", err)
	}
	return prog, nil
}

// promptInt prompts until it reads an integer no less than least.
// An empty line yields def.
func promptInt(w io.Writer, p prompter, prompt string, def, least int) (int, error) {
	for {
		line, err := p.Prompt(prompt)
		if err != nil {
			return 0, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return def, nil
		}
		v, err := strconv.Atoi(line)
		if err == nil && v >= least {
			return v, nil
		}
		fmt.Fprintf(w, "Bad number %q, enter again\n", line)
	}
}
