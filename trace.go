package main

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/nf/tux/turing"
)

// writeTrace runs p, printing the instruction set and the machine's
// configuration after each step to w, and calling ack between steps.
// If traceFile is not empty the printed trace is also written there.
func writeTrace(w io.Writer, traceFile string, p *turing.Program, ack acknowledger) error {
	var (
		m   = p.Machine()
		buf bytes.Buffer
		out = w
	)
	if traceFile != "" {
		out = io.MultiWriter(w, &buf)
	}

	fmt.Fprintln(out, m.DescribeInstructions())
	fmt.Fprintln(out, m.Describe())

	stopped := false
	for !m.Step() {
		if err := ack.Ack(); err == errStopped {
			stopped = true
			break
		} else if err != nil {
			return err
		}
		fmt.Fprintln(out, m.Describe())
	}

	if stopped {
		fmt.Fprintln(out, "Machine stopped")
		log.Printf("stopped after %d steps", m.Steps())
	} else {
		fmt.Fprintln(out, "Machine ended its operation")
		log.Printf("%v after %d steps", m.Err(), m.Steps())
	}

	if traceFile != "" {
		return writeFile(traceFile, &buf)
	}
	return nil
}
