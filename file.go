package main

import (
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"

	"github.com/nf/tux/turing"
)

func readProgram(name string) (*turing.Program, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := turing.ReadProgram(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

// writeFile replaces the named file with the contents of r, so that
// readers never see a partial trace.
func writeFile(name string, r io.Reader) error {
	if err := atomic.WriteFile(name, r); err != nil {
		return fmt.Errorf("writing %s: %v", name, err)
	}
	return nil
}
