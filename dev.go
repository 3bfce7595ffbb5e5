package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/tux/sim"
	"github.com/nf/tux/turing"
)

// devMode runs the program in file, resetting the machine whenever the
// file changes. With debug, the machine is controlled from a debugger;
// otherwise it runs continuously, printing each configuration.
func devMode(cfg config, gui, debug bool, file string) error {
	file = filepath.Clean(file)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(file)); err != nil {
		return err
	}

	p, err := readProgram(file)
	if err != nil {
		return err
	}

	var (
		fs  []sim.StateFunc
		d   *debugger
		g   *sim.GUI
		run *sim.Runner
	)
	if debug {
		d = newDebugger()
		d.setProgram(p)
		fs = append(fs, d.StateFunc)
	} else {
		fs = append(fs, printState)
	}
	if gui {
		fs = append(fs, func(m *turing.Machine, k sim.StateKind) { g.StateFunc(m, k) })
	}
	run = sim.NewRunner(true, guiDelay(cfg), sim.Fanout(fs...))
	if gui {
		g = sim.NewGUI(run, cfg.Cell)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if d != nil {
		d.run = run
		log.SetPrefix("")
		log.SetOutput(d.log)
		go func() {
			if err := d.Run(); err != nil {
				log.Fatalf("debug: %v", err)
			}
			log.SetOutput(os.Stderr)
			log.SetPrefix("tux: ")
			run.Debug("exit", 0)
		}()
	}

	go func() {
		var reload <-chan time.Time
		for {
			select {
			case <-reload:
				reload = nil
				p, err := readProgram(file)
				if err != nil {
					log.Printf("dev: %v", err)
					break
				}
				log.Printf("dev: reset")
				if d != nil {
					d.setProgram(p)
				}
				run.Reset(p)
				if d == nil {
					run.Debug("cont", 0)
				}
			case ev := <-watcher.Event:
				if ev.Name == file && !ev.IsAttrib() {
					reload = time.After(100 * time.Millisecond)
				}
			case err := <-watcher.Error:
				log.Printf("dev: watcher: %v", err)
			case <-ctx.Done():
				return
			}
		}
	}()
	if d == nil {
		go run.Debug("cont", 0)
	}

	if g == nil {
		return run.Run(ctx, p)
	}
	exit := make(chan bool)
	errc := make(chan error, 1)
	go func() {
		errc <- run.Run(ctx, p)
		close(exit)
	}()
	if err := g.Run(exit); err != nil {
		return err
	}
	cancel()
	if err := <-errc; err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func printState(m *turing.Machine, k sim.StateKind) {
	switch k {
	case sim.ClearState:
		fmt.Print(m.DescribeInstructions())
		fmt.Println(m.Describe())
	case sim.StepState, sim.BreakState:
		fmt.Println(m.Describe())
	case sim.HaltState:
		if m.Steps() > 0 {
			fmt.Println(m.Describe())
		}
		fmt.Println("Machine ended its operation")
	}
}
