// Command tux simulates single-tape Turing machines.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/nf/tux/sim"
	"github.com/nf/tux/turing"
)

const version = "0.3.0"

func main() {
	log.SetPrefix("tux: ")
	log.SetFlags(0)

	var (
		nostepFlag  = pflag.Bool("nostep", false, "print every step without waiting for enter")
		delayFlag   = pflag.Duration("delay", 0, "pause between steps (with --nostep, --gui or --debug)")
		traceFlag   = pflag.String("trace", "", "also write the trace to `file`")
		configFlag  = pflag.String("config", "", "read settings from `file`")
		devFlag     = pflag.Bool("dev", false, "enable developer mode (re-load and reset the machine when the program changes)")
		debugFlag   = pflag.Bool("debug", false, "enable debugger (implies --dev)")
		guiFlag     = pflag.Bool("gui", false, "show the tape in a window")
		versionFlag = pflag.Bool("version", false, "print version and exit")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [--nostep] [--delay d] [--trace file] [program]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [--gui] <--dev | --debug> <program>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s --gui <program>\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(2)
	}
	pflag.Parse()

	if *versionFlag {
		fmt.Printf("tux version %s\n", version)
		return
	}
	if pflag.NArg() > 1 {
		pflag.Usage()
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatal(err)
	}
	if pflag.Lookup("nostep").Changed {
		cfg.NoStep = *nostepFlag
	}
	if pflag.Lookup("delay").Changed {
		cfg.Delay = *delayFlag
	}

	if *devFlag || *debugFlag || *guiFlag {
		if pflag.NArg() != 1 {
			pflag.Usage()
		}
		if *devFlag || *debugFlag {
			err = devMode(cfg, *guiFlag, *debugFlag, pflag.Arg(0))
		} else {
			err = guiMode(cfg, pflag.Arg(0))
		}
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := run(cfg, pflag.Arg(0), *traceFlag); err != nil {
		log.Fatal(err)
	}
}

// run prints the trace of a program read from file or, if file is empty,
// entered at the console.
func run(cfg config, file, traceFile string) error {
	con := newConsole(cfg.History)
	defer con.Close()

	var (
		p   *turing.Program
		err error
	)
	if file == "" {
		p, err = enterProgram(os.Stdout, con)
	} else {
		p, err = readProgram(file)
	}
	if err != nil {
		return err
	}

	var ack acknowledger = con
	if cfg.NoStep {
		ack = sleeper(cfg.Delay)
	}
	return writeTrace(os.Stdout, traceFile, p, ack)
}

// guiMode runs a program in a window until the machine halts and the
// window is closed.
func guiMode(cfg config, file string) error {
	p, err := readProgram(file)
	if err != nil {
		return err
	}
	var g *sim.GUI
	r := sim.NewRunner(false, guiDelay(cfg), func(m *turing.Machine, k sim.StateKind) {
		g.StateFunc(m, k)
	})
	g = sim.NewGUI(r, cfg.Cell)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := r.Run(ctx, p); err != nil && err != context.Canceled {
			log.Printf("run: %v", err)
		}
	}()
	return g.Run(nil)
}

// guiDelay returns the step delay for the windowed and debugger modes,
// which are unwatchable without one.
func guiDelay(cfg config) time.Duration {
	if cfg.Delay > 0 {
		return cfg.Delay
	}
	return 250 * time.Millisecond
}
