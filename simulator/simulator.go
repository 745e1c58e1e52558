package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/k0kubun/pp/v3"

	"ostrich"
	"ostrich/assembler"
)

type options struct {
	cfg     ostrich.Config
	steps   int
	verbose bool
	dump    bool
}

// machineState is what -dump prints.
type machineState struct {
	NextInstruction int
	Done            bool
	History         int
	Registers       []ostrich.Register
	Stack           []byte
}

// run executes a program read from r and writes the final registers to w.
// steps <= 0 runs until the program ends.
func run(r io.Reader, w io.Writer, opts options) error {
	source, err := assembler.Read(r)
	if err != nil {
		return err
	}
	vm, err := ostrich.MakeVm(opts.cfg, source)
	if err != nil {
		return err
	}
	if opts.verbose {
		log.Printf("loaded %d instructions", len(source))
	}

	for n := 0; !vm.Done() && (opts.steps <= 0 || n < opts.steps); n++ {
		inst := vm.Source()[vm.Cpu().NextInstruction()]
		if opts.verbose {
			log.Printf("Executing %v", inst)
		}
		if err := vm.Step(); err != nil {
			return fmt.Errorf("instruction %d (%v): %w", vm.Cpu().NextInstruction(), inst, err)
		}
	}

	for _, reg := range vm.Cpu().Registers() {
		fmt.Fprintf(w, "%s: %016X\n", reg.Name, reg.Value)
	}
	if opts.dump {
		printer := pp.New()
		printer.SetColoringEnabled(false)
		printer.SetOutput(w)
		printer.Println(machineState{
			NextInstruction: vm.Cpu().NextInstruction(),
			Done:            vm.Done(),
			History:         vm.HistoryDepth(),
			Registers:       vm.Cpu().Registers(),
			Stack:           vm.Stack().Content(),
		})
	}
	return nil
}

func main() {
	opts := options{cfg: ostrich.DefaultConfig()}
	flag.Uint64Var(&opts.cfg.StackSize, "stack-size", opts.cfg.StackSize, "stack size in bytes")
	flag.Uint64Var(&opts.cfg.StackBeginning, "stack-beginning", opts.cfg.StackBeginning, "address of the first stack byte")
	flag.IntVar(&opts.steps, "steps", 0, "stop after this many instructions (0 runs to the end)")
	flag.BoolVar(&opts.verbose, "v", false, "log every instruction and state change")
	flag.BoolVar(&opts.dump, "dump", false, "pretty print the final machine state")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [program]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if opts.verbose {
		opts.cfg.Logger = log.Default()
	}

	var r io.Reader = os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		r = f
	}

	if err := run(r, os.Stdout, opts); err != nil {
		log.Fatal(err)
	}
}
