package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"ostrich"
	"ostrich/assembler"
)

func main() {
	cfg := ostrich.DefaultConfig()
	flag.Uint64Var(&cfg.StackSize, "stack-size", cfg.StackSize, "stack size in bytes")
	flag.Uint64Var(&cfg.StackBeginning, "stack-beginning", cfg.StackBeginning, "address of the first stack byte")
	tracePath := flag.String("trace", "", "append a trace of every state change to this file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [program]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *tracePath != "" {
		traceFile, err := os.OpenFile(*tracePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer traceFile.Close()
		cfg.Logger = log.New(traceFile, "ostrich: ", log.LstdFlags|log.Lmicroseconds)
	}

	var source ostrich.Source
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		source, err = assembler.Read(f)
		f.Close()
		if err != nil {
			log.Fatalf("%s: %v", flag.Arg(0), err)
		}
	}

	vm, err := ostrich.MakeVm(cfg, source)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	NewTerminal(screen, NewSession(vm)).Run()
}
