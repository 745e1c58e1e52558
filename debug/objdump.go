package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/k0kubun/pp/v3"

	"ostrich/assembler"
)

// objdump prints every decoded instruction of a program: its index, its
// canonical text and its structure.
func objdump(r io.Reader, w io.Writer, colored bool) error {
	source, err := assembler.Read(r)
	if err != nil {
		return err
	}
	printer := pp.New()
	printer.SetColoringEnabled(colored)
	printer.SetOutput(w)
	for idx, inst := range source {
		fmt.Fprintf(w, "%04d  %v\n", idx, inst)
		if _, err := printer.Println(inst); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	var r io.Reader = os.Stdin

	if len(os.Args) == 2 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		r = f
	}

	if err := objdump(r, os.Stdout, true); err != nil {
		log.Fatal(err)
	}
}
