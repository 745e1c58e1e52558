package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"ostrich"
	"ostrich/assembler"
)

var (
	errSyntax      = errors.New("syntax error")
	errMissingPath = errors.New("load: missing file name")
)

// Session interprets REPL commands against a Vm. Message holds the outcome
// of the last command for the message line.
type Session struct {
	vm       *ostrich.Vm
	previous string
	message  string
	showHelp bool
}

func NewSession(vm *ostrich.Vm) *Session {
	return &Session{vm: vm}
}

func (s *Session) Vm() *ostrich.Vm {
	return s.vm
}

func (s *Session) Message() string {
	return s.message
}

func (s *Session) ShowHelp() bool {
	return s.showHelp
}

// Run executes one command line and reports whether the user asked to quit.
// An empty line repeats the last successful command. A failed command is
// not repeated.
func (s *Session) Run(command string) bool {
	command = strings.TrimSpace(command)
	if command == "" {
		if s.previous == "" {
			return false
		}
		command = s.previous
	}

	quit, err := s.dispatch(command)
	if err != nil {
		s.message = err.Error()
		s.previous = ""
		return false
	}
	s.previous = command
	return quit
}

func (s *Session) dispatch(command string) (bool, error) {
	s.message = ""
	s.showHelp = false

	switch {
	case command == "s" || command == "step":
		if err := s.vm.Step(); err != nil {
			return false, err
		}
		if s.vm.Done() {
			s.message = "end of program"
		}
	case command == "q" || command == "quit":
		return true, nil
	case command == "b" || command == "back":
		s.vm.RestorePreviousState()
	case command == "h" || command == "help":
		s.showHelp = true
	case strings.HasPrefix(command, "'"):
		inst, err := assembler.ParseInstruction(command[1:])
		if err != nil {
			return false, err
		}
		return false, s.vm.Execute(inst)
	case command == "load" || strings.HasPrefix(command, "load "):
		return false, s.load(strings.TrimSpace(strings.TrimPrefix(command, "load")))
	default:
		return false, fmt.Errorf("%w: '%s'", errSyntax, command)
	}
	return false, nil
}

func (s *Session) load(path string) error {
	if path == "" {
		return errMissingPath
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	source, err := assembler.Read(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := s.vm.Load(source); err != nil {
		return err
	}
	s.message = fmt.Sprintf("loaded %d instructions from %s", len(source), path)
	return nil
}
