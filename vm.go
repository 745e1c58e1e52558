package ostrich

import (
	"log"
	"slices"
)

type Config struct {
	StackSize      MachineAddress
	StackBeginning MachineAddress
	// Logger traces every transition when set.
	Logger *log.Logger
}

func DefaultConfig() Config {
	return Config{
		StackSize:      64,
		StackBeginning: 0xFF,
	}
}

// Vm owns the machine state and a history of the states that preceded it.
// The last entry of history is the live state; the first one is the state
// right after the last Load and is never discarded.
type Vm struct {
	cfg     Config
	history []*Cpu
}

func MakeVm(cfg Config, source Source) (*Vm, error) {
	vm := &Vm{cfg: cfg}
	if err := vm.Load(source); err != nil {
		return nil, err
	}
	return vm, nil
}

func (vm *Vm) current() *Cpu {
	return vm.history[len(vm.history)-1]
}

// Load resets the machine: a fresh stack, the new source, zeroed registers
// and a history holding only that state.
func (vm *Vm) Load(source Source) error {
	stack, err := MakeStack(vm.cfg.StackSize, vm.cfg.StackBeginning)
	if err != nil {
		return err
	}
	vm.history = []*Cpu{MakeCpu(stack, slices.Clone(source))}
	vm.tracef("loaded %d instructions", len(source))
	return nil
}

func (vm *Vm) Step() error {
	return vm.transition(func(cpu *Cpu) error {
		if !cpu.Done() {
			vm.tracef("step %d: %v", cpu.NextInstruction(), cpu.source[cpu.NextInstruction()])
		}
		return cpu.Step()
	})
}

func (vm *Vm) Execute(instruction Instruction) error {
	return vm.transition(func(cpu *Cpu) error {
		vm.tracef("execute: %v", instruction)
		return cpu.Execute(instruction)
	})
}

// transition runs f against a copy of the live state and only keeps the
// copy if f succeeds.
func (vm *Vm) transition(f func(*Cpu) error) error {
	next := vm.current().clone()
	if err := f(next); err != nil {
		vm.tracef("failed: %v", err)
		return err
	}
	vm.history = append(vm.history, next)
	return nil
}

// RestorePreviousState drops the live state. It does nothing when only the
// state created by Load is left.
func (vm *Vm) RestorePreviousState() {
	if len(vm.history) <= 1 {
		return
	}
	vm.history[len(vm.history)-1] = nil
	vm.history = vm.history[:len(vm.history)-1]
	vm.tracef("restored state %d", len(vm.history)-1)
}

// Cpu, Stack and Source return copies of the live state. Changing them
// leaves the Vm and its history alone.
func (vm *Vm) Cpu() *Cpu {
	return vm.current().clone()
}

func (vm *Vm) Stack() *Stack {
	return vm.current().stack.Clone()
}

func (vm *Vm) Source() Source {
	return slices.Clone(vm.current().source)
}

func (vm *Vm) Done() bool {
	return vm.current().Done()
}

// HistoryDepth counts the snapshots, live state included.
func (vm *Vm) HistoryDepth() int {
	return len(vm.history)
}

func (vm *Vm) Config() Config {
	return vm.cfg
}

func (vm *Vm) tracef(format string, args ...any) {
	if vm.cfg.Logger != nil {
		vm.cfg.Logger.Printf(format, args...)
	}
}
