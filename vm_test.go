package ostrich_test

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"ostrich"
)

func mustVm(t *testing.T, source ostrich.Source) *ostrich.Vm {
	t.Helper()
	vm, err := ostrich.MakeVm(ostrich.DefaultConfig(), source)
	if err != nil {
		t.Fatal(err)
	}
	return vm
}

type machineState struct {
	cursor int
	regs   []ostrich.Register
	stack  []byte
}

func stateOf(vm *ostrich.Vm) machineState {
	return machineState{
		cursor: vm.Cpu().NextInstruction(),
		regs:   vm.Cpu().Registers(),
		stack:  vm.Stack().Content(),
	}
}

func (s machineState) equal(o machineState) bool {
	if s.cursor != o.cursor || !bytes.Equal(s.stack, o.stack) {
		return false
	}
	for idx := range s.regs {
		if s.regs[idx] != o.regs[idx] {
			return false
		}
	}
	return true
}

func TestVmEndToEnd(t *testing.T) {
	vm := mustVm(t, ostrich.Source{
		ostrich.Mov{Destination: rax, Source: ostrich.Immediate(2)},
		ostrich.Mov{Destination: rbx, Source: ostrich.Immediate(4)},
		ostrich.Add{Destination: rax, Source: rbx},
	})
	for !vm.Done() {
		if err := vm.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if vm.Cpu().Register(rax) != 6 || vm.Cpu().Register(rbx) != 4 {
		t.Errorf("expected rax=6 rbx=4, got %d %d", vm.Cpu().Register(rax), vm.Cpu().Register(rbx))
	}
}

func TestVmPushPop(t *testing.T) {
	vm := mustVm(t, ostrich.Source{
		ostrich.Mov{Destination: rax, Source: ostrich.Immediate(3)},
		ostrich.Push{Register: rax},
		ostrich.Pop{Register: rbx},
	})
	sp := vm.Cpu().Register(rsp)
	for i := 0; i < 3; i++ {
		if err := vm.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if vm.Cpu().Register(rsp) != sp || vm.Cpu().Register(rbx) != 3 {
		t.Errorf("expected rsp=0x%x rbx=3, got 0x%x %d", sp, vm.Cpu().Register(rsp), vm.Cpu().Register(rbx))
	}
}

func TestVmUndo(t *testing.T) {
	vm := mustVm(t, ostrich.Source{
		ostrich.Mov{Destination: rax, Source: ostrich.Immediate(3)},
		ostrich.Push{Register: rax},
		ostrich.Inc{Register: rax},
		ostrich.Pop{Register: rbx},
	})
	initial := stateOf(vm)
	vm.Step()
	vm.Step()
	afterTwo := stateOf(vm)
	vm.Step()
	if stateOf(vm).equal(afterTwo) {
		t.Fatalf("third step changed nothing")
	}
	vm.RestorePreviousState()
	if !stateOf(vm).equal(afterTwo) {
		t.Errorf("expected %+v, got %+v", afterTwo, stateOf(vm))
	}
	for i := 0; i < 5; i++ {
		vm.RestorePreviousState()
	}
	if !stateOf(vm).equal(initial) {
		t.Errorf("expected the initial state, got %+v", stateOf(vm))
	}
	if vm.HistoryDepth() != 1 {
		t.Errorf("expected only the initial snapshot, got %d", vm.HistoryDepth())
	}
}

func TestVmSnapshotsAreIsolated(t *testing.T) {
	vm := mustVm(t, ostrich.Source{
		ostrich.Mov{Destination: rax, Source: ostrich.Immediate(1)},
		ostrich.Push{Register: rax},
		ostrich.Push{Register: rax},
	})
	vm.Step()
	vm.Step()
	saved := stateOf(vm)
	stack := vm.Stack()
	vm.Step()
	if stack == vm.Stack() {
		t.Errorf("live stack aliases the snapshot")
	}
	vm.RestorePreviousState()
	if !stateOf(vm).equal(saved) {
		t.Errorf("snapshot changed after later steps")
	}
}

func TestVmExecuteDoesNotMoveCursor(t *testing.T) {
	vm := mustVm(t, ostrich.Source{ostrich.Inc{Register: rax}})
	if err := vm.Execute(ostrich.Mov{Destination: rbx, Source: ostrich.Immediate(9)}); err != nil {
		t.Fatal(err)
	}
	if vm.Cpu().NextInstruction() != 0 || vm.Cpu().Register(rbx) != 9 {
		t.Errorf("unexpected state %+v", stateOf(vm))
	}
	if vm.HistoryDepth() != 2 {
		t.Errorf("expected 2 snapshots, got %d", vm.HistoryDepth())
	}
	vm.RestorePreviousState()
	if vm.Cpu().Register(rbx) != 0 {
		t.Errorf("execute was not undone")
	}
}

func TestVmExecuteMemoryOperand(t *testing.T) {
	vm := mustVm(t, nil)
	mem := ostrich.MemoryAddress{Base: rsp, Displacement: 8}
	steps := []ostrich.Instruction{
		ostrich.Mov{Destination: rax, Source: ostrich.Immediate(21)},
		ostrich.Push{Register: rax},
		ostrich.Add{Destination: rax, Source: mem},
		ostrich.Mov{Destination: rcx, Source: mem},
	}
	for _, inst := range steps {
		if err := vm.Execute(inst); err != nil {
			t.Fatalf("%v: %v", inst, err)
		}
	}
	if vm.Cpu().Register(rax) != 42 || vm.Cpu().Register(rcx) != 21 {
		t.Errorf("expected rax=42 rcx=21, got %d %d", vm.Cpu().Register(rax), vm.Cpu().Register(rcx))
	}
}

func TestVmFailedTransition(t *testing.T) {
	vm := mustVm(t, ostrich.Source{ostrich.Pop{Register: rax}})
	before := stateOf(vm)
	if err := vm.Step(); !errors.Is(err, ostrich.ErrStackUnderflow) {
		t.Fatalf("expected underflow, got %v", err)
	}
	if err := vm.Execute(ostrich.Pop{Register: rbx}); !errors.Is(err, ostrich.ErrStackUnderflow) {
		t.Fatalf("expected underflow, got %v", err)
	}
	if !stateOf(vm).equal(before) || vm.HistoryDepth() != 1 {
		t.Errorf("failed transitions changed the vm: %+v, depth %d", stateOf(vm), vm.HistoryDepth())
	}
}

func TestVmLoad(t *testing.T) {
	vm := mustVm(t, ostrich.Source{ostrich.Push{Register: rsp}})
	vm.Step()
	vm.Execute(ostrich.Inc{Register: rax})
	source := ostrich.Source{ostrich.Inc{Register: rbx}}
	if err := vm.Load(source); err != nil {
		t.Fatal(err)
	}
	source[0] = ostrich.Dec{Register: rbx}
	if vm.Source()[0] != (ostrich.Inc{Register: rbx}) {
		t.Errorf("vm aliases the loaded source")
	}
	if vm.HistoryDepth() != 1 || vm.Cpu().NextInstruction() != 0 {
		t.Errorf("load did not reset history and cursor")
	}
	if vm.Cpu().Register(rax) != 0 || vm.Cpu().Register(rsp) != vm.Stack().Beginning() {
		t.Errorf("load did not reset registers")
	}
	if !bytes.Equal(vm.Stack().Content(), make([]byte, ostrich.DefaultConfig().StackSize)) {
		t.Errorf("load did not reset the stack")
	}
}

func TestVmStepPastEnd(t *testing.T) {
	vm := mustVm(t, nil)
	if err := vm.Step(); err != nil {
		t.Fatal(err)
	}
	vm.RestorePreviousState()
	if vm.HistoryDepth() != 1 {
		t.Errorf("expected depth 1, got %d", vm.HistoryDepth())
	}
}

func TestVmAccessorsReturnCopies(t *testing.T) {
	vm := mustVm(t, ostrich.Source{ostrich.Inc{Register: rax}})
	initial := stateOf(vm)

	if err := vm.Cpu().Step(); err != nil {
		t.Fatal(err)
	}
	if err := vm.Stack().Store(0xFF, 7); err != nil {
		t.Fatal(err)
	}
	vm.Source()[0] = ostrich.Dec{Register: rax}

	if vm.HistoryDepth() != 1 || !stateOf(vm).equal(initial) {
		t.Errorf("accessors changed the live state: %+v", stateOf(vm))
	}
	if vm.Source()[0] != (ostrich.Inc{Register: rax}) {
		t.Errorf("accessor changed the source: %v", vm.Source())
	}

	if err := vm.Step(); err != nil {
		t.Fatal(err)
	}
	vm.RestorePreviousState()
	if !stateOf(vm).equal(initial) {
		t.Errorf("initial snapshot changed: %+v", stateOf(vm))
	}
}

func TestVmInvalidConfig(t *testing.T) {
	_, err := ostrich.MakeVm(ostrich.Config{StackSize: 64, StackBeginning: 10}, nil)
	if !errors.Is(err, ostrich.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestVmTrace(t *testing.T) {
	var buf bytes.Buffer
	cfg := ostrich.DefaultConfig()
	cfg.Logger = log.New(&buf, "", 0)
	vm, err := ostrich.MakeVm(cfg, ostrich.Source{ostrich.Inc{Register: rax}})
	if err != nil {
		t.Fatal(err)
	}
	vm.Step()
	vm.Execute(ostrich.Pop{Register: rax})
	for _, want := range []string{"loaded 1 instructions", "step 0: inc  rax", "execute: pop  rax", "failed: stack underflow"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in trace:\n%s", want, buf.String())
		}
	}
}
