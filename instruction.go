package ostrich

import (
	"fmt"
)

// Operand is a register, an immediate or a memory reference.
type Operand interface {
	operand()
}

type Immediate MachineWord

func (RegisterName) operand()  {}
func (Immediate) operand()     {}
func (MemoryAddress) operand() {}

func (i Immediate) String() string {
	return fmt.Sprintf("0x%X", uint64(i))
}

func FormatOperand(op Operand) string {
	switch op := op.(type) {
	case RegisterName:
		return op.String()
	case Immediate:
		return op.String()
	case MemoryAddress:
		return "qword ptr [" + op.String() + "]"
	case nil:
		return "<nil>"
	}
	return fmt.Sprintf("%v", op)
}

// Instruction is one of Inc, Dec, Add, Mov, Push or Pop.
type Instruction interface {
	fmt.Stringer
	Mnemonic() string
	instruction()
}

type (
	Inc struct {
		Register RegisterName
	}
	Dec struct {
		Register RegisterName
	}
	Add struct {
		Destination RegisterName
		Source      Operand
	}
	Mov struct {
		Destination RegisterName
		Source      Operand
	}
	Push struct {
		Register RegisterName
	}
	Pop struct {
		Register RegisterName
	}
)

type InstructionKind struct {
	Name    string
	NumArgs int
	Desc    string
}

type kind = InstructionKind // shorthand for these defs
var instructionSet = []InstructionKind{
	kind{Name: "inc", NumArgs: 1, Desc: "reg += 1"},
	kind{Name: "dec", NumArgs: 1, Desc: "reg -= 1"},
	kind{Name: "add", NumArgs: 2, Desc: "reg += reg|imm|mem"},
	kind{Name: "mov", NumArgs: 2, Desc: "reg = reg|imm|mem"},
	kind{Name: "push", NumArgs: 1, Desc: "[rsp] = reg; rsp -= 8"},
	kind{Name: "pop", NumArgs: 1, Desc: "rsp += 8; reg = [rsp]"},
}

// InstructionSet lists every instruction in a fixed order.
func InstructionSet() []InstructionKind {
	return append([]InstructionKind(nil), instructionSet...)
}

func LookupInstruction(mnemonic string) (InstructionKind, bool) {
	for _, k := range instructionSet {
		if k.Name == mnemonic {
			return k, true
		}
	}
	return InstructionKind{}, false
}

func (Inc) instruction()  {}
func (Dec) instruction()  {}
func (Add) instruction()  {}
func (Mov) instruction()  {}
func (Push) instruction() {}
func (Pop) instruction()  {}

func (Inc) Mnemonic() string  { return "inc" }
func (Dec) Mnemonic() string  { return "dec" }
func (Add) Mnemonic() string  { return "add" }
func (Mov) Mnemonic() string  { return "mov" }
func (Push) Mnemonic() string { return "push" }
func (Pop) Mnemonic() string  { return "pop" }

func format(mnemonic string, operands ...string) string {
	out := fmt.Sprintf("%-4s", mnemonic)
	for _, op := range operands {
		out += " " + op
	}
	return out
}

func (i Inc) String() string  { return format(i.Mnemonic(), i.Register.String()) }
func (i Dec) String() string  { return format(i.Mnemonic(), i.Register.String()) }
func (i Push) String() string { return format(i.Mnemonic(), i.Register.String()) }
func (i Pop) String() string  { return format(i.Mnemonic(), i.Register.String()) }

func (i Add) String() string {
	return format(i.Mnemonic(), i.Destination.String(), FormatOperand(i.Source))
}

func (i Mov) String() string {
	return format(i.Mnemonic(), i.Destination.String(), FormatOperand(i.Source))
}
