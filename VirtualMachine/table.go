package main

import (
	"fmt"

	"ostrich"
)

type (
	RegisterTableEntry struct {
		reg ostrich.Register
	}
	StackTableEntry struct {
		address ostrich.MachineAddress
		value   byte
		top     bool
	}
	TableEntry interface {
		Row() string
	}
)

func (e RegisterTableEntry) Row() string {
	return fmt.Sprintf("%s: %016X", e.reg.Name, e.reg.Value)
}

// Row marks the byte rsp points at with '>'.
func (e StackTableEntry) Row() string {
	marker := ' '
	if e.top {
		marker = '>'
	}
	return fmt.Sprintf("%c%04X: %02X", marker, e.address, e.value)
}

func registerTable(cpu *ostrich.Cpu) []TableEntry {
	var entries []TableEntry
	for _, reg := range cpu.Registers() {
		entries = append(entries, RegisterTableEntry{reg: reg})
	}
	return entries
}

// stackTable lists the stack from its beginning downwards, one byte per
// entry.
func stackTable(vm *ostrich.Vm) []TableEntry {
	stack := vm.Stack()
	sp := vm.Cpu().Register(ostrich.RegStackPointer)
	var entries []TableEntry
	for idx, b := range stack.Content() {
		address := stack.Beginning() - ostrich.MachineAddress(idx)
		entries = append(entries, StackTableEntry{address: address, value: b, top: address == sp})
	}
	return entries
}

func rows(entries []TableEntry) []string {
	out := make([]string, len(entries))
	for idx, e := range entries {
		out[idx] = e.Row()
	}
	return out
}
