package main

import (
	"fmt"

	"ostrich"
)

type HelpMenu struct {
	commands     []string
	instructions []string
	registers    []string
}

func NewHelpMenu() *HelpMenu {
	hm := &HelpMenu{}
	hm.commands = []string{
		"s, step        execute the next instruction",
		"b, back        undo the last step or instruction",
		"'<instruction> execute an instruction, e.g. 'mov rax 5",
		"load <path>    load a program and reset the machine",
		"h, help        show this list",
		"q, quit        leave",
		"<enter>        repeat the last command",
	}
	for _, kind := range ostrich.InstructionSet() {
		hm.instructions = append(hm.instructions, fmt.Sprintf("%-4s %s", kind.Name, kind.Desc))
	}
	for reg := ostrich.RegisterName(0); reg < ostrich.RegisterCount; reg++ {
		info := reg.Info()
		hm.registers = append(hm.registers, fmt.Sprintf("%s - %s", info.Name, info.Desc))
	}
	return hm
}

// Lines lays the menu out as one titled section per list.
func (hm *HelpMenu) Lines() []string {
	var lines []string
	section := func(title string, items []string) {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, title)
		for _, item := range items {
			lines = append(lines, "  "+item)
		}
	}
	section("Commands", hm.commands)
	section("Instructions", hm.instructions)
	section("Registers", hm.registers)
	return lines
}
