package main

import (
	"github.com/gdamore/tcell/v2"
)

var (
	styleDefault     = tcell.StyleDefault
	styleInstruction = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleRegister    = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleKeyword     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleNumber      = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleStackTop    = tcell.StyleDefault.Reverse(true)
	styleMessage     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	stylePrompt      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

const (
	prompt = "(ostrich) "

	sourceColumn     = 5
	registerWidth    = len("rax: 0000000000000000")
	stackColumnWidth = len(">00FF: 00") + 3
)

// Layout places the panes on a screen: source on the left, registers from
// 40% of the width, stack columns flush right. The last two rows hold the
// message line and the prompt.
type Layout struct {
	Width, Height int

	SourceX    int
	RegistersX int
	StackX     int
	StackCols  int

	Rows     int
	MessageY int
	PromptY  int
}

func computeLayout(width, height, stackBytes int) Layout {
	l := Layout{
		Width:      width,
		Height:     height,
		SourceX:    sourceColumn,
		RegistersX: int(float64(width) * 0.4),
		Rows:       max(height-2, 1),
		MessageY:   max(height-2, 0),
		PromptY:    max(height-1, 0),
	}
	l.StackCols = (stackBytes + l.Rows - 1) / l.Rows
	l.StackX = width - l.StackCols*stackColumnWidth
	// stack columns that do not fit are cut off on the right
	l.StackX = max(l.StackX, l.RegistersX+registerWidth+2)
	return l
}
