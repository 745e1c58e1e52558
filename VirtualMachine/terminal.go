package main

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

type Terminal struct {
	screen    tcell.Screen
	session   *Session
	editor    LineEditor
	help      *HelpMenu
	completor *Completor
	// hint lists completion candidates until the next key press
	hint string
}

func NewTerminal(screen tcell.Screen, session *Session) *Terminal {
	return &Terminal{
		screen:    screen,
		session:   session,
		help:      NewHelpMenu(),
		completor: NewCompletor(NewFileExplorer("asm", "s", "txt")),
	}
}

func (t *Terminal) Draw() {
	t.screen.Clear()
	width, height := t.screen.Size()
	vm := t.session.Vm()
	l := computeLayout(width, height, int(vm.Stack().Size()))

	if t.session.ShowHelp() {
		for row, line := range t.help.Lines() {
			if row >= l.Rows {
				break
			}
			drawText(t.screen, 1, row, l.StackX, styleDefault, line)
		}
	} else {
		next := vm.Cpu().NextInstruction()
		for row, inst := range vm.Source() {
			if row >= l.Rows {
				break
			}
			marker := " "
			if row == next {
				marker = "*"
			}
			x := drawText(t.screen, l.SourceX, row, l.RegistersX, styleDefault, marker)
			drawHighlighted(t.screen, x, row, l.RegistersX, inst.String())
		}
		drawColumns(t.screen, l.RegistersX, l.Rows, registerWidth, l.StackX,
			rows(registerTable(vm.Cpu())), func(int) tcell.Style { return styleRegister })
	}

	stack := stackTable(vm)
	drawColumns(t.screen, l.StackX, l.Rows, stackColumnWidth, l.Width, rows(stack),
		func(idx int) tcell.Style {
			if stack[idx].(StackTableEntry).top {
				return styleStackTop
			}
			return styleDefault
		})

	message := t.session.Message()
	if t.hint != "" {
		message = t.hint
	}
	drawText(t.screen, 0, l.MessageY, l.Width, styleMessage, message)

	x := drawText(t.screen, 0, l.PromptY, l.Width, stylePrompt, prompt)
	drawText(t.screen, x, l.PromptY, l.Width, styleDefault, t.editor.Text())
	t.screen.ShowCursor(x+t.editor.CursorColumn(), l.PromptY)
	t.screen.Show()
}

// HandleEvent applies one event and reports false once the user quits.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		t.hint = ""
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyCtrlD:
			return false
		case tcell.KeyEnter:
			return !t.session.Run(t.editor.Submit())
		case tcell.KeyTab:
			t.complete()
		default:
			t.editor.HandleKey(ev)
		}
	}
	return true
}

func (t *Terminal) complete() {
	prefix, candidates := t.completor.Suggest(t.editor.BeforeCursor())
	switch len(candidates) {
	case 0:
		return
	case 1:
		completion := candidates[0].Label
		if candidates[0].Kind != "Directory" {
			completion += " "
		}
		t.editor.Replace(len([]rune(prefix)), completion)
	default:
		if common := commonPrefix(candidates); len(common) > len(prefix) {
			t.editor.Replace(len([]rune(prefix)), common)
		}
		labels := make([]string, len(candidates))
		for idx, c := range candidates {
			labels[idx] = c.Label
		}
		t.hint = strings.Join(labels, "  ")
	}
}

// Run draws and handles events until the user quits or the screen is
// finalized.
func (t *Terminal) Run() {
	for {
		t.Draw()
		ev := t.screen.PollEvent()
		if ev == nil || !t.HandleEvent(ev) {
			return
		}
	}
}
