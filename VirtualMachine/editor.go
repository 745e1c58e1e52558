package main

import (
	"regexp"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"ostrich"
)

// LineEditor is the prompt's input line with a history of submitted lines.
type LineEditor struct {
	text    []rune
	cursor  int
	history []string
	recall  int
}

func (ed *LineEditor) Text() string {
	return string(ed.text)
}

// BeforeCursor is the part of the line left of the cursor.
func (ed *LineEditor) BeforeCursor() string {
	return string(ed.text[:ed.cursor])
}

// CursorColumn is the cell offset of the cursor from the line start.
func (ed *LineEditor) CursorColumn() int {
	return runewidth.StringWidth(ed.BeforeCursor())
}

func (ed *LineEditor) SetText(text string) {
	ed.text = []rune(text)
	ed.cursor = len(ed.text)
}

func (ed *LineEditor) Insert(text string) {
	ins := []rune(text)
	ed.text = slices.Insert(ed.text, ed.cursor, ins...)
	ed.cursor += len(ins)
}

// Replace swaps the n runes left of the cursor for text.
func (ed *LineEditor) Replace(n int, text string) {
	n = min(n, ed.cursor)
	ed.text = slices.Delete(ed.text, ed.cursor-n, ed.cursor)
	ed.cursor -= n
	ed.Insert(text)
}

// Submit returns the line and clears it. Non-empty lines go to the history.
func (ed *LineEditor) Submit() string {
	line := ed.Text()
	if strings.TrimSpace(line) != "" {
		ed.history = append(ed.history, line)
	}
	ed.recall = len(ed.history)
	ed.text, ed.cursor = nil, 0
	return line
}

func (ed *LineEditor) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		ed.Insert(string(ev.Rune()))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if ed.cursor > 0 {
			ed.text = slices.Delete(ed.text, ed.cursor-1, ed.cursor)
			ed.cursor--
		}
	case tcell.KeyDelete:
		if ed.cursor < len(ed.text) {
			ed.text = slices.Delete(ed.text, ed.cursor, ed.cursor+1)
		}
	case tcell.KeyLeft:
		ed.cursor = max(ed.cursor-1, 0)
	case tcell.KeyRight:
		ed.cursor = min(ed.cursor+1, len(ed.text))
	case tcell.KeyHome, tcell.KeyCtrlA:
		ed.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		ed.cursor = len(ed.text)
	case tcell.KeyCtrlU:
		ed.text, ed.cursor = nil, 0
	case tcell.KeyUp:
		if ed.recall > 0 {
			ed.recall--
			ed.SetText(ed.history[ed.recall])
		}
	case tcell.KeyDown:
		if ed.recall < len(ed.history) {
			ed.recall++
		}
		if ed.recall == len(ed.history) {
			ed.SetText("")
		} else {
			ed.SetText(ed.history[ed.recall])
		}
	}
}

var highlightPatterns []highlightPattern

type highlightPattern struct {
	re    *regexp.Regexp
	style tcell.Style
}

type styledSpan struct {
	start, end int
	style      tcell.Style
}

func init() {
	var instructionNames []string
	for _, kind := range ostrich.InstructionSet() {
		instructionNames = append(instructionNames, kind.Name)
	}
	var registerNames []string
	for reg := ostrich.RegisterName(0); reg < ostrich.RegisterCount; reg++ {
		registerNames = append(registerNames, reg.Info().Name)
	}
	highlightPatterns = []highlightPattern{
		{regexp.MustCompile(`\b(` + strings.Join(instructionNames, "|") + `)\b`), styleInstruction},
		{regexp.MustCompile(`\b(` + strings.Join(registerNames, "|") + `)\b`), styleRegister},
		{regexp.MustCompile(`\b(qword|ptr)\b`), styleKeyword},
		{regexp.MustCompile(`\b(0x[0-9a-fA-F]+|0b[01]+|0o[0-7]+|[0-9]+)\b`), styleNumber},
	}
}

// HighlightLine styles the assembly in text. Spans are sorted and do not
// overlap.
func HighlightLine(text string) []styledSpan {
	var spans []styledSpan
	for _, p := range highlightPatterns {
		for _, match := range p.re.FindAllStringIndex(text, -1) {
			spans = append(spans, styledSpan{start: match[0], end: match[1], style: p.style})
		}
	}
	slices.SortFunc(spans, func(l, r styledSpan) int {
		return l.start - r.start
	})
	return spans
}
