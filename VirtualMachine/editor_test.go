package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestLineEditor(t *testing.T) {
	var ed LineEditor
	ed.Insert("inc rx")
	ed.HandleKey(key(tcell.KeyLeft))
	ed.Insert("a")
	if ed.Text() != "inc rax" || ed.BeforeCursor() != "inc ra" || ed.CursorColumn() != 6 {
		t.Errorf("unexpected editor state %q %q", ed.Text(), ed.BeforeCursor())
	}

	ed.HandleKey(key(tcell.KeyEnd))
	ed.HandleKey(key(tcell.KeyBackspace2))
	ed.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	ed.HandleKey(key(tcell.KeyHome))
	ed.HandleKey(key(tcell.KeyDelete))
	if ed.Text() != "nc rax" || ed.CursorColumn() != 0 {
		t.Errorf("unexpected editor state %q", ed.Text())
	}

	ed.Replace(10, "'i")
	if ed.Text() != "'inc rax" {
		t.Errorf("unexpected editor state %q", ed.Text())
	}
}

func TestLineEditorHistory(t *testing.T) {
	var ed LineEditor
	for _, line := range []string{"s", "", "'inc rax"} {
		ed.SetText(line)
		if got := ed.Submit(); got != line {
			t.Errorf("expected %q, got %q", line, got)
		}
	}
	if ed.Text() != "" {
		t.Errorf("submit did not clear the line")
	}

	ed.HandleKey(key(tcell.KeyUp))
	if ed.Text() != "'inc rax" {
		t.Errorf("expected the last line, got %q", ed.Text())
	}
	ed.HandleKey(key(tcell.KeyUp))
	ed.HandleKey(key(tcell.KeyUp))
	if ed.Text() != "s" {
		t.Errorf("expected the first line, got %q", ed.Text())
	}
	ed.HandleKey(key(tcell.KeyDown))
	ed.HandleKey(key(tcell.KeyDown))
	if ed.Text() != "" {
		t.Errorf("expected an empty line past the history, got %q", ed.Text())
	}
}

func TestHighlightLine(t *testing.T) {
	text := "mov rax qword ptr [rsp+8]"
	want := []styledSpan{
		{0, 3, styleInstruction},
		{4, 7, styleRegister},
		{8, 13, styleKeyword},
		{14, 17, styleKeyword},
		{19, 22, styleRegister},
		{23, 24, styleNumber},
	}
	got := HighlightLine(text)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Errorf("%d: expected %v, got %v", idx, want[idx], got[idx])
		}
	}

	if spans := HighlightLine("movrax x0x1"); len(spans) != 0 {
		t.Errorf("expected no spans, got %v", spans)
	}
}
