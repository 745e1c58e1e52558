package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText writes text from column x of row y and returns the column after
// it. Nothing is drawn at or past maxX.
func drawText(s tcell.Screen, x, y, maxX int, style tcell.Style, text string) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

// drawHighlighted writes an assembly line with its syntax styles.
func drawHighlighted(s tcell.Screen, x, y, maxX int, text string) int {
	pos := 0
	for _, span := range HighlightLine(text) {
		x = drawText(s, x, y, maxX, styleDefault, text[pos:span.start])
		x = drawText(s, x, y, maxX, span.style, text[span.start:span.end])
		pos = span.end
	}
	return drawText(s, x, y, maxX, styleDefault, text[pos:])
}

// drawColumns fills rows top to bottom and wraps into further columns of
// colWidth cells.
func drawColumns(s tcell.Screen, x, rows, colWidth, maxX int, cells []string, styleOf func(int) tcell.Style) {
	for idx, text := range cells {
		col := x + (idx/rows)*colWidth
		drawText(s, col, idx%rows, maxX, styleOf(idx), text)
	}
}
