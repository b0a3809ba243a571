package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	clearCmd = "clear"
)

// TerminalRenderer draws a grid as text, one row per line
type TerminalRenderer struct {
	Out io.Writer
}

// NewTerminalRenderer returns a renderer writing to stdout
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{Out: os.Stdout}
}

// Display renders the grid
func (r *TerminalRenderer) Display(g GridView) {
	columns, rows := g.Dimensions()
	cells := g.Snapshot()

	var b strings.Builder
	b.Grow((columns*len(gridPosBlock) + 1) * rows)
	for y := range rows {
		for x := range columns {
			if cells[x][y] {
				b.WriteString(gridPosBlock)
			} else {
				b.WriteString(gridPosEmpty)
			}
		}
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(r.Out, b.String()); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing grid:", err)
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.Out
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error clearing terminal:", err)
	}
}
