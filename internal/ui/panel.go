package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ProgressBar renders ratio (0..1, clamped) as a bar with percentage.
// Ratios above 1 still show the real percentage.
func ProgressBar(ratio float64, width int) string {
	if width < 5 {
		width = 5
	}
	if ratio < 0 {
		ratio = 0
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	t := Current()
	bar := strings.Repeat(t.BarFull, filled) + strings.Repeat(t.BarEmpty, width-filled)
	return fmt.Sprintf("%s %3d%%", bar, int(ratio*100))
}

// Panel draws a framed box using the current theme.
func Panel(lines []string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Table renders rows under headers; columns listed in rightAligned are
// right-justified and accented (amounts).
func Table(headers []string, rows [][]string, rightAligned ...int) string {
	t := Current()
	right := make(map[int]bool, len(rightAligned))
	for _, c := range rightAligned {
		right[c] = true
	}
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(t.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.BorderColor)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cell
			if row == table.HeaderRow {
				s = s.Inherit(t.Title)
			}
			if right[col] {
				s = s.Align(lipgloss.Right)
				if row != table.HeaderRow {
					s = s.Inherit(t.Accent)
				}
			}
			return s
		}).
		Render()
}
