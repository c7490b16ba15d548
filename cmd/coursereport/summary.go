package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/claes/coursereport/internal/model"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Align(lipgloss.Center)
	cellStyle      = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	totalStyle     = cellStyle.Bold(true)
)

func summaryTable(cat *model.Catalog) string {
	totalRow := len(cat.Courses)
	table := lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		Headers("Course", "Weeks", "Assignments", "Notebooks", "With tests").
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch row {
			case lgtable.HeaderRow:
				return headerRowStyle
			case totalRow:
				s = totalStyle
			default:
				s = cellStyle
			}
			if col == 0 {
				return s.Align(lipgloss.Left)
			}
			return s.Align(lipgloss.Right)
		})
	for _, c := range cat.Courses {
		t := c.Totals()
		table.Row(fmt.Sprintf("Course %d: %s", c.Number, c.Title),
			count(t.Weeks), count(t.Assignments), count(t.Notebooks), count(t.TestedAssignments))
	}
	t := cat.Totals
	table.Row(fmt.Sprintf("Total (%s courses)", count(t.Courses)),
		count(t.Weeks), count(t.Assignments), count(t.Notebooks), count(t.TestedAssignments))
	return table.Render()
}

func count(n int) string { return humanize.Comma(int64(n)) }

func humanBytes(n int) string { return humanize.Bytes(uint64(n)) }
