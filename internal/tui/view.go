package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/kanban/internal/model"
)

type entryKind int

const (
	entryTask entryKind = iota
	entryGhost          // carried task, still shown where it came from
	entrySlot           // where the carried task would land
)

type entry struct {
	task model.Task
	kind entryKind
}

// entries lists what column i shows, including the drag preview.
func (m Model) entries(i int) []entry {
	tasks := m.tasks(i)
	out := make([]entry, 0, len(tasks)+1)
	if m.carry == nil {
		for _, t := range tasks {
			out = append(out, entry{task: t})
		}
		return out
	}

	src := model.ColumnKey(m.carry.DroppableID)
	for j, t := range tasks {
		if src == columns[i] && j == m.carry.Index {
			if i != m.col {
				out = append(out, entry{task: t, kind: entryGhost})
			}
			continue
		}
		out = append(out, entry{task: t})
	}
	if i == m.col {
		preview := m.board.MustColumn(src).Tasks[m.carry.Index]
		preview.Priority = model.PriorityFor(columns[i])
		out = slices.Insert(out, m.rows[i], entry{task: preview, kind: entrySlot})
	}
	return out
}

func (m Model) columnWidth() int {
	if m.width <= 0 {
		return 28
	}
	// border (2) + padding (2) per column
	w := m.width/len(columns) - 4
	if w < 16 {
		w = 16
	}
	return w
}

func (m Model) renderColumn(i, width int) string {
	col := m.board.MustColumn(columns[i])
	head := m.st.title.Render(col.Name) + " " + m.st.muted.Render(fmt.Sprintf("(%d)", len(col.Tasks)))
	lines := []string{head, ""}

	entries := m.entries(i)
	if len(entries) == 0 {
		lines = append(lines, m.st.muted.Render("(empty)"))
	}
	for j, e := range entries {
		selected := m.carry == nil && i == m.col && j == m.rows[i]
		lines = append(lines, m.renderEntry(e, selected, width))
	}

	style := m.st.column
	if i == m.col {
		style = m.st.focusedColumn
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderEntry(e entry, selected bool, width int) string {
	prefix := "  "
	switch {
	case selected:
		prefix = m.st.selected.Render(">") + " "
	case e.kind == entrySlot:
		prefix = m.st.carry.Render("▸") + " "
	}

	text := lipgloss.NewStyle().Width(width - 2).Render(e.task.Text)
	switch e.kind {
	case entryGhost:
		text = m.st.ghost.Render(e.task.Text)
	case entrySlot:
		text = m.st.carry.Width(width - 2).Render(e.task.Text)
	}
	body := m.st.badge(e.task.Priority) + "\n" + text + "\n" + m.st.muted.Render(e.task.CreatedAt)

	out := make([]string, 0, 4)
	for k, ln := range strings.Split(body, "\n") {
		if k == 0 {
			out = append(out, prefix+ln)
			continue
		}
		out = append(out, "  "+ln)
	}
	return strings.Join(out, "\n") + "\n"
}

// View implements tea.Model.
func (m Model) View() string {
	b := m.board
	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		m.st.title.Render("Kanban"),
		m.st.accent.Render("todo"), len(b.Todo.Tasks),
		m.st.accent.Render("doing"), len(b.InProgress.Tasks),
		m.st.success.Render("done"), len(b.Done.Tasks),
	)

	width := m.columnWidth()
	cols := make([]string, 0, len(columns))
	for i := range columns {
		cols = append(cols, m.renderColumn(i, width))
	}

	parts := []string{header, lipgloss.JoinHorizontal(lipgloss.Top, cols...)}
	if m.adding {
		parts = append(parts, m.st.inputBox.Render("Add task\n"+m.input.View()))
	}
	switch {
	case m.err != "":
		parts = append(parts, m.st.err.Render("✖ "+m.err))
	case m.status != "":
		parts = append(parts, m.st.muted.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
