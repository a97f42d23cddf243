// Package tui is the interactive board. Tasks are moved with a keyboard
// drag: pick a task up, carry it to a slot in any column, then drop it or
// cancel. Each finished drag is reported as a drop event.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/kanban/internal/board"
	"github.com/idilsaglam/kanban/internal/dnd"
	"github.com/idilsaglam/kanban/internal/model"
	"github.com/idilsaglam/kanban/internal/ui"
)

// Controller is the part of app.Controller the board needs.
type Controller interface {
	Board() model.Board
	Dispatch(ctx context.Context, a board.Action) (model.Board, error)
	Move(ctx context.Context, m board.Move) (model.Board, error)
}

var columns = model.Keys()

// Model implements tea.Model.
type Model struct {
	ctx   context.Context
	ctrl  Controller
	board model.Board

	keys  keyMap
	st    styles
	help  help.Model
	input textinput.Model

	col   int    // focused column
	rows  [3]int // cursor (or drop slot while carrying) per column
	carry *dnd.Location

	adding bool
	status string
	err    string
	width  int
}

// New builds the board model around ctrl's current board, styled with
// the active ui theme.
func New(ctx context.Context, ctrl Controller) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New task..."
	ti.CharLimit = 200

	return Model{
		ctx:   ctx,
		ctrl:  ctrl,
		board: ctrl.Board(),
		keys:  defaultKeys(),
		st:    newStyles(ui.Current()),
		help:  help.New(),
		input: ti,
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, ctrl Controller) error {
	p := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.input.Value()
		m.input.Reset()
		m.input.Blur()
		m.adding = false
		m.submit(text)
		return m, nil
	case "esc":
		m.input.Reset()
		m.input.Blur()
		m.adding = false
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
	case key.Matches(msg, m.keys.Right):
		if m.col < len(columns)-1 {
			m.col++
		}
	case key.Matches(msg, m.keys.Up):
		if m.rows[m.col] > 0 {
			m.rows[m.col]--
		}
	case key.Matches(msg, m.keys.Down):
		if m.rows[m.col] < m.limit(m.col) {
			m.rows[m.col]++
		}
	case key.Matches(msg, m.keys.Grab):
		if m.carry == nil {
			m.pickUp()
		} else {
			m.drop(false)
		}
	case key.Matches(msg, m.keys.Cancel):
		if m.carry != nil {
			m.drop(true)
		}
	case key.Matches(msg, m.keys.Add):
		if m.carry == nil {
			m.adding = true
			m.err = ""
			cmd := m.input.Focus()
			return m, cmd
		}
	}
	m.clamp()
	return m, nil
}

func (m *Model) submit(text string) {
	b, err := m.ctrl.Dispatch(m.ctx, board.AddAction{Text: text})
	m.setBoard(b, err)
	if err != nil || strings.TrimSpace(text) == "" {
		if err == nil {
			m.status = "nothing to add"
		}
		return
	}
	m.col = 0
	m.rows[0] = len(b.Todo.Tasks) - 1
	m.status = "added"
}

func (m *Model) pickUp() {
	tasks := m.tasks(m.col)
	if len(tasks) == 0 {
		return
	}
	m.carry = &dnd.Location{DroppableID: string(columns[m.col]), Index: m.rows[m.col]}
	m.err = ""
	m.status = "moving " + quote(tasks[m.rows[m.col]].Text)
}

// drop ends the current drag, at the focused slot or nowhere.
func (m *Model) drop(cancel bool) {
	src := *m.carry
	m.carry = nil

	ev := dnd.Drop(src, dnd.Location{DroppableID: string(columns[m.col]), Index: m.rows[m.col]})
	if cancel {
		ev = dnd.Cancel(src)
	}
	b, err := m.ctrl.Move(m.ctx, ev.Move())
	m.setBoard(b, err)
	if err != nil {
		return
	}
	if cancel {
		m.col = columnIndex(model.ColumnKey(src.DroppableID))
		m.rows[m.col] = src.Index
		m.status = "move cancelled"
		return
	}
	m.status = "moved to " + b.MustColumn(columns[m.col]).Name
}

func (m *Model) setBoard(b model.Board, err error) {
	m.board = b
	m.err = ""
	m.status = ""
	if err != nil {
		m.err = err.Error()
	}
	m.clamp()
}

func (m Model) tasks(i int) []model.Task {
	return m.board.MustColumn(columns[i]).Tasks
}

// limit is the highest cursor row in column i. While carrying it is the
// highest insert slot, read after the carried task leaves its column.
func (m Model) limit(i int) int {
	n := len(m.tasks(i))
	if m.carry == nil || model.ColumnKey(m.carry.DroppableID) == columns[i] {
		return n - 1
	}
	return n
}

func (m *Model) clamp() {
	for i := range m.rows {
		if l := m.limit(i); m.rows[i] > l {
			m.rows[i] = l
		}
		if m.rows[i] < 0 {
			m.rows[i] = 0
		}
	}
}

func columnIndex(k model.ColumnKey) int {
	return slices.Index(columns, k)
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
