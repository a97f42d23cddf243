package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/kanban/internal/app"
	"github.com/idilsaglam/kanban/internal/board"
	"github.com/idilsaglam/kanban/internal/logging"
	"github.com/idilsaglam/kanban/internal/model"
	"github.com/idilsaglam/kanban/internal/ui"
)

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newReducer() *board.Store {
	n := 0
	return board.New(board.WithIDSource(func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}))
}

// newBoard returns a model over a controller seeded with texts in todo.
func newBoard(t *testing.T, texts ...string) (Model, *app.Controller) {
	t.Helper()
	ctx := context.Background()
	ctrl := app.New(nil, newReducer(), logging.Discard())
	ctrl.Start(ctx)
	for _, text := range texts {
		if _, err := ctrl.Dispatch(ctx, board.AddAction{Text: text}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return New(ctx, ctrl), ctrl
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func TestAddTaskFromInput(t *testing.T) {
	m, ctrl := newBoard(t)
	m = press(t, m, runes("a"))
	if !m.adding {
		t.Fatal("expected add mode")
	}
	m = press(t, m, runes("Write spec"), keyEnter)

	if m.adding {
		t.Fatal("add mode should end on enter")
	}
	if m.input.Value() != "" {
		t.Fatalf("input not cleared: %q", m.input.Value())
	}
	b := ctrl.Board()
	if len(b.Todo.Tasks) != 1 || b.Todo.Tasks[0].Text != "Write spec" || b.Todo.Tasks[0].Priority != model.Low {
		t.Fatalf("unexpected todo column: %#v", b.Todo.Tasks)
	}
	if !m.board.Equal(b) {
		t.Fatal("model board out of sync with controller")
	}
}

func TestAddBlankTaskIsNoop(t *testing.T) {
	m, ctrl := newBoard(t, "existing")
	before := ctrl.Board()
	m = press(t, m, runes("a"), runes("   "), keyEnter)
	if !ctrl.Board().Equal(before) {
		t.Fatalf("blank submission changed the board: %#v", ctrl.Board())
	}
	if m.status != "nothing to add" {
		t.Fatalf("status: got %q", m.status)
	}
}

func TestEscAbortsAdd(t *testing.T) {
	m, ctrl := newBoard(t)
	m = press(t, m, runes("a"), runes("draft"), keyEsc)
	if m.adding || ctrl.Board().Len() != 0 {
		t.Fatalf("esc should abort add (adding=%v, tasks=%d)", m.adding, ctrl.Board().Len())
	}
}

func TestDragScenario(t *testing.T) {
	m, ctrl := newBoard(t, "Write spec")

	m = press(t, m, keySpace)
	if m.carry == nil {
		t.Fatal("space should pick up the task")
	}
	m = press(t, m, keyRight, keyRight, keySpace)
	b := ctrl.Board()
	if len(b.Todo.Tasks) != 0 || len(b.Done.Tasks) != 1 || b.Done.Tasks[0].Priority != model.High {
		t.Fatalf("after drop on done: %#v", b)
	}
	if m.carry != nil {
		t.Fatal("drop should end the drag")
	}

	m = press(t, m, keySpace, keyLeft, keyEnter)
	b = ctrl.Board()
	if len(b.InProgress.Tasks) != 1 || b.InProgress.Tasks[0].Priority != model.Medium {
		t.Fatalf("after drop on inProgress: %#v", b)
	}
	if m.col != 1 || m.rows[1] != 0 {
		t.Fatalf("cursor should follow the task, got col %d row %d", m.col, m.rows[1])
	}
}

func TestDragMatchesMoveTask(t *testing.T) {
	m, ctrl := newBoard(t, "a", "b", "c")
	start := ctrl.Board()

	// Pick up todo[0] and drop it in the last slot of todo.
	m = press(t, m, keySpace, keyDown, keyDown, keyDown, keySpace)

	want := newReducer().MoveTask(start, board.Move{
		Source: board.Location{Column: model.Todo, Index: 0},
		Dest:   &board.Location{Column: model.Todo, Index: 2},
	})
	if !ctrl.Board().Equal(want) {
		t.Fatalf("got %#v\nwant %#v", ctrl.Board().Todo.Tasks, want.Todo.Tasks)
	}
	if m.rows[0] != 2 {
		t.Fatalf("cursor row: got %d, want 2", m.rows[0])
	}
}

func TestDropSlotsInOtherColumn(t *testing.T) {
	m, ctrl := newBoard(t, "a", "b")
	m = press(t, m, keySpace, keyRight, keySpace) // a -> inProgress[0]
	m = press(t, m, keyLeft, keySpace, keyRight, keyDown, keyDown)
	if m.rows[1] != 1 {
		t.Fatalf("carrying into a column of 1 should allow slot 1, got %d", m.rows[1])
	}
	press(t, m, keySpace)
	got := ctrl.Board().InProgress.Tasks
	if len(got) != 2 || got[0].Text != "a" || got[1].Text != "b" {
		t.Fatalf("unexpected inProgress: %#v", got)
	}
}

func TestEscCancelsDrag(t *testing.T) {
	m, ctrl := newBoard(t, "a", "b")
	before := ctrl.Board()

	m = press(t, m, keyDown, keySpace, keyRight, keyRight, keyEsc)
	if !ctrl.Board().Equal(before) {
		t.Fatalf("cancelled drag changed the board: %#v", ctrl.Board())
	}
	if m.carry != nil {
		t.Fatal("esc should end the drag")
	}
	if m.col != 0 || m.rows[0] != 1 {
		t.Fatalf("focus should return to the source, got col %d row %d", m.col, m.rows[0])
	}
	if m.status != "move cancelled" {
		t.Fatalf("status: got %q", m.status)
	}
}

func TestPickUpEmptyColumn(t *testing.T) {
	m, _ := newBoard(t)
	m = press(t, m, keySpace)
	if m.carry != nil {
		t.Fatal("nothing to pick up in an empty column")
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m, _ := newBoard(t, "a", "b")
	m = press(t, m, keyUp, keyUp, keyLeft)
	if m.col != 0 || m.rows[0] != 0 {
		t.Fatalf("got col %d row %d", m.col, m.rows[0])
	}
	m = press(t, m, keyDown, keyDown, keyDown, keyRight, keyRight, keyRight)
	if m.col != 2 || m.rows[0] != 1 || m.rows[2] != 0 {
		t.Fatalf("got col %d rows %v", m.col, m.rows)
	}
}

func TestViewShowsBoardAndPreview(t *testing.T) {
	m, _ := newBoard(t, "Write spec")
	m = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	v := m.View()
	for _, want := range []string{"To Do", "In Progress", "Done", "Write spec", "Low"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q:\n%s", want, v)
		}
	}

	m = press(t, m, keySpace, keyRight, keyRight)
	v = m.View()
	if !strings.Contains(v, "High") {
		t.Fatalf("drop preview should show the destination priority:\n%s", v)
	}
	if !strings.Contains(v, "moving") {
		t.Fatalf("expected drag status line:\n%s", v)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newBoard(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}
}

func TestStylesFollowTheme(t *testing.T) {
	t.Cleanup(func() { ui.SetTheme("classic") })

	ui.SetTheme("classic")
	classic := newStyles(ui.Current())
	if got := classic.priority[model.High].GetBackground(); got != lipgloss.Color("42") {
		t.Fatalf("classic High badge background: got %#v", got)
	}

	ui.SetTheme("mono")
	m, _ := newBoard(t, "a")
	for name, got := range map[string]lipgloss.TerminalColor{
		"badge":  m.st.priority[model.Medium].GetBackground(),
		"error":  m.st.err.GetForeground(),
		"carry":  m.st.carry.GetForeground(),
		"border": m.st.focusedColumn.GetBorderTopForeground(),
	} {
		if got != (lipgloss.NoColor{}) {
			t.Errorf("mono %s color: got %#v", name, got)
		}
	}
	if !strings.Contains(m.View(), "Low") {
		t.Fatal("mono view should still label priorities")
	}
}
