package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/idilsaglam/kanban/internal/board"
	"github.com/idilsaglam/kanban/internal/dnd"
	"github.com/idilsaglam/kanban/internal/model"
	"github.com/idilsaglam/kanban/internal/tui"
	"github.com/idilsaglam/kanban/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	ConfigPath string // empty: $KANBAN_CONFIG or ./kanban.toml
	Theme      string // overrides the configured theme
	Stdin      io.Reader
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		if len(a) > 1 {
			ui.Fail("usage: kanban ls [column]")
			return 2
		}
		return withBoard(opt, false, func(s *session) int { return doList(s, a) })

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: kanban add <text...>")
			return 2
		}
		return withBoard(opt, false, func(s *session) int { return doAdd(s, strings.Join(a, " ")) })

	case "mv":
		if len(a) != 3 && len(a) != 4 {
			ui.Fail("usage: kanban mv <from-column> <position> <to-column> [position]")
			return 2
		}
		return withBoard(opt, false, func(s *session) int { return doMove(s, a) })

	case "drop":
		if len(a) > 1 {
			ui.Fail("usage: kanban drop [event.json|-]")
			return 2
		}
		return withBoard(opt, false, func(s *session) int { return doDrop(s, a, opt.Stdin) })

	case "board":
		return withBoard(opt, true, doBoard)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`kanban - a three-column task board

Usage:
  kanban [-config file] [-theme classic|neon|mono] <subcommand> [args]

Subcommands:
  add <text...>                      Add a task to To Do
  ls [column]                        Show the board (or one column)
  mv <from> <pos> <to> [pos]         Move a task; positions are 1-based,
                                     a missing target position appends
  drop [event.json|-]                Apply a drag-completion event (JSON)
  board                              Interactive board

Columns: todo, inProgress (doing), done

Examples:
  kanban add "Write spec"
  kanban mv todo 1 done
  kanban mv done 1 inProgress 1
  echo '{"source":{"droppableId":"todo","index":0},"destination":null}' | kanban drop
`)
}

// -------------- subcommand impls ----------------

func doList(s *session, a []string) int {
	b := s.ctrl.Board()
	keys := model.Keys()
	if len(a) == 1 {
		k, err := parseColumn(a[0])
		if err != nil {
			ui.Fail(err.Error())
			return 2
		}
		keys = []model.ColumnKey{k}
	}
	for _, k := range keys {
		ui.Panel(columnLines(b.MustColumn(k)))
	}
	if len(a) == 0 {
		ui.Panel(summaryLines(b))
	}
	return 0
}

func doAdd(s *session, text string) int {
	before := s.ctrl.Board()
	b, err := s.ctrl.Dispatch(s.ctx, board.AddAction{Text: text})
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if b.Equal(before) {
		ui.Info("nothing to add")
		return 0
	}
	ui.OK(fmt.Sprintf("added to %s (#%d)", b.Todo.Name, len(b.Todo.Tasks)))
	return 0
}

func doMove(s *session, a []string) int {
	b := s.ctrl.Board()
	from, err := parseColumn(a[0])
	if err != nil {
		ui.Fail("mv: " + err.Error())
		return 2
	}
	pos, err := strconv.Atoi(a[1])
	if err != nil {
		ui.Fail("mv: not a number: " + a[1])
		return 2
	}
	to, err := parseColumn(a[2])
	if err != nil {
		ui.Fail("mv: " + err.Error())
		return 2
	}
	// Default target: the end of the destination column.
	dest := len(b.MustColumn(to).Tasks)
	if to == from {
		dest--
	}
	if len(a) == 4 {
		n, err := strconv.Atoi(a[3])
		if err != nil {
			ui.Fail("mv: not a number: " + a[3])
			return 2
		}
		dest = n - 1
	}

	m := board.Move{
		Source: board.Location{Column: from, Index: pos - 1},
		Dest:   &board.Location{Column: to, Index: dest},
	}
	return applyMove(s, m)
}

func doDrop(s *session, a []string, stdin io.Reader) int {
	var (
		data []byte
		err  error
	)
	if len(a) == 0 || a[0] == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(a[0])
	}
	if err != nil {
		ui.Fail("drop: " + err.Error())
		return 1
	}
	ev, err := dnd.Parse(data)
	if err != nil {
		ui.Fail("drop: " + err.Error())
		return 2
	}
	if ev.Destination == nil {
		ui.Info("drag cancelled; board unchanged")
		return 0
	}
	return applyMove(s, ev.Move())
}

func applyMove(s *session, m board.Move) int {
	b, err := s.ctrl.Move(s.ctx, m)
	switch {
	case errors.Is(err, board.ErrIndexOutOfRange), errors.Is(err, board.ErrUnknownColumn):
		ui.Fail("move: " + err.Error())
		fmt.Fprintln(os.Stderr, ui.C(ui.Current().Muted, "Hint: run `kanban ls` to see valid positions"))
		return 2
	case err != nil:
		ui.Fail(err.Error())
		return 1
	}
	task := b.MustColumn(m.Dest.Column).Tasks[m.Dest.Index]
	ui.OK(fmt.Sprintf("moved %q to %s (%s)", ui.Truncate(task.Text, 40), b.MustColumn(m.Dest.Column).Name, task.Priority))
	return 0
}

func doBoard(s *session) int {
	if err := tui.Run(s.ctx, s.ctrl); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

// -------------- rendering helpers --------------

func parseColumn(s string) (model.ColumnKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "to-do", "to_do":
		return model.Todo, nil
	case "inprogress", "in-progress", "in_progress", "doing", "progress":
		return model.InProgress, nil
	case "done":
		return model.Done, nil
	}
	return "", fmt.Errorf("unknown column %q (want todo, inProgress or done)", s)
}

func columnLines(c model.Column) []string {
	t := ui.Current()
	lines := []string{
		fmt.Sprintf("%s  %s", ui.C(t.Title, c.Name), ui.C(t.Muted, fmt.Sprintf("(%d)", len(c.Tasks)))),
		"",
	}
	if len(c.Tasks) == 0 {
		return append(lines, ui.C(t.Muted, "no tasks"))
	}
	for i, task := range c.Tasks {
		idx := fmt.Sprintf("%2d.", i+1)
		badge := ui.C(t.PriorityColor(task.Priority), fmt.Sprintf("[%-6s]", task.Priority))
		lines = append(lines, fmt.Sprintf("%s %s %s  %s",
			ui.Faint(idx), badge, ui.Truncate(task.Text, 60), ui.C(t.Muted, task.CreatedAt)))
	}
	return lines
}

func summaryLines(b model.Board) []string {
	t := ui.Current()
	total := b.Len()
	return []string{
		fmt.Sprintf("%s %s %d  %s %d  %s %d  %s %d",
			ui.C(t.Title, "Board"),
			ui.C(t.Low, t.Bullet), len(b.Todo.Tasks),
			ui.C(t.Medium, t.Arrow), len(b.InProgress.Tasks),
			ui.C(t.Success, "✔"), len(b.Done.Tasks),
			ui.C(t.Accent, "Total"), total,
		),
		ui.C(t.Muted, ui.ProgressBar(len(b.Done.Tasks), total, 28)),
		"",
		ui.C(t.Muted, "Tip: move with `kanban mv todo 1 done`"),
	}
}
