package ui

import (
	"strings"
	"testing"

	"github.com/idilsaglam/kanban/internal/model"
)

// forceColor makes C emit escapes for the rest of the test.
func forceColor(t *testing.T) {
	t.Helper()
	prev := colorOutput
	colorOutput = func() bool { return true }
	t.Cleanup(func() { colorOutput = prev })
}

func TestColorGates(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if colorOutput() {
		t.Fatal("NO_COLOR should turn color off")
	}

	forceColor(t)
	t.Cleanup(func() { SetTheme("classic") })
	SetTheme("classic")
	if got := C(fgRed, "x"); got != fgRed+"x"+reset {
		t.Fatalf("classic: got %q", got)
	}
	if got := Faint("1."); got != dim+"1."+reset {
		t.Fatalf("faint: got %q", got)
	}
	if got := C("", "x"); got != "x" {
		t.Fatalf("empty color: got %q", got)
	}
	SetTheme("mono")
	if got := C(fgRed, "x"); got != "x" {
		t.Fatalf("mono: got %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 10, "░░░░░░░░░░   0%"},
		{1, 2, 10, "█████░░░░░  50%"},
		{3, 3, 5, "█████ 100%"},
		{1, 4, 2, "█░░░░  25%"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%d, %d, %d): got %q, want %q", tt.done, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestPanelStringMono(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	got := PanelString([]string{"To Do", C(fgRed, "ab")})
	want := "+-------+\n| To Do |\n| ab    |\n+-------+\n"
	if got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
}

func TestPanelPadsByVisibleWidth(t *testing.T) {
	SetTheme("classic")
	forceColor(t)

	out := PanelString([]string{C(fgGreen, "✔ done"), "todo..."})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for _, ln := range lines {
		if w := visibleWidth(ln); w != visibleWidth(lines[0]) {
			t.Fatalf("ragged panel line %q (width %d)", stripANSI(ln), w)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("ünïcödé text here", 8); got != "ünïcö..." {
		t.Errorf("got %q", got)
	}
}

func TestPriorityColor(t *testing.T) {
	th := themeFor("classic")
	if th.PriorityColor(model.Low) != fgBlue || th.PriorityColor(model.High) != fgMagenta {
		t.Fatalf("unexpected palette: %#v", th)
	}
	if themeFor("mono").PriorityColor(model.Medium) != "" {
		t.Fatal("mono theme should not color priorities")
	}
}
