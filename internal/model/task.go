package model

// Priority is the label a task carries. It is derived from the column the
// task sits in and rewritten on every move.
type Priority string

const (
	Low    Priority = "Low"
	Medium Priority = "Medium"
	High   Priority = "High"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case Low, Medium, High:
		return true
	}
	return false
}

// Task is a single card on the board.
// ID and Text never change after creation; Priority follows the column.
type Task struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Priority  Priority `json:"priority"`
	CreatedAt string   `json:"date"`
}
