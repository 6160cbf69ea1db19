// Package models defines the core domain types for stimer.
package models

// Task is one row of the tasks table. End is nil while the task is open.
type Task struct {
	ID     int64  `json:"id"`
	Record string `json:"record"`
	Start  int64  `json:"start"`
	End    *int64 `json:"end,omitempty"`
}

// Duration returns end - start in seconds, or 0 for an open task.
func (t Task) Duration() int64 {
	if t.End == nil {
		return 0
	}
	return *t.End - t.Start
}

// OpenTask is a currently running task as returned by status queries.
type OpenTask struct {
	Record string `json:"record"`
	Start  int64  `json:"start"`
}

// RecordTotal is the summed duration of one record label within a report.
type RecordTotal struct {
	Record  string `json:"record"`
	Seconds int64  `json:"seconds"`
}
