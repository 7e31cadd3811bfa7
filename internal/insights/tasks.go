package insights

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"farmflow/internal/core"
)

// DefaultUpcomingWindow is how far ahead the dashboard looks for tasks.
const DefaultUpcomingWindow = 7 * day

const (
	StatusAll       TaskStatus = "all"
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

const AllPriorities = "all"

type (
	TaskStatus string

	TaskFilter struct {
		Search   string     `json:"search"`
		Status   TaskStatus `json:"status"`
		Priority string     `json:"priority"`
	}
)

func ParseTaskStatus(s string) (TaskStatus, error) {
	switch st := TaskStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "", StatusAll:
		return StatusAll, nil
	case StatusPending, StatusCompleted:
		return st, nil
	default:
		return "", fmt.Errorf("unknown task status %q", s)
	}
}

func ParsePriority(s string) (string, error) {
	switch p := strings.ToLower(strings.TrimSpace(s)); p {
	case "", AllPriorities:
		return AllPriorities, nil
	case string(core.PriorityLow), string(core.PriorityMedium), string(core.PriorityHigh):
		return p, nil
	default:
		return "", fmt.Errorf("unknown priority %q", s)
	}
}

// UpcomingTasks returns uncompleted tasks due within [now, now+window],
// soonest first.
func UpcomingTasks(tasks []core.Task, now time.Time, window time.Duration) []core.Task {
	end := now.Add(window)
	out := make([]core.Task, 0)
	for _, t := range tasks {
		if t.Completed || !t.DueDate.Valid() {
			continue
		}
		if t.DueDate.Before(now) || t.DueDate.After(end) {
			continue
		}
		out = append(out, t)
	}
	slices.SortStableFunc(out, soonestFirst)
	return out
}

func TaskOverdue(t core.Task, now time.Time) bool {
	return !t.Completed && t.DueDate.Valid() && t.DueDate.Before(now)
}

func (f TaskFilter) matches(t core.Task) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), term) &&
			!strings.Contains(strings.ToLower(t.Description), term) {
			return false
		}
	}
	switch f.Status {
	case StatusPending:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	}
	if f.Priority != "" && f.Priority != AllPriorities && string(t.Priority) != f.Priority {
		return false
	}
	return true
}

// FilterTasks returns the matching tasks ordered by due date, soonest first.
// Tasks with an invalid due date sort last.
func FilterTasks(tasks []core.Task, f TaskFilter) []core.Task {
	out := make([]core.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, soonestFirst)
	return out
}

func soonestFirst(a, b core.Task) int {
	av, bv := a.DueDate.Valid(), b.DueDate.Valid()
	switch {
	case av && !bv:
		return -1
	case !av && bv:
		return 1
	case !av && !bv:
		return 0
	}
	return a.DueDate.Time.Compare(b.DueDate.Time)
}
