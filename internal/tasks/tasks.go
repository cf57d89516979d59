// Package tasks implements the to-do list of the dashboard.
package tasks

import (
	"sort"
	"strings"
	"time"

	"lifeos/internal/core"
)

// List holds tasks in insertion order. The zero value is ready to use.
type List struct {
	items  []core.Task
	lastID int64
}

// New restores a list from persisted tasks.
func New(items []core.Task) *List {
	l := &List{items: make([]core.Task, 0, len(items))}
	for _, t := range items {
		l.items = append(l.items, t)
		if t.ID > l.lastID {
			l.lastID = t.ID
		}
	}
	return l
}

// Add creates an incomplete task from text.
func (l *List) Add(text string, now time.Time) (core.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return core.Task{}, core.ErrEmptyTask
	}
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id

	t := core.Task{ID: id, Text: text, CreatedAt: now}
	l.items = append(l.items, t)
	return t, nil
}

// Toggle flips the completion state of a task.
func (l *List) Toggle(id int64, now time.Time) (core.Task, error) {
	i := l.index(id)
	if i < 0 {
		return core.Task{}, core.ErrNotFound
	}
	t := &l.items[i]
	t.Completed = !t.Completed
	if t.Completed {
		at := now
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
	return *t, nil
}

// Delete removes a task. The caller must pass the user's confirmation.
func (l *List) Delete(id int64, confirmed bool) error {
	i := l.index(id)
	if i < 0 {
		return core.ErrNotFound
	}
	if !confirmed {
		return core.ErrNotConfirmed
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

// ClearCompleted removes every completed task and returns how many were removed.
func (l *List) ClearCompleted() int {
	kept := l.items[:0]
	removed := 0
	for _, t := range l.items {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	l.items = kept
	return removed
}

// Sorted returns incomplete tasks first, then completed ones, each group
// newest first.
func (l *List) Sorted() []core.Task {
	out := l.Items()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Items returns a copy of the tasks in insertion order.
func (l *List) Items() []core.Task {
	out := make([]core.Task, len(l.items))
	for i, t := range l.items {
		if t.CompletedAt != nil {
			at := *t.CompletedAt
			t.CompletedAt = &at
		}
		out[i] = t
	}
	return out
}

// Stats returns the total and completed task counts.
func (l *List) Stats() (total, completed int) {
	for _, t := range l.items {
		if t.Completed {
			completed++
		}
	}
	return len(l.items), completed
}

func (l *List) index(id int64) int {
	for i, t := range l.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}
