package tasks

import (
	"errors"
	"testing"
	"time"

	"lifeos/internal/core"
)

var t0 = time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

func addN(t *testing.T, l *List, texts ...string) []core.Task {
	t.Helper()
	var out []core.Task
	for i, text := range texts {
		task, err := l.Add(text, t0.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("add %q: %v", text, err)
		}
		out = append(out, task)
	}
	return out
}

func TestAddRejectsBlankText(t *testing.T) {
	l := &List{}
	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := l.Add(text, t0); !errors.Is(err, core.ErrEmptyTask) {
			t.Fatalf("%q: expected ErrEmptyTask, got %v", text, err)
		}
	}
	if total, _ := l.Stats(); total != 0 {
		t.Fatalf("expected no tasks, got %d", total)
	}

	task, err := l.Add("  buy milk ", t0)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if task.Text != "buy milk" || task.Completed || task.CompletedAt != nil {
		t.Fatalf("unexpected task %+v", task)
	}
}

func TestToggleSetsAndClearsCompletedAt(t *testing.T) {
	l := &List{}
	task := addN(t, l, "a")[0]

	done := t0.Add(time.Hour)
	got, err := l.Toggle(task.ID, done)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !got.Completed || got.CompletedAt == nil || !got.CompletedAt.Equal(done) {
		t.Fatalf("expected completed task, got %+v", got)
	}

	got, err = l.Toggle(task.ID, done.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got.Completed || got.CompletedAt != nil {
		t.Fatalf("expected incomplete task, got %+v", got)
	}

	if _, err := l.Toggle(12345, done); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	l := &List{}
	tasks := addN(t, l, "a", "b")

	if err := l.Delete(tasks[0].ID, false); !errors.Is(err, core.ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if total, _ := l.Stats(); total != 2 {
		t.Fatalf("unconfirmed delete changed the list")
	}
	if err := l.Delete(tasks[0].ID, true); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	items := l.Items()
	if len(items) != 1 || items[0].ID != tasks[1].ID {
		t.Fatalf("unexpected items after delete: %+v", items)
	}
	if err := l.Delete(tasks[0].ID, true); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClearCompleted(t *testing.T) {
	l := &List{}
	addN(t, l, "a", "b")
	if n := l.ClearCompleted(); n != 0 {
		t.Fatalf("expected no-op, removed %d", n)
	}
	if total, _ := l.Stats(); total != 2 {
		t.Fatalf("no-op clear changed the list")
	}

	l = &List{}
	tasks := addN(t, l, "1", "2", "3", "4", "5")
	for _, i := range []int{0, 2, 4} {
		if _, err := l.Toggle(tasks[i].ID, t0.Add(time.Hour)); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	if total, completed := l.Stats(); total != 5 || completed != 3 {
		t.Fatalf("unexpected stats %d/%d", completed, total)
	}
	if n := l.ClearCompleted(); n != 3 {
		t.Fatalf("expected 3 removed, got %d", n)
	}
	items := l.Items()
	if len(items) != 2 || items[0].Text != "2" || items[1].Text != "4" {
		t.Fatalf("unexpected remaining tasks: %+v", items)
	}
	for _, it := range items {
		if it.Completed {
			t.Fatalf("completed task survived: %+v", it)
		}
	}
}

func TestSortedOrdering(t *testing.T) {
	l := &List{}
	tasks := addN(t, l, "oldest", "middle", "newest", "done-old", "done-new")
	if _, err := l.Toggle(tasks[3].ID, t0.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Toggle(tasks[4].ID, t0.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, task := range l.Sorted() {
		got = append(got, task.Text)
	}
	want := []string{"newest", "middle", "oldest", "done-new", "done-old"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestIDsAreUnique(t *testing.T) {
	l := New([]core.Task{{ID: t0.UnixMilli(), Text: "existing", CreatedAt: t0}})
	a, _ := l.Add("a", t0)
	b, _ := l.Add("b", t0)
	if a.ID == b.ID || a.ID <= t0.UnixMilli() {
		t.Fatalf("ids collide: %d %d", a.ID, b.ID)
	}
}
