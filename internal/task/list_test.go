package task

import (
	"errors"
	"slices"
	"testing"
)

func descriptions(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Description
	}
	return out
}

func TestListAddGetRemove(t *testing.T) {
	l := NewList(nil)
	l.Add(NewTodo("one"))
	l.Add(NewTodo("two"))
	l.Add(NewTodo("three"))

	if l.Size() != 3 {
		t.Fatalf("Size = %d, want 3", l.Size())
	}

	got, err := l.Get(1)
	if err != nil || got.Description != "two" {
		t.Fatalf("Get(1) = %v, %v", got, err)
	}

	removed, err := l.Remove(0)
	if err != nil || removed.Description != "one" {
		t.Fatalf("Remove(0) = %v, %v", removed, err)
	}
	if want := []string{"two", "three"}; !slices.Equal(descriptions(l.All()), want) {
		t.Fatalf("All = %v, want %v", descriptions(l.All()), want)
	}
}

func TestListOutOfRange(t *testing.T) {
	l := NewList([]Task{NewTodo("a"), NewTodo("b")})

	for _, i := range []int{-1, 2, 5} {
		if _, err := l.Get(i); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Get(%d) err = %v, want ErrOutOfRange", i, err)
		}
		if _, err := l.Remove(i); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Remove(%d) err = %v, want ErrOutOfRange", i, err)
		}
		if _, err := l.SetDone(i, true); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SetDone(%d) err = %v, want ErrOutOfRange", i, err)
		}
	}
	if l.Size() != 2 {
		t.Fatalf("Size = %d after failed removes", l.Size())
	}
	for _, tk := range l.All() {
		if tk.Done {
			t.Fatalf("task %v marked done by a failed SetDone", tk)
		}
	}
}

func TestListSetDone(t *testing.T) {
	l := NewList([]Task{NewTodo("a")})
	got, err := l.SetDone(0, true)
	if err != nil || !got.Done {
		t.Fatalf("SetDone(0, true) = %v, %v", got, err)
	}
	got, _ = l.Get(0)
	if !got.Done {
		t.Fatal("done flag not stored")
	}
	got, _ = l.SetDone(0, false)
	if got.Done {
		t.Fatal("done flag not cleared")
	}
}

func TestListFind(t *testing.T) {
	l := NewList([]Task{
		NewTodo("read book"),
		NewTodo("buy milk"),
		NewEvent("book club", "Mon", "Tue"),
		NewTodo("Book flights"),
	})

	got := descriptions(slices.Collect(l.Find("book")))
	if want := []string{"read book", "book club"}; !slices.Equal(got, want) {
		t.Fatalf("Find(book) = %v, want %v", got, want)
	}

	got = descriptions(slices.Collect(l.Find("Book")))
	if want := []string{"Book flights"}; !slices.Equal(got, want) {
		t.Fatalf("Find(Book) = %v, want %v", got, want)
	}

	if n := len(slices.Collect(l.Find("zzz"))); n != 0 {
		t.Fatalf("Find(zzz) returned %d tasks", n)
	}

	// Early stop.
	for tk := range l.Find("o") {
		if tk.Description != "read book" {
			t.Fatalf("first match = %q", tk.Description)
		}
		break
	}
}

func TestListSnapshotIsolation(t *testing.T) {
	l := NewList([]Task{NewTodo("a")})
	snap := l.All()
	snap[0].Description = "changed"

	got, _ := l.Get(0)
	if got.Description != "a" {
		t.Fatal("mutating the snapshot changed the list")
	}

	l.Add(NewTodo("b"))
	if len(snap) != 1 {
		t.Fatal("snapshot grew with the list")
	}
}

func TestListClear(t *testing.T) {
	l := NewList([]Task{NewTodo("a"), NewTodo("b")})
	l.Clear()
	if l.Size() != 0 || len(l.All()) != 0 {
		t.Fatalf("Size after Clear = %d", l.Size())
	}
	l.Clear()
	if l.Size() != 0 {
		t.Fatal("second Clear changed size")
	}
}

func TestNewListCopiesInput(t *testing.T) {
	in := []Task{NewTodo("a")}
	l := NewList(in)
	in[0].Description = "b"
	got, _ := l.Get(0)
	if got.Description != "a" {
		t.Fatal("NewList aliases its input")
	}
}
