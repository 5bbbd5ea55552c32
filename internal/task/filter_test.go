package task

import "testing"

func filterFixture(t *testing.T) []Task {
	t.Helper()
	dl, err := NewDeadline("return Book", "2023-10-15")
	if err != nil {
		t.Fatal(err)
	}
	done := NewTodo("read book")
	done.Done = true
	return []Task{done, dl, NewEvent("book club", "Mon", "Tue"), NewTodo("buy milk")}
}

func numbers(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Number
	}
	return out
}

func TestFilter(t *testing.T) {
	tasks := filterFixture(t)
	yes, no := true, false

	tests := []struct {
		name string
		opts FilterOptions
		want []int
	}{
		{"all", FilterOptions{}, []int{1, 2, 3, 4}},
		{"done", FilterOptions{Done: &yes}, []int{1}},
		{"pending", FilterOptions{Done: &no}, []int{2, 3, 4}},
		{"search case-sensitive", FilterOptions{Search: "book"}, []int{1, 3}},
		{"search ignore case", FilterOptions{Search: "BOOK", IgnoreCase: true}, []int{1, 2, 3}},
		{"kinds", FilterOptions{Kinds: []Kind{KindTodo}}, []int{1, 4}},
		{"combined", FilterOptions{Kinds: []Kind{KindTodo}, Done: &no}, []int{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := numbers(Filter(tasks, tt.opts))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"todo": KindTodo, "D": KindDeadline, "Event": KindEvent, "e": KindEvent} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseKind("chore"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
