package store

import (
	"testing"

	"newsdesk/types"
)

func TestReduce(t *testing.T) {
	loaded := NewState()
	loaded.IsLoading = true
	loaded.Error = "old"

	cases := []struct {
		name   string
		start  State
		action Action
		check  func(t *testing.T, s State)
	}{
		{"set articles clears loading and error", loaded, SetArticles([]types.Article{article("a")}), func(t *testing.T, s State) {
			if len(s.Articles) != 1 || s.IsLoading || s.Error != "" {
				t.Fatalf("state = %+v", s)
			}
		}},
		{"set loading", NewState(), SetLoading(true), func(t *testing.T, s State) {
			if !s.IsLoading {
				t.Fatal("IsLoading = false")
			}
		}},
		{"set error clears loading", loaded, SetError("network"), func(t *testing.T, s State) {
			if s.Error != "network" || s.IsLoading {
				t.Fatalf("state = %+v", s)
			}
		}},
		{"invalid category ignored", NewState(), SetCategory("weather"), func(t *testing.T, s State) {
			if s.SelectedCategory != types.CategoryGeneral {
				t.Fatalf("category = %q", s.SelectedCategory)
			}
		}},
		{"bookmark without id ignored", NewState(), AddBookmark(types.Article{}), func(t *testing.T, s State) {
			if len(s.Bookmarks) != 0 {
				t.Fatalf("bookmarks = %v", s.Bookmarks)
			}
		}},
		{"remove unknown id", NewState(), RemoveBookmark("missing"), func(t *testing.T, s State) {
			if s.Bookmarks == nil || len(s.Bookmarks) != 0 {
				t.Fatalf("bookmarks = %#v", s.Bookmarks)
			}
		}},
		{"snapshot overlays", NewState(), LoadSnapshot(Snapshot{Bookmarks: []types.Article{article("a")}, Category: types.CategoryHealth}), func(t *testing.T, s State) {
			if len(s.Bookmarks) != 1 || s.SelectedCategory != types.CategoryHealth {
				t.Fatalf("state = %+v", s)
			}
		}},
		{"unknown action", loaded, Action{Type: "NOPE"}, func(t *testing.T, s State) {
			if !s.IsLoading || s.Error != "old" {
				t.Fatalf("state = %+v", s)
			}
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.check(t, Reduce(c.start, c.action))
		})
	}
}

func TestReduceDoesNotAliasInput(t *testing.T) {
	start := NewState()
	start.Bookmarks = []types.Article{article("a"), article("b")}

	next := Reduce(start, RemoveBookmark("a"))
	if len(start.Bookmarks) != 2 || start.Bookmarks[0].ID != "a" {
		t.Fatalf("input mutated: %v", start.Bookmarks)
	}
	if len(next.Bookmarks) != 1 || next.Bookmarks[0].ID != "b" {
		t.Fatalf("next = %v", next.Bookmarks)
	}

	articles := []types.Article{article("x")}
	next = Reduce(start, SetArticles(articles))
	articles[0].ID = "changed"
	if next.Articles[0].ID != "x" {
		t.Fatal("state aliases the action's slice")
	}
}
