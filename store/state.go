package store

import (
	"slices"

	"newsdesk/types"
)

// State is the single application state shared with every UI collaborator
type State struct {
	Articles         []types.Article `json:"articles"`
	Bookmarks        []types.Article `json:"bookmarks"`
	SelectedCategory types.Category  `json:"selectedCategory"`
	IsLoading        bool            `json:"isLoading"`
	Error            string          `json:"error,omitempty"`
}

// NewState returns the startup state: empty feed, no bookmarks, general category
func NewState() State {
	return State{
		Articles:         []types.Article{},
		Bookmarks:        []types.Article{},
		SelectedCategory: types.DefaultCategory,
	}
}

// Clone returns a copy that shares no slices with s
func (s State) Clone() State {
	s.Articles = cloneArticles(s.Articles)
	s.Bookmarks = cloneArticles(s.Bookmarks)
	return s
}

// IsBookmarked reports whether an article with id is bookmarked
func (s State) IsBookmarked(id string) bool {
	return indexOf(s.Bookmarks, id) >= 0
}

// ActionType names one of the fixed state transitions
type ActionType string

const (
	ActionSetArticles    ActionType = "SET_ARTICLES"
	ActionAddBookmark    ActionType = "ADD_BOOKMARK"
	ActionRemoveBookmark ActionType = "REMOVE_BOOKMARK"
	ActionSetCategory    ActionType = "SET_CATEGORY"
	ActionSetLoading     ActionType = "SET_LOADING"
	ActionSetError       ActionType = "SET_ERROR"
	ActionLoadSnapshot   ActionType = "LOAD_SNAPSHOT"
)

// Snapshot is the persisted subset of State. A nil Bookmarks or empty
// Category means the value was not stored.
type Snapshot struct {
	Bookmarks []types.Article
	Category  types.Category
}

// Action is a single state transition. Only the fields relevant to Type are read.
type Action struct {
	Type     ActionType
	Articles []types.Article
	Article  types.Article
	ID       string
	Category types.Category
	Loading  bool
	Message  string
	Snapshot Snapshot
}

func SetArticles(articles []types.Article) Action {
	return Action{Type: ActionSetArticles, Articles: articles}
}

func AddBookmark(article types.Article) Action {
	return Action{Type: ActionAddBookmark, Article: article}
}

func RemoveBookmark(id string) Action {
	return Action{Type: ActionRemoveBookmark, ID: id}
}

func SetCategory(category types.Category) Action {
	return Action{Type: ActionSetCategory, Category: category}
}

func SetLoading(loading bool) Action {
	return Action{Type: ActionSetLoading, Loading: loading}
}

// SetError sets the user-visible error banner. An empty message clears it.
func SetError(message string) Action {
	return Action{Type: ActionSetError, Message: message}
}

func LoadSnapshot(snapshot Snapshot) Action {
	return Action{Type: ActionLoadSnapshot, Snapshot: snapshot}
}

// Reduce applies a to s and returns the next state. It never mutates or
// aliases the slices of s. Unknown action types return s unchanged.
func Reduce(s State, a Action) State {
	next := s.Clone()

	switch a.Type {
	case ActionSetArticles:
		next.Articles = cloneArticles(a.Articles)
		next.IsLoading = false
		next.Error = ""

	case ActionAddBookmark:
		if a.Article.ID == "" || next.IsBookmarked(a.Article.ID) {
			return next
		}
		next.Bookmarks = append(next.Bookmarks, a.Article)

	case ActionRemoveBookmark:
		next.Bookmarks = slices.DeleteFunc(next.Bookmarks, func(b types.Article) bool {
			return b.ID == a.ID
		})

	case ActionSetCategory:
		if a.Category.Valid() {
			next.SelectedCategory = a.Category
		}

	case ActionSetLoading:
		next.IsLoading = a.Loading

	case ActionSetError:
		next.Error = a.Message
		next.IsLoading = false

	case ActionLoadSnapshot:
		if a.Snapshot.Bookmarks != nil {
			next.Bookmarks = dedupe(a.Snapshot.Bookmarks)
		}
		if a.Snapshot.Category.Valid() {
			next.SelectedCategory = a.Snapshot.Category
		}
	}

	return next
}

func cloneArticles(in []types.Article) []types.Article {
	out := make([]types.Article, len(in))
	copy(out, in)
	return out
}

func indexOf(articles []types.Article, id string) int {
	return slices.IndexFunc(articles, func(a types.Article) bool { return a.ID == id })
}

// dedupe keeps the first occurrence of every id and drops id-less entries
func dedupe(in []types.Article) []types.Article {
	out := make([]types.Article, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, a := range in {
		if a.ID == "" || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out
}
