package workspace

import (
	"time"

	"github.com/inkwell/dashboard/business/core/blog"
)

// State describes how far a wallet's workspace has loaded.
type State string

// Set of workspace states.
const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Theme is the color scheme preference of a wallet.
type Theme string

// Set of supported themes.
const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// DefaultTheme is used until the wallet picks one.
const DefaultTheme = ThemeDark

// Blog is a blog of the workspace along with its details. When the details
// could not be fetched the blog is kept and the failure recorded.
type Blog struct {
	ID      string        `json:"id"`
	Roles   []blog.Role   `json:"roles"`
	Details *blog.Details `json:"details,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Title returns the title of the blog, falling back to its id.
func (b Blog) Title() string {
	if b.Details == nil || b.Details.Title == "" {
		return b.ID
	}
	return b.Details.Title
}

// Snapshot is the state of a wallet's workspace.
type Snapshot struct {
	Wallet   string    `json:"wallet"`
	State    State     `json:"state"`
	Blogs    []Blog    `json:"blogs"`
	Selected string    `json:"selected,omitempty"`
	Error    string    `json:"error,omitempty"`
	Loaded   time.Time `json:"loaded"`
}

// Current returns the selected blog.
func (s Snapshot) Current() (Blog, bool) {
	for _, b := range s.Blogs {
		if b.ID == s.Selected {
			return b, true
		}
	}
	return Blog{}, false
}

// Contains reports if the blog is part of the workspace.
func (s Snapshot) Contains(blogID string) bool {
	_, found := s.find(blogID)
	return found
}

func (s Snapshot) find(blogID string) (Blog, bool) {
	for _, b := range s.Blogs {
		if b.ID == blogID {
			return b, true
		}
	}
	return Blog{}, false
}

// Select carries the blog to select.
type Select struct {
	BlogID string `json:"blogId" validate:"required"`
}

// SetTheme carries the theme to store.
type SetTheme struct {
	Theme Theme `json:"theme" validate:"required,oneof=light dark system"`
}
