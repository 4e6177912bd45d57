package blogcrm

import (
	"encoding/gob"

	"github.com/eringen/blogcrm/store"
)

// BlogPost and Category are the records managed by the admin panel.
type (
	BlogPost = store.BlogPost
	Category = store.Category

	PostInput     = store.PostFields
	CategoryInput = store.CategoryFields
)

// Tab is one of the admin panel views.
type Tab string

const (
	TabBlogs      Tab = "blogs"
	TabCategories Tab = "categories"
	TabEditor     Tab = "editor"
)

// Flash is a transient notification shown once on the next rendered page.
type Flash struct {
	Kind    string // "success" or "error"
	Title   string
	Message string
}

func init() {
	gob.Register(Flash{})
}

// IndexPage is the data handed to the landing view.
type IndexPage struct {
	SiteName string
	SignedIn bool
	Flashes  []Flash
}

// LoginPage is the data handed to the login view.
type LoginPage struct {
	SiteName  string
	Email     string
	Error     string
	Flashes   []Flash
	CSRFToken string
}

// AdminPage is the data handed to the admin view. Only the slices relevant to
// State.Tab are populated.
type AdminPage struct {
	SiteName  string
	Principal Principal
	State     AdminState
	Flashes   []Flash
	CSRFToken string

	Posts      []BlogPost
	Categories []Category

	// Editor form. Post holds the stored or submitted values; PostID is
	// empty when creating.
	Post   PostInput
	PostID string

	// Category form on the categories tab. CategoryID is empty when
	// creating.
	CategoryFormOpen bool
	CategoryForm     CategoryInput
	CategoryID       string
}
