// Package views holds the default templ components for the admin panel.
// Components wrap embedded html/template files so the markup can be edited
// without regenerating Go code.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/blogcrm"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"tabURL": func(s blogcrm.AdminState, tab string) string {
		return blogcrm.AdminURL(s.Select(blogcrm.Tab(tab)))
	},
	"newBlogURL": func() string {
		return blogcrm.AdminURL(blogcrm.AdminState{}.NewBlog())
	},
	"editBlogURL": func(id string) string {
		return blogcrm.AdminURL(blogcrm.AdminState{}.EditBlog(id))
	},
	"cancelURL": func(s blogcrm.AdminState) string {
		return blogcrm.AdminURL(s.Finish())
	},
	"knownCategory": func(cats []blogcrm.Category, id string) bool {
		for _, c := range cats {
			if c.ID == id {
				return true
			}
		}
		return false
	},
}).ParseFS(templateFS, "templates/*.html"))

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages.ExecuteTemplate(w, name, data)
	})
}

// Index renders the landing page.
func Index(page blogcrm.IndexPage) templ.Component {
	return component("index", page)
}

// Login renders the sign-in page.
func Login(page blogcrm.LoginPage) templ.Component {
	return component("login", page)
}

// Admin renders the admin panel with its active tab.
func Admin(page blogcrm.AdminPage) templ.Component {
	return component("admin", page)
}

func NotFound() templ.Component {
	return component("notfound", nil)
}

func ServerError() templ.Component {
	return component("servererror", nil)
}

// Funcs returns the default ViewFuncs.
func Funcs() blogcrm.ViewFuncs {
	return blogcrm.ViewFuncs{
		Index:       Index,
		Login:       Login,
		Admin:       Admin,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}
