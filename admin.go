package blogcrm

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// handleAdmin renders the active tab. Every tab fetches its own snapshot;
// a failed fetch is shown as a notification on an otherwise empty tab.
func (a *App) handleAdmin(c echo.Context) error {
	sess, _ := SessionFrom(c)
	ctx := c.Request().Context()
	state := ParseAdminState(c.QueryParam("tab"), c.QueryParam("edit"))
	page := a.adminPage(c, sess, state)

	switch state.Tab {
	case TabBlogs:
		posts, err := a.Posts.List(ctx)
		if err != nil {
			page.Flashes = append(page.Flashes, errorFlash(err))
		}
		page.Posts = posts

	case TabCategories:
		cats, err := a.Categories.List(ctx)
		if err != nil {
			page.Flashes = append(page.Flashes, errorFlash(err))
		}
		page.Categories = cats
		switch id := c.QueryParam("category"); id {
		case "":
		case EditingNew:
			page.CategoryFormOpen = true
		default:
			cat, err := a.Categories.Get(ctx, id)
			if err != nil {
				page.Flashes = append(page.Flashes, errorFlash(err))
				break
			}
			page.CategoryFormOpen = true
			page.CategoryID = cat.ID
			page.CategoryForm = CategoryInput{Name: cat.Name, Slug: cat.Slug, Description: cat.Description}
		}

	case TabEditor:
		page.Categories = a.editorCategories(c, &page)
		page.Post = PostInput{Author: a.Config.DefaultAuthor}
		if state.HasTarget() && !state.IsNew() {
			post, err := a.Posts.Get(ctx, state.Editing)
			if err != nil {
				page.Flashes = append(page.Flashes, errorFlash(err))
				break
			}
			page.PostID = post.ID
			page.Post = inputFromPost(post)
		}
	}

	return Render(c, a.Views.Admin(page))
}

func (a *App) adminPage(c echo.Context, sess Session, state AdminState) AdminPage {
	return AdminPage{
		SiteName:  a.Config.Name,
		Principal: sess.Principal,
		State:     state,
		Flashes:   takeFlashes(c),
		CSRFToken: csrfToken(c),
	}
}

func (a *App) editorCategories(c echo.Context, page *AdminPage) []Category {
	cats, err := a.CategoryCache.List(c.Request().Context())
	if err != nil {
		page.Flashes = append(page.Flashes, errorFlash(err))
	}
	return cats
}

// handleSavePost creates or updates a post from the editor form. On success
// the editor closes and the blog list is shown; on failure the editor is
// rendered again with the submitted values.
func (a *App) handleSavePost(c echo.Context) error {
	sess, _ := SessionFrom(c)
	ctx := c.Request().Context()
	state := ParseAdminState(string(TabEditor), c.FormValue("edit"))
	if !state.HasTarget() {
		state = state.NewBlog()
	}
	in := postInputFromForm(c)

	var err error
	msg := "Blog created successfully"
	if state.IsNew() {
		_, err = a.Posts.Create(ctx, in)
	} else {
		msg = "Blog updated successfully"
		_, err = a.Posts.Update(ctx, state.Editing, in)
	}
	if err != nil {
		page := a.adminPage(c, sess, state)
		page.Flashes = append(page.Flashes, errorFlash(err))
		page.Categories = a.editorCategories(c, &page)
		page.Post = in
		if !state.IsNew() {
			page.PostID = state.Editing
		}
		return RenderStatus(c, statusFor(err), a.Views.Admin(page))
	}

	addFlash(c, successFlash(msg))
	return c.Redirect(http.StatusSeeOther, AdminURL(state.Finish()))
}

func (a *App) handlePublishPost(c echo.Context) error {
	published := c.FormValue("published") == "true"
	post, err := a.Posts.SetPublished(c.Request().Context(), c.Param("id"), published)
	if err != nil {
		addFlash(c, errorFlash(err))
	} else if post.Published {
		addFlash(c, successFlash("Blog published successfully"))
	} else {
		addFlash(c, successFlash("Blog unpublished successfully"))
	}
	return c.Redirect(http.StatusSeeOther, AdminURL(AdminState{Tab: TabBlogs}))
}

func (a *App) handleDeletePost(c echo.Context) error {
	if err := a.Posts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		addFlash(c, errorFlash(err))
	} else {
		addFlash(c, successFlash("Blog deleted successfully"))
	}
	return c.Redirect(http.StatusSeeOther, AdminURL(AdminState{Tab: TabBlogs}))
}

// handleSaveCategory creates (no id) or updates (id) a category. Failures
// re-render the categories tab with the form still open.
func (a *App) handleSaveCategory(c echo.Context) error {
	sess, _ := SessionFrom(c)
	ctx := c.Request().Context()
	id := strings.TrimSpace(c.FormValue("id"))
	in := CategoryInput{
		Name:        c.FormValue("name"),
		Slug:        c.FormValue("slug"),
		Description: optional(c.FormValue("description")),
	}

	var (
		cat Category
		err error
	)
	msg := "Category created successfully"
	if id == "" {
		cat, err = a.Categories.Create(ctx, in)
	} else {
		msg = "Category updated successfully"
		cat, err = a.Categories.Update(ctx, id, in)
	}
	if err != nil {
		state := AdminState{Tab: TabCategories}
		page := a.adminPage(c, sess, state)
		page.Flashes = append(page.Flashes, errorFlash(err))
		cats, listErr := a.Categories.List(ctx)
		if listErr != nil {
			page.Flashes = append(page.Flashes, errorFlash(listErr))
		}
		page.Categories = cats
		page.CategoryFormOpen = true
		page.CategoryForm = in
		page.CategoryID = id
		return RenderStatus(c, statusFor(err), a.Views.Admin(page))
	}

	a.CategoryCache.Merge(cat)
	addFlash(c, successFlash(msg))
	return c.Redirect(http.StatusSeeOther, AdminURL(AdminState{Tab: TabCategories}))
}

func (a *App) handleDeleteCategory(c echo.Context) error {
	id := c.Param("id")
	if err := a.Categories.Delete(c.Request().Context(), id); err != nil {
		addFlash(c, errorFlash(err))
	} else {
		a.CategoryCache.Remove(id)
		addFlash(c, successFlash("Category deleted successfully"))
	}
	return c.Redirect(http.StatusSeeOther, AdminURL(AdminState{Tab: TabCategories}))
}

// handleLogout invalidates the session and returns to the entry point.
func (a *App) handleLogout(c echo.Context) error {
	sess, _ := SessionFrom(c)
	a.signouts.record(sess.Principal, time.Now())
	if err := endSession(c); err != nil {
		return err
	}
	a.Log.Info().Str("email", sess.Principal.Email).Msg("signed out")
	addFlash(c, Flash{Kind: "success", Title: "Signed out", Message: "You have been signed out successfully."})
	return c.Redirect(http.StatusSeeOther, "/")
}

func postInputFromForm(c echo.Context) PostInput {
	return PostInput{
		Title:            strings.TrimSpace(c.FormValue("title")),
		Slug:             strings.TrimSpace(c.FormValue("slug")),
		Content:          c.FormValue("content"),
		Excerpt:          c.FormValue("excerpt"),
		Author:           strings.TrimSpace(c.FormValue("author")),
		Published:        c.FormValue("published") != "",
		CategoryID:       optional(c.FormValue("category_id")),
		MetaDescription:  c.FormValue("meta_description"),
		MetaKeywords:     c.FormValue("meta_keywords"),
		FeaturedImageURL: strings.TrimSpace(c.FormValue("featured_image_url")),
	}
}

func inputFromPost(p BlogPost) PostInput {
	return PostInput{
		Title:            p.Title,
		Slug:             p.Slug,
		Content:          p.Content,
		Excerpt:          p.Excerpt,
		Author:           p.Author,
		Published:        p.Published,
		CategoryID:       p.CategoryID,
		MetaDescription:  p.MetaDescription,
		MetaKeywords:     p.MetaKeywords,
		FeaturedImageURL: p.FeaturedImageURL,
	}
}
