package blogcrm

// EditingNew is the editor target used when creating a post.
const EditingNew = "new"

// AdminState is the admin panel's view state: one active tab plus the
// editor target, which is empty, EditingNew or a post id.
//
// Every method returns the next state; AdminState is a value type.
type AdminState struct {
	Tab     Tab
	Editing string
}

// ParseAdminState reads the state from query parameters. Unknown tabs fall
// back to the blog list.
func ParseAdminState(tab, edit string) AdminState {
	s := AdminState{Tab: TabBlogs, Editing: edit}
	switch Tab(tab) {
	case TabBlogs, TabCategories, TabEditor:
		s.Tab = Tab(tab)
	}
	return s
}

// NewBlog opens the editor on a blank post.
func (s AdminState) NewBlog() AdminState {
	return AdminState{Tab: TabEditor, Editing: EditingNew}
}

// EditBlog opens the editor on an existing post.
func (s AdminState) EditBlog(id string) AdminState {
	return AdminState{Tab: TabEditor, Editing: id}
}

// Finish is the transition taken on editor save or cancel.
func (s AdminState) Finish() AdminState {
	return AdminState{Tab: TabBlogs}
}

// Select switches tabs manually. The editor target is kept.
func (s AdminState) Select(tab Tab) AdminState {
	return AdminState{Tab: tab, Editing: s.Editing}
}

// IsNew reports whether the editor is creating a post.
func (s AdminState) IsNew() bool {
	return s.Editing == EditingNew
}

// HasTarget reports whether the editor has a post to create or edit.
func (s AdminState) HasTarget() bool {
	return s.Editing != ""
}
