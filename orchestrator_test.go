package blogcrm

import "testing"

func TestAdminStateTransitions(t *testing.T) {
	start := ParseAdminState("", "")
	if start.Tab != TabBlogs || start.HasTarget() {
		t.Fatalf("initial state = %+v, want blogs with no target", start)
	}

	editor := start.NewBlog()
	if editor.Tab != TabEditor || !editor.IsNew() {
		t.Errorf("NewBlog = %+v, want editor[new]", editor)
	}

	edit := start.EditBlog("abc")
	if edit.Tab != TabEditor || edit.Editing != "abc" || edit.IsNew() {
		t.Errorf("EditBlog = %+v, want editor[abc]", edit)
	}

	back := edit.Finish()
	if back != (AdminState{Tab: TabBlogs}) {
		t.Errorf("Finish = %+v, want blogs with no target", back)
	}
}

func TestAdminStateManualSelectKeepsTarget(t *testing.T) {
	s := ParseAdminState("blogs", "").EditBlog("p1").Select(TabCategories)
	if s.Tab != TabCategories || s.Editing != "p1" {
		t.Errorf("Select = %+v, want categories keeping editor target", s)
	}
	s = s.Select(TabEditor)
	if s.Tab != TabEditor || s.Editing != "p1" {
		t.Errorf("Select back to editor = %+v", s)
	}
}

func TestParseAdminState(t *testing.T) {
	tests := []struct {
		tab, edit string
		want      AdminState
	}{
		{"categories", "", AdminState{Tab: TabCategories}},
		{"editor", "new", AdminState{Tab: TabEditor, Editing: "new"}},
		{"editor", "", AdminState{Tab: TabEditor}},
		{"bogus", "x", AdminState{Tab: TabBlogs, Editing: "x"}},
	}
	for _, tt := range tests {
		if got := ParseAdminState(tt.tab, tt.edit); got != tt.want {
			t.Errorf("ParseAdminState(%q, %q) = %+v, want %+v", tt.tab, tt.edit, got, tt.want)
		}
	}
}
