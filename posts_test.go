package blogcrm

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/eringen/blogcrm/store"
)

// countingPosts records calls that reach the store.
type countingPosts struct {
	PostRepository
	calls int
}

func (c *countingPosts) Insert(ctx context.Context, f PostInput) (BlogPost, error) {
	c.calls++
	return BlogPost{Title: f.Title, Slug: f.Slug}, nil
}

func (c *countingPosts) Update(ctx context.Context, id string, f PostInput) (BlogPost, error) {
	c.calls++
	return BlogPost{ID: id, Title: f.Title, Slug: f.Slug}, nil
}

// openTestDB opens a SQLite store with a clock that advances one second per
// insert.
func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	db, err := store.Open(context.Background(), store.Config{
		DSN: filepath.Join(t.TempDir(), "blog.db"),
		Clock: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPostValidationNamesField(t *testing.T) {
	posts := NewPosts(&countingPosts{}, nil)
	tests := []struct {
		in    PostInput
		field string
	}{
		{PostInput{Title: "", Content: "body"}, "title"},
		{PostInput{Title: "Title", Content: " "}, "content"},
		{PostInput{}, "title"},
	}
	for _, tt := range tests {
		_, err := posts.Create(context.Background(), tt.in)
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != tt.field {
			t.Errorf("Create(%+v) error = %v, want field %q", tt.in, err, tt.field)
		}
	}
}

func TestPostCreateRequiresTitleAndContent(t *testing.T) {
	repo := &countingPosts{}
	posts := NewPosts(repo, nil)
	ctx := context.Background()

	cases := []PostInput{
		{Title: "", Content: "body"},
		{Title: "Title", Content: ""},
		{Title: "   ", Content: "body"},
		{},
	}
	for _, in := range cases {
		_, err := posts.Create(ctx, in)
		if !IsValidation(err) {
			t.Errorf("Create(%+v) error = %v, want validation error", in, err)
		}
		if _, err := posts.Update(ctx, "id", in); !IsValidation(err) {
			t.Errorf("Update(%+v) error = %v, want validation error", in, err)
		}
	}
	if repo.calls != 0 {
		t.Errorf("store was called %d times, want 0", repo.calls)
	}
}

func TestPostCreateDefaultsSlug(t *testing.T) {
	repo := &countingPosts{}
	posts := NewPosts(repo, nil)

	got, err := posts.Create(context.Background(), PostInput{Title: "Hello World", Content: "..."})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got.Slug != "hello-world" {
		t.Errorf("Slug = %q, want hello-world", got.Slug)
	}

	got, err = posts.Create(context.Background(), PostInput{Title: "Hello World", Slug: " custom ", Content: "..."})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got.Slug != "custom" {
		t.Errorf("Slug = %q, want user-supplied slug", got.Slug)
	}
}

func TestPostCreateRejectsUnsluggableTitle(t *testing.T) {
	repo := &countingPosts{}
	_, err := NewPosts(repo, nil).Create(context.Background(), PostInput{Title: "!!!", Content: "x"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "slug" {
		t.Fatalf("error = %v, want slug validation error", err)
	}
	if repo.calls != 0 {
		t.Errorf("store was called %d times, want 0", repo.calls)
	}
}

func TestPostCategoryMustExist(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	posts := NewPosts(db.Posts(), db.Categories())

	missing := "does-not-exist"
	_, err := posts.Create(ctx, PostInput{Title: "T", Content: "c", CategoryID: &missing})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "category_id" {
		t.Fatalf("error = %v, want category_id validation error", err)
	}

	blank := "  "
	got, err := posts.Create(ctx, PostInput{Title: "T", Content: "c", CategoryID: &blank})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("blank category should be stored as NULL, got %q", *got.CategoryID)
	}
}

func TestPostDuplicateSlugSurfacesStoreError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	posts := NewPosts(db.Posts(), db.Categories())

	if _, err := posts.Create(ctx, PostInput{Title: "Same", Content: "a"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := posts.Create(ctx, PostInput{Title: "Same", Content: "b"})
	if err == nil {
		t.Fatal("expected unique slug violation")
	}
	if IsValidation(err) {
		t.Errorf("store error should not be reported as validation: %v", err)
	}
}

func TestPostUpdateMissing(t *testing.T) {
	db := openTestDB(t)
	posts := NewPosts(db.Posts(), db.Categories())
	_, err := posts.Update(context.Background(), "nope", PostInput{Title: "T", Content: "c"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update error = %v, want ErrNotFound", err)
	}
	if _, err := posts.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestEndToEnd(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	categories := NewCategories(db.Categories())
	posts := NewPosts(db.Posts(), db.Categories())

	news, err := categories.Create(ctx, CategoryInput{Name: "News"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if news.Slug != "news" {
		t.Errorf("category slug = %q, want news", news.Slug)
	}

	other, err := posts.Create(ctx, PostInput{Title: "Other", Content: "x", CategoryID: &news.ID})
	if err != nil {
		t.Fatalf("create other post: %v", err)
	}
	hello, err := posts.Create(ctx, PostInput{Title: "Hello World", Content: "..."})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if hello.Slug != "hello-world" || hello.Published {
		t.Errorf("post = slug %q published %v, want hello-world false", hello.Slug, hello.Published)
	}

	if _, err := posts.SetPublished(ctx, hello.ID, true); err != nil {
		t.Fatalf("SetPublished: %v", err)
	}

	list, err := posts.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List count = %d, want 2", len(list))
	}
	for _, p := range list {
		want := p.ID == hello.ID
		if p.Published != want {
			t.Errorf("post %q published = %v, want %v", p.Title, p.Published, want)
		}
	}
	if list[0].ID != hello.ID {
		t.Errorf("newest post should be listed first")
	}

	// Deleting a referenced category leaves the post's reference alone.
	if err := categories.Delete(ctx, news.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	got, err := posts.Get(ctx, other.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CategoryID == nil || *got.CategoryID != news.ID {
		t.Errorf("CategoryID = %v, want dangling %s", got.CategoryID, news.ID)
	}
}

func TestPostUpdateKeepsDeletedCategory(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	categories := NewCategories(db.Categories())
	posts := NewPosts(db.Posts(), db.Categories())

	news, err := categories.Create(ctx, CategoryInput{Name: "News"})
	if err != nil {
		t.Fatal(err)
	}
	other, err := categories.Create(ctx, CategoryInput{Name: "Other"})
	if err != nil {
		t.Fatal(err)
	}
	post, err := posts.Create(ctx, PostInput{Title: "Typo", Content: "x", CategoryID: &news.ID})
	if err != nil {
		t.Fatal(err)
	}
	if err := categories.Delete(ctx, news.ID); err != nil {
		t.Fatal(err)
	}

	got, err := posts.Update(ctx, post.ID, PostInput{Title: "Fixed", Content: "x", CategoryID: &news.ID})
	if err != nil {
		t.Fatalf("Update keeping the stored category: %v", err)
	}
	if got.Title != "Fixed" || got.CategoryID == nil || *got.CategoryID != news.ID {
		t.Errorf("post = %+v, want title fixed and category kept", got)
	}
	if got.CategoryName != nil {
		t.Errorf("CategoryName = %q, want nil for a deleted category", *got.CategoryName)
	}

	// Switching to another missing category is still rejected.
	missing := "gone"
	if _, err := posts.Update(ctx, post.ID, PostInput{Title: "Fixed", Content: "x", CategoryID: &missing}); !IsValidation(err) {
		t.Errorf("Update to missing category error = %v, want validation error", err)
	}
	// Switching to an existing one works.
	got, err = posts.Update(ctx, post.ID, PostInput{Title: "Fixed", Content: "x", CategoryID: &other.ID})
	if err != nil || got.CategoryID == nil || *got.CategoryID != other.ID {
		t.Errorf("Update to existing category = %+v, %v", got, err)
	}
}
