package blogcrm

import (
	"context"
	"errors"
	"strings"
)

// PostRepository is the data-store surface for blog posts.
// *store.PostTable satisfies it.
type PostRepository interface {
	List(ctx context.Context) ([]BlogPost, error)
	Get(ctx context.Context, id string) (BlogPost, error)
	Insert(ctx context.Context, f PostInput) (BlogPost, error)
	Update(ctx context.Context, id string, f PostInput) (BlogPost, error)
	SetPublished(ctx context.Context, id string, published bool) (BlogPost, error)
	Delete(ctx context.Context, id string) error
}

// Posts validates post input and forwards it to the repository. Each call is
// an independent round trip; there is no optimistic locking, so concurrent
// edits to one post are last-write-wins.
type Posts struct {
	repo       PostRepository
	categories CategoryRepository
}

// NewPosts creates a Posts accessor. categories is used to check that a
// post's category reference resolves.
func NewPosts(repo PostRepository, categories CategoryRepository) *Posts {
	return &Posts{repo: repo, categories: categories}
}

// List returns all posts, newest first, with their category names.
func (p *Posts) List(ctx context.Context) ([]BlogPost, error) {
	return p.repo.List(ctx)
}

// Get returns one post or ErrNotFound.
func (p *Posts) Get(ctx context.Context, id string) (BlogPost, error) {
	return p.repo.Get(ctx, id)
}

// Create stores a new post. Title and content are required; a blank slug is
// derived from the title. A category, when given, must exist.
func (p *Posts) Create(ctx context.Context, in PostInput) (BlogPost, error) {
	in, err := normalizePost(in)
	if err != nil {
		return BlogPost{}, err
	}
	if err := p.checkCategory(ctx, in.CategoryID, nil); err != nil {
		return BlogPost{}, err
	}
	return p.repo.Insert(ctx, in)
}

// Update overwrites every editable field of post id with the same rules as
// Create. Keeping the stored category is always allowed, even when that
// category has since been deleted.
func (p *Posts) Update(ctx context.Context, id string, in PostInput) (BlogPost, error) {
	in, err := normalizePost(in)
	if err != nil {
		return BlogPost{}, err
	}
	if in.CategoryID != nil && p.categories != nil {
		cur, err := p.repo.Get(ctx, id)
		if err != nil {
			return BlogPost{}, err
		}
		if err := p.checkCategory(ctx, in.CategoryID, cur.CategoryID); err != nil {
			return BlogPost{}, err
		}
	}
	return p.repo.Update(ctx, id, in)
}

// SetPublished changes only the published flag.
func (p *Posts) SetPublished(ctx context.Context, id string, published bool) (BlogPost, error) {
	return p.repo.SetPublished(ctx, id, published)
}

// Delete removes post id.
func (p *Posts) Delete(ctx context.Context, id string) error {
	return p.repo.Delete(ctx, id)
}

func normalizePost(in PostInput) (PostInput, error) {
	if strings.TrimSpace(in.Title) == "" {
		return in, invalid("title", "Title and content are required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return in, invalid("content", "Title and content are required")
	}
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = Slugify(in.Title)
	}
	if in.Slug == "" {
		return in, invalid("slug", "Slug is required. Use a title with letters or digits, or set a slug.")
	}
	in.CategoryID = optional(deref(in.CategoryID))
	return in, nil
}

// checkCategory verifies that id names an existing category. A nil id, or
// one equal to stored, needs no lookup.
func (p *Posts) checkCategory(ctx context.Context, id, stored *string) error {
	if id == nil || p.categories == nil {
		return nil
	}
	if stored != nil && *stored == *id {
		return nil
	}
	if _, err := p.categories.Get(ctx, *id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return invalid("category_id", "Selected category does not exist")
		}
		return err
	}
	return nil
}
