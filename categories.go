package blogcrm

import (
	"context"
	"strings"
)

// CategoryRepository is the data-store surface for categories.
// *store.CategoryTable satisfies it.
type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id string) (Category, error)
	Insert(ctx context.Context, f CategoryInput) (Category, error)
	Update(ctx context.Context, id string, f CategoryInput) (Category, error)
	Delete(ctx context.Context, id string) error
}

// Categories validates category input and forwards it to the repository.
// Mutations return the stored record so callers can merge it into whatever
// list they hold instead of re-listing.
type Categories struct {
	repo CategoryRepository
}

// NewCategories creates a Categories accessor.
func NewCategories(repo CategoryRepository) *Categories {
	return &Categories{repo: repo}
}

// List returns all categories ordered by name.
func (c *Categories) List(ctx context.Context) ([]Category, error) {
	return c.repo.List(ctx)
}

// Get returns one category or ErrNotFound.
func (c *Categories) Get(ctx context.Context, id string) (Category, error) {
	return c.repo.Get(ctx, id)
}

// Create stores a new category. The name is required; a blank slug is
// derived from it.
func (c *Categories) Create(ctx context.Context, in CategoryInput) (Category, error) {
	in, err := normalizeCategory(in)
	if err != nil {
		return Category{}, err
	}
	return c.repo.Insert(ctx, in)
}

// Update overwrites category id with the same rules as Create.
func (c *Categories) Update(ctx context.Context, id string, in CategoryInput) (Category, error) {
	in, err := normalizeCategory(in)
	if err != nil {
		return Category{}, err
	}
	return c.repo.Update(ctx, id, in)
}

// Delete removes category id without checking for posts that reference it.
func (c *Categories) Delete(ctx context.Context, id string) error {
	return c.repo.Delete(ctx, id)
}

func normalizeCategory(in CategoryInput) (CategoryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, invalid("name", "Category name is required")
	}
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = Slugify(in.Name)
	}
	in.Description = optional(deref(in.Description))
	return in, nil
}
