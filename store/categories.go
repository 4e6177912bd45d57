package store

import (
	"context"

	"github.com/google/uuid"
)

// CategoryTable performs CRUD against blog_categories.
type CategoryTable struct {
	t table
}

const categoryColumns = `id, name, slug, description, created_at`

func scanCategory(sc interface{ Scan(...any) error }) (Category, error) {
	var c Category
	err := sc.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt)
	return c, err
}

// nameOrder sorts names byte-wise on both drivers. SQLite's default BINARY
// collation already does; Postgres would otherwise follow the locale.
func nameOrder(driver string) string {
	if driver == DriverPostgres {
		return `name COLLATE "C" ASC`
	}
	return `name ASC`
}

// List returns every category ordered by name, byte-wise.
func (ct *CategoryTable) List(ctx context.Context) ([]Category, error) {
	rows, err := ct.t.query(ctx, `SELECT `+categoryColumns+` FROM blog_categories ORDER BY `+nameOrder(ct.t.db.driver))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get returns the category with id or ErrNotFound.
func (ct *CategoryTable) Get(ctx context.Context, id string) (Category, error) {
	c, err := scanCategory(ct.t.queryRow(ctx, `SELECT `+categoryColumns+` FROM blog_categories WHERE id = ?`, id))
	if err != nil {
		return Category{}, notFound(err)
	}
	return c, nil
}

// Insert stores a new category and returns it as persisted.
func (ct *CategoryTable) Insert(ctx context.Context, f CategoryFields) (Category, error) {
	id := uuid.NewString()
	err := ct.t.insert(ctx,
		[]string{"id", "name", "slug", "description", "created_at"},
		[]any{id, f.Name, f.Slug, nullable(f.Description), ct.t.db.now()},
	)
	if err != nil {
		return Category{}, err
	}
	return ct.Get(ctx, id)
}

// Update overwrites the writable columns of category id.
func (ct *CategoryTable) Update(ctx context.Context, id string, f CategoryFields) (Category, error) {
	err := ct.t.updateByID(ctx, id,
		[]string{"name", "slug", "description"},
		[]any{f.Name, f.Slug, nullable(f.Description)},
	)
	if err != nil {
		return Category{}, err
	}
	return ct.Get(ctx, id)
}

// Delete removes category id. Posts referencing it are left as they are.
func (ct *CategoryTable) Delete(ctx context.Context, id string) error {
	return ct.t.deleteByID(ctx, id)
}
