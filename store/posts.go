package store

import (
	"context"

	"github.com/google/uuid"
)

// PostTable performs CRUD against blogs, joining blog_categories for the
// category name on reads.
type PostTable struct {
	t table
}

const postSelect = `SELECT p.id, p.title, p.slug, p.content, p.excerpt, p.author, p.published,
	p.category_id, c.name, p.meta_description, p.meta_keywords, p.featured_image_url, p.created_at
FROM blogs p LEFT JOIN blog_categories c ON c.id = p.category_id`

func scanPost(sc interface{ Scan(...any) error }) (BlogPost, error) {
	var p BlogPost
	err := sc.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Author, &p.Published,
		&p.CategoryID, &p.CategoryName, &p.MetaDescription, &p.MetaKeywords, &p.FeaturedImageURL, &p.CreatedAt)
	return p, err
}

// List returns every post, newest first.
func (pt *PostTable) List(ctx context.Context) ([]BlogPost, error) {
	rows, err := pt.t.query(ctx, postSelect+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns the post with id or ErrNotFound.
func (pt *PostTable) Get(ctx context.Context, id string) (BlogPost, error) {
	p, err := scanPost(pt.t.queryRow(ctx, postSelect+` WHERE p.id = ?`, id))
	if err != nil {
		return BlogPost{}, notFound(err)
	}
	return p, nil
}

var postWritable = []string{
	"title", "slug", "content", "excerpt", "author", "published",
	"category_id", "meta_description", "meta_keywords", "featured_image_url",
}

func postValues(f PostFields) []any {
	return []any{
		f.Title, f.Slug, f.Content, f.Excerpt, f.Author, f.Published,
		nullable(f.CategoryID), f.MetaDescription, f.MetaKeywords, f.FeaturedImageURL,
	}
}

// Insert stores a new post and returns it as persisted.
func (pt *PostTable) Insert(ctx context.Context, f PostFields) (BlogPost, error) {
	id := uuid.NewString()
	cols := append([]string{"id"}, postWritable...)
	cols = append(cols, "created_at")
	vals := append([]any{id}, postValues(f)...)
	vals = append(vals, pt.t.db.now())
	if err := pt.t.insert(ctx, cols, vals); err != nil {
		return BlogPost{}, err
	}
	return pt.Get(ctx, id)
}

// Update overwrites every writable column of post id.
func (pt *PostTable) Update(ctx context.Context, id string, f PostFields) (BlogPost, error) {
	if err := pt.t.updateByID(ctx, id, postWritable, postValues(f)); err != nil {
		return BlogPost{}, err
	}
	return pt.Get(ctx, id)
}

// SetPublished changes only the published flag of post id.
func (pt *PostTable) SetPublished(ctx context.Context, id string, published bool) (BlogPost, error) {
	if err := pt.t.updateByID(ctx, id, []string{"published"}, []any{published}); err != nil {
		return BlogPost{}, err
	}
	return pt.Get(ctx, id)
}

// Delete removes post id.
func (pt *PostTable) Delete(ctx context.Context, id string) error {
	return pt.t.deleteByID(ctx, id)
}
