package store

import "time"

// Category groups blog posts. A post references at most one category.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryFields are the writable columns of a category.
type CategoryFields struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

// BlogPost is a single article. CategoryName is filled from a join on reads
// and is nil when the post has no category or the category no longer exists.
type BlogPost struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Content          string    `json:"content"`
	Excerpt          string    `json:"excerpt"`
	Author           string    `json:"author"`
	Published        bool      `json:"published"`
	CategoryID       *string   `json:"category_id"`
	CategoryName     *string   `json:"category_name,omitempty"`
	MetaDescription  string    `json:"meta_description"`
	MetaKeywords     string    `json:"meta_keywords"`
	FeaturedImageURL string    `json:"featured_image_url"`
	CreatedAt        time.Time `json:"created_at"`
}

// PostFields are the writable columns of a blog post.
type PostFields struct {
	Title            string  `json:"title"`
	Slug             string  `json:"slug"`
	Content          string  `json:"content"`
	Excerpt          string  `json:"excerpt"`
	Author           string  `json:"author"`
	Published        bool    `json:"published"`
	CategoryID       *string `json:"category_id"`
	MetaDescription  string  `json:"meta_description"`
	MetaKeywords     string  `json:"meta_keywords"`
	FeaturedImageURL string  `json:"featured_image_url"`
}
