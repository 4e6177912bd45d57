package blogcrm

import (
	"context"
	"testing"
	"time"
)

func TestCategoryCacheLoadsOnceWithinTTL(t *testing.T) {
	repo := newFakeCategories()
	repo.items["a"] = Category{ID: "a", Name: "Alpha"}
	cache := NewCategoryCache(NewCategories(repo), time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := cache.List(ctx); err != nil {
			t.Fatalf("List failed: %v", err)
		}
	}
	if repo.calls != 1 {
		t.Errorf("store calls = %d, want 1", repo.calls)
	}

	cache.Invalidate()
	if _, err := cache.List(ctx); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if repo.calls != 2 {
		t.Errorf("store calls after Invalidate = %d, want 2", repo.calls)
	}
}

func TestCategoryCacheExpires(t *testing.T) {
	repo := newFakeCategories()
	cache := NewCategoryCache(NewCategories(repo), 20*time.Millisecond)
	ctx := context.Background()

	cache.List(ctx)
	time.Sleep(40 * time.Millisecond)
	cache.List(ctx)
	if repo.calls != 2 {
		t.Errorf("store calls = %d, want 2 after TTL", repo.calls)
	}
}

func TestCategoryCacheMergeAndRemove(t *testing.T) {
	repo := newFakeCategories()
	repo.items["m"] = Category{ID: "m", Name: "Mango"}
	cache := NewCategoryCache(NewCategories(repo), time.Minute)
	ctx := context.Background()

	// Merging into an unloaded cache is ignored; the next List loads.
	cache.Merge(Category{ID: "x", Name: "Ghost"})

	items, _ := cache.List(ctx)
	if len(items) != 1 {
		t.Fatalf("items = %+v, want only Mango", items)
	}

	cache.Merge(Category{ID: "a", Name: "Apple"})
	cache.Merge(Category{ID: "z", Name: "Zebra"})
	cache.Merge(Category{ID: "m", Name: "Melon"})

	items, _ = cache.List(ctx)
	want := []string{"Apple", "Melon", "Zebra"}
	if len(items) != len(want) {
		t.Fatalf("items = %+v, want %v", items, want)
	}
	for i, c := range items {
		if c.Name != want[i] {
			t.Errorf("items[%d] = %q, want %q", i, c.Name, want[i])
		}
	}

	cache.Remove("m")
	items, _ = cache.List(ctx)
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "z" {
		t.Errorf("after Remove items = %+v", items)
	}
	if repo.calls != 1 {
		t.Errorf("store calls = %d, want 1", repo.calls)
	}
}

func TestCategoryCacheMergeMatchesStoreOrder(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	cats := NewCategories(db.Categories())
	cache := NewCategoryCache(cats, time.Minute)

	if _, err := cats.Create(ctx, CategoryInput{Name: "apple"}); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.List(ctx); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Zebra", "banana", "Banana"} {
		cat, err := cats.Create(ctx, CategoryInput{Name: name, Slug: name + "-x"})
		if err != nil {
			t.Fatalf("Create(%s): %v", name, err)
		}
		cache.Merge(cat)
	}

	cached, _ := cache.List(ctx)
	fresh, err := cats.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cached) != len(fresh) {
		t.Fatalf("cached %d items, store %d", len(cached), len(fresh))
	}
	for i := range fresh {
		if cached[i].ID != fresh[i].ID {
			t.Errorf("position %d: cached %q, store %q", i, cached[i].Name, fresh[i].Name)
		}
	}
}
