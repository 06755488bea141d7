package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	blogKeyPrefix       = "blog:%d:author:%d"
	authorListKeyPrefix = "blogs:author:%d"
	popularKeyPrefix    = "blogs:popular:%d"
	categoriesKeyPrefix = "blogs:categories:%d"
)

const (
	BlogTTL       = 30 * time.Minute
	ListTTL       = 2 * time.Minute
	PopularTTL    = 5 * time.Minute
	CategoriesTTL = 10 * time.Minute
)

// BlogKey is scoped by author so a cached blog can never be served to a
// caller the ownership filter would have hidden it from.
func BlogKey(blogID, authorID uint) string {
	return fmt.Sprintf(blogKeyPrefix, blogID, authorID)
}

func AuthorListKey(authorID uint) string {
	return fmt.Sprintf(authorListKeyPrefix, authorID)
}

func PopularKey(authorID uint) string {
	return fmt.Sprintf(popularKeyPrefix, authorID)
}

func CategoriesKey(authorID uint) string {
	return fmt.Sprintf(categoriesKeyPrefix, authorID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateAuthor drops every cached view derived from one author's blogs.
// Called after any write to that author's posts.
func InvalidateAuthor(ctx context.Context, authorID uint) {
	Invalidate(ctx,
		AuthorListKey(authorID),
		PopularKey(authorID),
		CategoriesKey(authorID),
	)
}
