package cache

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests share the package-level client, so they run sequentially.

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	blog := models.Blog{ID: 1, Title: "cached", AuthorID: 2}
	require.NoError(t, SetJSON(ctx, BlogKey(1, 7), blog, time.Minute))

	var got models.Blog
	found, err := GetJSON(ctx, BlogKey(1, 7), &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "cached", got.Title)

	found, err = GetJSON(ctx, BlogKey(999, 7), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *[]string) func() error {
		return func() error {
			calls++
			*dest = []string{"technology", "travel"}
			return nil
		}
	}

	var first []string
	require.NoError(t, Aside(ctx, CategoriesKey(7), &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"technology", "travel"}, first)

	// Second read is served from the cache.
	var second []string
	require.NoError(t, Aside(ctx, CategoriesKey(7), &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestAside_NoClientFallsThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	calls := 0
	var dest []string
	fetch := func() error {
		calls++
		dest = []string{"life"}
		return nil
	}

	require.NoError(t, Aside(ctx, CategoriesKey(1), &dest, time.Minute, fetch))
	require.NoError(t, Aside(ctx, CategoriesKey(1), &dest, time.Minute, fetch))
	assert.Equal(t, 2, calls, "every read hits the source when the cache is off")
}

func TestInvalidateAuthor(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, AuthorListKey(3), []string{"x"}, time.Minute))
	require.NoError(t, SetJSON(ctx, PopularKey(3), []string{"x"}, time.Minute))
	require.NoError(t, SetJSON(ctx, CategoriesKey(3), []string{"x"}, time.Minute))
	require.NoError(t, SetJSON(ctx, AuthorListKey(4), []string{"y"}, time.Minute))

	InvalidateAuthor(ctx, 3)

	assert.False(t, mr.Exists(AuthorListKey(3)))
	assert.False(t, mr.Exists(PopularKey(3)))
	assert.False(t, mr.Exists(CategoriesKey(3)))
	assert.True(t, mr.Exists(AuthorListKey(4)), "other authors' keys survive")
}

func TestExpiry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, BlogKey(5, 7), models.Blog{ID: 5}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var got models.Blog
	found, err := GetJSON(ctx, BlogKey(5, 7), &got)
	require.NoError(t, err)
	assert.False(t, found)
}
