package repository

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAuthors(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()
	alice := models.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	bob := models.User{Username: "bob", Email: "bob@example.com", Password: "hash"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)
	return alice.ID, bob.ID
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestBlogRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	db := testutil.OpenTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()
	aliceID, _ := seedAuthors(t, db)

	blog := &models.Blog{Title: "Hello", Content: "first post", Category: models.CategoryTechnology, AuthorID: aliceID}
	require.NoError(t, repo.Create(ctx, blog))
	require.NotZero(t, blog.ID)

	got, err := repo.GetByIDForAuthor(ctx, blog.ID, aliceID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
}

func TestBlogRepository_CrossAuthorIsolation(t *testing.T) {
	t.Parallel()

	db := testutil.OpenTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()
	aliceID, bobID := seedAuthors(t, db)

	blog := &models.Blog{Title: "Private", AuthorID: aliceID}
	require.NoError(t, repo.Create(ctx, blog))

	// Bob cannot see, update through fetch, or delete Alice's blog; the
	// response is indistinguishable from a missing record.
	_, err := repo.GetByIDForAuthor(ctx, blog.ID, bobID)
	requireNotFound(t, err)

	requireNotFound(t, repo.DeleteByIDForAuthor(ctx, blog.ID, bobID))

	// Alice's copy is untouched.
	got, err := repo.GetByIDForAuthor(ctx, blog.ID, aliceID)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)
}

func TestBlogRepository_ListByAuthor(t *testing.T) {
	t.Parallel()

	db := testutil.OpenTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()
	aliceID, bobID := seedAuthors(t, db)

	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &models.Blog{Title: title, AuthorID: aliceID}))
	}
	require.NoError(t, repo.Create(ctx, &models.Blog{Title: "bobs", AuthorID: bobID}))

	blogs, err := repo.ListByAuthor(ctx, aliceID, 0, 0)
	require.NoError(t, err)
	require.Len(t, blogs, 3)
	for _, b := range blogs {
		assert.Equal(t, aliceID, b.AuthorID)
	}

	empty, err := repo.ListByAuthor(ctx, 424242, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBlogRepository_DeleteIsHard(t *testing.T) {
	t.Parallel()

	db := testutil.OpenTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()
	aliceID, _ := seedAuthors(t, db)

	blog := &models.Blog{Title: "Doomed", AuthorID: aliceID}
	require.NoError(t, repo.Create(ctx, blog))
	require.NoError(t, repo.DeleteByIDForAuthor(ctx, blog.ID, aliceID))

	// Second delete reports missing.
	requireNotFound(t, repo.DeleteByIDForAuthor(ctx, blog.ID, aliceID))

	// The row is gone, not soft-deleted.
	var count int64
	require.NoError(t, db.Model(&models.Blog{}).Where("id = ?", blog.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBlogRepository_CategoriesByAuthor(t *testing.T) {
	t.Parallel()

	db := testutil.OpenTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()
	aliceID, bobID := seedAuthors(t, db)

	for _, cat := range []string{
		models.CategoryTechnology,
		models.CategoryTechnology,
		models.CategoryTravel,
	} {
		require.NoError(t, repo.Create(ctx, &models.Blog{Title: "t", Category: cat, AuthorID: aliceID}))
	}
	require.NoError(t, repo.Create(ctx, &models.Blog{Title: "b", Category: models.CategoryLife, AuthorID: bobID}))

	categories, err := repo.CategoriesByAuthor(ctx, aliceID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{models.CategoryTechnology, models.CategoryTravel}, categories)
}

func TestBlogRepository_PopularByAuthor(t *testing.T) {
	t.Parallel()

	db := testutil.OpenTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()
	aliceID, bobID := seedAuthors(t, db)

	for _, likes := range []int{3, 10, 7, 1, 9, 4, 8} {
		require.NoError(t, repo.Create(ctx, &models.Blog{
			Title:    "post",
			AuthorID: aliceID,
			Likes:    likes,
		}))
	}
	// A wildly popular post by someone else must not appear.
	require.NoError(t, repo.Create(ctx, &models.Blog{Title: "bobs", AuthorID: bobID, Likes: 1000}))

	popular, err := repo.PopularByAuthor(ctx, aliceID, 5)
	require.NoError(t, err)
	require.Len(t, popular, 5)

	assert.Equal(t, 10, popular[0].Likes)
	for i := 1; i < len(popular); i++ {
		assert.GreaterOrEqual(t, popular[i-1].Likes, popular[i].Likes)
	}
}

func TestBlogRepository_Update(t *testing.T) {
	t.Parallel()

	db := testutil.OpenTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()
	aliceID, _ := seedAuthors(t, db)

	blog := &models.Blog{Title: "Before", Content: "old", AuthorID: aliceID}
	require.NoError(t, repo.Create(ctx, blog))

	blog.Title = "After"
	require.NoError(t, repo.Update(ctx, blog))

	got, err := repo.GetByIDForAuthor(ctx, blog.ID, aliceID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, "old", got.Content)
}
