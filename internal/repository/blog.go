package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// BlogRepository defines the interface for blog data operations.
// Every read and write is scoped to an author; a blog that exists but
// belongs to someone else is indistinguishable from one that does not exist.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByIDForAuthor(ctx context.Context, id, authorID uint) (*models.Blog, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	DeleteByIDForAuthor(ctx context.Context, id, authorID uint) error
	CategoriesByAuthor(ctx context.Context, authorID uint) ([]string, error)
	PopularByAuthor(ctx context.Context, authorID uint, limit int) ([]models.PopularBlog, error)
}

// defaultListLimit is the full page size; only reads at this size hit the
// author list cache.
const defaultListLimit = 100

// blogRepository implements BlogRepository
type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateAuthor(ctx, blog.AuthorID)
	return nil
}

func (r *blogRepository) GetByIDForAuthor(ctx context.Context, id, authorID uint) (*models.Blog, error) {
	var blog models.Blog
	err := cache.Aside(ctx, cache.BlogKey(id, authorID), &blog, cache.BlogTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("id = ? AND author_id = ?", id, authorID).
			First(&blog).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Blog", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Blog, error) {
	var blogs []*models.Blog
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	// Only the default full first page is cached. Caching truncated pages
	// under the same key would serve short lists to full-page readers, and
	// InvalidateAuthor clears a single list key per author.
	if offset == 0 && limit == defaultListLimit {
		err := cache.Aside(ctx, cache.AuthorListKey(authorID), &blogs, cache.ListTTL, func() error {
			return r.fetchByAuthor(ctx, authorID, limit, offset, &blogs)
		})
		if err != nil {
			return nil, err
		}
		return blogs, nil
	}

	if err := r.fetchByAuthor(ctx, authorID, limit, offset, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) fetchByAuthor(ctx context.Context, authorID uint, limit, offset int, dest *[]*models.Blog) error {
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(dest).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.BlogKey(blog.ID, blog.AuthorID))
	cache.InvalidateAuthor(ctx, blog.AuthorID)
	return nil
}

func (r *blogRepository) DeleteByIDForAuthor(ctx context.Context, id, authorID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&models.Blog{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Blog", id)
	}
	cache.Invalidate(ctx, cache.BlogKey(id, authorID))
	cache.InvalidateAuthor(ctx, authorID)
	return nil
}

func (r *blogRepository) CategoriesByAuthor(ctx context.Context, authorID uint) ([]string, error) {
	var categories []string
	err := cache.Aside(ctx, cache.CategoriesKey(authorID), &categories, cache.CategoriesTTL, func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.Blog{}).
			Where("author_id = ?", authorID).
			Distinct("category").
			Order("category").
			Pluck("category", &categories).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *blogRepository) PopularByAuthor(ctx context.Context, authorID uint, limit int) ([]models.PopularBlog, error) {
	var popular []models.PopularBlog
	if limit <= 0 {
		limit = 5
	}
	err := cache.Aside(ctx, cache.PopularKey(authorID), &popular, cache.PopularTTL, func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.Blog{}).
			Select("id, title, created_at, likes").
			Where("author_id = ?", authorID).
			Order("likes DESC").
			Limit(limit).
			Find(&popular).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return popular, nil
}
