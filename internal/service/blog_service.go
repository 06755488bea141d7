// Package service contains the business logic for blog operations.
package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// BlogService coordinates blog operations for a single authenticated author.
type BlogService struct {
	blogRepo repository.BlogRepository
}

type CreateBlogInput struct {
	AuthorID uint
	Title    string
	Content  string
	Category string
	Image    string
}

type UpdateBlogInput struct {
	AuthorID uint
	BlogID   uint
	Title    *string
	Content  *string
	Category *string
	Image    *string
}

type ListBlogsInput struct {
	AuthorID uint
	Limit    int
	Offset   int
}

func NewBlogService(blogRepo repository.BlogRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo}
}

func (s *BlogService) ListBlogs(ctx context.Context, in ListBlogsInput) ([]*models.Blog, error) {
	return s.blogRepo.ListByAuthor(ctx, in.AuthorID, in.Limit, in.Offset)
}

func (s *BlogService) GetBlog(ctx context.Context, id, authorID uint) (*models.Blog, error) {
	return s.blogRepo.GetByIDForAuthor(ctx, id, authorID)
}

func (s *BlogService) CreateBlog(ctx context.Context, in CreateBlogInput) (*models.Blog, error) {
	const maxTitleLen = 300
	const maxContentLen = 100000

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 100000 characters)")
	}

	category := in.Category
	if category == "" {
		category = models.DefaultCategory
	}
	if !models.ValidCategory(category) {
		return nil, models.NewValidationError("Invalid category")
	}

	blog := &models.Blog{
		Title:    title,
		Content:  in.Content,
		Category: category,
		Image:    in.Image,
		AuthorID: in.AuthorID,
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// UpdateBlog applies the provided fields to a blog the author owns.
// The author of a blog never changes, regardless of what the client sends.
func (s *BlogService) UpdateBlog(ctx context.Context, in UpdateBlogInput) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByIDForAuthor(ctx, in.BlogID, in.AuthorID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		if len(title) > 300 {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		blog.Title = title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("Content is required")
		}
		if len(*in.Content) > 100000 {
			return nil, models.NewValidationError("Content too long (max 100000 characters)")
		}
		blog.Content = *in.Content
	}
	if in.Category != nil {
		if !models.ValidCategory(*in.Category) {
			return nil, models.NewValidationError("Invalid category")
		}
		blog.Category = *in.Category
	}
	if in.Image != nil {
		blog.Image = *in.Image
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) DeleteBlog(ctx context.Context, id, authorID uint) error {
	return s.blogRepo.DeleteByIDForAuthor(ctx, id, authorID)
}

// Categories returns the distinct categories the author has published under.
func (s *BlogService) Categories(ctx context.Context, authorID uint) ([]string, error) {
	return s.blogRepo.CategoriesByAuthor(ctx, authorID)
}

// PopularBlogs returns the author's top blogs ranked by likes.
func (s *BlogService) PopularBlogs(ctx context.Context, authorID uint) ([]models.PopularBlog, error) {
	return s.blogRepo.PopularByAuthor(ctx, authorID, 5)
}
