package server

import (
	"io"
	"mime/multipart"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// blogForm carries the multipart fields of a create or update request.
// Every field is optional at parse time; the service decides what is
// required for the operation.
type blogForm struct {
	Title    *string
	Content  *string
	Category *string
	ImageURL *string
	File     *multipart.FileHeader
}

// parseBlogForm reads title/content/category/imageUrl fields and the
// optional `image` file from a multipart (or urlencoded) request body.
func parseBlogForm(c *fiber.Ctx) blogForm {
	var f blogForm

	formValue := func(name string) *string {
		if v, ok := valueIfPresent(c, name); ok {
			return &v
		}
		return nil
	}
	f.Title = formValue("title")
	f.Content = formValue("content")
	f.Category = formValue("category")
	f.ImageURL = formValue("imageUrl")

	if file, err := c.FormFile("image"); err == nil {
		f.File = file
	}
	return f
}

// valueIfPresent distinguishes an absent form field from an empty one.
func valueIfPresent(c *fiber.Ctx, name string) (string, bool) {
	form, err := c.MultipartForm()
	if err == nil && form != nil {
		if vals, ok := form.Value[name]; ok && len(vals) > 0 {
			return vals[0], true
		}
		return "", false
	}
	// Fall back to urlencoded bodies. Presence is checked on the parsed
	// body args so an empty field can clear a value, same as multipart.
	if args := c.Request().PostArgs(); args.Has(name) {
		return string(args.Peek(name)), true
	}
	return "", false
}

// storeFormImage runs an attached file through the upload service and
// returns its public URL.
func (s *Server) storeFormImage(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", models.NewValidationError("Unable to read uploaded file")
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return "", models.NewValidationError("Unable to read uploaded file")
	}

	stored, err := s.uploadService.Accept(c.UserContext(), service.UploadInput{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return "", err
	}
	return stored.URL, nil
}

// GetBlogs handles GET /api/blogs
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	p := parsePagination(c, 100)

	blogs, err := s.blogService.ListBlogs(c.UserContext(), service.ListBlogsInput{
		AuthorID: currentUserID(c),
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	if blogs == nil {
		blogs = []*models.Blog{}
	}

	return c.JSON(fiber.Map{
		"data": blogs,
	})
}

// GetBlog handles GET /api/blogs/:id
func (s *Server) GetBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blog, err := s.blogService.GetBlog(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(blog)
}

// CreateBlog handles POST /api/blogs
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	form := parseBlogForm(c)

	in := service.CreateBlogInput{
		AuthorID: currentUserID(c),
	}
	if form.Title != nil {
		in.Title = *form.Title
	}
	if form.Content != nil {
		in.Content = *form.Content
	}
	if form.Category != nil {
		in.Category = *form.Category
	}
	if form.ImageURL != nil {
		in.Image = *form.ImageURL
	}
	if form.File != nil {
		url, err := s.storeFormImage(c, form.File)
		if err != nil {
			return s.respondServiceError(c, err)
		}
		in.Image = url
	}

	blog, err := s.blogService.CreateBlog(c.UserContext(), in)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(blog)
}

// UpdateBlog handles PUT /api/blogs/:id
func (s *Server) UpdateBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	form := parseBlogForm(c)
	in := service.UpdateBlogInput{
		AuthorID: currentUserID(c),
		BlogID:   id,
		Title:    form.Title,
		Content:  form.Content,
		Category: form.Category,
		Image:    form.ImageURL,
	}
	if form.File != nil {
		url, err := s.storeFormImage(c, form.File)
		if err != nil {
			return s.respondServiceError(c, err)
		}
		in.Image = &url
	}

	blog, err := s.blogService.UpdateBlog(c.UserContext(), in)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(blog)
}

// DeleteBlog handles DELETE /api/blogs/:id
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.blogService.DeleteBlog(c.UserContext(), id, currentUserID(c)); err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Blog has been deleted",
	})
}

// GetCategories handles GET /api/blogs/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.blogService.Categories(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondServiceError(c, err)
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(fiber.Map{
		"categories": categories,
	})
}

// GetPopularBlogs handles GET /api/blogs/popular
func (s *Server) GetPopularBlogs(c *fiber.Ctx) error {
	popular, err := s.blogService.PopularBlogs(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondServiceError(c, err)
	}
	if popular == nil {
		popular = []models.PopularBlog{}
	}
	return c.JSON(popular)
}
