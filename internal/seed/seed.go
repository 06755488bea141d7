// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	BlogsPerUser int
	ShouldClean  bool
}

// Seeder populates the database with fake data.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seedable data from the database.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	if err := s.db.Exec("DELETE FROM blogs").Error; err != nil {
		return fmt.Errorf("failed to clear blogs: %w", err)
	}
	if err := s.db.Exec("DELETE FROM users").Error; err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	return nil
}

// Seed populates the database with test data
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Seeding %d users with ~%d blogs each...", opts.NumUsers, opts.BlogsPerUser)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d test users", len(users))

	total := 0
	for _, user := range users {
		n, err := s.createBlogs(user, opts.BlogsPerUser)
		if err != nil {
			return fmt.Errorf("failed to create blogs for user %d: %w", user.ID, err)
		}
		total += n
	}
	log.Printf("created %d blogs", total)

	return nil
}

func (s *Seeder) createUsers(count int) ([]*models.User, error) {
	// All seeded users share a known password for local testing.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    fmt.Sprintf("seed%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createBlogs(user *models.User, count int) (int, error) {
	created := 0
	for i := 0; i < count; i++ {
		blog := &models.Blog{
			Title:    gofakeit.Sentence(s.r.Intn(6) + 3),
			Content:  gofakeit.Paragraph(2, 4, 8, "\n\n"),
			Category: models.Categories[s.r.Intn(len(models.Categories))],
			AuthorID: user.ID,
			Views:    s.r.Intn(5000),
			Likes:    s.r.Intn(500),
		}
		// realistic created_at spread over the past ~90 days
		daysBack := s.r.Intn(90)
		hoursBack := s.r.Intn(24)
		blog.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

		if s.r.Intn(3) == 0 {
			blog.Image = fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID())
		}

		if err := s.db.Create(blog).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
