package models

import (
	"time"
)

// Blog categories form a fixed set; anything else is rejected at the
// service boundary.
const (
	CategoryTechnology = "technology"
	CategoryLife       = "life"
	CategoryTravel     = "travel"

	DefaultCategory = CategoryTechnology
)

// Categories lists every valid blog category.
var Categories = []string{CategoryTechnology, CategoryLife, CategoryTravel}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Blog represents a post in the Inkwell application. AuthorID is set
// exactly once at creation from the authenticated caller and is never
// accepted from client input afterwards. Blogs are hard-deleted.
type Blog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Category  string    `gorm:"not null;default:technology;index" json:"category"`
	Image     string    `json:"image"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Views     int       `gorm:"default:0" json:"views"`
	Likes     int       `gorm:"default:0" json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PopularBlog is the reduced projection returned by the popular listing.
type PopularBlog struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Likes     int       `json:"likes"`
}
