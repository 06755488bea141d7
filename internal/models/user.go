// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered author in the Inkwell application.
// Accounts are created once at registration; the core exposes no
// profile-edit or account-delete operation.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	Blogs     []Blog    `gorm:"foreignKey:AuthorID" json:"blogs,omitempty"`
}
