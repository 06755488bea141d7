// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"inkwell/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TinyPNG returns an encoded PNG of the given dimensions.
func TinyPNG(t interface {
	Helper()
	Fatalf(string, ...any)
}, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 2 {
		for y := 0; y < h; y += 2 {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// OpenTestDB opens an in-memory SQLite database migrated with the domain
// models. Each call returns an isolated database.
func OpenTestDB(t interface {
	Helper()
	Fatalf(string, ...any)
}) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Blog{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
