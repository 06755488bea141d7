package server

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadImage(t *testing.T) {
	_, app := newTestServer(t)
	token := registerUser(t, app, "alice", "alice@example.com", "pw123")

	t.Run("png upload succeeds", func(t *testing.T) {
		png := testutil.TinyPNG(t, 32, 32)
		resp, body := doMultipart(t, app, http.MethodPost, "/api/blogs/upload", token,
			nil, "image", "cover.png", png)
		require.Equal(t, http.StatusOK, resp.StatusCode, "body: %v", body)

		imageURL, _ := body["imageUrl"].(string)
		assert.True(t, strings.HasPrefix(imageURL, "/uploads/"), "url %q", imageURL)
		assert.NotContains(t, imageURL, "cover", "original name must not leak")
	})

	t.Run("missing file", func(t *testing.T) {
		resp, _ := doMultipart(t, app, http.MethodPost, "/api/blogs/upload", token,
			map[string]string{"note": "no file"}, "", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("text file rejected with 415", func(t *testing.T) {
		resp, _ := doMultipart(t, app, http.MethodPost, "/api/blogs/upload", token,
			nil, "image", "notes.txt", []byte("plain text, not an image"))
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	})

	t.Run("oversized file rejected with 413", func(t *testing.T) {
		big := bytes.Repeat([]byte{0xCD}, 6*1024*1024)
		resp, _ := doMultipart(t, app, http.MethodPost, "/api/blogs/upload", token,
			nil, "image", "big.bin", big)
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	})

	t.Run("requires auth", func(t *testing.T) {
		resp, _ := doMultipart(t, app, http.MethodPost, "/api/blogs/upload", "",
			nil, "image", "cover.png", testutil.TinyPNG(t, 8, 8))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
