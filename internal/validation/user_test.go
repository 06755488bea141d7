package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	valid := []string{"abc", "alice", "user_42", "some-name", "A1b2C3"}
	for _, u := range valid {
		assert.NoError(t, ValidateUsername(u), "username %q", u)
	}

	invalid := []string{
		"",
		"ab",
		strings.Repeat("x", 31),
		"has space",
		"émile",
		"_leading",
		"trailing_",
		"-leading",
		"trailing-",
	}
	for _, u := range invalid {
		assert.Error(t, ValidateUsername(u), "username %q", u)
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@b.co", "alice@example.com", "first.last+tag@sub.domain.org"}
	for _, e := range valid {
		assert.NoError(t, ValidateEmail(e), "email %q", e)
	}

	invalid := []string{"", "not-an-email", "missing@tld", "@example.com", "a@b"}
	for _, e := range invalid {
		assert.Error(t, ValidateEmail(e), "email %q", e)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePassword("pw123"))
	assert.NoError(t, ValidatePassword("abcd"))
	assert.Error(t, ValidatePassword("abc"))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
}
