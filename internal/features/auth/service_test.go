package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractToken(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", ExtractToken("Bearer abc.def.ghi"))
	assert.Equal(t, "abc.def.ghi", ExtractToken("abc.def.ghi"))
	assert.Equal(t, "", ExtractToken(""))
}

func TestEmailRegex(t *testing.T) {
	assert.True(t, emailRegex.MatchString("student@example.com"))
	assert.False(t, emailRegex.MatchString("not-an-email"))
	assert.False(t, emailRegex.MatchString("spaces in@example.com"))
}
