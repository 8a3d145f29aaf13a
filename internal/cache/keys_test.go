package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	assert.Equal(t, "versora:course:search:go_tutorial",
		GenerateCacheKey("course", "search", "go_tutorial"))

	assert.Equal(t, "versora:course:search:go_tutorial:20",
		GenerateCacheKey("course", "search", "go_tutorial", "20"))

	assert.Equal(t, "versora:course:search:go_tutorial:20_page2",
		GenerateCacheKey("course", "search", "go_tutorial", "20", "page2"))
}
