package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in       string
		maxLen   int
		expected string
	}{
		{"Go Concurrency", 0, "go_concurrency"},
		{"C++ / Rust!", 0, "c_rust"},
		{"  leading and trailing  ", 0, "leading_and_trailing"},
		{"machine learning", 7, "machine"},
		{"machine learning", 8, "machine"},
		{"UPPER", 0, "upper"},
		{"", 0, ""},
		{"!!!", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Slug(tt.in, tt.maxLen), "Slug(%q, %d)", tt.in, tt.maxLen)
	}
}

func TestNewULID_UniqueWithinMillisecond(t *testing.T) {
	const n = 1000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewULID()
		_, dup := seen[id]
		assert.False(t, dup, "duplicate ULID %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewULID_ConcurrentGeneration(t *testing.T) {
	const workers, perWorker = 8, 100
	ids := make(chan string, workers*perWorker)
	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for i := 0; i < perWorker; i++ {
				ids <- NewULID()
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < workers; w++ {
		<-done
	}
	close(ids)

	seen := make(map[string]struct{}, workers*perWorker)
	for id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate ULID %s", id)
		seen[id] = struct{}{}
	}
}
