package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber_Format(t *testing.T) {
	number := GenerateOrderNumber()

	assert.True(t, strings.HasPrefix(number, "ORD-"))
	assert.Greater(t, len(number), len("ORD-"))
}

func TestGenerateOrderNumber_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber()
		_, dup := seen[number]
		assert.False(t, dup, "duplicate order number: %s", number)
		seen[number] = struct{}{}
	}
}
