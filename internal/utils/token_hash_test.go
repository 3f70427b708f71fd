package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareTokenHash(t *testing.T) {
	stored := HashToken("abc")
	assert.Len(t, stored, 64)
	assert.True(t, CompareTokenHash("abc", stored))
	assert.False(t, CompareTokenHash("abd", stored))
	assert.False(t, CompareTokenHash("abc", ""))
}
