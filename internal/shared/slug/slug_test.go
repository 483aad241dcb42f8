package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromTitle(t *testing.T) {
	assert.Equal(t, "silk-kimono-jacket", FromTitle("  Silk Kimono Jacket "))
	assert.Equal(t, "a-b", FromTitle("A & B!"))
	assert.Equal(t, "product", FromTitle("!!!"))
}

func TestValidHandle(t *testing.T) {
	for _, ok := range []string{"frontpage", "silk-kimono-jacket", "tee-2024"} {
		assert.True(t, ValidHandle(ok), ok)
	}
	for _, bad := range []string{"", "Upper", "-lead", "trail-", "double--dash", "sp ace", "../etc", "a/b"} {
		assert.False(t, ValidHandle(bad), bad)
	}
}
