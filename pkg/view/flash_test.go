package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlashRole(t *testing.T) {
	assert.Equal(t, "status", Flash{Kind: FlashInfo}.Role())
	assert.Equal(t, "status", Flash{Kind: FlashSuccess}.Role())
	assert.Equal(t, "alert", Flash{Kind: FlashWarning}.Role())
	assert.Equal(t, "alert", Flash{Kind: FlashError}.Role())
}

func TestFlashKindValid(t *testing.T) {
	assert.True(t, FlashWarning.Valid())
	assert.False(t, FlashKind("").Valid())
	assert.False(t, FlashKind("banner").Valid())
}
