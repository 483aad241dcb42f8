package flash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homura.shop/app/pkg/view"
)

func TestCodec(t *testing.T) {
	c := NewCodec([]byte("0123456789abcdef0123456789abcdef"), "homura_flash", false)
	in := view.Flash{Kind: view.FlashError, Message: "Quantity must be between 1 and 99."}

	v, err := c.Encode(in)
	require.NoError(t, err)

	got, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, in, *got)

	_, err = c.Decode("x" + v)
	assert.ErrorIs(t, err, ErrInvalid)

	blank, err := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "  "})
	require.NoError(t, err)
	_, err = c.Decode(blank)
	assert.ErrorIs(t, err, ErrInvalid)

	unknown, err := c.Encode(view.Flash{Kind: "banner", Message: "hi"})
	require.NoError(t, err)
	_, err = c.Decode(unknown)
	assert.ErrorIs(t, err, ErrInvalid)
}
