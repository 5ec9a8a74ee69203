package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTheme_String(t *testing.T) {
	assert.Equal(t, "hello_kitty", ThemeHelloKitty.String())
	assert.Equal(t, "pokemon", ThemePokemon.String())
	assert.Equal(t, "neutral", ThemeNeutral.String())
}

func TestTheme_IsValid(t *testing.T) {
	assert.True(t, ThemeHelloKitty.IsValid())
	assert.True(t, ThemePokemon.IsValid())
	assert.True(t, ThemeNeutral.IsValid())

	assert.False(t, Theme("space").IsValid())
	assert.False(t, Theme("").IsValid())
	// values are case sensitive
	assert.False(t, Theme("Pokemon").IsValid())
}

func TestPostType_String(t *testing.T) {
	assert.Equal(t, "text", PostTypeText.String())
	assert.Equal(t, "photo", PostTypePhoto.String())
	assert.Equal(t, "drawing", PostTypeDrawing.String())
}

func TestPostType_IsValid(t *testing.T) {
	assert.True(t, PostTypeText.IsValid())
	assert.True(t, PostTypePhoto.IsValid())
	assert.True(t, PostTypeDrawing.IsValid())

	assert.False(t, PostType("video").IsValid())
	assert.False(t, PostType("").IsValid())
}
