package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data, ok := Get(MonoFont)
	require.True(t, ok)
	assert.NotEmpty(t, data)

	_, ok = Get("DroidSansMonoDotted.ttf")
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{MonoFont}, Names())
}
