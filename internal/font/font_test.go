package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
)

func TestLoad(t *testing.T) {
	f, err := Load(gomono.TTF, DefaultSize)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, float64(DefaultSize), f.Size())
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load([]byte("not a font"), DefaultSize)
	assert.Error(t, err)

	_, err = Load(gomono.TTF, 0)
	assert.Error(t, err)
}

func TestRasterize(t *testing.T) {
	f, err := Load(gomono.TTF, DefaultSize)
	require.NoError(t, err)
	defer f.Close()

	img := f.Rasterize("-40")
	w, h := f.Measure("-40")
	assert.Equal(t, w, img.Bounds().Dx())
	assert.Equal(t, h, img.Bounds().Dy())

	var inked bool
	for _, a := range img.Pix {
		if a != 0 {
			inked = true
			break
		}
	}
	assert.True(t, inked)

	// Cached.
	assert.Same(t, img, f.Rasterize("-40"))

	// Monospaced: equal-length labels have equal width.
	w2, _ := f.Measure("+10")
	assert.Equal(t, w, w2)
}

func TestCloseNil(t *testing.T) {
	var f *Font
	assert.NoError(t, f.Close())

	f, err := Load(gomono.TTF, DefaultSize)
	require.NoError(t, err)
	assert.NoError(t, f.Close())
	assert.NoError(t, f.Close())
}
