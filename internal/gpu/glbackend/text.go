package glbackend

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// maxGlyphTextures bounds the label texture cache. Labels change with the
// calibration, so old ones are dropped wholesale once it fills up.
const maxGlyphTextures = 256

// glyphCache holds one R8 texture per rasterized label image.
type glyphCache struct {
	textures map[*image.Alpha]uint32
}

func newGlyphCache() *glyphCache {
	return &glyphCache{textures: make(map[*image.Alpha]uint32)}
}

// texture returns the texture holding img, uploading it on first use.
func (c *glyphCache) texture(img *image.Alpha) uint32 {
	if id, ok := c.textures[img]; ok {
		return id
	}
	if len(c.textures) >= maxGlyphTextures {
		c.purge()
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride))
	w, h := img.Rect.Dx(), img.Rect.Dy()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(w), int32(h), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	c.textures[img] = id
	return id
}

func (c *glyphCache) purge() {
	for img, id := range c.textures {
		gl.DeleteTextures(1, &id)
		delete(c.textures, img)
	}
}
