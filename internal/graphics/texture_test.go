package graphics_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"render-e/internal/graphics"
	"render-e/internal/graphics/graphicstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, fill func(x, y int) color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fill(x, y))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data := encodePNG(t, w, h, func(x, y int) color.RGBA { return color.RGBA{255, 0, 0, 255} })
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDecodeImageFlipsRows(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	data := encodePNG(t, 4, 2, func(x, y int) color.RGBA {
		if y == 0 {
			return red
		}
		return blue
	})

	img, err := graphics.DecodeImage(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	assert.Equal(t, blue, img.RGBAAt(0, 0))
	assert.Equal(t, red, img.RGBAAt(0, 1))
}

func TestDecodeImageRescalesToPowerOfTwo(t *testing.T) {
	data := encodePNG(t, 5, 3, func(x, y int) color.RGBA { return color.RGBA{10, 20, 30, 255} })

	img, err := graphics.DecodeImage(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
	c := img.RGBAAt(4, 2)
	assert.InDelta(t, 10, int(c.R), 1)
	assert.InDelta(t, 20, int(c.G), 1)
	assert.InDelta(t, 30, int(c.B), 1)
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	_, err := graphics.DecodeImage(bytes.NewReader([]byte("not an image")))
	assert.ErrorContains(t, err, "failed to decode image")
}

func TestLoadTexture(t *testing.T) {
	rec := graphicstest.NewRecorder()
	path := writePNG(t, t.TempDir(), "grass.png", 16, 16)

	tex, err := graphics.LoadTexture(rec, path)
	require.NoError(t, err)

	spec := rec.LiveTextures[tex.ID()]
	assert.Equal(t, 16, spec.Width)
	assert.True(t, spec.Mipmaps)
	assert.Len(t, spec.Pixels, 16*16*4)

	tex.Release()
	tex.Release()
	assert.Empty(t, rec.LiveTextures)
	assert.Equal(t, 1, rec.Count("DeleteTexture"))

	_, err = graphics.LoadTexture(rec, filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestNewRenderTexture(t *testing.T) {
	rec := graphicstest.NewRecorder()

	depth := graphics.NewRenderTexture(rec, 512, 256, graphics.FormatDepth, graphics.Texture2D)
	assert.Equal(t, 256, depth.Height())
	assert.Equal(t, graphics.FormatDepth, rec.LiveTextures[depth.ID()].Format)
	assert.Nil(t, rec.LiveTextures[depth.ID()].Pixels)

	cube := graphics.NewRenderTexture(rec, 128, 64, graphics.FormatRGBA, graphics.TextureCubeMap)
	assert.Equal(t, 128, cube.Height())
	assert.Equal(t, graphics.TextureCubeMap, cube.Target())
}

func TestTextureCacheSharesByPath(t *testing.T) {
	rec := graphicstest.NewRecorder()
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 2, 2)
	b := writePNG(t, dir, "b.png", 2, 2)
	cache := graphics.NewTextureCache(rec)

	t1, err := cache.Get(a)
	require.NoError(t, err)
	t2, err := cache.Get(a)
	require.NoError(t, err)
	t3, err := cache.Get(b)
	require.NoError(t, err)

	assert.Same(t, t1, t2)
	assert.NotSame(t, t1, t3)
	assert.Equal(t, 2, rec.Count("CreateTexture"))

	cache.Release()
	assert.Empty(t, rec.LiveTextures)
}

func TestDefaultShadersCompileOnce(t *testing.T) {
	rec := graphicstest.NewRecorder()
	shaders := graphics.NewDefaultShaders(rec)

	z1, err := shaders.ZOnly()
	require.NoError(t, err)
	z2, err := shaders.ZOnly()
	require.NoError(t, err)
	s, err := shaders.ShadowReceiver()
	require.NoError(t, err)

	assert.Same(t, z1, z2)
	assert.NotEqual(t, z1.ID, s.ID)
	assert.Equal(t, 2, rec.Count("CompileProgram"))

	shaders.Release()
	assert.Equal(t, 2, rec.Count("DeleteProgram"))
}

func TestDefaultShadersCompileError(t *testing.T) {
	rec := graphicstest.NewRecorder()
	rec.CompileErr = assert.AnError
	shaders := graphics.NewDefaultShaders(rec)

	_, err := shaders.ZOnly()
	assert.ErrorIs(t, err, assert.AnError)
	assert.ErrorContains(t, err, "z-only shader")
}

func TestShaderUniforms(t *testing.T) {
	rec := graphicstest.NewRecorder()
	s := graphics.WrapProgram(rec, 7)

	s.Bind()
	s.SetInt("tex", 3)

	assert.Equal(t, uint32(7), rec.Program)
	assert.Equal(t, []any{uint32(7), "tex", int32(3)}, rec.Find("UniformInt")[0].Args)

	s.Delete()
	assert.Zero(t, s.Program())
}
