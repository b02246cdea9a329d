package utils

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := color.NRGBA{R: 255, A: 255}
			if (x+y)%2 == 1 {
				c = color.NRGBA{B: 255, A: 90}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSaveReadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checker.png")
	want := checker(5, 3)
	require.NoError(t, SaveImage(want, path))

	got, err := ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, want.Bounds(), got.Bounds())
	assert.Equal(t, want.Pix, got.Pix)
}

func TestReadImage_JPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gray.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	src := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = 100
	}
	require.NoError(t, jpeg.Encode(f, src, nil))
	require.NoError(t, f.Close())

	got, err := ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), got.Bounds())
	c := got.NRGBAAt(3, 3)
	assert.InDelta(t, 100, int(c.R), 2)
	assert.Equal(t, uint8(255), c.A)
}

func TestReadImage_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadImage(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))
	_, err = ReadImage(bad)
	assert.ErrorContains(t, err, "decode image")
}

func TestToNRGBA(t *testing.T) {
	zero := checker(2, 2)
	assert.Same(t, zero, ToNRGBA(zero))

	offset := image.NewRGBA(image.Rect(3, 4, 5, 5))
	offset.SetRGBA(4, 4, color.RGBA{G: 200, A: 255})
	got := ToNRGBA(offset)
	assert.Equal(t, image.Rect(0, 0, 2, 1), got.Bounds())
	assert.Equal(t, color.NRGBA{G: 200, A: 255}, got.NRGBAAt(1, 0))
}

func TestFiles(t *testing.T) {
	var files Files
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, files.Save(path, checker(4, 4)))
	assert.True(t, Exists(path))
	assert.False(t, Exists(filepath.Dir(path)))

	img, err := files.Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())

	img, err = files.Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
	assert.Nil(t, img)
}
