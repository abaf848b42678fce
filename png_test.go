package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formedit/form"
)

func renderPNG(t *testing.T, f *form.Form, s form.Scale) []byte {
	t.Helper()
	r, err := newPNGRenderer()
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, r.Render(&out, f, s))
	return out.Bytes()
}

func TestRenderPNG(t *testing.T) {
	f, err := form.Parse([]byte(sampleForm))
	require.NoError(t, err)
	data := renderPNG(t, f, form.Identity)
	require.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	assert.GreaterOrEqual(t, b.Dx(), 200)

	red := false
	for y := b.Min.Y; y < b.Max.Y && !red; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r > 0xa000 && g < 0x6000 && bl < 0x6000 {
				red = true
				break
			}
		}
	}
	assert.True(t, red, "label color missing")
}

func TestRenderPNGGrowsWithContent(t *testing.T) {
	f := &form.Form{Elements: []form.Element{
		{ID: "label-0", Kind: form.KindLabel, X: 600, Y: 300, Content: "far", Color: "#000", FontSize: 14},
	}}
	img, err := png.Decode(bytes.NewReader(renderPNG(t, f, form.Identity)))
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 600)
	assert.Greater(t, img.Bounds().Dy(), 300)

	img, err = png.Decode(bytes.NewReader(renderPNG(t, f, form.Scale{Font: 1, Line: 2})))
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dy(), 600)
}

func TestRenderPNGEmpty(t *testing.T) {
	r, err := newPNGRenderer()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, &form.Form{}, form.Identity))
}

func TestWritePNG(t *testing.T) {
	f, err := form.Parse([]byte(sampleForm))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, writePNG(path, f, form.Identity))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}
