package output

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriterCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b")
	w, err := NewWriter(root, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, root, w.Root)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaveVariants(t *testing.T) {
	w, err := NewWriter(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	a := image.NewRGBA(image.Rect(0, 0, 4, 4))
	a.SetRGBA(1, 2, color.RGBA{10, 20, 30, 255})
	b := image.NewRGBA(image.Rect(0, 0, 4, 4))

	paths, err := w.SaveVariants("W56N22", []*image.RGBA{a, b})
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(w.Root, "W56N22_0.png"),
		filepath.Join(w.Root, "W56N22_1.png"),
	}, paths)

	f, err := os.Open(paths[0])
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	r, g, bl, al := img.At(1, 2).RGBA()
	assert.Equal(t, []uint32{10, 20, 30, 255}, []uint32{r >> 8, g >> 8, bl >> 8, al >> 8})
}

func TestSaveVariantsMissingRoot(t *testing.T) {
	w := &Writer{Root: filepath.Join(t.TempDir(), "gone"), Log: zerolog.Nop()}
	paths, err := w.SaveVariants("W1N1", []*image.RGBA{image.NewRGBA(image.Rect(0, 0, 1, 1))})
	require.Error(t, err)
	assert.Empty(t, paths)
}

func TestWriteIndex(t *testing.T) {
	w, err := NewWriter(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	path, err := w.WriteIndex([]string{"W49N48", "W48N46"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Root, IndexFile), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(raw)
	assert.Contains(t, page, "<title>View for Images</title>")
	assert.Contains(t, page, "<h3>W49N48</h3>")
	assert.Contains(t, page, `src="./W49N48_0.png"`)
	assert.Contains(t, page, `src="./W48N46_1.png"`)
	assert.Less(t, strings.Index(page, "W49N48_1.png"), strings.Index(page, "W48N46_0.png"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "E3S7_1.png", FileName("E3S7", 1))
}
