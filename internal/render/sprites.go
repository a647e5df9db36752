package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/image/draw"
)

// LoadSprite reads a PNG tile sprite.
// Pixels with alpha below 0x80 or pure magenta (#FF00FF) are transparent.
func LoadSprite(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dx() != bounds.Dy() {
		return nil, fmt.Errorf("%s: expected a square sprite, got %dx%d", path, bounds.Dx(), bounds.Dy())
	}

	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			if c.A < 0x80 || (c.R == 0xFF && c.G == 0x00 && c.B == 0xFF) {
				continue
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out, nil
}

// SpriteSet holds tile sprites keyed by kind name ("plain", "source", "controller", ...).
// A nil *SpriteSet is empty.
type SpriteSet struct {
	sprites map[string]*image.NRGBA
}

// LoadSpriteSet loads every <name>.png in dir. Files that fail to decode
// are skipped with a warning.
func LoadSpriteSet(dir string, log zerolog.Logger) (*SpriteSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read sprites dir %s: %w", dir, err)
	}

	set := &SpriteSet{sprites: make(map[string]*image.NRGBA)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		sprite, err := LoadSprite(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping sprite")
			continue
		}
		set.sprites[strings.TrimSuffix(entry.Name(), ".png")] = sprite
	}
	return set, nil
}

// Names returns the loaded sprite names in sorted order.
func (s *SpriteSet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.sprites))
	for name := range s.sprites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Draw scales the named sprite into rect over dst. It reports false when
// the set has no such sprite.
func (s *SpriteSet) Draw(dst draw.Image, rect image.Rectangle, name string) bool {
	if s == nil {
		return false
	}
	sprite, ok := s.sprites[name]
	if !ok {
		return false
	}
	draw.NearestNeighbor.Scale(dst, rect, sprite, sprite.Bounds(), draw.Over, nil)
	return true
}
