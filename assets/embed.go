package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.png
var assetsFS embed.FS

// FS exposes the embedded assets.
var FS fs.FS = assetsFS

// DefaultTileset is the tileset used when a world names none.
const DefaultTileset = "tiles.png"

// LoadImage decodes the image at path inside fsys.
func LoadImage(fsys fs.FS, path string) (image.Image, error) {
	clean := cleanAssetPath(path)
	b, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", clean, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", clean, err)
	}
	return img, nil
}

// LoadTileset prefers a file on disk under assets/ and falls back to the
// embedded copy.
func LoadTileset(path string) (image.Image, error) {
	if path == "" {
		path = DefaultTileset
	}
	clean := cleanAssetPath(path)
	if _, err := os.Stat(diskAssetPath(clean)); err == nil {
		return LoadImage(os.DirFS("assets"), clean)
	}
	return LoadImage(assetsFS, clean)
}

// PlaceholderTileset draws a cols x rows tileset of flat, outlined tiles.
// The last tile is left fully transparent.
func PlaceholderTileset(tileSize, cols, rows int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, tileSize*cols, tileSize*rows))
	n := cols * rows
	for i := 0; i < n-1; i++ {
		base := placeholderColor(i, n)
		edge := color.NRGBA{R: base.R / 2, G: base.G / 2, B: base.B / 2, A: 255}
		ox, oy := (i%cols)*tileSize, (i/cols)*tileSize
		for y := 0; y < tileSize; y++ {
			for x := 0; x < tileSize; x++ {
				c := base
				if x == 0 || y == 0 || x == tileSize-1 || y == tileSize-1 {
					c = edge
				}
				img.SetNRGBA(ox+x, oy+y, c)
			}
		}
	}
	return img
}

func placeholderColor(i, n int) color.NRGBA {
	t := float64(i) / float64(max(n-1, 1))
	return color.NRGBA{
		R: uint8(80 + 150*t),
		G: uint8(160 - 90*t),
		B: uint8(90 + 60*(1-t)),
		A: 255,
	}
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}

func diskAssetPath(clean string) string {
	return filepath.Join("assets", filepath.FromSlash(clean))
}
