package terrain

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/lafriks/go-tiled"
)

// LoadTMX converts a Tiled map into a TileMap. Tiles must be square and
// every layer must draw from the same tileset. A layer's "collider" bool
// property becomes the layer's collision flag. fsys lets callers pass an
// embed.FS or os.DirFS.
func LoadTMX(fsys fs.FS, tmxPath string) (*TileMap, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("terrain: load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth != levelMap.TileHeight {
		return nil, fmt.Errorf("terrain: TMX %s: tiles must be square, got %dx%d",
			tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	m := &TileMap{
		MapWidth:  uint32(levelMap.Width),
		MapHeight: uint32(levelMap.Height),
		TileSize:  uint32(levelMap.TileWidth),
	}

	var tileset *tiled.Tileset
	for _, layer := range levelMap.Layers {
		out := Layer{
			Name:     layer.Name,
			Collider: layer.Properties.GetBool("collider"),
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				i := y*levelMap.Width + x
				if i >= len(layer.Tiles) {
					continue
				}
				tile := layer.Tiles[i]
				if tile == nil || tile.IsNil() {
					continue
				}
				if tileset == nil {
					tileset = tile.Tileset
				} else if tile.Tileset != tileset {
					return nil, fmt.Errorf("terrain: TMX %s: layer %q uses a second tileset", tmxPath, layer.Name)
				}
				out.Tiles = append(out.Tiles, Tile{
					ID: strconv.FormatUint(uint64(tile.ID), 10),
					X:  uint32(x),
					Y:  uint32(y),
				})
			}
		}
		m.Layers = append(m.Layers, out)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("terrain: TMX %s: %w", tmxPath, err)
	}
	return m, nil
}
