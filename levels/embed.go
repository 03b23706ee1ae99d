package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/milk9111/platformer/terrain"
)

//go:embed *.json *.tmx
var LevelsFS embed.FS

// Load reads an embedded level. ".tmx" files go through the Tiled importer,
// everything else is read as tile map JSON.
func Load(name string) (*terrain.TileMap, error) {
	return LoadFS(LevelsFS, name)
}

// LoadFS is Load against an arbitrary file system, such as os.DirFS on a
// level directory during hot reload.
func LoadFS(fsys fs.FS, name string) (*terrain.TileMap, error) {
	if name == "" {
		return nil, fmt.Errorf("levels: empty level name")
	}
	name = strings.TrimPrefix(path.Clean(strings.ReplaceAll(name, "\\", "/")), "levels/")
	if strings.EqualFold(path.Ext(name), ".tmx") {
		return terrain.LoadTMX(fsys, name)
	}
	return terrain.LoadFS(fsys, name)
}

// Names lists the embedded levels in lexical order.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
