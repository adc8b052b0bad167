package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/automoto/stratcam/shared/leveldata"
)

var (
	//go:embed all:maps
	assetFS embed.FS
)

// FS returns the asset filesystem. A non-empty dir overrides the embedded
// copy, which lets a server pick up edited maps without a rebuild.
func FS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	return assetFS
}

// LoadTerrain parses a TMX map from the asset filesystem.
func LoadTerrain(fsys fs.FS, mapPath string) (*leveldata.TerrainData, error) {
	data, err := leveldata.LoadTerrain(fsys, mapPath)
	if err != nil {
		return nil, fmt.Errorf("load terrain %q: %w", mapPath, err)
	}
	return data, nil
}

// ListMaps returns the stems of every .tmx file under maps/, sorted.
func ListMaps(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, "maps")
	if err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".tmx" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".tmx"))
	}
	sort.Strings(names)
	return names, nil
}
