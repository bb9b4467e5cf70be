package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixil98/go-grim/internal/geometry"
)

// GeometryDir serves set geometry from YAML documents named after the set
// file, so "mo.set" is read from "<dir>/mo.yaml".
type GeometryDir struct {
	path string
}

func NewGeometryDir(path string) *GeometryDir {
	return &GeometryDir{path: path}
}

func (d *GeometryDir) SetGeometry(setFile string) (*geometry.SetGeometry, error) {
	stem := strings.TrimSuffix(filepath.Base(setFile), filepath.Ext(setFile))
	if stem == "" || stem == "." {
		return nil, nil
	}

	for _, ext := range []string{".yaml", ".yml"} {
		data, err := os.ReadFile(filepath.Join(d.path, stem+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading geometry for %s: %w", setFile, err)
		}

		g, err := geometry.DecodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("decoding geometry for %s: %w", setFile, err)
		}
		return g, nil
	}

	return nil, nil
}
