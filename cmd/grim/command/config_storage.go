package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-grim/internal/game"
	"github.com/pixil98/go-grim/internal/geometry"
	"github.com/pixil98/go-grim/internal/storage"
)

// StorageConfig locates static set data. Both paths are optional: without
// descriptors sets have no names or setups, and without geometry no sector
// ever resolves.
type StorageConfig struct {
	Sets     string `json:"sets"`
	Geometry string `json:"geometry"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(validatePath("sets", c.Sets))
	el.Add(validatePath("geometry", c.Geometry))
	return el.Err()
}

func validatePath(name, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, path, err)
	}
	return nil
}

func (c *StorageConfig) worldOpts() ([]game.WorldOpt, error) {
	var opts []game.WorldOpt

	if c.Sets != "" {
		sets, err := storage.NewFileStore[*geometry.SetDescriptor](c.Sets)
		if err != nil {
			return nil, fmt.Errorf("creating set store: %w", err)
		}
		opts = append(opts, game.WithDescriptors(sets))
	}

	if c.Geometry != "" {
		opts = append(opts, game.WithGeometry(storage.NewGeometryDir(c.Geometry)))
	}

	return opts, nil
}
