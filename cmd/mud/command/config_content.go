package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-mudengine/internal/content"
)

// ContentConfig points at the asset directories the world is built from.
type ContentConfig struct {
	Rooms string `json:"rooms"`
	Items string `json:"items"`
	Npcs  string `json:"npcs"`
}

func (c *ContentConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(validatePath("content.rooms", c.Rooms))
	el.Add(validatePath("content.items", c.Items))
	el.Add(validatePath("content.npcs", c.Npcs))
	return el.Err()
}

func (c *ContentConfig) openStores() (content.Stores, error) {
	return content.OpenStores(c.Rooms, c.Items, c.Npcs)
}

func validatePath(name, path string) error {
	if path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, path, err)
	}
	return nil
}
