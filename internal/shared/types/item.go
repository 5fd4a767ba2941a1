package types

import "path/filepath"

// Item is a launchable script. Path is its identity, Name is what operators type.
type Item struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// NewItem builds an item from a file path, cleaning it and deriving the
// display name from the base name.
func NewItem(path string) Item {
	clean := filepath.Clean(path)
	return Item{
		Path: clean,
		Name: filepath.Base(clean),
	}
}
