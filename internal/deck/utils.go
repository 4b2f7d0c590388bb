package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsDeckFile reports whether the name has a deck file extension
func IsDeckFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

// FindLatestDeck finds the most recently modified deck file in dir
func FindLatestDeck(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read decks directory: %w", err)
	}

	type candidate struct {
		path string
		mod  int64
	}
	var decks []candidate
	for _, entry := range entries {
		if entry.IsDir() || !IsDeckFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		decks = append(decks, candidate{filepath.Join(dir, entry.Name()), info.ModTime().UnixNano()})
	}

	if len(decks) == 0 {
		return "", fmt.Errorf("no deck files found in %s", dir)
	}

	sort.Slice(decks, func(i, j int) bool {
		return decks[i].mod > decks[j].mod
	})

	return decks[0].path, nil
}
