package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExtensions are the card file types the catalog exposes.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// Service lists the card identifiers available to clients. The server never
// treats this listing as authoritative for a deal; clients fetch it once and
// send the pool back with every start or rematch request.
type Service struct {
	dir string
}

// New creates a catalog service over a directory of card images
func New(dir string) *Service {
	return &Service{dir: dir}
}

// List returns the card identifiers (image file names) in the catalog
// directory, sorted for stable output.
func (s *Service) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cards directory: %w", err)
	}

	cards := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if imageExtensions[ext] {
			cards = append(cards, entry.Name())
		}
	}

	sort.Strings(cards)
	return cards, nil
}
