package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Lj07-coder/SkillDeck/internal/schemas"
	"github.com/Lj07-coder/SkillDeck/internal/types"
)

// readCatalog loads a catalog file after checking it against the catalog
// schema.
func readCatalog(path string) (*types.Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	if err := schemas.ValidateCatalog(content); err != nil {
		return nil, err
	}

	var catalog types.Catalog
	if err := json.Unmarshal(content, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog JSON: %w", err)
	}
	return &catalog, nil
}

func countProjects(catalog *types.Catalog) int {
	n := 0
	for _, profile := range catalog.Profiles {
		n += len(profile.Projects)
	}
	return n
}
