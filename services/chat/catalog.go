package chat

import (
	_ "embed"
	"fmt"

	"spacetact/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Services []models.ServiceItem `yaml:"services"`
}

// LoadCatalog parses the embedded service catalog.
func LoadCatalog() ([]models.ServiceItem, error) {
	return parseCatalog(catalogYAML)
}

func parseCatalog(data []byte) ([]models.ServiceItem, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Services) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	seen := make(map[string]bool, len(file.Services))
	for _, item := range file.Services {
		if item.ID == "" || item.Title == "" || item.SeedPrompt == "" {
			return nil, fmt.Errorf("catalog entry %q is incomplete", item.ID)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("duplicate catalog id %q", item.ID)
		}
		seen[item.ID] = true
	}
	return file.Services, nil
}
