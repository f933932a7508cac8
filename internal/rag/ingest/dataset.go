package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/communitydesk/helpdesk/internal/domain/catalog"
)

type datasetFile struct {
	Services []catalog.Service `json:"services"`
}

// LoadDataset reads the seed dataset from disk. Records that fail validation
// are dropped; the count of skipped records is returned alongside the rest.
func LoadDataset(path string) ([]catalog.Service, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	var file datasetFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, 0, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}

	valid := make([]catalog.Service, 0, len(file.Services))
	skipped := 0
	for _, svc := range file.Services {
		if !svc.Validate() {
			skipped++
			continue
		}
		valid = append(valid, svc)
	}

	return valid, skipped, nil
}
