package directory

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"trustgrade-workers/internal/common/validation"
	"trustgrade-workers/internal/models"
)

var (
	//go:embed data/businesses.json
	seedJSON []byte

	//go:embed data/businesses.schema.json
	seedSchema []byte
)

// LoadSeed decodes the embedded business directory after checking it
// against its schema.
func LoadSeed() ([]models.BusinessRecord, error) {
	return DecodeRecords(seedJSON)
}

// DecodeRecords validates and decodes a JSON array of business records.
func DecodeRecords(raw []byte) ([]models.BusinessRecord, error) {
	if err := validation.ValidateDocument(seedSchema, raw); err != nil {
		return nil, fmt.Errorf("invalid business directory: %w", err)
	}

	var records []models.BusinessRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode business directory: %w", err)
	}
	if err := checkUniqueIDs(records); err != nil {
		return nil, err
	}
	return records, nil
}

func checkUniqueIDs(records []models.BusinessRecord) error {
	seen := make(map[int]string, len(records))
	for _, r := range records {
		if prev, ok := seen[r.ID]; ok {
			return fmt.Errorf("duplicate business id %d (%q and %q)", r.ID, prev, r.Name)
		}
		seen[r.ID] = r.Name
	}
	return nil
}
