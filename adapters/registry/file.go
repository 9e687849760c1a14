package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/satriahrh/persona-chat/domain"
)

type definitionFile struct {
	Personalities []domain.Personality `json:"personalities"`
}

// LoadFile reads the personality definition file and builds the registry.
// Any missing file, malformed JSON, or invalid record is a hard error; the
// process must not start with a broken definition.
func LoadFile(path string) (*domain.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read personalities file: %w", err)
	}

	var def definitionFile
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse personalities file %s: %w", path, err)
	}
	if len(def.Personalities) == 0 {
		return nil, fmt.Errorf("personalities file %s defines no personalities", path)
	}

	reg, err := domain.NewRegistry(def.Personalities)
	if err != nil {
		return nil, fmt.Errorf("personalities file %s: %w", path, err)
	}
	return reg, nil
}
