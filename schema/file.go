package schema

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a schema file from disk. The file format is JSON with
// required top-level keys "name" and "fields"; vectorProfiles, semanticConfig,
// scoringProfiles, and analyzers are optional. Field order in the file is
// preserved (JSON arrays keep their order through the round-trip).
//
// The loaded schema is validated; a malformed file surfaces as
// *ValidationError before it reaches any remote call.
func LoadFile(path string) (*SchemaDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	var s SchemaDescriptor
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveFile writes a schema to disk in the schema file format. The output is
// indented for operator readability.
func SaveFile(path string, s *SchemaDescriptor) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schema file %s: %w", path, err)
	}
	return nil
}
