package store

import (
	"encoding/json"
	"fmt"

	"estatekeeper/internal/types"
)

// Slice and struct fields ride in TEXT columns as JSON, the same way the
// backup manifest encodes them.

func encodeStrings(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return string(data)
}

func decodeStrings(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to decode string list: %w", err)
	}
	return out, nil
}

func encodeDocTags(tags []types.DocumentTag) string {
	if tags == nil {
		tags = []types.DocumentTag{}
	}
	data, _ := json.Marshal(tags)
	return string(data)
}

func decodeDocTags(raw string) ([]types.DocumentTag, error) {
	if raw == "" {
		return []types.DocumentTag{}, nil
	}
	var out []types.DocumentTag
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to decode document tags: %w", err)
	}
	return out, nil
}

func encodeLinkedIDs(ids *types.LinkedIDs) string {
	if ids == nil {
		return ""
	}
	data, _ := json.Marshal(ids)
	return string(data)
}

func decodeLinkedIDs(raw string) (*types.LinkedIDs, error) {
	if raw == "" {
		return nil, nil
	}
	var out types.LinkedIDs
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to decode linked ids: %w", err)
	}
	return &out, nil
}
