package catalog

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse decodes an exported YAML entry list. Parsed entries are tagged
// custom; their ids are only hints and are reassigned on import.
func Parse(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing entries YAML: %w", err)
	}
	if entries == nil {
		return []Entry{}, nil
	}
	for i := range entries {
		entries[i].Origin = OriginCustom
	}
	return entries, nil
}

// Marshal encodes an entry list to YAML bytes.
func Marshal(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return nil, fmt.Errorf("encoding entries: %w", err)
	}
	return buf.Bytes(), nil
}
