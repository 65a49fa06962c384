package datasource

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/*.json
var builtinFS embed.FS

// Builtin returns the decoded payload of an embedded list ("states" or "specialties")
func Builtin(name string) (any, error) {
	data, err := builtinFS.ReadFile("data/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("unknown builtin list %q", name)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("builtin list %q: %w", name, err)
	}
	return payload, nil
}

// BuiltinRecords returns the records of an embedded list at path, for use as fallback data
func BuiltinRecords(name, path string) ([]map[string]any, error) {
	payload, err := Builtin(name)
	if err != nil {
		return nil, err
	}
	list, err := Extract(payload, path)
	if err != nil {
		return nil, fmt.Errorf("builtin list %q: %w", name, err)
	}
	records := make([]map[string]any, 0, len(list))
	for _, r := range list {
		if m, ok := r.(map[string]any); ok {
			records = append(records, m)
		}
	}
	return records, nil
}
