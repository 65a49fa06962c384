// Package datasource loads dropdown candidate lists from inline data or a
// remote JSON document and projects raw records into domain items.
package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"npisearch/internal/domain"
)

var (
	// ErrPathNotFound is returned when a data path step is missing
	ErrPathNotFound = errors.New("data path not found")
	// ErrNotAList is returned when the resolved value holds no record list
	ErrNotAList = errors.New("resolved value is not a list")
	// ErrNoSource is returned when neither inline data nor a URL is configured
	ErrNoSource = errors.New("no data source configured")
)

// Source describes where a dropdown's records come from.
// Inline wins over URL. Path is a dot-separated key sequence.
type Source struct {
	Inline any
	URL    string
	Path   string
}

// Keys maps raw record fields onto item fields. Subtitle is optional.
type Keys struct {
	ID       string
	Title    string
	Subtitle string
}

// DefaultKeys is the mapping used when none is configured
var DefaultKeys = Keys{ID: "id", Title: "title"}

// Load produces the normalized item list for src.
// On any failure it logs, returns the normalized fallback and the cause.
func Load(ctx context.Context, src Source, keys Keys, fallback []map[string]any, fetcher Fetcher) ([]domain.Item, error) {
	records, err := loadRecords(ctx, src, fetcher)
	if err != nil {
		log.Printf("datasource: loading %s failed: %v; using %d fallback items", src.describe(), err, len(fallback))
		return NormalizeAll(toAny(fallback), keys), err
	}

	items := NormalizeAll(records, keys)
	log.Printf("datasource: loaded %d items from %s", len(items), src.describe())
	return items, nil
}

func loadRecords(ctx context.Context, src Source, fetcher Fetcher) ([]any, error) {
	var payload any

	switch {
	case src.Inline != nil:
		v, err := generic(src.Inline)
		if err != nil {
			return nil, fmt.Errorf("inline data: %w", err)
		}
		payload = v

	case src.URL != "":
		if fetcher == nil {
			fetcher = NewHTTPFetcher()
		}
		body, err := fetcher.Fetch(ctx, src.URL)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("malformed JSON from %s: %w", src.URL, err)
		}

	default:
		return nil, ErrNoSource
	}

	return Extract(payload, src.Path)
}

// Extract descends into payload along a dot-separated path and returns the
// record list found there. An object is accepted when it has an "items" list.
func Extract(payload any, path string) ([]any, error) {
	target := payload
	if path != "" {
		for _, part := range strings.Split(path, ".") {
			obj, ok := target.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %q at %q", ErrPathNotFound, path, part)
			}
			next, ok := obj[part]
			if !ok || next == nil {
				return nil, fmt.Errorf("%w: %q at %q", ErrPathNotFound, path, part)
			}
			target = next
		}
	}

	switch v := target.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if list, ok := v["items"].([]any); ok {
			return list, nil
		}
	}
	return nil, ErrNotAList
}

// Normalize projects one raw record into an item. It never rejects a record:
// an absent title renders empty. Subtitle is only set when mapped and non-empty.
func Normalize(record any, keys Keys) domain.Item {
	obj, _ := record.(map[string]any)
	item := domain.Item{Original: obj}
	if obj == nil {
		return item
	}

	item.ID = obj[keys.ID]
	item.Title = text(obj[keys.Title])

	if keys.Subtitle != "" {
		if v, ok := obj[keys.Subtitle]; ok && truthy(v) {
			item.Subtitle = text(v)
			item.HasSubtitle = true
		}
	}
	return item
}

// NormalizeAll normalizes every record in order
func NormalizeAll(records []any, keys Keys) []domain.Item {
	items := make([]domain.Item, 0, len(records))
	for _, r := range records {
		items = append(items, Normalize(r, keys))
	}
	return items
}

func (s Source) describe() string {
	switch {
	case s.Inline != nil:
		return "inline data"
	case s.URL != "":
		return s.URL
	default:
		return "empty source"
	}
}

// generic converts typed inline data into the shape encoding/json decodes to
func generic(v any) (any, error) {
	switch t := v.(type) {
	case []any, map[string]any:
		return t, nil
	case []map[string]any:
		return toAny(t), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func toAny(records []map[string]any) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return domain.IDKey(t)
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}
