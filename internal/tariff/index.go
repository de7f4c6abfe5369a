package tariff

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Index is a JSON listing of a library, written by the index-tariffs command
// so other tools can see what a resource directory offers without parsing it.
type Index struct {
	Source    string  `json:"source"`
	UpdatedAt string  `json:"updated_at"` // RFC 3339
	Tariffs   []Entry `json:"tariffs"`
}

func (l *Library) Index(now time.Time) *Index {
	return &Index{
		Source:    l.source,
		UpdatedAt: now.UTC().Format(time.RFC3339),
		Tariffs:   l.Entries(),
	}
}

func LoadIndex(path string) (*Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tariff index: %w", err)
	}
	var idx Index
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("failed to parse tariff index: %w", err)
	}
	return &idx, nil
}

func SaveIndex(idx *Index, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tariff index: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write tariff index: %w", err)
	}
	return nil
}

// DefaultIndexPath is TARIFF_INDEX_FILE, or data/tariffs.json.
func DefaultIndexPath() string {
	if p := os.Getenv("TARIFF_INDEX_FILE"); p != "" {
		return p
	}
	return "./data/tariffs.json"
}
