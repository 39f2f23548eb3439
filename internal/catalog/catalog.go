package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed vehicles.json
var bundled []byte

type Entry struct {
	ID           int    `json:"id"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	TankCapacity int    `json:"tank_capacity"`
}

// Catalog is a read-only make/model lookup used to default the tank capacity
// of new vehicles.
type Catalog struct {
	entries []Entry
	index   map[string]Entry
}

// Load reads the catalog from path, or the bundled copy when path is empty.
func Load(path string) (*Catalog, error) {
	data := bundled
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		data = raw
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Make != entries[j].Make {
			return entries[i].Make < entries[j].Make
		}
		return entries[i].Model < entries[j].Model
	})

	index := make(map[string]Entry, len(entries))
	for _, e := range entries {
		index[key(e.Make, e.Model)] = e
	}
	return &Catalog{entries: entries, index: index}, nil
}

// Lookup returns the tank capacity in liters for a make and model, ignoring
// case and surrounding whitespace.
func (c *Catalog) Lookup(vehicleMake, model string) (int, bool) {
	e, ok := c.index[key(vehicleMake, model)]
	if !ok {
		return 0, false
	}
	return e.TankCapacity, true
}

func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func key(vehicleMake, model string) string {
	return strings.ToLower(strings.TrimSpace(vehicleMake)) + "|" + strings.ToLower(strings.TrimSpace(model))
}
