// Package helpline serves the emergency and civic helpline directory.
// Categories are loaded from JSON files in a data directory, one file per
// category, so deployments can edit numbers without a rebuild.
package helpline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Number is a single helpline entry.
type Number struct {
	Name        string `json:"name"`
	Number      string `json:"number"`
	Description string `json:"description"`
}

// Category groups helpline numbers, e.g. "Emergency Services".
type Category struct {
	Title   string   `json:"title"`
	Numbers []Number `json:"numbers"`
}

// Directory holds the loaded helpline categories.
type Directory struct {
	categories []Category
	mu         sync.RWMutex
}

// NewDirectory loads every *.json file from the directory, sorted by file
// name so a numeric prefix controls display order (e.g. "1-emergency.json").
func NewDirectory(path string) (*Directory, error) {
	d := &Directory{}

	files, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read helpline directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		names = append(names, file.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(path, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read helpline file %s: %w", name, err)
		}
		var cat Category
		if err := json.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("failed to parse helpline file %s: %w", name, err)
		}
		d.categories = append(d.categories, cat)
	}

	return d, nil
}

// Categories returns every category in display order.
func (d *Directory) Categories() []Category {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Category, len(d.categories))
	copy(out, d.categories)
	return out
}

// Search filters the directory by a case-insensitive term matched against
// entry names, numbers and descriptions. Categories left without a match
// are dropped. An empty term returns everything.
func (d *Directory) Search(term string) []Category {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return d.Categories()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []Category
	for _, cat := range d.categories {
		var hits []Number
		for _, n := range cat.Numbers {
			if strings.Contains(strings.ToLower(n.Name), term) ||
				strings.Contains(n.Number, term) ||
				strings.Contains(strings.ToLower(n.Description), term) {
				hits = append(hits, n)
			}
		}
		if len(hits) > 0 {
			out = append(out, Category{Title: cat.Title, Numbers: hits})
		}
	}
	return out
}
