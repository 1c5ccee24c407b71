package symbols

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store holds named glyph sets and style tables loaded from configuration
// documents.
type Store struct {
	sets   map[string]Set
	styles map[string]StyleTable
}

type document struct {
	Sets   map[string]Set        `json:"sets" yaml:"sets"`
	Styles map[string]StyleTable `json:"styles" yaml:"styles"`
}

// LoadFS walks the filesystem and parses every JSON/YAML symbol document.
// A nil fsys yields an empty store. Duplicate set or style names across
// files are rejected.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{
		sets:   make(map[string]Set),
		styles: make(map[string]StyleTable),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSymbolFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("symbols: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for name, set := range doc.Sets {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				return fmt.Errorf("symbols: file %s defines an empty set name", path)
			}
			if _, exists := store.sets[trimmed]; exists {
				return fmt.Errorf("symbols: duplicate set %q (file %s)", trimmed, path)
			}
			store.sets[trimmed] = Default().merge(set)
		}
		for name, table := range doc.Styles {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				return fmt.Errorf("symbols: file %s defines an empty style name", path)
			}
			if _, exists := store.styles[trimmed]; exists {
				return fmt.Errorf("symbols: duplicate style %q (file %s)", trimmed, path)
			}
			store.styles[trimmed] = table
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Set returns a named glyph set.
func (s *Store) Set(name string) (Set, bool) {
	if s == nil {
		return Set{}, false
	}
	set, ok := s.sets[name]
	return set, ok
}

// Styles returns a named style table.
func (s *Store) Styles(name string) (StyleTable, bool) {
	if s == nil {
		return StyleTable{}, false
	}
	table, ok := s.styles[name]
	return table, ok
}

// Empty reports whether the store holds anything at all.
func (s *Store) Empty() bool {
	return s == nil || (len(s.sets) == 0 && len(s.styles) == 0)
}

func isSymbolFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func parseDocument(data []byte, path string) (document, error) {
	var doc document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return document{}, fmt.Errorf("symbols: parse %s: %w", path, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("symbols: parse %s: %w", path, err)
	}
	return doc, nil
}
