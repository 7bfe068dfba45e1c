// Package schemafile reads and writes schema definitions as YAML
// documents. Two column forms are accepted: an explicit list of
// name/type/description entries, and a compact "name: type" mapping whose
// document order defines the column order.
package schemafile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sadopc/tabula/internal/schema"
)

// File is one named schema definition.
type File struct {
	Name   string
	Schema *schema.Schema
}

// document is the YAML surface form. Columns stays a raw node so the two
// accepted shapes can be told apart after decoding.
type document struct {
	Name    string    `yaml:"name"`
	Columns yaml.Node `yaml:"columns"`
}

// columnEntry is one element of the explicit column list. Description is a
// pointer so an absent key and an empty description are distinguishable.
type columnEntry struct {
	Name        string  `yaml:"name"`
	Type        string  `yaml:"type"`
	Description *string `yaml:"description,omitempty"`
}

// Parse decodes a single schema document.
func Parse(data []byte) (*File, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema file: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("parse schema file: missing name")
	}

	pairs, err := columnPairs(&doc.Columns)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", doc.Name, err)
	}

	s, err := schema.Build(schema.OfPairs(pairs...))
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", doc.Name, err)
	}
	return &File{Name: doc.Name, Schema: s}, nil
}

// columnPairs converts the columns node into ordered construction pairs.
func columnPairs(node *yaml.Node) ([]schema.Pair, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		var entries []columnEntry
		if err := node.Decode(&entries); err != nil {
			return nil, fmt.Errorf("decode columns: %w", err)
		}
		pairs := make([]schema.Pair, len(entries))
		for i, e := range entries {
			p := schema.Pair{Name: e.Name, Type: e.Type}
			if e.Description != nil {
				p.Description = schema.Describe(*e.Description)
			}
			pairs[i] = p
		}
		return pairs, nil

	case yaml.MappingNode:
		// yaml.Node keeps mapping entries in document order as
		// alternating key/value children.
		var pairs []schema.Pair
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("column %q: type must be a scalar descriptor", key.Value)
			}
			pairs = append(pairs, schema.Pair{Name: key.Value, Type: value.Value})
		}
		return pairs, nil

	case 0:
		return nil, fmt.Errorf("missing columns")

	default:
		return nil, fmt.Errorf("columns must be a list or a mapping")
	}
}

// Load reads and parses the schema file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadDir loads every .yaml/.yml file in dir, sorted by file name.
func LoadDir(dir string) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read schema dir: %w", err)
	}

	var files []*File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		f, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Save writes f to path in the explicit column-list form.
func Save(path string, f *File) error {
	type outColumn struct {
		Name        string `yaml:"name"`
		Type        string `yaml:"type"`
		Description string `yaml:"description,omitempty"`
	}
	type outDoc struct {
		Name    string      `yaml:"name"`
		Columns []outColumn `yaml:"columns"`
	}

	doc := outDoc{Name: f.Name}
	for _, col := range f.Schema.Columns() {
		out := outColumn{Name: col.Name, Type: col.Type.String()}
		if col.Description.Valid {
			out.Description = col.Description.Text
		}
		doc.Columns = append(doc.Columns, out)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal schema file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write schema file: %w", err)
	}
	return nil
}
