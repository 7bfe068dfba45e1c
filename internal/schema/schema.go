// Package schema models the column structure of a tabular dataset: an
// immutable, hashable record of column names, canonical data types and
// optional descriptions, plus the construction dispatcher and the Relation
// capability for schema-bearing entities.
package schema

import (
	"fmt"
	"hash/maphash"
	"maps"
	"slices"
	"strings"

	"github.com/sadopc/tabula/internal/datatype"
)

// Description is an optional column description. The zero value means the
// column has none; an explicit value per column avoids any shared "absent"
// sentinel being aliased between schemas.
type Description struct {
	Text  string
	Valid bool
}

// Describe returns a present Description with the given text.
func Describe(text string) Description {
	return Description{Text: text, Valid: true}
}

func (d Description) String() string {
	if !d.Valid {
		return ""
	}
	return d.Text
}

// Column is one (name, type, description) triple of a schema. It is a
// comparable value, which is what the superset ordering builds its sets
// over.
type Column struct {
	Name        string
	Type        datatype.Type
	Description Description
}

// Schema is an immutable description of a table's columns: three
// positionally aligned sequences plus a derived name index for O(1)
// lookups. The index is rebuilt at every construction and is not part of
// equality or hashing. A Schema is never mutated after construction;
// Delete and Append return new instances, so a Schema may be freely shared.
type Schema struct {
	names        []string
	types        []datatype.Type
	descriptions []Description
	nameIndex    map[string]int
}

// New constructs a Schema from aligned name and type sequences. Every
// column starts with no description. Duplicate names fail with an error
// wrapping ErrIntegrity.
func New(names []string, types []datatype.Type) (*Schema, error) {
	return NewWithDescriptions(names, types, nil)
}

// NewWithDescriptions constructs a Schema from aligned name, type and
// description sequences. A nil descriptions slice is filled with one absent
// description per column. The inputs are copied; the caller keeps ownership
// of its slices.
func NewWithDescriptions(names []string, types []datatype.Type, descriptions []Description) (*Schema, error) {
	if len(names) != len(types) {
		return nil, fmt.Errorf("%w: %d names but %d types", ErrIntegrity, len(names), len(types))
	}
	if descriptions == nil {
		descriptions = make([]Description, len(names))
	} else if len(descriptions) != len(names) {
		return nil, fmt.Errorf("%w: %d names but %d descriptions", ErrIntegrity, len(names), len(descriptions))
	}

	s := &Schema{
		names:        slices.Clone(names),
		types:        slices.Clone(types),
		descriptions: slices.Clone(descriptions),
		nameIndex:    make(map[string]int, len(names)),
	}
	for i, name := range s.names {
		if _, dup := s.nameIndex[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column name %q", ErrIntegrity, name)
		}
		s.nameIndex[name] = i
	}
	return s, nil
}

// MustNew is NewWithDescriptions for inputs the caller knows are valid; it
// panics on error. Intended for tests and static schema literals.
func MustNew(names []string, types []datatype.Type, descriptions []Description) *Schema {
	s, err := NewWithDescriptions(names, types, descriptions)
	if err != nil {
		panic(err)
	}
	return s
}

// Pair is one entry of a FromPairs construction: a column name, a raw type
// descriptor coerced through datatype.Parse, and an optional description.
type Pair struct {
	Name        string
	Type        string
	Description Description
}

// FromPairs builds a Schema from a sequence of name/type(/description)
// entries, coercing each type descriptor to its canonical form. An entry
// without a description yields an absent one.
func FromPairs(pairs []Pair) (*Schema, error) {
	names := make([]string, len(pairs))
	types := make([]datatype.Type, len(pairs))
	descriptions := make([]Description, len(pairs))
	for i, p := range pairs {
		typ, err := datatype.Parse(p.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", p.Name, err)
		}
		names[i] = p.Name
		types[i] = typ
		descriptions[i] = p.Description
	}
	return NewWithDescriptions(names, types, descriptions)
}

// FromColumns builds a Schema from already-canonical columns.
func FromColumns(columns []Column) (*Schema, error) {
	names := make([]string, len(columns))
	types := make([]datatype.Type, len(columns))
	descriptions := make([]Description, len(columns))
	for i, c := range columns {
		names[i] = c.Name
		types[i] = c.Type
		descriptions[i] = c.Description
	}
	return NewWithDescriptions(names, types, descriptions)
}

// FromMap builds a Schema from a name-to-descriptor mapping. Go maps carry
// no order, so columns are ordered by sorted name for determinism; callers
// that need a specific column order use FromPairs.
func FromMap(m map[string]string) (*Schema, error) {
	pairs := make([]Pair, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		pairs = append(pairs, Pair{Name: name, Type: m[name]})
	}
	return FromPairs(pairs)
}

// coerceTypes parses a slice of raw type descriptors.
func coerceTypes(descriptors []string) ([]datatype.Type, error) {
	types := make([]datatype.Type, len(descriptors))
	for i, d := range descriptors {
		typ, err := datatype.Parse(d)
		if err != nil {
			return nil, err
		}
		types[i] = typ
	}
	return types, nil
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.names) }

// Contains reports whether the schema has a column with the given name.
func (s *Schema) Contains(name string) bool {
	_, ok := s.nameIndex[name]
	return ok
}

// Field returns the column with the given name, or an error wrapping
// ErrNotFound if the schema has no such column.
func (s *Schema) Field(name string) (Column, error) {
	i, ok := s.nameIndex[name]
	if !ok {
		return Column{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s.column(i), nil
}

// NameAt returns the column name at ordinal position i. Positions outside
// [0, Len()-1] fail with an error wrapping ErrRange that states the valid
// bounds.
func (s *Schema) NameAt(i int) (string, error) {
	upper := len(s.names) - 1
	if i < 0 || i > upper {
		return "", fmt.Errorf("%w: index %d must be between 0 and %d, inclusive", ErrRange, i, upper)
	}
	return s.names[i], nil
}

// Names returns a copy of the column names in order.
func (s *Schema) Names() []string { return slices.Clone(s.names) }

// Types returns a copy of the column types in order.
func (s *Schema) Types() []datatype.Type { return slices.Clone(s.types) }

// Descriptions returns a copy of the column descriptions in order.
func (s *Schema) Descriptions() []Description { return slices.Clone(s.descriptions) }

// Columns returns the (name, type, description) triples in column order.
func (s *Schema) Columns() []Column {
	columns := make([]Column, len(s.names))
	for i := range s.names {
		columns[i] = s.column(i)
	}
	return columns
}

func (s *Schema) column(i int) Column {
	return Column{Name: s.names[i], Type: s.types[i], Description: s.descriptions[i]}
}

// Delete returns a new Schema with the named columns removed, preserving
// the relative order of the rest. The whole request is validated before any
// removal: if any name is missing the error names the first missing one and
// no partial schema is produced.
func (s *Schema) Delete(namesToRemove ...string) (*Schema, error) {
	remove := make(map[string]bool, len(namesToRemove))
	for _, name := range namesToRemove {
		if !s.Contains(name) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		remove[name] = true
	}

	var (
		names        []string
		types        []datatype.Type
		descriptions []Description
	)
	for i, name := range s.names {
		if remove[name] {
			continue
		}
		names = append(names, name)
		types = append(types, s.types[i])
		descriptions = append(descriptions, s.descriptions[i])
	}
	return NewWithDescriptions(names, types, descriptions)
}

// Append returns a new Schema holding this schema's columns followed by
// other's. A name occurring in both schemas fails with an error wrapping
// ErrIntegrity.
func (s *Schema) Append(other *Schema) (*Schema, error) {
	return NewWithDescriptions(
		append(s.Names(), other.names...),
		append(s.Types(), other.types...),
		append(s.Descriptions(), other.descriptions...),
	)
}

// Equals reports structural equality: the name, type and description
// sequences must match element-wise, in order. Column order matters; two
// schemas over the same columns in different orders are not equal.
func (s *Schema) Equals(other *Schema) bool {
	if s == other {
		return true
	}
	if other == nil {
		return false
	}
	return slices.Equal(s.names, other.names) &&
		slices.Equal(s.types, other.types) &&
		slices.Equal(s.descriptions, other.descriptions)
}

var schemaSeed = maphash.MakeSeed()

// Hash returns a structural hash over the three column sequences. It is
// defined together with Equals so the law "equal schemas hash equal" holds
// by construction: both walk the same triples in the same order.
func (s *Schema) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(schemaSeed)
	for i, name := range s.names {
		h.WriteString(name)
		h.WriteByte(0)
		h.WriteString(s.types[i].String())
		h.WriteByte(0)
		d := s.descriptions[i]
		if d.Valid {
			h.WriteByte(1)
			h.WriteString(d.Text)
		} else {
			h.WriteByte(0)
		}
		h.WriteByte(0)
	}
	return h.Sum64()
}

// SupersetOf reports whether every (name, type, description) triple of
// other is present in s, regardless of position. Together with
// StrictSupersetOf this forms a partial order: two schemas with disjoint
// columns are simply incomparable, both directions returning false.
func (s *Schema) SupersetOf(other *Schema) bool {
	set := make(map[Column]bool, len(s.names))
	for i := range s.names {
		set[s.column(i)] = true
	}
	for i := range other.names {
		if !set[other.column(i)] {
			return false
		}
	}
	return true
}

// StrictSupersetOf reports whether s's triple set properly contains
// other's: every triple of other is in s and s has at least one more. A
// schema is never a strict superset of itself.
func (s *Schema) StrictSupersetOf(other *Schema) bool {
	return len(s.names) > len(other.names) && s.SupersetOf(other)
}

// String renders the schema as a column-aligned listing, one row per
// column:
//
//	tabula.Schema {
//	  id     int64   the primary key
//	  email  string
//	}
func (s *Schema) String() string {
	if len(s.names) == 0 {
		return "tabula.Schema {\n}"
	}

	nameWidth, typeWidth := 0, 0
	for i, name := range s.names {
		nameWidth = max(nameWidth, len(name))
		typeWidth = max(typeWidth, len(s.types[i].String()))
	}
	nameWidth += 2
	typeWidth += 2

	var b strings.Builder
	b.WriteString("tabula.Schema {")
	for i, name := range s.names {
		row := fmt.Sprintf("%-*s%-*s%s", nameWidth, name, typeWidth, s.types[i], s.descriptions[i])
		b.WriteString("\n  ")
		b.WriteString(strings.TrimRight(row, " "))
	}
	b.WriteString("\n}")
	return b.String()
}
