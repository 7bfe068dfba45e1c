package schema

import "fmt"

// sourceKind tags the construction strategy a Source selects.
type sourceKind int

const (
	sourceInvalid sourceKind = iota
	sourceExisting
	sourceMap
	sourcePairs
	sourceColumns
	sourceNamesTypes
	sourceNamesTypesDescriptions
)

// Source is a tagged union over every input shape the schema constructor
// accepts. Callers wrap their input with the matching Of* function and hand
// it to Build, which selects the construction strategy from the tag alone.
// A Source holds no other state and building it has no side effects, so the
// same source always yields the same result.
type Source struct {
	kind         sourceKind
	existing     *Schema
	mapping      map[string]string
	pairs        []Pair
	columns      []Column
	names        []string
	descriptors  []string
	descriptions []Description
}

// Of wraps an existing Schema. Build returns it unchanged.
func Of(s *Schema) Source {
	if s == nil {
		return Source{}
	}
	return Source{kind: sourceExisting, existing: s}
}

// OfMap wraps a name-to-descriptor mapping.
func OfMap(m map[string]string) Source {
	return Source{kind: sourceMap, mapping: m}
}

// OfPairs wraps a sequence of name/type(/description) entries.
func OfPairs(pairs ...Pair) Source {
	return Source{kind: sourcePairs, pairs: pairs}
}

// OfColumns wraps a sequence of already-canonical columns.
func OfColumns(columns ...Column) Source {
	return Source{kind: sourceColumns, columns: columns}
}

// OfNamesTypes wraps parallel name and type-descriptor sequences.
// Descriptions default to absent.
func OfNamesTypes(names, descriptors []string) Source {
	return Source{kind: sourceNamesTypes, names: names, descriptors: descriptors}
}

// OfNamesTypesDescriptions wraps parallel name, type-descriptor and
// description sequences.
func OfNamesTypesDescriptions(names, descriptors []string, descriptions []Description) Source {
	return Source{
		kind:         sourceNamesTypesDescriptions,
		names:        names,
		descriptors:  descriptors,
		descriptions: descriptions,
	}
}

// Build constructs a Schema from src. The zero Source, or Of(nil), matches
// no strategy and fails with ErrDispatch. An existing schema is returned as
// the same instance, not a copy.
func Build(src Source) (*Schema, error) {
	switch src.kind {
	case sourceExisting:
		return src.existing, nil
	case sourceMap:
		return FromMap(src.mapping)
	case sourcePairs:
		return FromPairs(src.pairs)
	case sourceColumns:
		return FromColumns(src.columns)
	case sourceNamesTypes:
		types, err := coerceTypes(src.descriptors)
		if err != nil {
			return nil, err
		}
		return New(src.names, types)
	case sourceNamesTypesDescriptions:
		types, err := coerceTypes(src.descriptors)
		if err != nil {
			return nil, err
		}
		return NewWithDescriptions(src.names, types, src.descriptions)
	default:
		return nil, fmt.Errorf("%w: empty source", ErrDispatch)
	}
}
