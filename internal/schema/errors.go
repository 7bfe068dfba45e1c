package schema

import "errors"

var (
	// ErrIntegrity is wrapped by errors reported when a would-be schema
	// violates a structural invariant, e.g. duplicate column names.
	ErrIntegrity = errors.New("schema integrity violation")

	// ErrNotFound is wrapped when a column is looked up or deleted by a
	// name the schema does not contain.
	ErrNotFound = errors.New("column not found")

	// ErrRange is wrapped when a positional lookup is outside the valid
	// column index bounds.
	ErrRange = errors.New("column index out of range")

	// ErrDispatch is returned by Build when no construction strategy
	// matches the supplied source.
	ErrDispatch = errors.New("no applicable schema construction strategy")

	// ErrNoSchema is returned by the base relation's schema accessor:
	// concrete relation types must supply their own schema.
	ErrNoSchema = errors.New("relation does not define a schema")
)
