package schema

import (
	"fmt"
	"reflect"
)

// Relation is implemented by any entity that carries exactly one schema and
// exposes it read-only. The accessor returns an error rather than a partial
// schema when the entity has none.
type Relation interface {
	Schema() (*Schema, error)
}

// BaseRelation is an embeddable default for schema-bearing entities. Its
// accessor always fails with ErrNoSchema: a concrete relation type must
// shadow Schema with its own implementation.
type BaseRelation struct{}

// Schema on the base relation reports that no concrete schema was supplied.
func (BaseRelation) Schema() (*Schema, error) {
	return nil, ErrNoSchema
}

// RootTabler is implemented by relations that derive from underlying base
// relations and can report them.
type RootTabler interface {
	RootTables() []Relation
}

// RootTables returns the base relations r ultimately derives from. A
// relation that does not implement RootTabler is standalone and is its own
// single root.
func RootTables(r Relation) []Relation {
	if rt, ok := r.(RootTabler); ok {
		return rt.RootTables()
	}
	return []Relation{r}
}

// EqualCache memoizes relation equality results for callers that compare
// large expression trees. RelationsEqual itself never reads or writes it;
// the parameter exists so traversals above this layer can thread one
// through.
type EqualCache map[[2]Relation]bool

// RelationsEqual reports whether a and b are the same concrete relation
// variant with equal schemas. A schema accessor error on either side makes
// the relations unequal.
func RelationsEqual(a, b Relation, cache EqualCache) bool {
	_ = cache
	if a == nil || b == nil {
		return a == b
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	sa, err := a.Schema()
	if err != nil {
		return false
	}
	sb, err := b.Schema()
	if err != nil {
		return false
	}
	return sa.Equals(sb)
}

// FormatRelation renders a relation as "VariantName(<schema listing>)".
func FormatRelation(r Relation) string {
	t := reflect.TypeOf(r)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s, err := r.Schema()
	if err != nil {
		return fmt.Sprintf("%s(%v)", t.Name(), err)
	}
	return fmt.Sprintf("%s(%s)", t.Name(), s)
}
