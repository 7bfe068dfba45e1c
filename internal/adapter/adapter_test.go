package adapter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sadopc/tabula/internal/datatype"
	"github.com/sadopc/tabula/internal/schema"
)

type fakeAdapter struct{ name string }

func (f *fakeAdapter) Name() string     { return f.name }
func (f *fakeAdapter) DefaultPort() int { return 0 }
func (f *fakeAdapter) Connect(_ context.Context, _ string) (Connection, error) {
	return nil, nil
}

func TestRegistryLookup(t *testing.T) {
	Register(&fakeAdapter{name: "fake"})
	defer delete(Registry, "fake")

	a, err := Lookup("fake")
	if err != nil {
		t.Fatalf("Lookup(fake) error = %v", err)
	}
	if a.Name() != "fake" {
		t.Errorf("Name() = %q, want fake", a.Name())
	}

	_, err = Lookup("nope")
	if !errors.Is(err, ErrUnknownAdapter) {
		t.Errorf("Lookup(nope) error = %v, want wrapping ErrUnknownAdapter", err)
	}
}

func TestTableIsARelation(t *testing.T) {
	s := schema.MustNew(
		[]string{"id"},
		[]datatype.Type{datatype.New(datatype.Int64)},
		nil,
	)
	tbl := NewTable("users", s)

	got, err := tbl.Schema()
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}
	if !got.Equals(s) {
		t.Errorf("Schema() = %v, want %v", got, s)
	}

	roots := schema.RootTables(tbl)
	if len(roots) != 1 || roots[0] != schema.Relation(tbl) {
		t.Errorf("RootTables() = %v, want [itself]", roots)
	}

	if !strings.HasPrefix(tbl.String(), "Table(") {
		t.Errorf("String() = %q, want Table(...)", tbl.String())
	}
}

func TestTablesEqualAsRelations(t *testing.T) {
	s1 := schema.MustNew([]string{"id"}, []datatype.Type{datatype.New(datatype.Int64)}, nil)
	s2 := schema.MustNew([]string{"id"}, []datatype.Type{datatype.New(datatype.Int64)}, nil)

	a, b := NewTable("users", s1), NewTable("users_copy", s2)
	if !schema.RelationsEqual(a, b, nil) {
		t.Errorf("tables with equal schemas compare unequal")
	}

	c := NewTable("other", schema.MustNew([]string{"x"}, []datatype.Type{datatype.New(datatype.String)}, nil))
	if schema.RelationsEqual(a, c, nil) {
		t.Errorf("tables with different schemas compare equal")
	}
}
