package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/sadopc/tabula/internal/datatype"
)

func twoColumn(t *testing.T) *Schema {
	t.Helper()
	s, err := New(
		[]string{"id", "email"},
		[]datatype.Type{datatype.New(datatype.Int64), datatype.New(datatype.String)},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestNewBasics(t *testing.T) {
	s := twoColumn(t)

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	for _, name := range []string{"id", "email"} {
		if !s.Contains(name) {
			t.Errorf("Contains(%q) = false, want true", name)
		}
	}
	if s.Contains("missing") {
		t.Errorf("Contains(missing) = true, want false")
	}
}

func TestNewDuplicateNames(t *testing.T) {
	_, err := New(
		[]string{"a", "a"},
		[]datatype.Type{datatype.New(datatype.Int32), datatype.New(datatype.String)},
	)
	if err == nil {
		t.Fatalf("New(a, a) error = nil, want ErrIntegrity")
	}
	if !errors.Is(err, ErrIntegrity) {
		t.Errorf("New(a, a) error = %v, want wrapping ErrIntegrity", err)
	}
	if !strings.Contains(err.Error(), `"a"`) {
		t.Errorf("error %q does not name the duplicate column", err)
	}
}

func TestNewLengthMismatch(t *testing.T) {
	_, err := New([]string{"a", "b"}, []datatype.Type{datatype.New(datatype.Int32)})
	if !errors.Is(err, ErrIntegrity) {
		t.Errorf("New(2 names, 1 type) error = %v, want wrapping ErrIntegrity", err)
	}

	_, err = NewWithDescriptions(
		[]string{"a"},
		[]datatype.Type{datatype.New(datatype.Int32)},
		[]Description{Describe("x"), Describe("y")},
	)
	if !errors.Is(err, ErrIntegrity) {
		t.Errorf("NewWithDescriptions(1 name, 2 descriptions) error = %v, want wrapping ErrIntegrity", err)
	}
}

func TestFieldReturnsPair(t *testing.T) {
	s := MustNew(
		[]string{"id", "email"},
		[]datatype.Type{datatype.New(datatype.Int64), datatype.New(datatype.String)},
		[]Description{Describe("primary key"), {}},
	)

	col, err := s.Field("id")
	if err != nil {
		t.Fatalf("Field(id) error = %v", err)
	}
	if col.Type != datatype.New(datatype.Int64) {
		t.Errorf("Field(id).Type = %v, want int64", col.Type)
	}
	if !col.Description.Valid || col.Description.Text != "primary key" {
		t.Errorf("Field(id).Description = %+v, want primary key", col.Description)
	}

	col, err = s.Field("email")
	if err != nil {
		t.Fatalf("Field(email) error = %v", err)
	}
	if col.Description.Valid {
		t.Errorf("Field(email).Description = %+v, want absent", col.Description)
	}

	_, err = s.Field("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Field(missing) error = %v, want wrapping ErrNotFound", err)
	}
}

func TestNameAtBounds(t *testing.T) {
	s := MustNew(
		[]string{"a", "b", "c"},
		[]datatype.Type{
			datatype.New(datatype.Int32),
			datatype.New(datatype.Int32),
			datatype.New(datatype.Int32),
		},
		nil,
	)

	for i, want := range []string{"a", "b", "c"} {
		got, err := s.NameAt(i)
		if err != nil {
			t.Errorf("NameAt(%d) error = %v", i, err)
			continue
		}
		if got != want {
			t.Errorf("NameAt(%d) = %q, want %q", i, got, want)
		}
	}

	for _, i := range []int{-1, 3} {
		_, err := s.NameAt(i)
		if !errors.Is(err, ErrRange) {
			t.Errorf("NameAt(%d) error = %v, want wrapping ErrRange", i, err)
			continue
		}
		if !strings.Contains(err.Error(), "between 0 and 2") {
			t.Errorf("NameAt(%d) error %q does not state the bounds", i, err)
		}
	}
}

func TestDeleteAllOrNothing(t *testing.T) {
	s := twoColumn(t)

	got, err := s.Delete("id")
	if err != nil {
		t.Fatalf("Delete(id) error = %v", err)
	}
	if want := []string{"email"}; !equalStrings(got.Names(), want) {
		t.Errorf("Delete(id).Names() = %v, want %v", got.Names(), want)
	}

	// One present, one missing: nothing is deleted.
	_, err = s.Delete("id", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete(id, missing) error = %v, want wrapping ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), `"missing"`) {
		t.Errorf("error %q does not name the missing column", err)
	}
	if s.Len() != 2 || !s.Contains("id") {
		t.Errorf("original schema changed by failed delete: %v", s.Names())
	}
}

func TestDeletePreservesOrder(t *testing.T) {
	s := MustNew(
		[]string{"a", "b", "c", "d"},
		[]datatype.Type{
			datatype.New(datatype.Int32),
			datatype.New(datatype.String),
			datatype.New(datatype.Boolean),
			datatype.New(datatype.Date),
		},
		nil,
	)

	got, err := s.Delete("b", "d")
	if err != nil {
		t.Fatalf("Delete(b, d) error = %v", err)
	}
	if want := []string{"a", "c"}; !equalStrings(got.Names(), want) {
		t.Errorf("Delete(b, d).Names() = %v, want %v", got.Names(), want)
	}
}

func TestAppend(t *testing.T) {
	left := MustNew(
		[]string{"a", "b"},
		[]datatype.Type{datatype.New(datatype.Int32), datatype.New(datatype.String)},
		nil,
	)
	right := MustNew([]string{"c"}, []datatype.Type{datatype.New(datatype.Boolean)}, nil)

	got, err := left.Append(right)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if want := []string{"a", "b", "c"}; !equalStrings(got.Names(), want) {
		t.Errorf("Append().Names() = %v, want %v", got.Names(), want)
	}
	if left.Len() != 2 || right.Len() != 1 {
		t.Errorf("Append mutated its operands: left %d, right %d", left.Len(), right.Len())
	}

	// Shared column name across the two schemas.
	clash := MustNew([]string{"b"}, []datatype.Type{datatype.New(datatype.Int64)}, nil)
	if _, err := left.Append(clash); !errors.Is(err, ErrIntegrity) {
		t.Errorf("Append(clash) error = %v, want wrapping ErrIntegrity", err)
	}
}

func TestFromPairs(t *testing.T) {
	s, err := FromPairs([]Pair{
		{Name: "a", Type: "int64"},
		{Name: "b", Type: "string", Description: Describe("desc")},
	})
	if err != nil {
		t.Fatalf("FromPairs() error = %v", err)
	}

	descs := s.Descriptions()
	if descs[0].Valid {
		t.Errorf("descriptions[0] = %+v, want absent", descs[0])
	}
	if !descs[1].Valid || descs[1].Text != "desc" {
		t.Errorf("descriptions[1] = %+v, want desc", descs[1])
	}

	// Descriptor coercion failures surface with the column name.
	_, err = FromPairs([]Pair{{Name: "x", Type: "geometry"}})
	if !errors.Is(err, datatype.ErrUnknownType) {
		t.Errorf("FromPairs(geometry) error = %v, want wrapping ErrUnknownType", err)
	}
}

func TestFromMapSortsNames(t *testing.T) {
	s, err := FromMap(map[string]string{"b": "string", "a": "int64", "c": "boolean"})
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}
	if want := []string{"a", "b", "c"}; !equalStrings(s.Names(), want) {
		t.Errorf("FromMap().Names() = %v, want %v", s.Names(), want)
	}
}

func TestEqualsAndHash(t *testing.T) {
	build := func() *Schema {
		return MustNew(
			[]string{"a", "b"},
			[]datatype.Type{datatype.New(datatype.Int64), datatype.New(datatype.String)},
			[]Description{Describe("x"), {}},
		)
	}
	s1, s2 := build(), build()

	if !s1.Equals(s1) {
		t.Errorf("Equals is not reflexive")
	}
	if !s1.Equals(s2) || !s2.Equals(s1) {
		t.Errorf("independently built identical schemas are not equal")
	}
	if s1.Hash() != s2.Hash() {
		t.Errorf("equal schemas hash differently: %d vs %d", s1.Hash(), s2.Hash())
	}

	// Reordered columns: same triple set, different schema.
	reordered := MustNew(
		[]string{"b", "a"},
		[]datatype.Type{datatype.New(datatype.String), datatype.New(datatype.Int64)},
		[]Description{{}, Describe("x")},
	)
	if s1.Equals(reordered) {
		t.Errorf("schemas with reordered columns compare equal")
	}

	// Description changes break equality.
	redescribed := MustNew(
		[]string{"a", "b"},
		[]datatype.Type{datatype.New(datatype.Int64), datatype.New(datatype.String)},
		[]Description{Describe("y"), {}},
	)
	if s1.Equals(redescribed) {
		t.Errorf("schemas with different descriptions compare equal")
	}

	if s1.Equals(nil) {
		t.Errorf("Equals(nil) = true, want false")
	}
}

func TestSupersetOrdering(t *testing.T) {
	full := MustNew(
		[]string{"a", "b", "c"},
		[]datatype.Type{
			datatype.New(datatype.Int64),
			datatype.New(datatype.String),
			datatype.New(datatype.Boolean),
		},
		nil,
	)
	sub := MustNew(
		[]string{"c", "a"},
		[]datatype.Type{datatype.New(datatype.Boolean), datatype.New(datatype.Int64)},
		nil,
	)

	if !full.SupersetOf(sub) {
		t.Errorf("full.SupersetOf(sub) = false, want true")
	}
	if !full.StrictSupersetOf(sub) {
		t.Errorf("full.StrictSupersetOf(sub) = false, want true")
	}
	if sub.SupersetOf(full) {
		t.Errorf("sub.SupersetOf(full) = true, want false")
	}

	// Never a strict superset of itself, but always a superset.
	if full.StrictSupersetOf(full) {
		t.Errorf("full.StrictSupersetOf(full) = true, want false")
	}
	if !full.SupersetOf(full) {
		t.Errorf("full.SupersetOf(full) = false, want true")
	}

	// A type change on a shared name breaks containment.
	retyped := MustNew([]string{"a"}, []datatype.Type{datatype.New(datatype.Int32)}, nil)
	if full.SupersetOf(retyped) {
		t.Errorf("superset check ignored the column type")
	}

	// Disjoint schemas are incomparable: both directions false.
	other := MustNew([]string{"z"}, []datatype.Type{datatype.New(datatype.Date)}, nil)
	if full.StrictSupersetOf(other) || other.StrictSupersetOf(full) {
		t.Errorf("disjoint schemas are not incomparable")
	}
}

func TestStringRendering(t *testing.T) {
	s := MustNew(
		[]string{"id", "email"},
		[]datatype.Type{datatype.New(datatype.Int64), datatype.New(datatype.String)},
		[]Description{Describe("primary key"), {}},
	)

	got := s.String()
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("String() has %d lines, want 4:\n%s", len(lines), got)
	}
	if lines[0] != "tabula.Schema {" || lines[3] != "}" {
		t.Errorf("String() delimiters wrong:\n%s", got)
	}
	if !strings.Contains(lines[1], "id") || !strings.Contains(lines[1], "int64") ||
		!strings.Contains(lines[1], "primary key") {
		t.Errorf("row %q missing column data", lines[1])
	}
	// Rows share the padding width: both type columns start at the same
	// offset.
	if strings.Index(lines[1], "int64") != strings.Index(lines[2], "string") {
		t.Errorf("type columns not aligned:\n%s", got)
	}

	empty := MustNew(nil, nil, nil)
	if empty.String() != "tabula.Schema {\n}" {
		t.Errorf("empty String() = %q", empty.String())
	}
}

func TestImmutabilityOfAccessors(t *testing.T) {
	s := twoColumn(t)

	names := s.Names()
	names[0] = "clobbered"
	if s.Contains("clobbered") {
		t.Errorf("mutating Names() result changed the schema")
	}
	again, err := s.NameAt(0)
	if err != nil || again != "id" {
		t.Errorf("NameAt(0) = %q, %v after caller mutation, want id", again, err)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
