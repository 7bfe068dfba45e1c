// Package diff compares two schemas column by column and classifies their
// relation using the schema package's set-based partial order.
package diff

import (
	"fmt"
	"strings"

	"github.com/sadopc/tabula/internal/datatype"
	"github.com/sadopc/tabula/internal/schema"
)

// Verdict classifies how two schemas relate as triple sets.
type Verdict int

const (
	// Equal: same columns in the same order.
	Equal Verdict = iota
	// Subset: every column of the first schema appears in the second.
	Subset
	// Superset: every column of the second schema appears in the first.
	Superset
	// Reordered: same triple sets, different column order.
	Reordered
	// Incomparable: neither contains the other.
	Incomparable
)

func (v Verdict) String() string {
	switch v {
	case Equal:
		return "equal"
	case Subset:
		return "subset"
	case Superset:
		return "superset"
	case Reordered:
		return "reordered"
	default:
		return "incomparable"
	}
}

// TypeChange records a column present on both sides with different types.
type TypeChange struct {
	Name     string
	From, To datatype.Type
}

// DescriptionChange records a column whose description changed.
type DescriptionChange struct {
	Name     string
	From, To schema.Description
}

// Report is the outcome of comparing two schemas.
type Report struct {
	Verdict     Verdict
	Added       []schema.Column // in "to" but not "from"
	Removed     []schema.Column // in "from" but not "to"
	Retyped     []TypeChange
	Redescribed []DescriptionChange
}

// Clean reports whether the two schemas were equal.
func (r *Report) Clean() bool { return r.Verdict == Equal }

// Compare diffs two schemas by column name and classifies their set
// relation.
func Compare(from, to *schema.Schema) *Report {
	r := &Report{Verdict: verdict(from, to)}

	for _, col := range from.Columns() {
		other, err := to.Field(col.Name)
		if err != nil {
			r.Removed = append(r.Removed, col)
			continue
		}
		if other.Type != col.Type {
			r.Retyped = append(r.Retyped, TypeChange{Name: col.Name, From: col.Type, To: other.Type})
		}
		if other.Description != col.Description {
			r.Redescribed = append(r.Redescribed, DescriptionChange{
				Name: col.Name, From: col.Description, To: other.Description,
			})
		}
	}
	for _, col := range to.Columns() {
		if !from.Contains(col.Name) {
			r.Added = append(r.Added, col)
		}
	}
	return r
}

func verdict(from, to *schema.Schema) Verdict {
	switch {
	case from.Equals(to):
		return Equal
	case from.SupersetOf(to) && to.SupersetOf(from):
		return Reordered
	case to.StrictSupersetOf(from):
		return Subset
	case from.StrictSupersetOf(to):
		return Superset
	default:
		return Incomparable
	}
}

// String renders the report as a plain text listing, one change per line.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "relation: %s", r.Verdict)

	for _, col := range r.Added {
		fmt.Fprintf(&b, "\n+ %s %s", col.Name, col.Type)
	}
	for _, col := range r.Removed {
		fmt.Fprintf(&b, "\n- %s %s", col.Name, col.Type)
	}
	for _, c := range r.Retyped {
		fmt.Fprintf(&b, "\n~ %s %s -> %s", c.Name, c.From, c.To)
	}
	for _, c := range r.Redescribed {
		fmt.Fprintf(&b, "\n~ %s description %q -> %q", c.Name, c.From, c.To)
	}
	return b.String()
}
