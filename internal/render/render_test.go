package render

import (
	"strings"
	"testing"

	"github.com/sadopc/tabula/internal/datatype"
	"github.com/sadopc/tabula/internal/schema"
)

func sampleSchema() *schema.Schema {
	return schema.MustNew(
		[]string{"id", "email"},
		[]datatype.Type{datatype.New(datatype.Int64), datatype.New(datatype.String)},
		[]schema.Description{schema.Describe("primary key"), {}},
	)
}

func TestTablePlain(t *testing.T) {
	got := Table("users", sampleSchema(), PlainStyle(), Options{})

	if !strings.Contains(got, "users") {
		t.Errorf("Table() missing title:\n%s", got)
	}
	if !strings.Contains(got, "(2 columns)") {
		t.Errorf("Table() missing column count:\n%s", got)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("Table() has %d lines, want 3:\n%s", len(lines), got)
	}
	if !strings.Contains(lines[1], "id") || !strings.Contains(lines[1], "int64") ||
		!strings.Contains(lines[1], "primary key") {
		t.Errorf("row %q missing column data", lines[1])
	}
	// Type columns share an offset.
	if strings.Index(lines[1], "int64") != strings.Index(lines[2], "string") {
		t.Errorf("type columns not aligned:\n%s", got)
	}
}

func TestTableTruncatesDescriptions(t *testing.T) {
	s := schema.MustNew(
		[]string{"a"},
		[]datatype.Type{datatype.New(datatype.Int32)},
		[]schema.Description{schema.Describe(strings.Repeat("x", 100))},
	)

	got := Table("t", s, PlainStyle(), Options{MaxDescriptionWidth: 10})
	if strings.Contains(got, strings.Repeat("x", 11)) {
		t.Errorf("description not truncated:\n%s", got)
	}
	if !strings.Contains(got, "…") {
		t.Errorf("truncation marker missing:\n%s", got)
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name   string
		block  string
		spaces int
		want   string
	}{
		{"single line", "abc", 2, "  abc"},
		{"multi line", "a\nb", 4, "    a\n    b"},
		{"empty lines untouched", "a\n\nb", 2, "  a\n\n  b"},
		{"empty block", "", 2, ""},
	}

	for _, tt := range tests {
		if got := Indent(tt.block, tt.spaces); got != tt.want {
			t.Errorf("%s: Indent(%q, %d) = %q, want %q", tt.name, tt.block, tt.spaces, got, tt.want)
		}
	}
}

func TestHighlightNilStylePassthrough(t *testing.T) {
	h := NewHighlighter()
	sql := "CREATE TABLE users (id BIGINT);"
	if got := h.Highlight(sql, nil); got != sql {
		t.Errorf("Highlight(nil style) = %q, want unchanged input", got)
	}
}

func TestHighlightPreservesText(t *testing.T) {
	h := NewHighlighter()
	sql := "CREATE TABLE users (\n  id BIGINT,\n  email VARCHAR(255)\n);"

	got := h.Highlight(sql, PlainStyle())
	// With an unstyled palette the output is the input text, token by
	// token, newlines intact.
	if got != sql {
		t.Errorf("Highlight(plain) = %q, want %q", got, sql)
	}
}
