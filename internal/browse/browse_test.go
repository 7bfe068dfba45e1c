package browse

import (
	"testing"

	"github.com/sadopc/tabula/internal/datatype"
	"github.com/sadopc/tabula/internal/render"
	"github.com/sadopc/tabula/internal/schema"
)

func sampleItems(t *testing.T) []Item {
	t.Helper()
	users := schema.MustNew(
		[]string{"id", "email"},
		[]datatype.Type{datatype.New(datatype.Int64), datatype.New(datatype.String)},
		nil,
	)
	orders := schema.MustNew(
		[]string{"id", "user_id"},
		[]datatype.Type{datatype.New(datatype.Int64), datatype.New(datatype.Int64)},
		nil,
	)
	return []Item{
		{Name: "orders", Schema: orders},
		{Name: "users", Schema: users},
	}
}

func TestNewSortsByName(t *testing.T) {
	m := New(sampleItems(t), render.PlainStyle())
	if m.all[0].Name != "orders" || m.all[1].Name != "users" {
		t.Errorf("item order = [%s %s], want [orders users]", m.all[0].Name, m.all[1].Name)
	}
}

func TestApplyFilter(t *testing.T) {
	m := New(sampleItems(t), render.PlainStyle())

	m.filter.SetValue("usr")
	m.applyFilter()
	if len(m.filtered) != 1 || m.filtered[0].Name != "users" {
		t.Fatalf("filtered = %v, want just users", m.filtered)
	}

	m.filter.SetValue("")
	m.applyFilter()
	if len(m.filtered) != 2 {
		t.Errorf("empty filter kept %d items, want 2", len(m.filtered))
	}
}

func TestRenderDetailFollowsCursor(t *testing.T) {
	m := New(sampleItems(t), render.PlainStyle())
	if len(m.detail) == 0 {
		t.Fatal("detail is empty for initial selection")
	}
	if m.detail[0] != "orders  (2 columns)" {
		t.Errorf("detail header = %q, want %q", m.detail[0], "orders  (2 columns)")
	}

	m.cursor = 1
	m.renderDetail()
	if m.detail[0] != "users  (2 columns)" {
		t.Errorf("detail header = %q, want %q", m.detail[0], "users  (2 columns)")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"toolongvalue", 6, "toolo…"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
