package mysql

import (
	"testing"

	"github.com/sadopc/tabula/internal/datatype"
)

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mysql://root:pw@localhost:3306/mydb", "root:pw@tcp(localhost:3306)/mydb"},
		{"mysql://root@localhost/mydb", "root@tcp(localhost:3306)/mydb"},
		{"mysql://localhost/mydb", "tcp(localhost:3306)/mydb"},
		{"mysql://localhost", "tcp(localhost:3306)/"},
		// Native driver format passes through untouched.
		{"root:pw@tcp(localhost:3306)/mydb", "root:pw@tcp(localhost:3306)/mydb"},
	}

	for _, tt := range tests {
		if got := normalizeDSN(tt.in); got != tt.want {
			t.Errorf("normalizeDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalType(t *testing.T) {
	tests := []struct {
		dataType  string
		precision int
		scale     int
		want      datatype.Type
	}{
		{"bigint", 19, 0, datatype.New(datatype.Int64)},
		{"int", 10, 0, datatype.New(datatype.Int32)},
		{"tinyint", 3, 0, datatype.New(datatype.Int8)},
		{"varchar", 0, 0, datatype.New(datatype.String)},
		{"datetime", 0, 0, datatype.New(datatype.Timestamp)},
		{"decimal", 10, 2, datatype.NewDecimal(10, 2)},
		{"json", 0, 0, datatype.New(datatype.JSON)},
		{"blob", 0, 0, datatype.New(datatype.Binary)},
		{"geometry", 0, 0, datatype.New(datatype.Unknown)},
	}

	for _, tt := range tests {
		got := canonicalType(tt.dataType, tt.precision, tt.scale)
		if got != tt.want {
			t.Errorf("canonicalType(%q, %d, %d) = %v, want %v",
				tt.dataType, tt.precision, tt.scale, got, tt.want)
		}
	}
}

func TestAdapterMetadata(t *testing.T) {
	a := &mysqlAdapter{}
	if a.Name() != "mysql" {
		t.Errorf("Name() = %q, want mysql", a.Name())
	}
	if a.DefaultPort() != 3306 {
		t.Errorf("DefaultPort() = %d, want 3306", a.DefaultPort())
	}
}
