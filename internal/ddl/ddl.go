// Package ddl generates CREATE TABLE statements from schema values,
// mapping canonical column types back to each dialect's type names.
package ddl

import (
	"fmt"
	"strings"

	"github.com/sadopc/tabula/internal/datatype"
	"github.com/sadopc/tabula/internal/schema"
)

// Dialect selects the SQL flavour of the generated statement.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
	DuckDB   Dialect = "duckdb"
)

// ParseDialect validates a dialect name.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(strings.ToLower(name)) {
	case Postgres:
		return Postgres, nil
	case MySQL:
		return MySQL, nil
	case SQLite:
		return SQLite, nil
	case DuckDB:
		return DuckDB, nil
	default:
		return "", fmt.Errorf("unknown dialect %q", name)
	}
}

// CreateTable renders a CREATE TABLE statement for the schema. Column
// descriptions become COMMENT clauses where the dialect supports them:
// inline for MySQL, separate COMMENT ON statements for PostgreSQL, and
// omitted for SQLite and DuckDB.
func CreateTable(table string, s *schema.Schema, d Dialect) (string, error) {
	columns := s.Columns()

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (", quoteIdent(table, d))
	for i, col := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		typeName, err := dialectType(col.Type, d)
		if err != nil {
			return "", fmt.Errorf("column %q: %w", col.Name, err)
		}
		fmt.Fprintf(&b, "\n  %s %s", quoteIdent(col.Name, d), typeName)
		if d == MySQL && col.Description.Valid {
			fmt.Fprintf(&b, " COMMENT %s", quoteString(col.Description.Text))
		}
	}
	b.WriteString("\n);")

	if d == Postgres {
		for _, col := range columns {
			if !col.Description.Valid {
				continue
			}
			fmt.Fprintf(&b, "\nCOMMENT ON COLUMN %s.%s IS %s;",
				quoteIdent(table, d), quoteIdent(col.Name, d), quoteString(col.Description.Text))
		}
	}

	return b.String(), nil
}

// dialectType maps a canonical type to the dialect's column type name.
func dialectType(t datatype.Type, d Dialect) (string, error) {
	if t.Kind == datatype.Decimal {
		if t.Precision > 0 {
			return fmt.Sprintf("DECIMAL(%d,%d)", t.Precision, t.Scale), nil
		}
		return "DECIMAL", nil
	}

	table, ok := typeNames[d]
	if !ok {
		return "", fmt.Errorf("unknown dialect %q", d)
	}
	name, ok := table[t.Kind]
	if !ok {
		return "", fmt.Errorf("no %s type for %s", d, t)
	}
	return name, nil
}

var typeNames = map[Dialect]map[datatype.Kind]string{
	Postgres: {
		datatype.Boolean:   "BOOLEAN",
		datatype.Int8:      "SMALLINT", // postgres has no 1-byte integer
		datatype.Int16:     "SMALLINT",
		datatype.Int32:     "INTEGER",
		datatype.Int64:     "BIGINT",
		datatype.Float32:   "REAL",
		datatype.Float64:   "DOUBLE PRECISION",
		datatype.String:    "TEXT",
		datatype.Binary:    "BYTEA",
		datatype.Date:      "DATE",
		datatype.Time:      "TIME",
		datatype.Timestamp: "TIMESTAMP",
		datatype.JSON:      "JSONB",
		datatype.UUID:      "UUID",
	},
	MySQL: {
		datatype.Boolean:   "BOOLEAN",
		datatype.Int8:      "TINYINT",
		datatype.Int16:     "SMALLINT",
		datatype.Int32:     "INT",
		datatype.Int64:     "BIGINT",
		datatype.Float32:   "FLOAT",
		datatype.Float64:   "DOUBLE",
		datatype.String:    "TEXT",
		datatype.Binary:    "BLOB",
		datatype.Date:      "DATE",
		datatype.Time:      "TIME",
		datatype.Timestamp: "DATETIME",
		datatype.JSON:      "JSON",
		datatype.UUID:      "CHAR(36)",
	},
	SQLite: {
		datatype.Boolean:   "INTEGER",
		datatype.Int8:      "INTEGER",
		datatype.Int16:     "INTEGER",
		datatype.Int32:     "INTEGER",
		datatype.Int64:     "INTEGER",
		datatype.Float32:   "REAL",
		datatype.Float64:   "REAL",
		datatype.String:    "TEXT",
		datatype.Binary:    "BLOB",
		datatype.Date:      "TEXT",
		datatype.Time:      "TEXT",
		datatype.Timestamp: "TEXT",
		datatype.JSON:      "TEXT",
		datatype.UUID:      "TEXT",
	},
	DuckDB: {
		datatype.Boolean:   "BOOLEAN",
		datatype.Int8:      "TINYINT",
		datatype.Int16:     "SMALLINT",
		datatype.Int32:     "INTEGER",
		datatype.Int64:     "BIGINT",
		datatype.Float32:   "REAL",
		datatype.Float64:   "DOUBLE",
		datatype.String:    "VARCHAR",
		datatype.Binary:    "BLOB",
		datatype.Date:      "DATE",
		datatype.Time:      "TIME",
		datatype.Timestamp: "TIMESTAMP",
		datatype.JSON:      "JSON",
		datatype.UUID:      "UUID",
	},
}

// quoteIdent quotes an identifier in the dialect's quoting style.
func quoteIdent(name string, d Dialect) string {
	if d == MySQL {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteString renders a single-quoted SQL string literal.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
