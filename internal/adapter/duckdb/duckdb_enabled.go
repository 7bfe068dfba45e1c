//go:build duckdb

// Package duckdb registers the DuckDB introspection adapter when built
// with -tags duckdb; the default build registers a stub that reports the
// feature as unavailable.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/sadopc/tabula/internal/adapter"
	"github.com/sadopc/tabula/internal/datatype"
	"github.com/sadopc/tabula/internal/schema"
)

func init() {
	adapter.Register(&duckdbAdapter{})
}

// duckdbAdapter implements adapter.Adapter for DuckDB files.
type duckdbAdapter struct{}

func (a *duckdbAdapter) Name() string     { return "duckdb" }
func (a *duckdbAdapter) DefaultPort() int { return 0 }

func (a *duckdbAdapter) Connect(ctx context.Context, dsn string) (adapter.Connection, error) {
	dsn = strings.TrimPrefix(dsn, "duckdb://")

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("duckdb open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("duckdb ping: %w", err)
	}

	dbName := dsn
	if dsn == "" || dsn == ":memory:" {
		dbName = ":memory:"
	} else {
		dbName = filepath.Base(dsn)
	}

	return &duckdbConn{db: db, dbName: dbName}, nil
}

// duckdbConn implements adapter.Connection.
type duckdbConn struct {
	db     *sql.DB
	dbName string
}

func (c *duckdbConn) AdapterName() string  { return "duckdb" }
func (c *duckdbConn) DatabaseName() string { return c.dbName }

func (c *duckdbConn) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *duckdbConn) Close() error {
	return c.db.Close()
}

// Tables lists base tables in the main schema.
func (c *duckdbConn) Tables(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'main' AND table_type = 'BASE TABLE'
		ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("duckdb tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("duckdb tables scan: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// TableSchema introspects one table via duckdb_columns(), which carries
// COMMENT ON COLUMN text in its comment field.
func (c *duckdbConn) TableSchema(ctx context.Context, table string) (*schema.Schema, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT column_name, data_type, comment
		FROM duckdb_columns()
		WHERE schema_name = 'main' AND table_name = ?
		ORDER BY column_index`, table)
	if err != nil {
		return nil, fmt.Errorf("duckdb columns: %w", err)
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var (
			name     string
			dataType string
			comment  sql.NullString
		)
		if err := rows.Scan(&name, &dataType, &comment); err != nil {
			return nil, fmt.Errorf("duckdb columns scan: %w", err)
		}

		col := schema.Column{Name: name, Type: canonicalType(dataType)}
		if comment.Valid && comment.String != "" {
			col.Description = schema.Describe(comment.String)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %q", adapter.ErrNoSuchTable, table)
	}

	s, err := schema.FromColumns(columns)
	if err != nil {
		return nil, fmt.Errorf("duckdb table %q: %w", table, err)
	}
	return s, nil
}

// canonicalType coerces a DuckDB type name. DuckDB reports parameterised
// forms like DECIMAL(10,2) directly, which Parse understands; nested types
// (LIST, STRUCT, MAP) stay unknown.
func canonicalType(dataType string) datatype.Type {
	t, err := datatype.Parse(dataType)
	if err != nil {
		return datatype.New(datatype.Unknown)
	}
	return t
}
