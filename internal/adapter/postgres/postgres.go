// Package postgres registers the PostgreSQL introspection adapter.
package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sadopc/tabula/internal/adapter"
	"github.com/sadopc/tabula/internal/datatype"
	"github.com/sadopc/tabula/internal/schema"
)

func init() {
	adapter.Register(&postgresAdapter{})
}

// postgresAdapter implements adapter.Adapter for PostgreSQL.
type postgresAdapter struct{}

func (a *postgresAdapter) Name() string     { return "postgres" }
func (a *postgresAdapter) DefaultPort() int { return 5432 }

func (a *postgresAdapter) Connect(ctx context.Context, dsn string) (adapter.Connection, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return &pgConn{pool: pool, dbName: extractDBName(dsn)}, nil
}

// extractDBName parses the database name from the DSN.
func extractDBName(dsn string) string {
	if dsn == "" {
		return ""
	}
	// Try URL format first (postgres://... or postgresql://...)
	u, err := url.Parse(dsn)
	if err == nil && u.Scheme != "" {
		return strings.TrimPrefix(u.Path, "/")
	}
	// Fallback: keyword=value format (e.g. "host=localhost dbname=myapp")
	for _, part := range strings.Fields(dsn) {
		if strings.HasPrefix(part, "dbname=") {
			return strings.TrimPrefix(part, "dbname=")
		}
	}
	return ""
}

// pgConn implements adapter.Connection for PostgreSQL.
type pgConn struct {
	pool   *pgxpool.Pool
	dbName string
}

func (c *pgConn) DatabaseName() string { return c.dbName }
func (c *pgConn) AdapterName() string  { return "postgres" }

func (c *pgConn) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *pgConn) Close() error {
	c.pool.Close()
	return nil
}

// Tables lists base tables in the public schema.
func (c *pgConn) Tables(ctx context.Context) ([]string, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("postgres tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("postgres tables scan: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// TableSchema introspects one public-schema table. Column comments from
// pg_description become column descriptions.
func (c *pgConn) TableSchema(ctx context.Context, table string) (*schema.Schema, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT c.column_name,
		       c.data_type,
		       COALESCE(c.numeric_precision, 0),
		       COALESCE(c.numeric_scale, 0),
		       d.description
		FROM information_schema.columns c
		LEFT JOIN pg_catalog.pg_statio_all_tables st
		       ON st.schemaname = c.table_schema AND st.relname = c.table_name
		LEFT JOIN pg_catalog.pg_description d
		       ON d.objoid = st.relid AND d.objsubid = c.ordinal_position
		WHERE c.table_schema = 'public' AND c.table_name = $1
		ORDER BY c.ordinal_position`, table)
	if err != nil {
		return nil, fmt.Errorf("postgres columns: %w", err)
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var (
			name      string
			dataType  string
			precision int
			scale     int
			comment   *string
		)
		if err := rows.Scan(&name, &dataType, &precision, &scale, &comment); err != nil {
			return nil, fmt.Errorf("postgres columns scan: %w", err)
		}

		col := schema.Column{Name: name, Type: canonicalType(dataType, precision, scale)}
		if comment != nil {
			col.Description = schema.Describe(*comment)
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
		return nil, fmt.Errorf("postgres table %q: %w", table, err)
	}
	return s, nil
}

// canonicalType coerces an information_schema data_type. Types the model
// does not cover (arrays, ranges, extension types) stay unknown rather
// than failing the whole inspection.
func canonicalType(dataType string, precision, scale int) datatype.Type {
	if dataType == "numeric" && precision > 0 {
		return datatype.NewDecimal(precision, scale)
	}
	t, err := datatype.Parse(dataType)
	if err != nil {
		return datatype.New(datatype.Unknown)
	}
	return t
}
