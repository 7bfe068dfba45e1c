// Package adapter defines the driver interface for introspecting live
// databases into schema values, and the registry the driver packages
// populate at init time.
package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/sadopc/tabula/internal/schema"
)

var (
	// ErrUnknownAdapter is wrapped when no driver is registered under a
	// requested name.
	ErrUnknownAdapter = errors.New("unknown adapter")

	// ErrNoSuchTable is wrapped when introspection is asked for a table
	// the database does not have.
	ErrNoSuchTable = errors.New("no such table")
)

// Adapter creates database connections.
type Adapter interface {
	Connect(ctx context.Context, dsn string) (Connection, error)
	Name() string
	DefaultPort() int
}

// Connection is an introspection session against one database. Tabula
// reads metadata only; no connection executes user queries.
type Connection interface {
	// Tables lists the user table names, sorted.
	Tables(ctx context.Context) ([]string, error)

	// TableSchema introspects one table into a schema value, with the
	// driver's native column types coerced to canonical types and column
	// comments carried as descriptions where the engine has them.
	TableSchema(ctx context.Context, table string) (*schema.Schema, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Info
	DatabaseName() string
	AdapterName() string
}

// Registry holds registered adapters by name.
var Registry = map[string]Adapter{}

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	Registry[a.Name()] = a
}

// Lookup returns the adapter registered under name.
func Lookup(name string) (Adapter, error) {
	a, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAdapter, name)
	}
	return a, nil
}

// Table is a live database table as a schema-bearing relation: a concrete
// variant whose root table is itself.
type Table struct {
	schema.BaseRelation
	name string
	sch  *schema.Schema
}

// NewTable wraps an introspected schema as a relation.
func NewTable(name string, s *schema.Schema) *Table {
	return &Table{name: name, sch: s}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Schema returns the table's introspected schema.
func (t *Table) Schema() (*schema.Schema, error) { return t.sch, nil }

// RootTables returns the table itself: a base table is its own root.
func (t *Table) RootTables() []schema.Relation { return []schema.Relation{t} }

func (t *Table) String() string { return schema.FormatRelation(t) }
