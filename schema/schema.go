package schema

import (
	"github.com/go-openapi/inflect"

	"github.com/syssam/fabrica"
	"github.com/syssam/fabrica/schema/field"
)

type (
	// Graph holds the entity types of one relational schema, keyed by
	// table name. It is loaded once, upstream of fixture generation,
	// and treated as immutable by the core: a generation session that
	// needs to widen relationship sets works on a Clone.
	Graph struct {
		tables map[string]*Table
		names  []string
	}

	// Table describes one relational table: its identifying name, its
	// ordered columns, its declared relationships to other tables, and
	// its primary-key designation.
	Table struct {
		// Name is the table name (snake_case, usually plural).
		Name string
		// Columns holds the table columns in declaration order.
		Columns []*Column
		// Relationships holds the declared relationships of the table.
		Relationships []*Relationship
	}

	// Column describes one table column.
	Column struct {
		// Name is the column name.
		Name string
		// Type holds the semantic type information of the column.
		Type field.TypeInfo
		// PrimaryKey indicates if this column is the table's primary key.
		PrimaryKey bool
		// Nullable indicates if this column accepts NULL.
		Nullable bool
		// ForeignKeys holds the foreign-key targets of the column.
		// Composite/multi-target keys keep their declaration order;
		// only the first target participates in relationship wiring.
		ForeignKeys []ForeignKey
	}

	// ForeignKey is a reference from a column to a column of another table.
	ForeignKey struct {
		// Table is the referenced table name.
		Table string
		// Column is the referenced column name.
		Column string
	}

	// Relationship is a named, directional edge from one table to
	// another. Declared relationships come from the schema metadata;
	// the factory package materializes inferred ones (from foreign-key
	// naming conventions) in the same shape.
	Relationship struct {
		// Name is the relation name (e.g. "pipeline", "jobs").
		Name string
		// Table is the target table name.
		Table string
		// Columns holds the local join column(s) backing the relationship.
		Columns []string
		// Collection indicates a collection of related instances
		// rather than a single one.
		Collection bool
	}
)

// NewGraph creates a graph from the given tables. Table names must be unique.
func NewGraph(tables ...*Table) (*Graph, error) {
	g := &Graph{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		if _, ok := g.tables[t.Name]; ok {
			return nil, fabrica.NewSchemaError(t.Name, "", "table redeclared", nil)
		}
		for _, c := range t.Columns {
			if !c.Type.Valid() {
				return nil, fabrica.NewSchemaError(t.Name, c.Name, "invalid column type "+c.Type.String(), nil)
			}
		}
		g.tables[t.Name] = t
		g.names = append(g.names, t.Name)
	}
	return g, nil
}

// Table returns the table with the given name.
func (g *Graph) Table(name string) (*Table, bool) {
	t, ok := g.tables[name]
	return t, ok
}

// Tables returns all tables in insertion order.
func (g *Graph) Tables() []*Table {
	ts := make([]*Table, 0, len(g.names))
	for _, name := range g.names {
		ts = append(ts, g.tables[name])
	}
	return ts
}

// Clone returns a copy of the graph whose relationship slices are safe
// to widen without mutating the source. Columns are shared: they are
// read-only to every consumer.
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		tables: make(map[string]*Table, len(g.tables)),
		names:  append([]string(nil), g.names...),
	}
	for name, t := range g.tables {
		ct := &Table{
			Name:          t.Name,
			Columns:       t.Columns,
			Relationships: append([]*Relationship(nil), t.Relationships...),
		}
		clone.tables[name] = ct
	}
	return clone
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// PrimaryKey returns the primary-key column of the table, if designated.
func (t *Table) PrimaryKey() (*Column, bool) {
	for _, c := range t.Columns {
		if c.PrimaryKey {
			return c, true
		}
	}
	return nil, false
}

// Relationship returns the declared relationship with the given name.
func (t *Table) Relationship(name string) (*Relationship, bool) {
	for _, r := range t.Relationships {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// EntityName returns the entity-type name of the table (singular, PascalCase).
func (t *Table) EntityName() string {
	return inflect.Camelize(inflect.Singularize(t.Name))
}

// ForeignKey returns the effective foreign-key target of the column.
// For composite/multi-target keys, the first declared target wins.
func (c *Column) ForeignKey() (ForeignKey, bool) {
	if len(c.ForeignKeys) == 0 {
		return ForeignKey{}, false
	}
	return c.ForeignKeys[0], true
}
