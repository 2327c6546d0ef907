package factory

import (
	"github.com/syssam/fabrica/schema"
)

type (
	// A Factory produces instances of exactly one entity type. It is
	// built once per session, memoized by table name, and owns the
	// mapping from column and relation names to value sources and
	// sub-factory calls.
	Factory struct {
		session   *Session
		table     *schema.Table
		columns   []column
		relations []*relation
	}

	// column binds one column to its value source: a verbatim override
	// value, an override provider, or a registry provider.
	column struct {
		col      *schema.Column
		override any
		fixed    bool
		provider Provider
	}

	// relation binds one relation name to the target table's factory.
	relation struct {
		name       string
		target     *Factory
		collection bool
	}
)

// Table returns the name of the table the factory is bound to.
func (f *Factory) Table() string {
	return f.table.Name
}

// New materializes the factory's instance. At most one real instance
// exists per table per run: the first call generates column values,
// recursively materializes the related instances, and caches the
// result; later calls, from any parent, return the cached instance
// without re-running generation. Collection relations append their
// related instance only on real creation.
func (f *Factory) New() *Instance {
	if inst, ok := f.session.instances[f.table.Name]; ok {
		return inst
	}
	inst := &Instance{
		Table:   f.table.Name,
		Columns: make(map[string]any, len(f.columns)),
		Refs:    make(map[string]*Instance),
		Items:   make(map[string][]*Instance),
	}
	for _, c := range f.columns {
		inst.Columns[c.col.Name] = c.value()
	}
	for _, r := range f.relations {
		if r.collection {
			inst.Items[r.name] = append(inst.Items[r.name], r.target.New())
			continue
		}
		inst.Refs[r.name] = r.target.New()
	}
	f.session.instances[f.table.Name] = inst
	return inst
}

func (c column) value() any {
	if c.fixed {
		if p, ok := c.override.(Provider); ok {
			return p(c.col)
		}
		return c.override
	}
	return c.provider(c.col)
}

// Instance is one generated record of an entity type, together with the
// related instances its relations resolved to.
type Instance struct {
	// Table is the table name of the entity type.
	Table string
	// Columns maps column names to generated or overridden values.
	Columns map[string]any
	// Refs maps single-cardinality relation names to the related instance.
	Refs map[string]*Instance
	// Items maps collection relation names to the appended instances.
	Items map[string][]*Instance
}
