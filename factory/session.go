package factory

import (
	"github.com/syssam/fabrica"
	"github.com/syssam/fabrica/schema"
	"github.com/syssam/fabrica/schema/field"
)

// Session owns the state of one generation run: the resolved schema
// copy, the override table, the provider registry, the factory registry
// and the instance cache. Factories and instances live for the duration
// of the run and are discarded by Reset; the source graph is never
// mutated.
//
// A session is synchronous and single-threaded. It must not be shared
// by concurrent runs.
type Session struct {
	source    *schema.Graph
	graph     *schema.Graph
	overrides Overrides
	registry  *Registry
	factories map[string]*Factory
	instances map[string]*Instance
}

// A SessionOption configures a session.
type SessionOption func(*Session)

// WithOverrides sets the override table consulted before value
// providers. Later options merge over earlier ones.
func WithOverrides(o Overrides) SessionOption {
	return func(s *Session) {
		s.overrides.Merge(o)
	}
}

// WithProvider replaces the value provider for one semantic type.
func WithProvider(t field.Type, p Provider) SessionOption {
	return func(s *Session) {
		s.registry.Register(t, p)
	}
}

// NewSession creates a generation session over the given schema graph.
func NewSession(g *schema.Graph, opts ...SessionOption) *Session {
	s := &Session{
		source:    g,
		overrides: Overrides{},
		registry:  NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset discards the factories and instances of the previous run and
// re-derives the resolved schema from the source graph. Overrides and
// providers are kept.
func (s *Session) Reset() {
	s.graph = s.source.Clone()
	s.factories = make(map[string]*Factory)
	s.instances = make(map[string]*Instance)
}

// Factory returns the factory for the given table, building it, and
// transitively the factories of every table reachable from it, if not
// built yet. Factories are memoized for the lifetime of the run:
// requesting the same table again returns the same factory.
func (s *Session) Factory(table string) (*Factory, error) {
	t, ok := s.graph.Table(table)
	if !ok {
		return nil, fabrica.NewUnknownTableError(table)
	}
	return s.build(t, nil)
}

// Instance returns the instance materialized for the given table during
// this run, if any.
func (s *Session) Instance(table string) (*Instance, bool) {
	inst, ok := s.instances[table]
	return inst, ok
}

// Graph returns the session's resolved schema: a copy of the source
// graph whose relationship sets grow as inferred relationships are
// materialized during builds.
func (s *Session) Graph() *schema.Graph {
	return s.graph
}

// build assembles the factory for t. The visited set carries the table
// names along the current recursion path; every call threads its own
// copy down, so sibling branches keep independent cycle guards. An edge
// whose target is already on the path is omitted.
func (s *Session) build(t *schema.Table, visited map[string]struct{}) (*Factory, error) {
	if f, ok := s.factories[t.Name]; ok {
		return f, nil
	}
	path := make(map[string]struct{}, len(visited)+1)
	for name := range visited {
		path[name] = struct{}{}
	}
	path[t.Name] = struct{}{}

	f := &Factory{session: s, table: t}
	covered := coveredColumns(t)
	inferred := inferRelationships(t, covered)

	for _, c := range t.Columns {
		if v, ok := s.overrides.Lookup(t.Name, c.Name); ok {
			f.columns = append(f.columns, column{col: c, override: v, fixed: true})
			continue
		}
		if _, ok := covered[c.Name]; ok {
			// Wired through the declared relationship below.
			continue
		}
		p, err := s.registry.Provider(t.Name, c)
		if err != nil {
			return nil, err
		}
		f.columns = append(f.columns, column{col: c, provider: p})
	}

	for _, r := range t.Relationships {
		rel, err := s.wire(t, r, path)
		if err != nil {
			return nil, err
		}
		if rel != nil {
			f.relations = append(f.relations, rel)
		}
	}

	for _, r := range inferred {
		rel, err := s.wire(t, r, path)
		if err != nil {
			return nil, err
		}
		if rel == nil {
			continue
		}
		f.relations = append(f.relations, rel)
		// Declare the inferred relationship on the resolved schema, so
		// later builds of this table see it as declared instead of
		// re-inferring it.
		t.Relationships = append(t.Relationships, r)
	}

	s.factories[t.Name] = f
	return f, nil
}

// wire resolves one relationship edge into a factory call on the target
// table. It returns nil for edges whose target is on the current path.
func (s *Session) wire(t *schema.Table, r *schema.Relationship, path map[string]struct{}) (*relation, error) {
	if _, onPath := path[r.Table]; onPath {
		return nil, nil
	}
	target, ok := s.graph.Table(r.Table)
	if !ok {
		err := &fabrica.UnknownTableError{Table: r.Table, Referrer: t.Name}
		if len(r.Columns) > 0 {
			err.Column = r.Columns[0]
		}
		return nil, err
	}
	tf, err := s.build(target, path)
	if err != nil {
		return nil, err
	}
	return &relation{name: r.Name, target: tf, collection: r.Collection}, nil
}
