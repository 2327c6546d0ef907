package seeder

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/syssam/fabrica/factory"
	"github.com/syssam/fabrica/schema"
)

// Seeder inserts generated instance graphs into a database. Instances
// are inserted in foreign-key-safe order (referenced instances first),
// each one exactly once, with foreign-key columns rewritten to the
// values the referenced instances actually carry.
type Seeder struct {
	db    *sql.DB
	graph *schema.Graph
	sb    sq.StatementBuilderType
}

// An Option configures a seeder.
type Option func(*Seeder)

// WithPlaceholderFormat sets the placeholder format of the built
// statements. The default is question marks.
func WithPlaceholderFormat(f sq.PlaceholderFormat) Option {
	return func(s *Seeder) {
		s.sb = s.sb.PlaceholderFormat(f)
	}
}

// New creates a seeder over the given database and schema graph. The
// graph should be the generating session's resolved graph, so that
// inferred relationships participate in foreign-key rewriting.
func New(db *sql.DB, g *schema.Graph, opts ...Option) *Seeder {
	s := &Seeder{
		db:    db,
		graph: g,
		sb:    sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed inserts the given instances and every instance reachable from
// them. A generation run produces at most one instance per table, so
// instances are keyed and deduplicated by table name.
func (s *Seeder) Seed(ctx context.Context, instances ...*factory.Instance) error {
	reachable := make(map[string]*factory.Instance)
	for _, inst := range instances {
		collect(inst, reachable)
	}
	inserted := make(map[string]struct{}, len(reachable))
	for _, inst := range instances {
		if err := s.visit(ctx, inst, reachable, inserted); err != nil {
			return err
		}
	}
	return nil
}

// collect gathers every instance reachable from inst, keyed by table.
func collect(inst *factory.Instance, reachable map[string]*factory.Instance) {
	if _, ok := reachable[inst.Table]; ok {
		return
	}
	reachable[inst.Table] = inst
	for _, ref := range inst.Refs {
		collect(ref, reachable)
	}
	for _, items := range inst.Items {
		for _, item := range items {
			collect(item, reachable)
		}
	}
}

// visit inserts inst after its referenced instances and before the
// instances of its collection relations.
func (s *Seeder) visit(ctx context.Context, inst *factory.Instance, reachable map[string]*factory.Instance, inserted map[string]struct{}) error {
	if _, ok := inserted[inst.Table]; ok {
		return nil
	}
	inserted[inst.Table] = struct{}{}
	for _, ref := range inst.Refs {
		if err := s.visit(ctx, ref, reachable, inserted); err != nil {
			return err
		}
	}
	if err := s.insert(ctx, inst, reachable); err != nil {
		return err
	}
	for _, items := range inst.Items {
		for _, item := range items {
			if err := s.visit(ctx, item, reachable, inserted); err != nil {
				return err
			}
		}
	}
	return nil
}

// insert writes one instance row, rewriting its foreign-key columns to
// the referenced instances' values first. Synthetic foreign-key values
// only satisfy the column type; the database expects them to point at
// rows that exist.
func (s *Seeder) insert(ctx context.Context, inst *factory.Instance, reachable map[string]*factory.Instance) error {
	t, ok := s.graph.Table(inst.Table)
	if !ok {
		return fmt.Errorf("fabrica: seed %s: table not in graph", inst.Table)
	}
	values := make(map[string]any, len(inst.Columns))
	for k, v := range inst.Columns {
		values[k] = v
	}
	for _, c := range t.Columns {
		fk, ok := c.ForeignKey()
		if !ok {
			continue
		}
		target, ok := reachable[fk.Table]
		if !ok {
			continue
		}
		ref, ok := target.Columns[fk.Column]
		if !ok {
			continue
		}
		values[c.Name] = ref
	}

	columns := make([]string, 0, len(values))
	for k := range values {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	args := make([]any, 0, len(columns))
	for _, k := range columns {
		v, err := driverValue(values[k])
		if err != nil {
			return fmt.Errorf("fabrica: seed %s.%s: %w", inst.Table, k, err)
		}
		args = append(args, v)
	}

	query, qargs, err := s.sb.Insert(t.Name).Columns(columns...).Values(args...).ToSql()
	if err != nil {
		return fmt.Errorf("fabrica: seed %s: %w", inst.Table, err)
	}
	if _, err := s.db.ExecContext(ctx, query, qargs...); err != nil {
		return fmt.Errorf("fabrica: seed %s: %w", inst.Table, err)
	}
	return nil
}

// driverValue converts structured values to their serialized form;
// scalars and timestamps pass through.
func driverValue(v any) (any, error) {
	switch v.(type) {
	case nil, string, []byte, bool, int, int64, float64, time.Time:
		return v, nil
	default:
		buf, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return buf, nil
	}
}
