package sampler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/fabrica/factory"
	"github.com/syssam/fabrica/schema"
	"github.com/syssam/fabrica/schema/field"
)

const (
	// sampleLimit bounds the number of candidate rows scanned per column.
	sampleLimit = 50
	// collectors bounds the number of tables sampled concurrently.
	collectors = 4
)

// Fixtures is the flat table→column→value mapping the sampler produces,
// in the same shape the factory override table consumes.
type Fixtures map[string]map[string]any

// Collect scans every JSON column of the graph's tables for one
// representative sample value: the first row whose value is not null,
// not an empty object and not an empty array. If a column holds nothing
// but trivial values, the first non-null one is kept instead, and
// columns with no non-null rows at all are left out.
func Collect(ctx context.Context, db *sql.DB, g *schema.Graph) (Fixtures, error) {
	var (
		mu sync.Mutex
		fx = Fixtures{}
	)
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(collectors)
	for _, t := range g.Tables() {
		for _, c := range t.Columns {
			if c.Type.Type != field.TypeJSON {
				continue
			}
			table, column := t.Name, c.Name
			grp.Go(func() error {
				v, ok, err := sample(ctx, db, table, column)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				mu.Lock()
				defer mu.Unlock()
				m, ok := fx[table]
				if !ok {
					m = make(map[string]any)
					fx[table] = m
				}
				m[column] = v
				return nil
			})
		}
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return fx, nil
}

// Overrides converts the fixtures into a factory override table.
func (f Fixtures) Overrides() factory.Overrides {
	o := factory.Overrides{}
	for table, columns := range f {
		for column, v := range columns {
			o.Set(table, column, v)
		}
	}
	return o
}

// WriteFile writes the fixtures as the overrides JSON file consumed by
// factory.LoadOverrides.
func (f Fixtures) WriteFile(path string) error {
	buf, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("fabrica: encode fixtures: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("fabrica: write fixtures: %w", err)
	}
	return nil
}

// sample returns one representative value for the given column.
func sample(ctx context.Context, db *sql.DB, table, column string) (any, bool, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s IS NOT NULL LIMIT %d", column, table, column, sampleLimit)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, false, fmt.Errorf("fabrica: sample %s.%s: %w", table, column, err)
	}
	defer rows.Close()

	var (
		fallback     []byte
		haveFallback bool
	)
	for rows.Next() {
		var buf []byte
		if err := rows.Scan(&buf); err != nil {
			return nil, false, fmt.Errorf("fabrica: sample %s.%s: %w", table, column, err)
		}
		if interesting(buf) {
			return decode(buf), true, nil
		}
		if !haveFallback && !isNull(buf) {
			fallback = append([]byte(nil), buf...)
			haveFallback = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("fabrica: sample %s.%s: %w", table, column, err)
	}
	if !haveFallback {
		return nil, false, nil
	}
	return decode(fallback), true, nil
}

// interesting reports if a serialized value carries information worth
// replaying as a fixture: anything but null and the empty object/array.
func interesting(buf []byte) bool {
	switch strings.TrimSpace(string(buf)) {
	case "", "null", "{}", "[]":
		return false
	default:
		return true
	}
}

// isNull reports if a serialized value is null. Null values never
// qualify as fallbacks.
func isNull(buf []byte) bool {
	switch strings.TrimSpace(string(buf)) {
	case "", "null":
		return true
	default:
		return false
	}
}

// decode parses a serialized column value, falling back to the raw text
// when it is not valid JSON.
func decode(buf []byte) any {
	var v any
	if err := json.Unmarshal(buf, &v); err != nil {
		return string(buf)
	}
	return v
}
