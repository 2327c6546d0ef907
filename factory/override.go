package factory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Overrides is a nested mapping from table name to column name to a
// fixed value. A value may also be a [Provider], in which case it acts
// as a fixed generation strategy for that column. Overrides take
// precedence over both declared-relationship wiring and provider-derived
// values, and are never mutated by the builder.
type Overrides map[string]map[string]any

// Set sets the override value for the given table and column.
func (o Overrides) Set(table, column string, value any) {
	m, ok := o[table]
	if !ok {
		m = make(map[string]any)
		o[table] = m
	}
	m[column] = value
}

// Lookup returns the override value for the given table and column.
func (o Overrides) Lookup(table, column string) (any, bool) {
	v, ok := o[table][column]
	return v, ok
}

// Merge copies the entries of other into o, column by column. Entries
// of other win on conflict.
func (o Overrides) Merge(other Overrides) Overrides {
	for table, columns := range other {
		for column, v := range columns {
			o.Set(table, column, v)
		}
	}
	return o
}

// LoadOverrides reads an overrides file: the flat table→column→value
// mapping the sampler writes. The format is JSON unless the file
// extension says YAML.
func LoadOverrides(path string) (Overrides, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fabrica: load overrides: %w", err)
	}
	o := Overrides{}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(buf, &o)
	default:
		err = json.Unmarshal(buf, &o)
	}
	if err != nil {
		return nil, fmt.Errorf("fabrica: load overrides %q: %w", path, err)
	}
	return o, nil
}
