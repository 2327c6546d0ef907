package factory

import (
	"strings"

	"github.com/syssam/fabrica/schema"
)

// relationSuffix is the naming convention that marks an otherwise
// undeclared foreign-key column as backing an implicit relationship
// ("pipeline_id" → "pipeline").
const relationSuffix = "_id"

// coveredColumns returns the column keys already claimed by the local
// join columns of the table's declared relationships.
func coveredColumns(t *schema.Table) map[string]struct{} {
	covered := make(map[string]struct{})
	for _, r := range t.Relationships {
		for _, c := range r.Columns {
			covered[c] = struct{}{}
		}
	}
	return covered
}

// inferRelationships synthesizes single-cardinality relationships for
// foreign-key columns that match the naming convention and are not
// covered by a declared relationship. The relation name is the column
// key with the suffix stripped; the target is the column's first
// foreign-key table.
func inferRelationships(t *schema.Table, covered map[string]struct{}) []*schema.Relationship {
	var inferred []*schema.Relationship
	for _, c := range t.Columns {
		fk, ok := c.ForeignKey()
		if !ok {
			continue
		}
		if _, ok := covered[c.Name]; ok {
			continue
		}
		name, ok := strings.CutSuffix(c.Name, relationSuffix)
		if !ok || name == "" {
			continue
		}
		inferred = append(inferred, &schema.Relationship{
			Name:    name,
			Table:   fk.Table,
			Columns: []string{c.Name},
		})
	}
	return inferred
}
