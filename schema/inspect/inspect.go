package inspect

import (
	"context"
	"fmt"

	atlas "ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlclient"

	// Registers the url schemes sqlclient.Open understands.
	_ "ariga.io/atlas/sql/mysql"
	_ "ariga.io/atlas/sql/postgres"
	_ "ariga.io/atlas/sql/sqlite"

	"github.com/syssam/fabrica/schema"
	"github.com/syssam/fabrica/schema/field"
)

// Graph connects to the database at url, inspects its default schema
// and converts the result into a fabrica schema graph.
func Graph(ctx context.Context, url string) (*schema.Graph, error) {
	client, err := sqlclient.Open(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fabrica: inspect %q: %w", url, err)
	}
	defer client.Close()

	s, err := client.InspectSchema(ctx, "", nil)
	if err != nil {
		return nil, fmt.Errorf("fabrica: inspect %q: %w", url, err)
	}
	return Convert(s)
}

// Convert translates an inspected database schema into a fabrica
// schema graph. Column types outside the semantic type set degrade to
// plain strings, keeping inspection best-effort; relationship
// information is carried verbatim.
func Convert(s *atlas.Schema) (*schema.Graph, error) {
	tables := make([]*schema.Table, 0, len(s.Tables))
	for _, t := range s.Tables {
		ct := &schema.Table{
			Name:    t.Name,
			Columns: make([]*schema.Column, 0, len(t.Columns)),
		}
		for _, c := range t.Columns {
			col := &schema.Column{
				Name:     c.Name,
				Type:     typeInfo(c.Type.Type),
				Nullable: c.Type.Null,
			}
			if pk := t.PrimaryKey; pk != nil {
				for _, part := range pk.Parts {
					if part.C == c {
						col.PrimaryKey = true
					}
				}
			}
			ct.Columns = append(ct.Columns, col)
		}
		for _, fk := range t.ForeignKeys {
			for i, lc := range fk.Columns {
				if i >= len(fk.RefColumns) {
					break
				}
				col, ok := ct.Column(lc.Name)
				if !ok {
					continue
				}
				col.ForeignKeys = append(col.ForeignKeys, schema.ForeignKey{
					Table:  fk.RefTable.Name,
					Column: fk.RefColumns[i].Name,
				})
			}
		}
		tables = append(tables, ct)
	}
	return schema.NewGraph(tables...)
}

// typeInfo maps an inspected column type onto the semantic type set.
func typeInfo(t atlas.Type) field.TypeInfo {
	switch t := t.(type) {
	case *atlas.UUIDType:
		return field.TypeInfo{Type: field.TypeUUID}
	case *atlas.StringType:
		return field.TypeInfo{Type: field.TypeString, Size: int64(t.Size)}
	case *atlas.IntegerType:
		return field.TypeInfo{Type: field.TypeInt}
	case *atlas.FloatType:
		return field.TypeInfo{Type: field.TypeFloat}
	case *atlas.DecimalType:
		return field.TypeInfo{Type: field.TypeFloat}
	case *atlas.BoolType:
		return field.TypeInfo{Type: field.TypeBool}
	case *atlas.TimeType:
		return field.TypeInfo{Type: field.TypeTime}
	case *atlas.EnumType:
		return field.TypeInfo{Type: field.TypeEnum, Enums: t.Values}
	case *atlas.JSONType:
		return field.TypeInfo{Type: field.TypeJSON}
	default:
		return field.TypeInfo{Type: field.TypeString}
	}
}
