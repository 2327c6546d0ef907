// Package schema provides the read-only schema description consumed by
// fixture generation.
//
// A [Graph] enumerates the entity types of one relational schema. Each
// [Table] exposes its name, ordered [Column] descriptors, declared
// [Relationship] edges and primary-key designation. Semantic column
// types live in the [field] subpackage.
//
// Graphs can be constructed literally (tests, hand-written models) or
// loaded from a live database via the [inspect] subpackage:
//
//	graph, err := schema.NewGraph(
//	    &schema.Table{
//	        Name: "pipelines",
//	        Columns: []*schema.Column{
//	            {Name: "id", Type: field.TypeInfo{Type: field.TypeUUID}, PrimaryKey: true},
//	            {Name: "name", Type: field.TypeInfo{Type: field.TypeString, Size: 100}},
//	        },
//	    },
//	    &schema.Table{
//	        Name: "jobs",
//	        Columns: []*schema.Column{
//	            {Name: "id", Type: field.TypeInfo{Type: field.TypeUUID}, PrimaryKey: true},
//	            {Name: "pipeline_id", Type: field.TypeInfo{Type: field.TypeUUID},
//	                ForeignKeys: []schema.ForeignKey{{Table: "pipelines", Column: "id"}}},
//	        },
//	    },
//	)
//
// Once loaded, a graph is immutable: consumers that need to augment
// relationship sets (the factory session does, when it materializes
// inferred relationships) operate on a [Graph.Clone].
package schema
