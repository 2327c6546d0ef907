// Package fabrica generates synthetic, schema-consistent fixture graphs
// for relational entity models.
//
// Given a schema description (tables, columns, semantic types, foreign
// keys and declared relationships), fabrica derives one data-generating
// factory per entity type, wiring foreign-key relationships to generator
// calls on the referenced type's factory. Building a factory for a root
// type transitively builds the factories of every reachable type, and
// invoking it materializes one coherent object graph: at most one real
// instance per type, with every reference to that type resolving to the
// same instance.
//
// # Components
//
//   - [schema]: the read-only schema description (Graph, Table, Column,
//     Relationship) and its semantic type system ([schema/field]).
//   - [factory]: the core. A Session owns the factory registry, the
//     instance cache, the override table and the value-provider registry,
//     and exposes Session.Factory as the build entry point.
//   - [sampler]: mines a live database for representative JSON-column
//     sample values to feed the override table.
//   - [seeder]: inserts a generated instance graph into a database in
//     foreign-key-safe order.
//   - [schema/inspect]: loads a schema Graph from a live database.
//
// # Quick Start
//
//	graph, err := inspect.Graph(ctx, os.Getenv("DB_URL"))
//	// ...
//	overrides, err := factory.LoadOverrides("json_fixtures.json")
//	// ...
//	sess := factory.NewSession(graph, factory.WithOverrides(overrides))
//	jobs, err := sess.Factory("jobs")
//	// ...
//	job := jobs.New() // one Job, its Pipeline, and so on
//
// Sessions are single-threaded by design: a generation run is one
// synchronous graph construction, and the registries it owns are reset
// between runs, never shared across concurrent sessions.
//
// # Error Handling
//
// All failures are configuration errors and fail fast: a semantic type
// without a provider ([ErrNoProvider]), a foreign key pointing at a
// table with no entity type ([ErrUnknownTable]), or an inconsistent
// schema description ([ErrInvalidSchema]). A partial fixture graph is
// not useful, so nothing is generated past the first unmet
// precondition. Cycles in the schema are not errors: a relationship
// that would re-enter a type already on the current build path is
// omitted.
package fabrica
