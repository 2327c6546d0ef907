// Package factory derives data-generating factories from a relational
// schema description and materializes coherent fixture graphs from them.
//
// A [Session] is the unit of generation: it owns the override table,
// the value-provider registry, the per-run factory registry and the
// per-run instance cache. [Session.Factory] builds the factory for a
// table by walking its columns and relationships:
//
//   - a column with an override entry uses the override verbatim;
//   - a column claimed by a declared relationship's join column is
//     skipped and handled by the relationship wiring;
//   - every other column gets a value provider picked by semantic type;
//   - every declared relationship becomes a recursive call into the
//     target table's factory, unless the target is already on the
//     current build path (cycles are omitted, not errors);
//   - foreign-key columns named with the "_id" convention and not
//     claimed by a declared relationship become inferred relationships,
//     wired the same way and added to the session's resolved schema so
//     later builds see them as declared.
//
// Invoking the built factory with [Factory.New] produces at most one
// real instance per table per run; every reference to that table, from
// any parent, resolves to the same instance.
//
//	sess := factory.NewSession(graph, factory.WithOverrides(factory.Overrides{
//	    "jobs": {"status": "RUNNING"},
//	}))
//	jobs, err := sess.Factory("jobs")
//	if err != nil {
//	    // incomplete schema description or provider table
//	}
//	job := jobs.New()
//	job.Columns["status"]   // "RUNNING"
//	job.Refs["pipeline"]    // the one Pipeline instance of this run
package factory
