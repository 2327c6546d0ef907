// Package sampler mines a live database for representative JSON-column
// sample values.
//
// Synthetic providers can only produce an empty structured value for
// opaque JSON columns; real-world samples make far better fixtures. The
// sampler scans each JSON column of a schema graph for the first
// "interesting" value (not null, not {} or []), falls back to any
// non-null value, and emits the result as the flat table→column→value
// overrides file the factory package loads:
//
//	fx, err := sampler.Collect(ctx, db, graph)
//	// ...
//	err = fx.WriteFile("json_fixtures.json")
//
// The output file is meant to be committed alongside the tests that
// consume it.
package sampler
