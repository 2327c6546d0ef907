// Package seeder persists generated fixture graphs.
//
// The factory package wires relationships as shared in-memory
// instances; the database additionally wants foreign-key columns to
// point at rows that exist. The seeder walks an instance graph depth
// first, inserts referenced instances before their referrers, and
// rewrites every foreign-key column to the value its target instance
// actually carries:
//
//	sess := factory.NewSession(graph)
//	jobs, _ := sess.Factory("jobs")
//	job := jobs.New()
//
//	sd := seeder.New(db, sess.Graph(), seeder.WithPlaceholderFormat(sq.Dollar))
//	err := sd.Seed(ctx, job) // INSERT pipelines, then jobs
//
// Seeding is all-or-nothing in spirit: the first failed insert aborts
// the run, since a partially seeded fixture graph is not useful.
package seeder
