package factory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fabrica"
	"github.com/syssam/fabrica/schema"
	"github.com/syssam/fabrica/schema/field"
)

func pipelinesTable() *schema.Table {
	return &schema.Table{
		Name: "pipelines",
		Columns: []*schema.Column{
			{Name: "id", Type: field.TypeInfo{Type: field.TypeUUID}, PrimaryKey: true},
			{Name: "name", Type: field.TypeInfo{Type: field.TypeString, Size: 100}},
			{Name: "created_at", Type: field.TypeInfo{Type: field.TypeTime}},
		},
	}
}

func jobsTable(rels ...*schema.Relationship) *schema.Table {
	return &schema.Table{
		Name: "jobs",
		Columns: []*schema.Column{
			{Name: "id", Type: field.TypeInfo{Type: field.TypeUUID}, PrimaryKey: true},
			{Name: "status", Type: field.TypeInfo{Type: field.TypeEnum, Enums: []string{"PENDING", "RUNNING", "DONE"}}},
			{Name: "pipeline_id", Type: field.TypeInfo{Type: field.TypeUUID},
				ForeignKeys: []schema.ForeignKey{{Table: "pipelines", Column: "id"}}},
		},
		Relationships: rels,
	}
}

func newGraph(t *testing.T, tables ...*schema.Table) *schema.Graph {
	t.Helper()
	g, err := schema.NewGraph(tables...)
	require.NoError(t, err)
	return g
}

func TestSingletonInstance(t *testing.T) {
	require := require.New(t)
	sess := NewSession(newGraph(t, pipelinesTable()))

	f1, err := sess.Factory("pipelines")
	require.NoError(err)
	f2, err := sess.Factory("pipelines")
	require.NoError(err)
	require.Same(f1, f2, "factory memoized per session")

	inst := f1.New()
	require.Same(inst, f2.New(), "one real instance per table")
	cached, ok := sess.Instance("pipelines")
	require.True(ok)
	require.Same(inst, cached)
}

func TestDeclaredRelationship(t *testing.T) {
	require := require.New(t)
	sess := NewSession(newGraph(t,
		pipelinesTable(),
		jobsTable(&schema.Relationship{Name: "pipeline", Table: "pipelines", Columns: []string{"pipeline_id"}}),
	))

	jobs, err := sess.Factory("jobs")
	require.NoError(err)
	job := jobs.New()

	pipelines, err := sess.Factory("pipelines")
	require.NoError(err)
	require.Same(pipelines.New(), job.Refs["pipeline"], "relation resolves to the shared instance")

	_, ok := job.Columns["pipeline_id"]
	require.False(ok, "join column of a declared relationship is not generated")
}

func TestCollectionRelationship(t *testing.T) {
	require := require.New(t)
	pipelines := pipelinesTable()
	pipelines.Relationships = []*schema.Relationship{
		{Name: "jobs", Table: "jobs", Collection: true},
	}
	sess := NewSession(newGraph(t,
		pipelines,
		jobsTable(&schema.Relationship{Name: "pipeline", Table: "pipelines", Columns: []string{"pipeline_id"}}),
	))

	f, err := sess.Factory("pipelines")
	require.NoError(err)
	pipeline := f.New()
	require.Len(pipeline.Items["jobs"], 1)

	job, ok := sess.Instance("jobs")
	require.True(ok)
	require.Same(job, pipeline.Items["jobs"][0])
	require.Empty(job.Refs, "cyclic back-reference omitted")

	require.Same(pipeline, f.New())
	require.Len(pipeline.Items["jobs"], 1, "cache hits do not append")
}

func TestSelfReference(t *testing.T) {
	require := require.New(t)
	sess := NewSession(newGraph(t, &schema.Table{
		Name: "categories",
		Columns: []*schema.Column{
			{Name: "id", Type: field.TypeInfo{Type: field.TypeUUID}, PrimaryKey: true},
			{Name: "parent_id", Type: field.TypeInfo{Type: field.TypeUUID}, Nullable: true,
				ForeignKeys: []schema.ForeignKey{{Table: "categories", Column: "id"}}},
		},
	}))

	f, err := sess.Factory("categories")
	require.NoError(err)
	inst := f.New()
	require.Empty(inst.Refs, "self-relation omitted, not expanded")
	require.Contains(inst.Columns, "parent_id")

	resolved, _ := sess.Graph().Table("categories")
	require.Empty(resolved.Relationships, "on-path targets are not declared on the resolved schema")
}

func TestOverrideWins(t *testing.T) {
	require := require.New(t)
	sess := NewSession(
		newGraph(t, pipelinesTable(), jobsTable()),
		WithOverrides(Overrides{
			"jobs": {"status": "RUNNING", "pipeline_id": "fixed-id"},
		}),
	)

	f, err := sess.Factory("jobs")
	require.NoError(err)
	job := f.New()
	require.Equal("RUNNING", job.Columns["status"])
	require.Equal("fixed-id", job.Columns["pipeline_id"], "override wins over relationship wiring")
}

func TestOverrideProvider(t *testing.T) {
	require := require.New(t)
	sess := NewSession(
		newGraph(t, pipelinesTable()),
		WithOverrides(Overrides{
			"pipelines": {"name": Provider(func(c *schema.Column) any {
				return "fixed-" + c.Name
			})},
		}),
	)

	f, err := sess.Factory("pipelines")
	require.NoError(err)
	require.Equal("fixed-name", f.New().Columns["name"])
}

func TestInferredRelationship(t *testing.T) {
	require := require.New(t)
	sess := NewSession(newGraph(t, pipelinesTable(), jobsTable()))

	jobs, err := sess.Factory("jobs")
	require.NoError(err)
	job := jobs.New()
	require.NotNil(job.Refs["pipeline"], "relation inferred from pipeline_id")
	require.Contains(job.Columns, "pipeline_id", "inferred join column still generated")

	resolved, _ := sess.Graph().Table("jobs")
	rel, ok := resolved.Relationship("pipeline")
	require.True(ok, "inferred relationship declared on the resolved schema")
	require.Equal("pipelines", rel.Table)
	require.Equal([]string{"pipeline_id"}, rel.Columns)
	require.False(rel.Collection)
	require.Empty(inferRelationships(resolved, coveredColumns(resolved)), "no re-inference once declared")

	src, _ := sess.source.Table("jobs")
	require.Empty(src.Relationships, "source graph never mutated")
}

func TestVisitedIndependentBranches(t *testing.T) {
	require := require.New(t)
	shared := &schema.Table{
		Name: "clusters",
		Columns: []*schema.Column{
			{Name: "id", Type: field.TypeInfo{Type: field.TypeUUID}, PrimaryKey: true},
		},
	}
	left := &schema.Table{
		Name: "stages",
		Columns: []*schema.Column{
			{Name: "id", Type: field.TypeInfo{Type: field.TypeUUID}, PrimaryKey: true},
			{Name: "cluster_id", Type: field.TypeInfo{Type: field.TypeUUID},
				ForeignKeys: []schema.ForeignKey{{Table: "clusters", Column: "id"}}},
		},
	}
	right := &schema.Table{
		Name: "deployments",
		Columns: []*schema.Column{
			{Name: "id", Type: field.TypeInfo{Type: field.TypeUUID}, PrimaryKey: true},
			{Name: "cluster_id", Type: field.TypeInfo{Type: field.TypeUUID},
				ForeignKeys: []schema.ForeignKey{{Table: "clusters", Column: "id"}}},
		},
	}
	root := &schema.Table{
		Name: "releases",
		Columns: []*schema.Column{
			{Name: "id", Type: field.TypeInfo{Type: field.TypeUUID}, PrimaryKey: true},
			{Name: "stage_id", Type: field.TypeInfo{Type: field.TypeUUID},
				ForeignKeys: []schema.ForeignKey{{Table: "stages", Column: "id"}}},
			{Name: "deployment_id", Type: field.TypeInfo{Type: field.TypeUUID},
				ForeignKeys: []schema.ForeignKey{{Table: "deployments", Column: "id"}}},
		},
	}
	sess := NewSession(newGraph(t, shared, left, right, root))

	f, err := sess.Factory("releases")
	require.NoError(err)
	release := f.New()
	require.Same(
		release.Refs["stage"].Refs["cluster"],
		release.Refs["deployment"].Refs["cluster"],
		"divergent branches share the one cluster instance",
	)
}

func TestStringPrimaryKeyIdentifier(t *testing.T) {
	require := require.New(t)
	sess := NewSession(newGraph(t, &schema.Table{
		Name: "tags",
		Columns: []*schema.Column{
			{Name: "id", Type: field.TypeInfo{Type: field.TypeString, Size: 5}, PrimaryKey: true},
			{Name: "label", Type: field.TypeInfo{Type: field.TypeString, Size: 5}},
		},
	}))

	f, err := sess.Factory("tags")
	require.NoError(err)
	inst := f.New()

	id, ok := inst.Columns["id"].(string)
	require.True(ok)
	_, err = uuid.Parse(id)
	require.NoError(err, "string primary keys get identifier-shaped values regardless of declared length")

	label, ok := inst.Columns["label"].(string)
	require.True(ok)
	require.Len(label, 5)
}

func TestUnknownForeignKeyTarget(t *testing.T) {
	require := require.New(t)
	sess := NewSession(newGraph(t, jobsTable()))

	_, err := sess.Factory("jobs")
	require.ErrorIs(err, fabrica.ErrUnknownTable)
	require.EqualError(err, `fabrica: unknown table "pipelines" referenced by jobs.pipeline_id`)
}

func TestUnknownRootTable(t *testing.T) {
	sess := NewSession(newGraph(t, pipelinesTable()))
	_, err := sess.Factory("stages")
	require.ErrorIs(t, err, fabrica.ErrUnknownTable)
	require.EqualError(t, err, `fabrica: unknown table "stages"`)
}

func TestMissingProvider(t *testing.T) {
	require := require.New(t)
	sess := NewSession(newGraph(t, pipelinesTable()))
	sess.registry = &Registry{providers: map[field.Type]Provider{}}

	_, err := sess.Factory("pipelines")
	require.ErrorIs(err, fabrica.ErrNoProvider)
	require.EqualError(err, "fabrica: no value provider for type uuid (column pipelines.id)")
}

func TestSessionReset(t *testing.T) {
	require := require.New(t)
	sess := NewSession(newGraph(t, pipelinesTable(), jobsTable()))

	f, err := sess.Factory("jobs")
	require.NoError(err)
	first := f.New()

	sess.Reset()
	_, ok := sess.Instance("jobs")
	require.False(ok)

	f, err = sess.Factory("jobs")
	require.NoError(err)
	require.NotSame(first, f.New(), "a new run materializes a new graph")

	resolved, _ := sess.Graph().Table("jobs")
	_, ok = resolved.Relationship("pipeline")
	require.True(ok, "relationship re-inferred after reset")
}

func TestEndToEnd(t *testing.T) {
	require := require.New(t)
	sess := NewSession(
		newGraph(t, pipelinesTable(), jobsTable()),
		WithOverrides(Overrides{"jobs": {"status": "RUNNING"}}),
	)

	jobs, err := sess.Factory("jobs")
	require.NoError(err)
	job := jobs.New()

	require.Equal("RUNNING", job.Columns["status"])
	pipeline := job.Refs["pipeline"]
	require.NotNil(pipeline)
	require.Equal("pipelines", pipeline.Table)
	require.Contains(pipeline.Columns, "name")

	require.Same(job, jobs.New(), "second invocation returns the same instance")
}
