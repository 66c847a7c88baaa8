package index

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/funvibe/cadenza/internal/ast"
	"github.com/funvibe/cadenza/internal/pipeline"
	"github.com/funvibe/cadenza/internal/report"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.db")
	s, err := Open(context.Background(), path, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

var sampleBindings = []report.Binding{
	{Seq: 1, Name: "tempo", Kind: "tempo", Type: "tempo", ScopeLevel: 1},
	{Seq: 2, Name: "f", Kind: "function", Type: "function(a: integer) -> void", ScopeLevel: 1},
	{Seq: 3, Name: "a", Kind: "parameter", Type: "integer", ScopeLevel: 2},
}

func TestMigrationsApplied(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	v, err := s.userVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestReopenKeepsData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, path := newTestStore(t)
	id := uuid.New()
	require.NoError(t, s.Record(ctx, id, sampleBindings))
	require.NoError(t, s.Close())

	again, err := Open(ctx, path)
	require.NoError(t, err)
	defer again.Close()

	got, err := again.Bindings(ctx, id)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleBindings, got); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)
	base := time.Unix(1700000000, 0)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first, second := uuid.New(), uuid.New()
	require.NoError(t, s.Record(ctx, first, sampleBindings))
	require.NoError(t, s.Record(ctx, second, sampleBindings[:1]))

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)
	assert.Equal(t, 3, runs[0].Bindings)
	assert.Equal(t, second, runs[1].ID)
	assert.Equal(t, 1, runs[1].Bindings)
	assert.True(t, runs[0].RecordedAt.Before(runs[1].RecordedAt))

	hits, err := s.Lookup(ctx, "tempo")
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	none, err := s.Bindings(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecordSameRunTwice(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)
	id := uuid.New()
	require.NoError(t, s.Record(ctx, id, sampleBindings))
	require.Error(t, s.Record(ctx, id, sampleBindings))

	got, err := s.Bindings(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got, 3, "a failed record leaves the first one intact")
}

func TestRecordEmptyRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)
	require.NoError(t, s.Record(ctx, uuid.New(), nil))

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Zero(t, runs[0].Bindings)
}

func TestMigrateSkipsApplied(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)
	extra := fstest.MapFS{
		"0001_create_runs.sql":     {Data: []byte(`CREATE TABLE runs (x INTEGER);`)},
		"0003_add_notes.sql":       {Data: []byte("CREATE TABLE notes (id INTEGER);\nPRAGMA user_version = 3;")},
		"0002_create_bindings.sql": {Data: []byte(`CREATE TABLE bindings (x INTEGER);`)},
	}
	require.NoError(t, s.migrate(ctx, extra))

	v, err := s.userVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestScriptVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     int
		wantErr  bool
	}{
		{"0001_some_file_name.sql", 1, false},
		{"0921_another_file.sql", 921, false},
		{"not_numbered_correctly.sql", 0, true},
	}
	for _, tt := range tests {
		got, err := scriptVersion(tt.filename)
		require.Equal(t, tt.want, got)
		if tt.wantErr {
			require.Error(t, err)
		} else {
			require.NoError(t, err)
		}
	}
}

func TestProcessor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "run.db")

	pc := pipeline.NewPipelineContext("", nil)
	pc.Report = report.New()
	pc.Report.Bindings = sampleBindings

	pc = pipeline.New(&IndexProcessor{Path: path}).Run(ctx, pc)
	require.Empty(t, pc.Errors)

	s, err := Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Bindings(ctx, pc.Report.RunID)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	skipped := pipeline.New(&IndexProcessor{}).Run(ctx, &pipeline.PipelineContext{Body: ast.Body{}})
	assert.Empty(t, skipped.Errors)
}
