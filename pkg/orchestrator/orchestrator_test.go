package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/seamly/garmentd/pkg/adapters/memory"
	"github.com/seamly/garmentd/pkg/domain"
	"github.com/seamly/garmentd/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMesh struct {
	err   error
	calls int
	mu    sync.Mutex
}

func (f *fakeMesh) Export(ctx context.Context, doc *domain.PatternDocument, body *domain.BodyParameters, dir string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(dir, "garment_sim.glb")
	if err := os.WriteFile(path, []byte("glb"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type fakeVector struct {
	err error
}

func (f *fakeVector) Export(ctx context.Context, doc *domain.PatternDocument, dir string, opts ports.VectorOptions) (ports.VectorArtifacts, error) {
	if f.err != nil {
		return ports.VectorArtifacts{}, f.err
	}
	arts := ports.VectorArtifacts{SVG: filepath.Join(dir, "pattern.svg")}
	files := []string{arts.SVG}
	arts.PNG = filepath.Join(dir, "pattern.png")
	files = append(files, arts.PNG)
	if opts.WithPrintable {
		arts.PrintPDF = filepath.Join(dir, "print_pattern.pdf")
		files = append(files, arts.PrintPDF)
	}
	for _, p := range files {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			return ports.VectorArtifacts{}, err
		}
	}
	return arts, nil
}

func testDoc() *domain.PatternDocument {
	panel := domain.Panel{
		Vertices: [][2]float64{{0, 0}, {20, 0}, {20, 30}, {0, 30}},
		Edges: []domain.Edge{
			{Endpoints: [2]int{0, 1}}, {Endpoints: [2]int{1, 2}},
			{Endpoints: [2]int{2, 3}}, {Endpoints: [2]int{3, 0}},
		},
	}
	return &domain.PatternDocument{
		Panels:     map[string]domain.Panel{"front": panel},
		PanelOrder: []string{"front"},
	}
}

func newTestOrchestrator(t *testing.T, opts ...Option) (*Orchestrator, *memory.Store, string) {
	t.Helper()
	root := t.TempDir()
	store := memory.NewStore()
	o := New(store, &fakeMesh{}, &fakeVector{}, root, opts...)
	return o, store, root
}

func TestGenerate_ThreeD(t *testing.T) {
	o, store, root := newTestOrchestrator(t)
	ctx := context.Background()

	sess, err := o.Generate(ctx, Request{Pattern: testDoc(), Kind: domain.TargetThreeD})
	require.NoError(t, err)

	assert.Equal(t, domain.SessionReady, sess.Status)
	assert.Equal(t, filepath.Join(root, sess.ID), sess.OutputDir)
	assert.FileExists(t, sess.Artifacts[domain.ArtifactMesh])
	assert.FileExists(t, filepath.Join(sess.OutputDir, "pattern_specification.json"))
	assert.FileExists(t, filepath.Join(sess.OutputDir, "body_params.yaml"))

	// Visible to retrieval.
	path, err := o.GetArtifact(ctx, sess.ID, domain.ArtifactMesh)
	require.NoError(t, err)
	assert.Equal(t, sess.Artifacts[domain.ArtifactMesh], path)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionReady, got.Status)

	require.NoError(t, o.Cleanup(ctx, sess.ID))
}

func TestGenerate_TwoD(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)
	ctx := context.Background()

	sess, err := o.Generate(ctx, Request{
		Pattern: testDoc(),
		Kind:    domain.TargetTwoD,
		Vector:  ports.VectorOptions{WithPrintable: true},
	})
	require.NoError(t, err)

	assert.Contains(t, sess.Artifacts, domain.ArtifactVector, "2D output always carries the vector diagram")
	assert.Contains(t, sess.Artifacts, domain.ArtifactRaster)
	assert.Contains(t, sess.Artifacts, domain.ArtifactPrint)

	require.NoError(t, o.Cleanup(ctx, sess.ID))
}

func TestGenerate_TwoD_UnproducedArtifactKind(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)
	ctx := context.Background()

	sess, err := o.Generate(ctx, Request{Pattern: testDoc(), Kind: domain.TargetTwoD})
	require.NoError(t, err)
	defer func() { require.NoError(t, o.Cleanup(ctx, sess.ID)) }()

	_, err = o.GetArtifact(ctx, sess.ID, domain.ArtifactPrint)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound,
		"requesting an artifact kind that was never produced is a not-found, not a crash")
}

func TestGenerate_ExporterFailure(t *testing.T) {
	root := t.TempDir()
	store := memory.NewStore()
	cause := errors.New("solver diverged")
	o := New(store, &fakeMesh{err: cause}, &fakeVector{}, root)
	ctx := context.Background()

	_, err := o.Generate(ctx, Request{Pattern: testDoc(), Kind: domain.TargetThreeD})

	var eerr *domain.ExportError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, "mesh", eerr.Stage)
	assert.ErrorIs(t, err, cause)

	// No partial session or directory is retained.
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial output directory must be removed")
}

func TestGenerate_ExporterStagePreserved(t *testing.T) {
	root := t.TempDir()
	staged := &domain.ExportError{Stage: "png", Err: errors.New("encode failed")}
	o := New(memory.NewStore(), &fakeMesh{}, &fakeVector{err: staged}, root)

	_, err := o.Generate(context.Background(), Request{Pattern: testDoc(), Kind: domain.TargetTwoD})

	var eerr *domain.ExportError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, "png", eerr.Stage, "exporter-reported stages pass through unchanged")
}

func TestGenerate_NoPattern(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)
	_, err := o.Generate(context.Background(), Request{Kind: domain.TargetThreeD})
	assert.Error(t, err)
}

func TestGenerate_IDCollisionRetries(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)
	ctx := context.Background()

	ids := []string{"fixed-id", "fixed-id", "fresh-id"}
	var n int
	o.newID = func() string {
		id := ids[n]
		if n < len(ids)-1 {
			n++
		}
		return id
	}

	first, err := o.Generate(ctx, Request{Pattern: testDoc(), Kind: domain.TargetThreeD})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", first.ID)

	second, err := o.Generate(ctx, Request{Pattern: testDoc(), Kind: domain.TargetThreeD})
	require.NoError(t, err)
	assert.Equal(t, "fresh-id", second.ID, "a colliding id is re-drawn before writing")

	require.NoError(t, o.Cleanup(ctx, first.ID))
	require.NoError(t, o.Cleanup(ctx, second.ID))
}

func TestGenerate_Concurrent(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, WithMaxConcurrent(4))
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	sessions := make([]*domain.Session, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i], errs[i] = o.Generate(ctx, Request{Pattern: testDoc(), Kind: domain.TargetThreeD})
		}(i)
	}
	wg.Wait()

	seenIDs := make(map[string]bool, n)
	seenDirs := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i], "generation %d", i)
		assert.False(t, seenIDs[sessions[i].ID], "duplicate session id %s", sessions[i].ID)
		assert.False(t, seenDirs[sessions[i].OutputDir], "duplicate output dir %s", sessions[i].OutputDir)
		seenIDs[sessions[i].ID] = true
		seenDirs[sessions[i].OutputDir] = true
	}

	for _, s := range sessions {
		require.NoError(t, o.Cleanup(ctx, s.ID))
	}
}

func TestCleanup_RemovesDirectoryAndRecord(t *testing.T) {
	o, store, _ := newTestOrchestrator(t)
	ctx := context.Background()

	sess, err := o.Generate(ctx, Request{Pattern: testDoc(), Kind: domain.TargetThreeD})
	require.NoError(t, err)

	require.NoError(t, o.Cleanup(ctx, sess.ID))

	assert.NoDirExists(t, sess.OutputDir)
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = o.GetArtifact(ctx, sess.ID, domain.ArtifactMesh)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound,
		"artifacts are unreachable after cleanup")
}

func TestCleanup_PolicyStrict(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, WithCleanupPolicy(CleanupStrict))
	ctx := context.Background()

	sess, err := o.Generate(ctx, Request{Pattern: testDoc(), Kind: domain.TargetThreeD})
	require.NoError(t, err)

	require.NoError(t, o.Cleanup(ctx, sess.ID))
	assert.ErrorIs(t, o.Cleanup(ctx, sess.ID), domain.ErrSessionNotFound)
}

func TestCleanup_PolicyIdempotent(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, WithCleanupPolicy(CleanupIdempotent))
	ctx := context.Background()

	sess, err := o.Generate(ctx, Request{Pattern: testDoc(), Kind: domain.TargetThreeD})
	require.NoError(t, err)

	require.NoError(t, o.Cleanup(ctx, sess.ID))
	assert.NoError(t, o.Cleanup(ctx, sess.ID), "repeated cleanup is a no-op under the idempotent policy")
	assert.NoError(t, o.Cleanup(ctx, "never-existed"))
}

func TestGetArtifact_UnknownSession(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)
	_, err := o.GetArtifact(context.Background(), "nope", domain.ArtifactMesh)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestGenerate_UnknownKind(t *testing.T) {
	o, _, root := newTestOrchestrator(t)
	_, err := o.Generate(context.Background(), Request{Pattern: testDoc(), Kind: domain.TargetKind("5d")})
	require.Error(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_ManySequential(t *testing.T) {
	// Paired create/cleanup across a burst of sessions leaves the output
	// root empty.
	o, store, root := newTestOrchestrator(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		kind := domain.TargetThreeD
		if i%2 == 1 {
			kind = domain.TargetTwoD
		}
		sess, err := o.Generate(ctx, Request{Pattern: testDoc(), Kind: kind})
		require.NoError(t, err, fmt.Sprintf("generation %d", i))
		require.NoError(t, o.Cleanup(ctx, sess.ID))
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
