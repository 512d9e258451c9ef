package mesh_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/seamly/garmentd/pkg/adapters/mesh"
	"github.com/seamly/garmentd/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func panelDoc() *domain.PatternDocument {
	panel := domain.Panel{
		Vertices: [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Edges: []domain.Edge{
			{Endpoints: [2]int{0, 1}},
			{Endpoints: [2]int{1, 2}},
			{Endpoints: [2]int{2, 3}, Curvature: []float64{0.5, 0.2}},
			{Endpoints: [2]int{3, 0}},
		},
		Translation: [3]float64{0, 0, 2},
	}
	return &domain.PatternDocument{
		Panels:     map[string]domain.Panel{"front": panel},
		PanelOrder: []string{"front"},
	}
}

func TestExport_WritesBinaryGLTF(t *testing.T) {
	dir := t.TempDir()
	e := mesh.New(mesh.WithCells(16))

	path, err := e.Export(context.Background(), panelDoc(), domain.DefaultBody(), dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, mesh.OutputName), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "glTF", string(data[:4]), "binary glTF magic")
}

func TestExport_RotatedAndMirroredPanels(t *testing.T) {
	dir := t.TempDir()
	e := mesh.New(mesh.WithCells(16))

	doc := panelDoc()
	back := doc.Panels["front"]
	back.Translation = [3]float64{0, 0, -2}
	back.Rotation = [3]float64{0, 180, 0}
	doc.Panels["back"] = back
	doc.PanelOrder = append(doc.PanelOrder, "back")

	path, err := e.Export(context.Background(), doc, domain.DefaultBody(), dir)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestExport_DegeneratePanel(t *testing.T) {
	dir := t.TempDir()
	e := mesh.New(mesh.WithCells(8))

	doc := &domain.PatternDocument{
		Panels: map[string]domain.Panel{
			"bad": {Vertices: [][2]float64{{0, 0}, {1, 1}}},
		},
		PanelOrder: []string{"bad"},
	}

	_, err := e.Export(context.Background(), doc, domain.DefaultBody(), dir)
	var eerr *domain.ExportError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, "mesh", eerr.Stage)
}

func TestExport_EmptyPanelOrder(t *testing.T) {
	e := mesh.New(mesh.WithCells(8))
	doc := &domain.PatternDocument{Panels: map[string]domain.Panel{}}

	_, err := e.Export(context.Background(), doc, domain.DefaultBody(), t.TempDir())
	var eerr *domain.ExportError
	require.ErrorAs(t, err, &eerr)
}

func TestExport_ContextCancelled(t *testing.T) {
	e := mesh.New(mesh.WithCells(8))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Export(ctx, panelDoc(), domain.DefaultBody(), t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}
