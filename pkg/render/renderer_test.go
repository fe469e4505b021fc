package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/grid/pkg/math3d"
	"github.com/taigrr/grid/pkg/models"
)

// unitCube is the cube spanning [-1, 1] on every axis.
func unitCube() *models.Mesh {
	return models.MustMesh("cube",
		[]math3d.Vec3{
			math3d.V3(-1, -1, -1), math3d.V3(1, -1, -1), math3d.V3(1, 1, -1), math3d.V3(-1, 1, -1),
			math3d.V3(-1, -1, 1), math3d.V3(1, -1, 1), math3d.V3(1, 1, 1), math3d.V3(-1, 1, 1),
		},
		[][3]int{
			{0, 1, 2}, {0, 2, 3}, // near
			{5, 4, 7}, {5, 7, 6}, // far
			{4, 0, 3}, {4, 3, 7}, // left
			{1, 5, 6}, {1, 6, 2}, // right
			{3, 2, 6}, {3, 6, 7}, // top
			{4, 5, 1}, {4, 1, 0}, // bottom
		},
	)
}

func sceneOf(t *testing.T, meshes ...*models.Mesh) *models.Scene {
	t.Helper()
	s := models.NewScene()
	for _, m := range meshes {
		require.NoError(t, s.AddMesh(m))
	}
	return s
}

func TestSortByDepth(t *testing.T) {
	tris := []screenTriangle{
		{Depth: 1, Color: 1},
		{Depth: 5, Color: 2},
		{Depth: 3, Color: 3},
	}
	sortByDepth(tris)

	depths := []float64{tris[0].Depth, tris[1].Depth, tris[2].Depth}
	assert.Equal(t, []float64{5, 3, 1}, depths)
}

func TestSortByDepthStable(t *testing.T) {
	tris := []screenTriangle{
		{Depth: 2, Color: 1},
		{Depth: 4, Color: 2},
		{Depth: 2, Color: 3},
		{Depth: 4, Color: 4},
		{Depth: 2, Color: 5},
	}
	sortByDepth(tris)

	var colors []Color
	for _, tri := range tris {
		colors = append(colors, tri.Color)
	}
	assert.Equal(t, []Color{2, 4, 1, 3, 5}, colors)
}

func TestRenderCubeSilhouetteSymmetric(t *testing.T) {
	for _, mode := range fillModes {
		t.Run(mode.String(), func(t *testing.T) {
			const w, h = 640, 480
			fb := NewFramebuffer(w, h)
			opts := DefaultOptions()
			opts.Fill = mode
			r := NewRenderer(opts, NewProjector(200))
			cam := NewCamera(math3d.V3(0, 0, -5))

			stats := r.RenderFrame(fb, sceneOf(t, unitCube()), cam)
			assert.Equal(t, Stats{Triangles: 12, Drawn: 12}, stats)
			assert.Equal(t, stats, r.Stats)

			// The near face sits at depth 4: 200/4 = 50 pixels from center
			for y := range h {
				for x := 1; x < w; x++ {
					filled := fb.GetPixel(x, y) != ColorBackground
					mirrored := fb.GetPixel(w-x, y) != ColorBackground
					require.Equal(t, filled, mirrored, "pixel (%d,%d) vs (%d,%d)", x, y, w-x, y)

					inSquare := x >= 270 && x <= 370 && y >= 190 && y <= 290
					require.Equal(t, inSquare, filled, "pixel (%d,%d)", x, y)
				}
			}
		})
	}
}

func TestRenderDropsTrianglesBehindNearPlane(t *testing.T) {
	tri := models.MustMesh("straddle",
		[]math3d.Vec3{math3d.V3(-1, -1, 3), math3d.V3(1, -1, 3), math3d.V3(0, 1, -1)},
		[][3]int{{0, 1, 2}},
	)
	fb := NewFramebuffer(64, 48)
	r := NewRenderer(DefaultOptions(), NewProjector(40))

	stats := r.RenderFrame(fb, sceneOf(t, tri), NewCamera(math3d.Zero3()))
	assert.Equal(t, Stats{Triangles: 1, Dropped: 1}, stats)
	assert.Equal(t, 64*48, countPixels(fb, ColorBackground))
}

func TestRenderCountsDegenerate(t *testing.T) {
	edgeOn := models.MustMesh("edge-on",
		[]math3d.Vec3{math3d.V3(0, -1, 5), math3d.V3(0, 0, 6), math3d.V3(0, 1, 7)},
		[][3]int{{0, 1, 2}},
	)
	fb := NewFramebuffer(64, 48)
	r := NewRenderer(DefaultOptions(), NewProjector(40))

	stats := r.RenderFrame(fb, sceneOf(t, edgeOn), NewCamera(math3d.Zero3()))
	assert.Equal(t, Stats{Triangles: 1, Degenerate: 1}, stats)
	assert.Equal(t, 64*48, countPixels(fb, ColorBackground))
}

func TestRenderPainterOrder(t *testing.T) {
	// The far triangle comes second in the mesh but must be drawn first
	mesh := models.MustMesh("layers",
		[]math3d.Vec3{
			math3d.V3(-1, -1, 2), math3d.V3(1, -1, 2), math3d.V3(0, 1, 2),
			math3d.V3(-6, -6, 8), math3d.V3(6, -6, 8), math3d.V3(0, 6, 8),
		},
		[][3]int{{0, 1, 2}, {3, 4, 5}},
	)
	fb := NewFramebuffer(64, 48)
	r := NewRenderer(DefaultOptions(), NewProjector(40))
	r.ColorFunc = func(_, tri int) Color {
		if tri == 0 {
			return ColorRed
		}
		return ColorBlue
	}

	stats := r.RenderFrame(fb, sceneOf(t, mesh), NewCamera(math3d.Zero3()))
	assert.Equal(t, 2, stats.Drawn)
	assert.Equal(t, ColorRed, fb.GetPixel(32, 24), "near triangle wins")
	assert.Equal(t, ColorBlue, fb.GetPixel(10, 40), "far triangle still visible around the near one")
}

func TestRenderWireframe(t *testing.T) {
	mesh := models.MustMesh("tri",
		[]math3d.Vec3{math3d.V3(-1, -1, 4), math3d.V3(1, -1, 4), math3d.V3(0, 1, 4)},
		[][3]int{{0, 1, 2}},
	)
	fb := NewFramebuffer(64, 48)
	opts := DefaultOptions()
	opts.Mode = ModeWireframe
	r := NewRenderer(opts, NewProjector(40))

	stats := r.RenderFrame(fb, sceneOf(t, mesh), NewCamera(math3d.Zero3()))
	assert.Equal(t, Stats{Triangles: 1, Drawn: 1}, stats)

	// Vertices land at (22,34), (42,34) and (32,14)
	assert.Equal(t, ColorGreen, fb.GetPixel(22, 34))
	assert.Equal(t, ColorGreen, fb.GetPixel(42, 34))
	assert.Equal(t, ColorGreen, fb.GetPixel(32, 14))
	assert.Equal(t, ColorBackground, fb.GetPixel(32, 28), "outline only")
}

func TestRenderModelFunc(t *testing.T) {
	fb := NewFramebuffer(64, 48)
	r := NewRenderer(DefaultOptions(), NewProjector(40))
	cam := NewCamera(math3d.Zero3())
	scene := sceneOf(t, unitCube())

	// Camera sits inside the cube: only the two far-face triangles lie
	// wholly in front of it
	stats := r.RenderFrame(fb, scene, cam)
	assert.Equal(t, 10, stats.Dropped)

	var calls []int
	r.ModelFunc = func(mesh int) math3d.Mat4 {
		calls = append(calls, mesh)
		return math3d.Translate(math3d.V3(0, 0, 5))
	}
	stats = r.RenderFrame(fb, scene, cam)
	assert.Equal(t, []int{0}, calls)
	assert.Zero(t, stats.Dropped)
	assert.Equal(t, ColorGreen, fb.GetPixel(32, 24))
}

func TestRenderClearOption(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Clear(ColorMagenta)

	opts := DefaultOptions()
	opts.Clear = false
	r := NewRenderer(opts, NewProjector(10))
	r.RenderFrame(fb, models.NewScene(), NewCamera(math3d.Zero3()))
	assert.Equal(t, 64, countPixels(fb, ColorMagenta))

	r.Options.Clear = true
	r.Options.Background = ColorGray
	r.RenderFrame(fb, nil, nil)
	assert.Equal(t, 64, countPixels(fb, ColorGray))
}

func TestRenderDeterministic(t *testing.T) {
	scene := sceneOf(t, unitCube())
	cam := NewCamera(math3d.V3(0.3, 1.7, -4))
	cam.LookAt(math3d.Zero3())

	r := NewRenderer(DefaultOptions(), NewProjector(90))
	r.ColorFunc = func(_, tri int) Color { return RGB(uint8(tri*20), 100, 200) }

	a := NewFramebuffer(160, 120)
	b := NewFramebuffer(160, 120)
	r.RenderFrame(a, scene, cam)
	r.RenderFrame(b, scene, cam)
	assert.Equal(t, a.Pixels, b.Pixels)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":          ModeFilled,
		"filled":    ModeFilled,
		"Solid":     ModeFilled,
		"wireframe": ModeWireframe,
		"wire":      ModeWireframe,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("points")
	assert.Error(t, err)
	assert.Equal(t, "wireframe", ModeWireframe.String())
}

func BenchmarkRenderFrame(b *testing.B) {
	scene := models.NewScene()
	_ = scene.AddMesh(unitCube())
	cam := NewCamera(math3d.V3(0.5, 1, -4))
	cam.LookAt(math3d.Zero3())
	r := NewRenderer(DefaultOptions(), NewProjector(200))
	fb := NewFramebuffer(640, 480)

	for b.Loop() {
		r.RenderFrame(fb, scene, cam)
	}
}
