package render

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/taigrr/grid/pkg/math3d"
	"github.com/taigrr/grid/pkg/models"
)

// Mode controls how triangles are drawn.
type Mode int

const (
	ModeFilled    Mode = iota // solid triangles
	ModeWireframe             // triangle outlines only
)

func (m Mode) String() string {
	switch m {
	case ModeFilled:
		return "filled"
	case ModeWireframe:
		return "wireframe"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "filled" or "wireframe".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "filled", "fill", "solid":
		return ModeFilled, nil
	case "wireframe", "wire":
		return ModeWireframe, nil
	default:
		return 0, fmt.Errorf("unknown render mode %q", s)
	}
}

// ColorFunc picks the color of triangle tri of scene mesh mesh.
type ColorFunc func(mesh, tri int) Color

// ModelFunc returns the model transform applied to scene mesh mesh this frame.
type ModelFunc func(mesh int) math3d.Mat4

// Options configures a Renderer.
type Options struct {
	Mode       Mode
	Fill       FillMode
	Clear      bool  // clear to Background before drawing
	Background Color // clear color
	Color      Color // triangle color when no ColorFunc is set
}

// DefaultOptions returns filled rendering on a dark background.
func DefaultOptions() Options {
	return Options{
		Mode:       ModeFilled,
		Fill:       FillEdge,
		Clear:      true,
		Background: ColorBackground,
		Color:      ColorGreen,
	}
}

// Stats counts what happened to the triangles of the last frame.
type Stats struct {
	Triangles  int // triangles in the scene
	Dropped    int // rejected because a vertex was behind the near plane
	Degenerate int // zero-area fills
	Drawn      int // dispatched to the rasterizer and drawn
}

// screenTriangle is a projected triangle waiting to be drawn.
type screenTriangle struct {
	P     [3]Point
	Depth float64 // mean camera-space Z
	Color Color
}

// Renderer turns a scene and camera into pixels using the painter's
// algorithm: triangles are sorted far to near and drawn in that order, so
// there is no per-pixel depth test.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	Options    Options
	Projector  Projector
	Rasterizer *Rasterizer
	ColorFunc  ColorFunc
	ModelFunc  ModelFunc

	// Stats of the most recent frame
	Stats Stats

	// Scratch buffers reused across frames
	queue  []screenTriangle
	camPos []math3d.Vec3
	proj   []Point
	ok     []bool
}

// NewRenderer creates a renderer.
func NewRenderer(opts Options, proj Projector) *Renderer {
	return &Renderer{
		Options:    opts,
		Projector:  proj,
		Rasterizer: NewRasterizer(nil),
	}
}

// RenderFrame draws scene as seen by cam into fb and returns the frame's
// stats. Per-triangle problems are counted, never reported as errors.
func (r *Renderer) RenderFrame(fb *Framebuffer, scene *models.Scene, cam *Camera) Stats {
	r.Stats = Stats{}
	r.queue = r.queue[:0]

	if r.Options.Clear {
		fb.Clear(r.Options.Background)
	}
	if scene == nil || cam == nil {
		return r.Stats
	}

	for mi, mesh := range scene.Meshes() {
		r.collect(fb, mi, mesh, cam)
	}

	sortByDepth(r.queue)

	r.Rasterizer.SetFramebuffer(fb)
	r.Rasterizer.Fill = r.Options.Fill
	for _, t := range r.queue {
		switch r.Options.Mode {
		case ModeWireframe:
			r.Rasterizer.DrawTriangle(t.P[0], t.P[1], t.P[2], t.Color)
			r.Stats.Drawn++
		default:
			if r.Rasterizer.FillTriangle(t.P[0], t.P[1], t.P[2], t.Color) {
				r.Stats.Drawn++
			} else {
				r.Stats.Degenerate++
			}
		}
	}

	return r.Stats
}

// collect transforms and projects every vertex of mesh once, then queues
// the triangles whose three vertices all survived projection.
func (r *Renderer) collect(fb *Framebuffer, mi int, mesh *models.Mesh, cam *Camera) {
	n := len(mesh.Vertices)
	r.camPos = slices.Grow(r.camPos[:0], n)[:n]
	r.proj = slices.Grow(r.proj[:0], n)[:n]
	r.ok = slices.Grow(r.ok[:0], n)[:n]

	var model math3d.Mat4
	hasModel := r.ModelFunc != nil
	if hasModel {
		model = r.ModelFunc(mi)
	}

	for i, v := range mesh.Vertices {
		if hasModel {
			v = model.MulVec3(v)
		}
		p := cam.Transform(v)
		r.camPos[i] = p
		r.proj[i], r.ok[i] = r.Projector.Project(p, fb.Width, fb.Height)
	}

	for ti, idx := range mesh.Indices {
		r.Stats.Triangles++
		if !r.ok[idx[0]] || !r.ok[idx[1]] || !r.ok[idx[2]] {
			r.Stats.Dropped++
			continue
		}

		c := r.Options.Color
		if r.ColorFunc != nil {
			c = r.ColorFunc(mi, ti)
		}

		r.queue = append(r.queue, screenTriangle{
			P:     [3]Point{r.proj[idx[0]], r.proj[idx[1]], r.proj[idx[2]]},
			Depth: (r.camPos[idx[0]].Z + r.camPos[idx[1]].Z + r.camPos[idx[2]].Z) / 3,
			Color: c,
		})
	}
}

// sortByDepth orders triangles far to near. The sort is stable so equal
// depths keep collection order and frames are reproducible.
func sortByDepth(tris []screenTriangle) {
	slices.SortStableFunc(tris, func(a, b screenTriangle) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
}
