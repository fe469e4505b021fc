// Package scenes builds the demo meshes and scenes shipped with grid.
package scenes

import (
	"errors"
	"fmt"

	"github.com/taigrr/grid/pkg/math3d"
	"github.com/taigrr/grid/pkg/models"
	"github.com/taigrr/grid/pkg/render"
)

// ErrUnknownScene is returned by Load for names it does not know.
var ErrUnknownScene = errors.New("unknown scene")

// Scene names accepted by Load.
const (
	NameDemo = "demo"
	NameCube = "cube"
)

// Demo is a ready-to-render scene plus how to look at it.
type Demo struct {
	Name   string
	Scene  *models.Scene
	Camera *render.Camera

	// Spin animates the scene each frame; nil for static scenes.
	Spin *Spin

	// Colors overrides the renderer's flat color; nil keeps it.
	Colors render.ColorFunc
}

// Names returns the scene names Load accepts.
func Names() []string {
	return []string{NameDemo, NameCube}
}

// Load builds the named demo scene.
func Load(name string) (*Demo, error) {
	switch name {
	case NameDemo, "":
		return DemoMap(), nil
	case NameCube:
		return SpinningCube(), nil
	default:
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownScene, name, Names())
	}
}

// Open returns the demo for a glTF/GLB model when modelPath is set, and the
// named built-in scene otherwise.
func Open(name, modelPath string) (*Demo, error) {
	if modelPath == "" {
		return Load(name)
	}
	mesh, err := models.LoadGLB(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", modelPath, err)
	}
	return ModelDemo(mesh)
}

// DemoMap is a ground grid with a box standing on it.
func DemoMap() *Demo {
	scene := models.NewScene()
	mustAdd(scene, Grid(20, 1, -1))
	mustAdd(scene, Box("box", math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1)))

	cam := render.NewCamera(math3d.V3(0, 3, -14))
	cam.LookAt(math3d.Zero3())

	return &Demo{
		Name:   NameDemo,
		Scene:  scene,
		Camera: cam,
		Colors: DemoColors(20),
	}
}

// SpinningCube is a single cube tumbling five units in front of the camera.
func SpinningCube() *Demo {
	scene := models.NewScene()
	mustAdd(scene, Cube(2))
	return &Demo{
		Name:   NameCube,
		Scene:  scene,
		Camera: render.NewCamera(math3d.Zero3()),
		Spin:   NewSpin(),
	}
}

// ModelDemo wraps a loaded mesh in the spinning-cube setup.
func ModelDemo(mesh *models.Mesh) (*Demo, error) {
	scene := models.NewScene()
	if err := scene.AddMesh(mesh); err != nil {
		return nil, err
	}
	return &Demo{
		Name:   mesh.Name,
		Scene:  scene,
		Camera: render.NewCamera(math3d.Zero3()),
		Spin:   NewSpin(),
		Colors: DefaultPalette.ByFace(),
	}, nil
}

// Cube returns an axis-aligned cube of the given edge length centered on
// the origin.
func Cube(size float64) *models.Mesh {
	h := size / 2
	return Box("cube", math3d.V3(-h, -h, -h), math3d.V3(h, h, h))
}

// Box returns the twelve triangles of an axis-aligned box. Consecutive
// triangle pairs share a face.
func Box(name string, minB, maxB math3d.Vec3) *models.Mesh {
	vertices := []math3d.Vec3{
		{X: minB.X, Y: minB.Y, Z: minB.Z},
		{X: maxB.X, Y: minB.Y, Z: minB.Z},
		{X: maxB.X, Y: maxB.Y, Z: minB.Z},
		{X: minB.X, Y: maxB.Y, Z: minB.Z},
		{X: minB.X, Y: minB.Y, Z: maxB.Z},
		{X: maxB.X, Y: minB.Y, Z: maxB.Z},
		{X: maxB.X, Y: maxB.Y, Z: maxB.Z},
		{X: minB.X, Y: maxB.Y, Z: maxB.Z},
	}
	indices := [][3]int{
		{4, 5, 6}, {4, 6, 7}, // +Z
		{1, 0, 3}, {1, 3, 2}, // -Z
		{0, 4, 7}, {0, 7, 3}, // -X
		{5, 1, 2}, {5, 2, 6}, // +X
		{7, 6, 2}, {7, 2, 3}, // +Y
		{0, 1, 5}, {0, 5, 4}, // -Y
	}
	return models.MustMesh(name, vertices, indices)
}

// Grid returns a flat size x size grid of unit cells scaled by spacing,
// centered on the origin in the plane Y = y. Cell (x, z) is made of
// triangles 2*(z*size+x) and 2*(z*size+x)+1.
func Grid(size int, spacing, y float64) *models.Mesh {
	size = max(size, 0)
	half := float64(size) / 2

	vertices := make([]math3d.Vec3, 0, (size+1)*(size+1))
	for z := range size + 1 {
		for x := range size + 1 {
			vertices = append(vertices, math3d.V3(
				(float64(x)-half)*spacing,
				y,
				(float64(z)-half)*spacing,
			))
		}
	}

	indices := make([][3]int, 0, 2*size*size)
	for z := range size {
		for x := range size {
			i0 := z*(size+1) + x
			i1 := i0 + 1
			i2 := i0 + size + 1
			i3 := i2 + 1
			indices = append(indices, [3]int{i0, i2, i1}, [3]int{i1, i2, i3})
		}
	}

	return models.MustMesh("grid", vertices, indices)
}

// mustAdd adds a mesh built by this package; those are valid by
// construction.
func mustAdd(s *models.Scene, m *models.Mesh) {
	if err := s.AddMesh(m); err != nil {
		panic(err)
	}
}
