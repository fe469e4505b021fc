// Package models provides mesh and scene representation for grid.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/grid/pkg/math3d"
)

// ErrIndexOutOfRange is returned when a triangle references a vertex the
// mesh does not have.
var ErrIndexOutOfRange = errors.New("vertex index out of range")

// Mesh is an indexed triangle mesh: a vertex list plus index triples.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Indices  [][3]int

	// Bounding box (calculated on construction)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Triangle is a view over three vertices of a mesh.
type Triangle struct {
	A, B, C math3d.Vec3
}

// NewMesh creates a mesh and checks that every index triple references a
// valid vertex. The mesh owns the given slices from here on.
func NewMesh(name string, vertices []math3d.Vec3, indices [][3]int) (*Mesh, error) {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.CalculateBounds()
	return m, nil
}

// MustMesh is like NewMesh but panics on invalid index data.
// Intended for hard-coded geometry built at startup.
func MustMesh(name string, vertices []math3d.Vec3, indices [][3]int) *Mesh {
	m, err := NewMesh(name, vertices, indices)
	if err != nil {
		panic(err)
	}
	return m
}

// Validate checks every index triple against the vertex list.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, tri := range m.Indices {
		for _, idx := range tri {
			if idx < 0 || idx >= n {
				return fmt.Errorf("mesh %q triangle %d: index %d of %d vertices: %w",
					m.Name, i, idx, n, ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin = math3d.Zero3()
		m.BoundsMax = math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Triangle materializes triangle i from the index list.
func (m *Mesh) Triangle(i int) Triangle {
	f := m.Indices[i]
	return Triangle{
		A: m.Vertices[f[0]],
		B: m.Vertices[f[1]],
		C: m.Vertices[f[2]],
	}
}

// Triangles materializes every triangle of the mesh.
func (m *Mesh) Triangles() []Triangle {
	tris := make([]Triangle, len(m.Indices))
	for i := range m.Indices {
		tris[i] = m.Triangle(i)
	}
	return tris
}

// Transform applies a transformation matrix to all vertices.
// Only for use while the mesh is being authored, before it joins a scene.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales it so its largest
// dimension equals size.
func (m *Mesh) Normalize(size float64) {
	extent := m.Size()
	maxDim := max(extent.X, extent.Y, extent.Z)
	if maxDim <= 0 {
		return
	}
	s := size / maxDim
	m.Transform(math3d.ScaleUniform(s).Mul(math3d.Translate(m.Center().Negate())))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Indices:   make([][3]int, len(m.Indices)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Indices, m.Indices)
	return clone
}
