package models

import (
	"errors"
	"fmt"
	"slices"

	"github.com/taigrr/grid/pkg/math3d"
)

// Scene is an ordered collection of meshes rendered together. Meshes enter
// only through AddMesh, so every mesh in a scene has valid indices.
type Scene struct {
	meshes []*Mesh
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// AddMesh appends a mesh to the scene after validating its indices.
func (s *Scene) AddMesh(m *Mesh) error {
	if m == nil {
		return errors.New("add mesh: nil mesh")
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("add mesh: %w", err)
	}
	s.meshes = append(s.meshes, m)
	return nil
}

// Meshes returns the meshes in the order they were added. The meshes are
// shared with the scene and must not be modified.
func (s *Scene) Meshes() []*Mesh {
	return slices.Clip(s.meshes)
}

// MeshCount returns the number of meshes.
func (s *Scene) MeshCount() int {
	return len(s.meshes)
}

// TriangleCount returns the number of triangles across all meshes.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, m := range s.meshes {
		n += m.TriangleCount()
	}
	return n
}

// Bounds returns the bounding box enclosing every mesh.
func (s *Scene) Bounds() (minB, maxB math3d.Vec3) {
	for i, m := range s.meshes {
		if i == 0 {
			minB, maxB = m.BoundsMin, m.BoundsMax
			continue
		}
		minB = minB.Min(m.BoundsMin)
		maxB = maxB.Max(m.BoundsMax)
	}
	return minB, maxB
}
