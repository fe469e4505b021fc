package models

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/grid/pkg/math3d"
)

// ErrNoGeometry is returned when a glTF document has no triangle primitives.
var ErrNoGeometry = errors.New("no triangle geometry")

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Normalize, when positive, centers the mesh on the origin and scales
	// its largest dimension to this size.
	Normalize float64
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		Normalize: 2,
	}
}

// LoadGLB loads a binary GLTF (.glb) file with default options.
func LoadGLB(path string) (*Mesh, error) {
	loader := NewGLTFLoader()
	return loader.Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.FromDocument(doc, filepath.Base(path))
}

// FromDocument merges every triangle primitive of doc into one Mesh.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	var (
		vertices []math3d.Vec3
		indices  [][3]int
	)

	for _, m := range doc.Meshes {
		var err error
		vertices, indices, err = l.processMesh(doc, m, vertices, indices)
		if err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if len(indices) == 0 {
		return nil, fmt.Errorf("load %s: %w", name, ErrNoGeometry)
	}

	mesh, err := NewMesh(name, vertices, indices)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	if l.Normalize > 0 {
		mesh.Normalize(l.Normalize)
	}

	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, vertices []math3d.Vec3, indices [][3]int) ([]math3d.Vec3, [][3]int, error) {
	for pi, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			slog.Debug("skipping non-triangle primitive", "mesh", m.Name, "primitive", pi, "mode", prim.Mode)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			slog.Debug("skipping primitive without positions", "mesh", m.Name, "primitive", pi)
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return nil, nil, fmt.Errorf("read positions: %w", err)
		}

		// Base vertex index for this primitive
		baseVertex := len(vertices)
		vertices = append(vertices, positions...)

		if prim.Indices != nil {
			idx, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return nil, nil, fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(idx); i += 3 {
				indices = append(indices, [3]int{
					baseVertex + idx[i],
					baseVertex + idx[i+1],
					baseVertex + idx[i+2],
				})
			}
		} else {
			// No indices, assume sequential triangles
			for i := 0; i+2 < len(positions); i += 3 {
				indices = append(indices, [3]int{
					baseVertex + i,
					baseVertex + i + 1,
					baseVertex + i + 2,
				})
			}
		}
	}

	return vertices, indices, nil
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float positions, got %v", accessor.ComponentType)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}

	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}

	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case []uint8:
		return widen(v), nil
	case []uint16:
		return widen(v), nil
	case []uint32:
		return widen(v), nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

func widen[T uint8 | uint16 | uint32](v []T) []int {
	result := make([]int, len(v))
	for i, x := range v {
		result[i] = int(x)
	}
	return result
}

// readAccessorData reads raw data from a GLTF accessor.
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	// gltf.Open resolves both embedded (GLB) and external buffers into Data
	bufData := buffer.Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	switch accessor.Type {
	case gltf.AccessorVec3:
		if stride == 0 {
			stride = 12 // 3 floats * 4 bytes
		}
		if err := checkRange(bufData, start, stride, count, 12); err != nil {
			return nil, err
		}
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorScalar:
		var size int
		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			size = 1
		case gltf.ComponentUshort:
			size = 2
		case gltf.ComponentUint:
			size = 4
		default:
			return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
		}
		if stride == 0 {
			stride = size
		}
		if err := checkRange(bufData, start, stride, count, size); err != nil {
			return nil, err
		}

		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result := make([]uint8, count)
			for i := range count {
				result[i] = bufData[start+i*stride]
			}
			return result, nil
		case gltf.ComponentUshort:
			result := make([]uint16, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint16(bufData[offset]) | uint16(bufData[offset+1])<<8
			}
			return result, nil
		default:
			result := make([]uint32, count)
			for i := range count {
				offset := start + i*stride
				result[i] = readUint32(bufData[offset:])
			}
			return result, nil
		}
	}

	return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
}

// checkRange verifies that count elements of elemSize bytes fit in data.
func checkRange(data []byte, start, stride, count, elemSize int) error {
	if count == 0 {
		return nil
	}
	end := start + (count-1)*stride + elemSize
	if start < 0 || end > len(data) {
		return fmt.Errorf("accessor reads bytes [%d, %d) of %d-byte buffer", start, end, len(data))
	}
	return nil
}

// readUint32 reads a little-endian uint32.
func readUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(readUint32(b))
}
