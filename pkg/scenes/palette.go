package scenes

import (
	"github.com/taigrr/grid/pkg/render"
)

// Palette is a list of colors cycled over triangles.
type Palette []render.Color

// DefaultPalette gives each face of a box its own color.
var DefaultPalette = Palette{
	render.RGB(0xE0, 0x5A, 0x47),
	render.RGB(0xF2, 0xB1, 0x34),
	render.RGB(0x4F, 0xB4, 0x77),
	render.RGB(0x3C, 0x8D, 0xD9),
	render.RGB(0x9B, 0x6A, 0xD6),
	render.RGB(0xE8, 0xE8, 0xE8),
}

// ByFace colors triangle pairs alike, matching meshes such as Box and Grid
// whose faces are split into two triangles. Meshes are offset so
// neighbouring meshes start on different colors.
func (p Palette) ByFace() render.ColorFunc {
	if len(p) == 0 {
		return Solid(render.ColorGreen)
	}
	return func(mesh, tri int) render.Color {
		return p[(mesh+tri/2)%len(p)]
	}
}

// Solid colors every triangle c.
func Solid(c render.Color) render.ColorFunc {
	return func(int, int) render.Color {
		return c
	}
}

// Checker colors the cells of a Grid(size, ...) mesh alternately a and b.
func Checker(size int, a, b render.Color) render.ColorFunc {
	return func(_, tri int) render.Color {
		if size <= 0 {
			return a
		}
		cell := tri / 2
		if (cell/size+cell%size)%2 == 0 {
			return a
		}
		return b
	}
}

// DemoColors colors the demo map: a checkered ground (mesh 0) and a
// palette-colored box.
func DemoColors(gridSize int) render.ColorFunc {
	ground := Checker(gridSize, render.RGB(0x50, 0x50, 0x58), render.RGB(0x38, 0x38, 0x40))
	box := DefaultPalette.ByFace()
	return func(mesh, tri int) render.Color {
		if mesh == 0 {
			return ground(mesh, tri)
		}
		return box(mesh, tri)
	}
}
