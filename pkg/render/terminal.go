package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Display is a screen that can push its cells to the terminal.
// *uv.Terminal satisfies it.
type Display interface {
	uv.Screen
	Display() error
}

// TerminalPresenter shows framebuffers on a terminal. Each cell holds two
// vertically stacked pixels drawn as an upper half block, so the
// framebuffer is twice as tall as the terminal has rows.
type TerminalPresenter struct {
	scr  Display
	cols int
	rows int
}

// NewTerminalPresenter creates a presenter for a cols x rows terminal.
func NewTerminalPresenter(scr Display, cols, rows int) *TerminalPresenter {
	return &TerminalPresenter{scr: scr, cols: cols, rows: rows}
}

// Resize updates the terminal dimensions.
func (p *TerminalPresenter) Resize(cols, rows int) {
	p.cols, p.rows = cols, rows
}

// FramebufferSize returns the framebuffer dimensions that fill the terminal.
func (p *TerminalPresenter) FramebufferSize() (width, height int) {
	return p.cols, p.rows * 2
}

// Render copies fb onto the screen.
func (p *TerminalPresenter) Render(fb *Framebuffer) {
	fb.Draw(p.scr, uv.Rect(0, 0, p.cols, p.rows))
}

// Text writes a single line of ASCII text starting at (col, row).
// Characters past the right edge are dropped.
func (p *TerminalPresenter) Text(col, row int, s string, fg, bg Color) {
	if row < 0 || row >= p.rows {
		return
	}
	style := uv.Style{Fg: toColor(fg), Bg: toColor(bg)}
	for i, r := range []rune(s) {
		x := col + i
		if x < 0 || x >= p.cols {
			continue
		}
		p.scr.SetCell(x, row, &uv.Cell{Content: string(r), Width: 1, Style: style})
	}
}

// Flush pushes pending cells to the terminal.
func (p *TerminalPresenter) Flush() error {
	return p.scr.Display()
}

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			scr.SetCell(col, row, halfBlock(fb.GetPixel(col, topY), fb.GetPixel(col, botY)))
		}
	}
}

// halfBlock returns a cell showing top in its upper half and bottom in its
// lower half.
func halfBlock(top, bottom Color) *uv.Cell {
	return &uv.Cell{
		Content: "▀",
		Width:   1,
		Style: uv.Style{
			Fg: toColor(top),
			Bg: toColor(bottom),
		},
	}
}

// toColor converts a packed color to a terminal color; fully transparent
// pixels leave the terminal default.
func toColor(c Color) color.Color {
	if c&0xFF == 0 {
		return nil
	}
	return c.NRGBA()
}
