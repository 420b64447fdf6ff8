package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Draw paints the framebuffer onto scr as upper half blocks: the foreground
// is the even row and the background the odd row below it.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1
		if topY >= fb.height {
			break
		}

		for col := area.Min.X; col < area.Max.X && col < fb.width; col++ {
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgba(fb.Pixel(col, topY)),
					Bg: rgba(fb.Pixel(col, botY)),
				},
			})
		}
	}
}

// TerminalRenderer presents framebuffers on a terminal.
type TerminalRenderer struct {
	term          *uv.Terminal
	width, height int // in cells
}

// NewTerminalRenderer creates a renderer for a terminal of the given size in
// cells.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// FramebufferSize is the pixel size that fills the terminal.
func (r *TerminalRenderer) FramebufferSize() (int, int) {
	return r.width, r.height * 2
}

// Render stages fb into the terminal's cell buffer.
func (r *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(r.term, uv.Rect(0, 0, r.width, r.height))
}

// Flush writes the staged cells out.
func (r *TerminalRenderer) Flush() error {
	return r.term.Display()
}
