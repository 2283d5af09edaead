package simplekit

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/width"
)

// Canvas represents the drawing surface handed to the draw callback
type Canvas interface {
	// Size returns the canvas dimensions
	Size() (width, height int)

	// SetCell sets a character at the specified position with style
	SetCell(x, y int, char rune, style Style)

	// SetString renders a string at the specified position with style
	SetString(x, y int, text string, style Style)

	// Fill fills a rectangle with the specified character and style
	Fill(rect Rect, char rune, style Style)

	// DrawBox draws a box outline with the specified style
	DrawBox(rect Rect, style Style)

	// DrawBoxWithTitle draws a box with a title
	DrawBoxWithTitle(rect Rect, title string, style Style)

	// Clear clears the entire canvas
	Clear(style Style)
}

// Cell represents a single character cell with styling. A zero Char marks
// the right half of a wide rune.
type Cell struct {
	Char  rune
	Style Style
}

// MemoryCanvas is an in-memory implementation of Canvas
type MemoryCanvas struct {
	width  int
	height int
	cells  [][]Cell
	dirty  bool

	renderer *lipgloss.Renderer
}

// NewMemoryCanvas creates a new memory-based canvas
func NewMemoryCanvas(width, height int) *MemoryCanvas {
	c := &MemoryCanvas{}
	c.Resize(width, height)
	return c
}

// Size returns the canvas dimensions
func (c *MemoryCanvas) Size() (width, height int) {
	return c.width, c.height
}

// Cell returns the cell at x, y
func (c *MemoryCanvas) Cell(x, y int) (Cell, bool) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{}, false
	}
	return c.cells[y][x], true
}

// SetRenderer sets the lipgloss renderer used by String, e.g. one bound to
// a remote session's output. Nil means the default renderer.
func (c *MemoryCanvas) SetRenderer(r *lipgloss.Renderer) {
	c.renderer = r
}

// Dirty reports whether the canvas changed since the last String call
func (c *MemoryCanvas) Dirty() bool {
	return c.dirty
}

// SetCell sets a character at the specified position with style. Overwriting
// either half of a wide rune blanks the other half.
func (c *MemoryCanvas) SetCell(x, y int, char rune, style Style) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	row := c.cells[y]
	old := row[x]
	if old.Char == 0 && char != 0 && x > 0 {
		row[x-1].Char = ' '
	}
	if isWide(old.Char) && x+1 < c.width && row[x+1].Char == 0 {
		row[x+1].Char = ' '
	}
	row[x] = Cell{Char: char, Style: style}
	c.dirty = true
}

// SetString renders a string at the specified position with style. East
// Asian wide runes occupy two cells.
func (c *MemoryCanvas) SetString(x, y int, text string, style Style) {
	if y < 0 || y >= c.height {
		return
	}

	currentX := x
	for _, char := range text {
		if currentX >= c.width {
			break
		}
		if isWide(char) && currentX+1 >= c.width {
			c.SetCell(currentX, y, ' ', style)
			break
		}
		c.SetCell(currentX, y, char, style)
		if isWide(char) {
			currentX++
			if currentX == 0 {
				c.SetCell(currentX, y, ' ', style) // left half is off canvas
			} else {
				c.SetCell(currentX, y, 0, style)
			}
		}
		currentX++
	}
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

// Fill fills a rectangle with the specified character and style
func (c *MemoryCanvas) Fill(rect Rect, char rune, style Style) {
	clip := rect.Intersect(NewRect(0, 0, c.width, c.height))
	for y := clip.Y; y < clip.Bottom(); y++ {
		for x := clip.X; x < clip.Right(); x++ {
			c.SetCell(x, y, char, style)
		}
	}
}

// DrawBox draws a box outline with the specified style
func (c *MemoryCanvas) DrawBox(rect Rect, style Style) {
	if rect.W < 2 || rect.H < 2 {
		return
	}

	for x := rect.X + 1; x < rect.Right()-1; x++ {
		c.SetCell(x, rect.Y, '─', style)
		c.SetCell(x, rect.Bottom()-1, '─', style)
	}
	for y := rect.Y + 1; y < rect.Bottom()-1; y++ {
		c.SetCell(rect.X, y, '│', style)
		c.SetCell(rect.Right()-1, y, '│', style)
	}

	c.SetCell(rect.X, rect.Y, '┌', style)
	c.SetCell(rect.Right()-1, rect.Y, '┐', style)
	c.SetCell(rect.X, rect.Bottom()-1, '└', style)
	c.SetCell(rect.Right()-1, rect.Bottom()-1, '┘', style)
}

// DrawBoxWithTitle draws a box with a title on its top border
func (c *MemoryCanvas) DrawBoxWithTitle(rect Rect, title string, style Style) {
	c.DrawBox(rect, style)

	if title == "" || rect.W <= 4 {
		return
	}
	maxLen := rect.W - 4 // room for "─ " and " ─"
	if utf8.RuneCountInString(title) > maxLen {
		title = string([]rune(title)[:maxLen])
	}
	c.SetString(rect.X+1, rect.Y, "─ "+title+" ", style)
}

// Clear clears the entire canvas
func (c *MemoryCanvas) Clear(style Style) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			c.cells[y][x] = Cell{Char: ' ', Style: style}
		}
	}
	c.dirty = true
}

// String renders the canvas one line per row, each run of equally styled
// cells rendered through lipgloss
func (c *MemoryCanvas) String() string {
	var out strings.Builder
	var run strings.Builder

	for y := 0; y < c.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		row := c.cells[y]
		for x := 0; x < c.width; {
			style := row[x].Style
			run.Reset()
			for ; x < c.width && row[x].Style == style; x++ {
				if row[x].Char != 0 {
					run.WriteRune(row[x].Char)
				}
			}
			out.WriteString(style.lipgloss(c.renderer).Render(run.String()))
		}
	}

	c.dirty = false
	return out.String()
}

// Resize resizes the canvas, keeping the overlapping content
func (c *MemoryCanvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if c.cells != nil && width == c.width && height == c.height {
		return
	}

	blank := Cell{Char: ' ', Style: NewStyle()}
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			if y < c.height && x < c.width {
				cells[y][x] = c.cells[y][x]
			} else {
				cells[y][x] = blank
			}
		}
	}

	c.width = width
	c.height = height
	c.cells = cells
	c.dirty = true
}
