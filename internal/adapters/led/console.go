// Package led implements ring drivers: a terminal preview and a WS2812 strip
// driven over SPI.
package led

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Console previews the ring as a row of coloured cells, writing a line only
// when the colours change. Each cell carries its hex value so the line stays
// readable when w has no colour support.
type Console struct {
	mu       sync.Mutex
	w        io.Writer
	renderer *lipgloss.Renderer
	cells    [][3]uint8
	last     [][3]uint8
	line     string
}

// NewConsole returns a preview of count LEDs writing to w.
func NewConsole(w io.Writer, count int) *Console {
	return &Console{
		w:        w,
		renderer: lipgloss.NewRenderer(w),
		cells:    make([][3]uint8, count),
	}
}

func (c *Console) SetLED(index int, rgb [3]uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 1 || index > len(c.cells) {
		return fmt.Errorf("%w: %d", ErrIndex, index)
	}
	c.cells[index-1] = rgb
	return nil
}

func (c *Console) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last != nil && slices.Equal(c.cells, c.last) {
		return nil
	}
	c.last = slices.Clone(c.cells)
	c.line = c.render()
	_, err := fmt.Fprintln(c.w, c.line)
	return err
}

// String returns the last line written.
func (c *Console) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.line
}

func (c *Console) render() string {
	cells := make([]string, len(c.cells))
	for i, rgb := range c.cells {
		hex := fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
		cells[i] = c.renderer.NewStyle().
			Background(lipgloss.Color(hex)).
			Render(fmt.Sprintf("%2d:%s", i+1, hex[1:]))
	}
	return "ring " + strings.Join(cells, " ")
}
