package apps

import (
	"fmt"
	"strings"

	"github.com/atomicstack/mizu/internal/logging"
	"github.com/atomicstack/mizu/internal/store"
	tea "github.com/charmbracelet/bubbletea"
)

// PixelKey is where the pixel editor keeps its drawings.
const PixelKey = "pixel-drawings"

// DrawingSize is the side of a new drawing, in pixels.
const DrawingSize = 16

// blank marks an unpainted pixel.
const blank = '.'

// inks are the paintable colours, drawn as shade glyphs.
var inks = []rune{'█', '▓', '▒', '░', '#', '*', '+', 'o'}

// Drawing is one pixel canvas. Each row holds one byte per pixel: '.' for
// blank, '0'-'7' for an ink.
type Drawing struct {
	Name   string   `json:"name"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Pixels []string `json:"pixels"`
}

// NewDrawing returns a blank size×size drawing.
func NewDrawing(name string, size int) Drawing {
	rows := make([]string, size)
	for i := range rows {
		rows[i] = strings.Repeat(string(blank), size)
	}
	return Drawing{Name: name, Width: size, Height: size, Pixels: rows}
}

// At returns the pixel byte at (x, y), or blank outside the drawing.
func (d Drawing) At(x, y int) byte {
	if y < 0 || y >= len(d.Pixels) || x < 0 || x >= len(d.Pixels[y]) {
		return blank
	}
	return d.Pixels[y][x]
}

func (d *Drawing) set(x, y int, v byte) bool {
	if y < 0 || y >= len(d.Pixels) || x < 0 || x >= len(d.Pixels[y]) {
		return false
	}
	row := []byte(d.Pixels[y])
	row[x] = v
	d.Pixels[y] = string(row)
	return true
}

type pixel struct {
	c        *Container
	drawings []Drawing
	current  int
	x, y     int
	ink      int
	dirty    bool
}

// Pixel is a small grid painter. Drawings are saved on ctrl+s, when
// switching drawings and when the window closes.
func Pixel() Definition {
	return Definition{ID: "pixel", Name: "Pixel", Icon: "▦", Entry: startPixel}
}

func startPixel(c *Container) error {
	p := &pixel{c: c}
	p.drawings = store.Load(c.Context(), c.Store(), PixelKey, []Drawing(nil))
	if len(p.drawings) == 0 {
		p.drawings = []Drawing{NewDrawing("Drawing 1", DrawingSize)}
	}
	p.retitle()
	c.SetView(p.view)
	c.OnKey(p.key)
	c.OnPointer(p.click)
	c.OnClose(p.save)
	return nil
}

func (p *pixel) drawing() *Drawing {
	return &p.drawings[p.current]
}

func (p *pixel) key(msg tea.KeyMsg) bool {
	d := p.drawing()
	switch msg.String() {
	case "up":
		p.y = max(p.y-1, 0)
	case "down":
		p.y = min(p.y+1, d.Height-1)
	case "left":
		p.x = max(p.x-1, 0)
	case "right":
		p.x = min(p.x+1, d.Width-1)
	case " ", "enter":
		p.paint(p.x, p.y, byte('0'+p.ink))
	case "x", "backspace":
		p.paint(p.x, p.y, blank)
	case "c":
		p.ink = (p.ink + 1) % len(inks)
	case "ctrl+n":
		p.save()
		p.drawings = append(p.drawings, NewDrawing(fmt.Sprintf("Drawing %d", len(p.drawings)+1), DrawingSize))
		p.switchTo(len(p.drawings) - 1)
	case "ctrl+w":
		p.remove(p.current)
	case "]":
		p.switchTo((p.current + 1) % len(p.drawings))
	case "[":
		p.switchTo((p.current - 1 + len(p.drawings)) % len(p.drawings))
	case "ctrl+s":
		p.save()
	default:
		return false
	}
	return true
}

// click paints the pixel under a body-relative cell. Row 0 is the header
// and every pixel is two cells wide.
func (p *pixel) click(x, y int) {
	px, py := x/2, y-1
	if py < 0 {
		return
	}
	if p.paint(px, py, byte('0'+p.ink)) {
		p.x, p.y = px, py
	}
}

func (p *pixel) paint(x, y int, v byte) bool {
	if !p.drawing().set(x, y, v) {
		return false
	}
	p.dirty = true
	return true
}

func (p *pixel) switchTo(i int) {
	p.save()
	p.current = i
	p.x, p.y = 0, 0
	p.retitle()
}

func (p *pixel) remove(i int) {
	if len(p.drawings) <= 1 {
		return
	}
	p.drawings = append(p.drawings[:i], p.drawings[i+1:]...)
	if p.current >= len(p.drawings) {
		p.current = len(p.drawings) - 1
	}
	p.dirty = true
	p.save()
	p.retitle()
}

func (p *pixel) save() {
	if !p.dirty {
		return
	}
	if err := store.Save(p.c.Context(), p.c.Store(), PixelKey, p.drawings); err != nil {
		logging.Error(err)
		return
	}
	p.dirty = false
}

func (p *pixel) retitle() {
	p.c.SetTitle("Pixel: " + p.drawing().Name)
}

func (p *pixel) view(_, height int) string {
	d := p.drawing()
	dirty := ""
	if p.dirty {
		dirty = " *"
	}
	lines := []string{fmt.Sprintf("%s%s  %d/%d  ink %c", d.Name, dirty, p.current+1, len(p.drawings), inks[p.ink])}
	for y := 0; y < d.Height && len(lines) < height; y++ {
		var b strings.Builder
		for x := 0; x < d.Width; x++ {
			if x == p.x && y == p.y {
				b.WriteString("[]")
				continue
			}
			v := d.At(x, y)
			if v == blank {
				b.WriteString("··")
				continue
			}
			g := inks[int(v-'0')%len(inks)]
			b.WriteRune(g)
			b.WriteRune(g)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// Builtin returns the stock apps.
func Builtin() []Definition {
	return []Definition{Notes(), Pixel()}
}
