package sim

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/nf/tux/turing"
)

const (
	guiColumns = 41 // tape cells across the window
	guiHeader  = 20 // pixels above the tape for the status line
)

var (
	colorBackground = color.RGBA{0x22, 0x22, 0x2a, 0xff}
	colorText       = color.RGBA{0xee, 0xee, 0xee, 0xff}
	colorBlank      = color.RGBA{0x55, 0x55, 0x60, 0xff} // outside the stored cells
	colorZero       = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	colorOne        = color.RGBA{0x22, 0x88, 0xee, 0xff}
	colorHead       = color.RGBA{0xee, 0x44, 0x22, 0xff}
	colorHalt       = color.RGBA{0xee, 0xcc, 0x22, 0xff}
)

// GUI shows the tape of the machine run by a Runner in a window.
type GUI struct {
	run  *Runner
	cell int

	mu    sync.Mutex
	snap  snapshot
	dirty bool
}

// snapshot is a copy of the parts of a machine that GUI displays.
type snapshot struct {
	cells  []bool
	cursor int
	state  int
	steps  int
	halt   turing.HaltCode
	kind   StateKind
}

// NewGUI returns a GUI that sends key commands to r and draws tape cells
// cell pixels wide.
func NewGUI(r *Runner, cell int) *GUI {
	if cell < 4 {
		cell = 4
	}
	return &GUI{run: r, cell: cell}
}

// StateFunc records the state of m for display.
// Pass it to NewRunner, possibly combined with other StateFuncs.
func (g *GUI) StateFunc(m *turing.Machine, k StateKind) {
	s := snapshot{
		cells:  m.Tape().Cells(),
		cursor: m.Tape().Cursor(m.Pos()),
		state:  m.State(),
		steps:  m.Steps(),
		halt:   m.Halt(),
		kind:   k,
	}
	g.mu.Lock()
	g.snap, g.dirty = s, true
	g.mu.Unlock()
}

func (g *GUI) take() (snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.snap, g.dirty
	g.dirty = false
	return s, ok
}

func (g *GUI) size() image.Point {
	return image.Point{guiColumns * g.cell, guiHeader + g.cell + g.cell/2 + 4}
}

// Run opens the window and draws until the window is closed or exit is
// closed. It must be called from the main goroutine.
func (g *GUI) Run(exit <-chan bool) error {
	var runErr error
	driver.Main(func(s screen.Screen) {
		sz := g.size()
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Title:  "tux",
			Width:  sz.X,
			Height: sz.Y,
		})
		if err != nil {
			runErr = err
			return
		}
		defer w.Release()

		buf, err := s.NewBuffer(sz)
		if err != nil {
			runErr = err
			return
		}
		defer buf.Release()
		tex, err := s.NewTexture(sz)
		if err != nil {
			runErr = err
			return
		}
		defer tex.Release()

		type update struct{}
		go func() {
			t := time.NewTicker(time.Second / 60)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					w.Send(update{})
				case <-exit:
					w.Send(update{})
					return
				}
			}
		}()

		var (
			win   size.Event
			drawn bool
		)
		publish := func() {
			if win.WidthPx == 0 || !drawn {
				return
			}
			w.Scale(win.Bounds(), tex, tex.Bounds(), draw.Src, nil)
			w.Publish()
		}
		for {
			e := w.NextEvent()

			select {
			case <-exit:
				return
			default:
			}

			switch e := e.(type) {
			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case size.Event:
				win = e
				if win.WidthPx+win.HeightPx == 0 {
					return
				}
				publish()

			case paint.Event:
				publish()

			case key.Event:
				if e.Direction != key.DirPress {
					break
				}
				switch e.Code {
				case key.CodeEscape, key.CodeQ:
					return
				case key.CodeSpacebar:
					g.run.Debug("step", 0)
				case key.CodeC:
					g.run.Debug("cont", 0)
				case key.CodeP:
					g.run.Debug("pause", 0)
				case key.CodeR:
					g.run.Debug("reset", 0)
				}

			case update:
				if snap, ok := g.take(); ok {
					snap.draw(buf.RGBA(), g.cell)
					tex.Upload(image.Point{}, buf, buf.Bounds())
					drawn = true
					publish()
				}

			case error:
				log.Print(e)
			}
		}
	})
	return runErr
}

// draw renders s into m: a status line followed by a row of tape cells
// centred on the head, with a marker beneath the head.
func (s snapshot) draw(m *image.RGBA, cell int) {
	draw.Draw(m, m.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	label := fmt.Sprintf("q%d  step #%d", s.state, s.steps)
	textColor := colorText
	if s.halt != turing.Running {
		label += "  [" + s.halt.String() + "]"
		textColor = colorHalt
	} else if s.kind == PauseState || s.kind == BreakState {
		label += "  [pause]"
	}
	d := font.Drawer{
		Dst:  m,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, guiHeader-6),
	}
	d.DrawString(label)

	var (
		cols  = m.Bounds().Dx() / cell
		first = s.cursor - cols/2
		top   = guiHeader
	)
	for col := 0; col < cols; col++ {
		i := first + col
		c := colorBlank
		if i >= 0 && i < len(s.cells) {
			c = colorZero
			if s.cells[i] {
				c = colorOne
			}
		}
		r := image.Rect(col*cell+1, top+1, (col+1)*cell-1, top+cell-1)
		draw.Draw(m, r, image.NewUniform(c), image.Point{}, draw.Src)
		if i == s.cursor {
			r := image.Rect(col*cell+cell/4, top+cell+2, (col+1)*cell-cell/4, top+cell+cell/2+2)
			draw.Draw(m, r, image.NewUniform(colorHead), image.Point{}, draw.Src)
		}
	}
}
