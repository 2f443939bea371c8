package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/san-kum/splitflap/internal/flap"
	"github.com/san-kum/splitflap/internal/viz"
)

const (
	clearLine  = "\r\033[K"
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
)

// LiveRenderer reprints the board in place on every frame, throttled to a
// frame rate. Converged frames are always printed.
type LiveRenderer struct {
	out       io.Writer
	board     string
	frameRate int
	lastFrame time.Time
	done      chan struct{}
	once      sync.Once
}

func NewLiveRenderer(out io.Writer, board string, frameRate int) *LiveRenderer {
	return &LiveRenderer{
		out:       out,
		board:     board,
		frameRate: frameRate,
		done:      make(chan struct{}),
	}
}

func (r *LiveRenderer) OnFrame(f flap.Frame) {
	if !f.Converged && r.frameRate > 0 {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
	}
	r.lastFrame = time.Now()
	r.render(f)

	if f.Converged {
		r.Finish()
	}
}

func (r *LiveRenderer) render(f flap.Frame) {
	var b strings.Builder
	b.WriteString(clearLine)
	b.WriteString(fmt.Sprintf("  %s  %s  tick %d", r.board, viz.PlainBoard(f.Cells), f.Tick))
	if f.Moving > 0 {
		b.WriteString(fmt.Sprintf("  moving %d", f.Moving))
	}
	fmt.Fprint(r.out, b.String())
}

// Done is closed once the board has converged or Finish was called.
func (r *LiveRenderer) Done() <-chan struct{} { return r.done }

func (r *LiveRenderer) Finish() {
	r.once.Do(func() { close(r.done) })
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, "\n"+showCursor) }
