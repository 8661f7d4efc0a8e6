package hostterm

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kestrelmark/goboycore/internal/core/system"
	"github.com/kestrelmark/goboycore/internal/core/video"
)

const (
	frameTime = time.Second / 60

	registerHeight = 3
	minTermWidth   = video.Width/2 + 30
	minTermHeight  = video.Height/2 + registerHeight + 2
)

// Renderer draws System's framebuffer to a tcell terminal screen using
// half-block characters (two vertically-stacked pixels per cell), and
// forwards keyboard input into button state.
type Renderer struct {
	screen  tcell.Screen
	sys     *system.System
	running bool
	buttons system.Buttons
}

// NewRenderer creates a tcell screen and wires it to sys.
func NewRenderer(sys *system.System) (*Renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}

	return &Renderer{screen: screen, sys: sys, running: true}, nil
}

// Run drives the system one frame per tick at 60Hz until a quit signal or a
// quit key (Escape, Ctrl-C) arrives, rendering after every frame.
func (r *Renderer) Run() error {
	defer r.screen.Fini()

	r.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	r.screen.Clear()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	go r.pollInput()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for r.running {
		select {
		case <-ticker.C:
			r.sys.SetButtonState(r.buttons)
			if err := r.sys.RunFrame(); err != nil {
				return err
			}
			r.render()
			r.screen.Show()
		case <-signals:
			r.running = false
			return nil
		}
	}
	return nil
}

func (r *Renderer) pollInput() {
	for r.running {
		ev := r.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				r.running = false
				return
			case tcell.KeyEnter:
				r.buttons |= system.ButtonStart
			case tcell.KeyRight:
				r.buttons |= system.ButtonRight
			case tcell.KeyLeft:
				r.buttons |= system.ButtonLeft
			case tcell.KeyUp:
				r.buttons |= system.ButtonUp
			case tcell.KeyDown:
				r.buttons |= system.ButtonDown
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'a':
					r.buttons |= system.ButtonA
				case 's':
					r.buttons |= system.ButtonB
				case 'q':
					r.buttons |= system.ButtonSelect
				}
			}
		case *tcell.EventResize:
			r.screen.Sync()
		}
	}
}

func (r *Renderer) render() {
	termWidth, termHeight := r.screen.Size()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		r.screen.Clear()
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		for i, ch := range msg {
			r.screen.SetContent(i, termHeight/2, ch, nil, style)
		}
		return
	}

	r.screen.Clear()
	r.drawScreen()
	r.drawRegisters(termWidth)
}

// drawScreen draws the 160x144 framebuffer as 160x72 terminal cells, each
// cell a pair of vertically-stacked pixels rendered with a foreground/
// background color split ('▀' with fg=top, bg=bottom).
func (r *Renderer) drawScreen() {
	fb := r.sys.Framebuffer()

	for y := 0; y < video.Height; y += 2 {
		for x := 0; x < video.Width; x++ {
			top := fb.At(x, y)
			bottom := top
			if y+1 < video.Height {
				bottom = fb.At(x, y+1)
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top[0]), int32(top[1]), int32(top[2]))).
				Background(tcell.NewRGBColor(int32(bottom[0]), int32(bottom[1]), int32(bottom[2])))
			r.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}
}

func (r *Renderer) drawRegisters(termWidth int) {
	startX := video.Width + 2
	if startX >= termWidth {
		return
	}
	cpu := r.sys.CPU()
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)

	lines := []string{
		fmt.Sprintf("A:%02X F:%02X", cpu.A, cpu.F),
		fmt.Sprintf("B:%02X C:%02X", cpu.B, cpu.C),
		fmt.Sprintf("D:%02X E:%02X", cpu.D, cpu.E),
		fmt.Sprintf("H:%02X L:%02X", cpu.H, cpu.L),
		fmt.Sprintf("SP:%04X PC:%04X", cpu.SP, cpu.PC),
	}
	for i, line := range lines {
		x := startX
		for _, ch := range line {
			if x >= termWidth {
				break
			}
			r.screen.SetContent(x, i, ch, nil, style)
			x++
		}
	}
}
