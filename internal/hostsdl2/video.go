//go:build sdl2

// Package hostsdl2 is a host frontend: a windowed video presenter and an
// audio queue sink, both built on SDL2 bindings. Neither file is part of the
// emulation core; they only read System's public framebuffer/sample surface
// (spec section 5/6, "CLI, flags, ... are host concerns").
package hostsdl2

import (
	"fmt"
	"log/slog"

	"github.com/kestrelmark/goboycore/internal/core/system"
	"github.com/kestrelmark/goboycore/internal/core/video"
	"github.com/veandco/go-sdl2/sdl"
)

const windowScale = 4

// VideoWindow presents System's framebuffer in an SDL2 window, scaled up by
// windowScale, and translates keyboard events into button-state updates.
type VideoWindow struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	running  bool
}

// NewVideoWindow creates and shows the SDL2 window.
func NewVideoWindow(title string) (*VideoWindow, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL2: %v", err)
	}

	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		video.Width*windowScale,
		video.Height*windowScale,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create window: %v", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create renderer: %v", err)
	}

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		video.Width,
		video.Height,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create texture: %v", err)
	}

	slog.Info("SDL2 video window initialized", "scale", windowScale)

	return &VideoWindow{window: window, renderer: renderer, texture: texture, running: true}, nil
}

// Running reports whether the window has not yet received a quit event.
func (v *VideoWindow) Running() bool { return v.running }

// Present draws one framebuffer and pumps pending SDL events, forwarding key
// transitions into buttons (accumulated by the caller across calls).
func (v *VideoWindow) Present(fb *video.FrameBuffer, buttons *system.Buttons) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		v.handleEvent(event, buttons)
	}
	if !v.running {
		return
	}

	pixels := fb.Pixels()
	if err := v.texture.Update(nil, pixels, video.Width*4); err != nil {
		slog.Warn("failed to update texture", "err", err)
		return
	}

	v.renderer.Clear()
	v.renderer.Copy(v.texture, nil, nil)
	v.renderer.Present()
}

// Close tears down SDL2 resources.
func (v *VideoWindow) Close() {
	slog.Info("closing SDL2 video window")
	if v.texture != nil {
		v.texture.Destroy()
	}
	if v.renderer != nil {
		v.renderer.Destroy()
	}
	if v.window != nil {
		v.window.Destroy()
	}
	sdl.Quit()
}

func (v *VideoWindow) handleEvent(event sdl.Event, buttons *system.Buttons) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		v.running = false
	case *sdl.KeyboardEvent:
		mask, ok := keyButton(e.Keysym.Sym)
		if !ok {
			if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
				v.running = false
			}
			return
		}
		if e.Type == sdl.KEYDOWN {
			*buttons |= mask
		} else if e.Type == sdl.KEYUP {
			*buttons &^= mask
		}
	}
}

func keyButton(key sdl.Keycode) (system.Buttons, bool) {
	switch key {
	case sdl.K_RIGHT:
		return system.ButtonRight, true
	case sdl.K_LEFT:
		return system.ButtonLeft, true
	case sdl.K_UP:
		return system.ButtonUp, true
	case sdl.K_DOWN:
		return system.ButtonDown, true
	case sdl.K_a:
		return system.ButtonA, true
	case sdl.K_s:
		return system.ButtonB, true
	case sdl.K_RETURN:
		return system.ButtonStart, true
	case sdl.K_q:
		return system.ButtonSelect, true
	}
	return 0, false
}
