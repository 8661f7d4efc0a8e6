//go:build !sdl2

// Package hostsdl2 is a host frontend: a windowed video presenter and an
// audio queue sink, both built on SDL2 bindings. This file stands in for
// video.go/audio.go when built without the sdl2 tag, so the module compiles
// without SDL2's development libraries installed.
package hostsdl2

import (
	"fmt"

	"github.com/kestrelmark/goboycore/internal/core/system"
	"github.com/kestrelmark/goboycore/internal/core/video"
)

type VideoWindow struct{}

func NewVideoWindow(title string) (*VideoWindow, error) {
	return nil, fmt.Errorf("SDL2 backend not available - compile with -tags sdl2 and install SDL2 development libraries")
}

func (v *VideoWindow) Running() bool { return false }
func (v *VideoWindow) Present(fb *video.FrameBuffer, buttons *system.Buttons) {}
func (v *VideoWindow) Close() {}

type AudioSink struct{}

func NewAudioSink() (*AudioSink, error) {
	return nil, fmt.Errorf("SDL2 backend not available - compile with -tags sdl2 and install SDL2 development libraries")
}

func (a *AudioSink) Feed(sys *system.System) {}
func (a *AudioSink) Close()                  {}
