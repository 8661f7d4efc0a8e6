// Package system aggregates the CPU and MMU into the single entry point a
// host drives: load a cartridge, step or run for a duration, pull frames and
// audio samples, and forward button state (spec section 5).
package system

import (
	"time"

	"github.com/kestrelmark/goboycore/internal/core/cpu"
	"github.com/kestrelmark/goboycore/internal/core/mmu"
	"github.com/kestrelmark/goboycore/internal/core/video"
)

// ClockRate is the DMG's CPU clock in Hz, the conversion factor between
// wall-clock durations and cycle counts.
const ClockRate = 4194304

// FrameCycles is the number of CPU cycles in one full LCD frame
// (154 scanlines x 456 cycles), matching video.ScreenCycles.
const FrameCycles = video.ScreenCycles

// Buttons is a bitmask of the 8 DMG input lines, 1 meaning pressed.
type Buttons uint8

const (
	ButtonRight Buttons = 1 << iota
	ButtonLeft
	ButtonUp
	ButtonDown
	ButtonA
	ButtonB
	ButtonSelect
	ButtonStart
)

var buttonOrder = [8]struct {
	mask Buttons
	b    mmu.Button
}{
	{ButtonRight, mmu.ButtonRight},
	{ButtonLeft, mmu.ButtonLeft},
	{ButtonUp, mmu.ButtonUp},
	{ButtonDown, mmu.ButtonDown},
	{ButtonA, mmu.ButtonA},
	{ButtonB, mmu.ButtonB},
	{ButtonSelect, mmu.ButtonSelect},
	{ButtonStart, mmu.ButtonStart},
}

// System owns the CPU and the MMU (and, transitively, every peripheral).
type System struct {
	cpu     *cpu.CPU
	mmu     *mmu.MMU
	buttons Buttons

	sampleCycle float64
}

// New creates a System with no cartridge loaded.
func New() *System {
	m := mmu.New()
	return &System{cpu: cpu.New(m), mmu: m}
}

// FromCart creates a System with rom loaded as the cartridge.
func FromCart(rom []byte) (*System, error) {
	s := New()
	if err := s.mmu.LoadCartridge(rom); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadCartridge swaps in a new cartridge and resets CPU/peripheral state.
func (s *System) LoadCartridge(rom []byte) error {
	m := mmu.New()
	if err := m.LoadCartridge(rom); err != nil {
		return err
	}
	s.mmu = m
	s.cpu = cpu.New(m)
	s.buttons = 0
	s.sampleCycle = 0
	return nil
}

// Reset restores power-on state.
func (s *System) Reset() {
	s.cpu.Reset()
}

// Step executes exactly one instruction, fast-forwarding the cycle counter
// to the next known peripheral event first if halted (spec section 4.8:
// "when halted, jump the counter to the next peripheral event").
func (s *System) Step() error {
	if s.cpu.Halted {
		next := s.mmu.NextEventCycle(s.cpu.Cycle)
		if next > s.cpu.Cycle {
			s.cpu.Cycle = next
			s.mmu.Advance(next)
		}
	}
	return s.cpu.Step()
}

// RunForDuration runs the system for approximately d of emulated time,
// converting d to a cycle horizon via ClockRate and stepping until reached.
func (s *System) RunForDuration(d time.Duration) error {
	horizon := s.cpu.Cycle + uint64(d.Seconds()*ClockRate)
	for s.cpu.Cycle < horizon {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunFrame runs the system for approximately one LCD frame's worth of cycles
// (FrameCycles, converted to a duration for RunForDuration).
func (s *System) RunFrame() error {
	return s.RunForDuration(time.Duration(FrameCycles) * time.Second / ClockRate)
}

// Framebuffer returns the last fully-rendered frame. The returned pointer is
// a read-only borrow valid until the next Step/RunForDuration/RunFrame call.
func (s *System) Framebuffer() *video.FrameBuffer {
	return s.mmu.LCD().Framebuffer()
}

// PullSample returns one audio sample at the given host sample rate and
// advances the sampled cycle by ClockRate/sampleRate, per spec section 6.
func (s *System) PullSample(sampleRate float64) float64 {
	s.sampleCycle += ClockRate / sampleRate
	return s.mmu.APU().Sample(uint64(s.sampleCycle))
}

// SetButtonState forwards a bitmask of currently-pressed buttons, raising a
// Joypad interrupt on any high-to-low transition (spec section 6).
func (s *System) SetButtonState(mask Buttons) {
	changed := s.buttons ^ mask
	if changed == 0 {
		return
	}
	for _, e := range buttonOrder {
		if changed&e.mask == 0 {
			continue
		}
		if mask&e.mask != 0 {
			s.mmu.PressButton(e.b)
		} else {
			s.mmu.ReleaseButton(e.b)
		}
	}
	s.buttons = mask
}

// SnapshotSRAM returns a copy of the cartridge's external RAM, or nil if the
// loaded cartridge has none. It does not check whether that RAM is
// battery-backed.
func (s *System) SnapshotSRAM() []byte {
	if c := s.mmu.Cartridge(); c != nil {
		return c.SnapshotSRAM()
	}
	return nil
}

// RestoreSRAM loads previously-snapshotted external RAM contents.
func (s *System) RestoreSRAM(data []byte) {
	if c := s.mmu.Cartridge(); c != nil {
		c.RestoreSRAM(data)
	}
}

// CPU exposes the underlying CPU for diagnostics (history, registers).
func (s *System) CPU() *cpu.CPU { return s.cpu }
