// Package mmu wires the cartridge, video, audio, timer and joypad
// peripherals behind the single cpu.Bus interface, exactly reproducing the
// DMG address map (spec section 3/4.4). It owns no CPU state; its only
// cross-component coupling with the rest of the core is the monotonic cycle
// counter passed into Advance.
package mmu

import (
	"math"

	"github.com/kestrelmark/goboycore/internal/core/apu"
	"github.com/kestrelmark/goboycore/internal/core/bitutil"
	"github.com/kestrelmark/goboycore/internal/core/cart"
	"github.com/kestrelmark/goboycore/internal/core/ioaddr"
	"github.com/kestrelmark/goboycore/internal/core/video"
)

// Button identifies one of the eight DMG input lines.
type Button uint8

const (
	ButtonRight Button = iota
	ButtonLeft
	ButtonUp
	ButtonDown
	ButtonA
	ButtonB
	ButtonSelect
	ButtonStart
)

// MMU implements cpu.Bus over a cartridge, the LCD, the APU, the timer and
// the joypad/work/high RAM regions.
type MMU struct {
	cart *cart.Cartridge
	lcd  *video.LCD
	apu  *apu.APU

	wram [0x2000]byte
	hram [0x7F]byte

	ifReg, ieReg uint8

	p1            uint8
	joypadButtons uint8
	joypadDpad    uint8

	timer timer

	lastCycle     uint64
	pendingCycles uint64
}

// New creates an MMU with no cartridge loaded; Read/Write to ROM/external RAM
// return the unmapped sentinel until LoadCartridge is called.
func New() *MMU {
	m := &MMU{
		joypadButtons: 0x0F,
		joypadDpad:    0x0F,
		lcd:           video.New(),
		apu:           apu.New(),
	}
	m.timer.reset()
	m.updateJoypadRegister()
	return m
}

// LoadCartridge parses rom and wires it into the address space.
func (m *MMU) LoadCartridge(rom []byte) error {
	c, err := cart.New(rom)
	if err != nil {
		return err
	}
	m.cart = c
	return nil
}

// Cartridge exposes the loaded cartridge, or nil if none is loaded.
func (m *MMU) Cartridge() *cart.Cartridge { return m.cart }

// LCD exposes the video peripheral for the frontend to pull frames from.
func (m *MMU) LCD() *video.LCD { return m.lcd }

// APU exposes the audio peripheral for the frontend to pull samples from.
func (m *MMU) APU() *apu.APU { return m.apu }

func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address <= ioaddr.ROMBankNEnd:
		if m.cart == nil {
			return 0xFF
		}
		return m.cart.Read(address)
	case address >= ioaddr.VRAMStart && address <= ioaddr.VRAMEnd:
		return m.lcd.ReadVRAM(address)
	case address >= ioaddr.ExtRAMStart && address <= ioaddr.ExtRAMEnd:
		if m.cart == nil {
			return 0xFF
		}
		return m.cart.Read(address)
	case address >= ioaddr.WRAMStart && address <= ioaddr.WRAMEnd:
		return m.wram[address-ioaddr.WRAMStart]
	case address >= ioaddr.EchoStart && address <= ioaddr.EchoEnd:
		return m.wram[address-ioaddr.EchoStart]
	case address >= ioaddr.OAMStart && address <= ioaddr.OAMEnd:
		return m.lcd.ReadOAM(address)
	case address >= 0xFEA0 && address <= 0xFEFF:
		return 0xFF
	case address == ioaddr.P1:
		return m.p1
	case address == ioaddr.DIV, address == ioaddr.TIMA, address == ioaddr.TMA, address == ioaddr.TAC:
		return m.timer.read(address)
	case address == ioaddr.IF:
		return m.ifReg | 0xE0
	case address >= ioaddr.AudioStart && address <= ioaddr.AudioEnd:
		return m.apu.ReadRegister(address)
	case address >= ioaddr.LCDC && address <= ioaddr.WX:
		return m.lcd.ReadRegister(address)
	case address >= ioaddr.HRAMStart && address <= ioaddr.HRAMEnd:
		return m.hram[address-ioaddr.HRAMStart]
	case address == ioaddr.IE:
		return m.ieReg
	}
	return 0xFF
}

func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address <= ioaddr.ROMBankNEnd:
		if m.cart != nil {
			m.cart.Write(address, value)
		}
	case address >= ioaddr.VRAMStart && address <= ioaddr.VRAMEnd:
		m.lcd.WriteVRAM(address, value)
	case address >= ioaddr.ExtRAMStart && address <= ioaddr.ExtRAMEnd:
		if m.cart != nil {
			m.cart.Write(address, value)
		}
	case address >= ioaddr.WRAMStart && address <= ioaddr.WRAMEnd:
		m.wram[address-ioaddr.WRAMStart] = value
	case address >= ioaddr.EchoStart && address <= ioaddr.EchoEnd:
		m.wram[address-ioaddr.EchoStart] = value
	case address >= ioaddr.OAMStart && address <= ioaddr.OAMEnd:
		m.lcd.WriteOAM(address, value)
	case address >= 0xFEA0 && address <= 0xFEFF:
		// Unused; discard.
	case address == ioaddr.P1:
		m.p1 = value & 0b00110000
		m.updateJoypadRegister()
	case address == ioaddr.DIV, address == ioaddr.TIMA, address == ioaddr.TMA, address == ioaddr.TAC:
		m.timer.write(address, value)
	case address == ioaddr.IF:
		m.ifReg = value & 0x1F
	case address == ioaddr.DMA:
		m.runDMA(value)
	case address >= ioaddr.AudioStart && address <= ioaddr.AudioEnd:
		m.apu.WriteRegister(address, value)
	case address >= ioaddr.LCDC && address <= ioaddr.WX:
		m.lcd.WriteRegister(address, value)
	case address >= ioaddr.HRAMStart && address <= ioaddr.HRAMEnd:
		m.hram[address-ioaddr.HRAMStart] = value
	case address == ioaddr.IE:
		m.ieReg = value
	case address == ioaddr.BootOff:
		// No boot ROM of our own; discard.
	}
}

// dmaCycles is the fixed cost of an OAM DMA transfer, charged to the CPU via
// TakeExtraCycles rather than modelled as per-byte bus contention.
const dmaCycles = 160

// runDMA performs the instantaneous 160-byte OAM transfer and queues 160
// cycles to be charged to the CPU's counter on its next TakeExtraCycles
// call, matching real DMA's fixed duration without modelling the bus
// contention during the copy (spec section 5).
func (m *MMU) runDMA(value uint8) {
	source := uint16(value) << 8
	for i := 0; i < 160; i++ {
		m.lcd.WriteOAMByte(i, m.Read(source+uint16(i)))
	}
	m.pendingCycles += dmaCycles
}

// TakeExtraCycles returns and clears any cycle cost queued by a peripheral
// since the last call, such as the 160-cycle charge for an OAM DMA transfer.
func (m *MMU) TakeExtraCycles() uint64 {
	c := m.pendingCycles
	m.pendingCycles = 0
	return c
}

// Advance drives the timer, LCD and APU up to cycle, OR-ing every interrupt
// any of them raise into IF in a single pass (the redesigned, edge-complete
// behavior described in spec section 9).
func (m *MMU) Advance(cycle uint64) {
	delta := cycle - m.lastCycle
	m.lastCycle = cycle

	if m.timer.tick(int(delta)) {
		m.ifReg |= uint8(ioaddr.Timer)
	}

	m.ifReg |= m.lcd.Advance(cycle)

	m.apu.Advance(cycle)
}

// NextEventCycle returns the smallest absolute cycle at which the LCD is
// next known to change mode or the timer's TIMA next changes (an increment
// or a pending overflow reload), used to
// fast-forward a halted CPU. The timer is always considered, even with the
// LCD switched off (the LCD reports no event at all by returning from
// unchanged), so a ROM that disables the LCD and halts waiting only on a
// Timer interrupt still wakes, and still jumps straight to that edge instead
// of single-stepping (spec section 9).
func (m *MMU) NextEventCycle(from uint64) uint64 {
	next := uint64(math.MaxUint64)

	if lcdNext := m.lcd.NextEventCycle(from); lcdNext > from {
		next = lcdNext
	}

	if timerNext := m.timer.nextOverflowCycle(m.lastCycle); timerNext < next {
		next = timerNext
	}

	if next <= from {
		next = from + 1
	}

	return next
}

func (m *MMU) updateJoypadRegister() {
	result := uint8(0b11000000)
	result |= m.p1 & 0b00110000

	selectDpad := !bitutil.IsSet(4, m.p1)
	selectButtons := !bitutil.IsSet(5, m.p1)

	switch {
	case selectButtons && !selectDpad:
		result |= m.joypadButtons & 0x0F
	case selectDpad && !selectButtons:
		result |= m.joypadDpad & 0x0F
	case selectButtons && selectDpad:
		result |= m.joypadButtons & m.joypadDpad & 0x0F
	default:
		result |= 0x0F
	}

	m.p1 = result
}

// PressButton clears the given button's bit (0 means pressed) and raises a
// Joypad interrupt on a high-to-low transition.
func (m *MMU) PressButton(b Button) {
	before := m.joypadButtons&0x0F | m.joypadDpad<<4
	switch b {
	case ButtonRight:
		m.joypadDpad = bitutil.Reset(0, m.joypadDpad)
	case ButtonLeft:
		m.joypadDpad = bitutil.Reset(1, m.joypadDpad)
	case ButtonUp:
		m.joypadDpad = bitutil.Reset(2, m.joypadDpad)
	case ButtonDown:
		m.joypadDpad = bitutil.Reset(3, m.joypadDpad)
	case ButtonA:
		m.joypadButtons = bitutil.Reset(0, m.joypadButtons)
	case ButtonB:
		m.joypadButtons = bitutil.Reset(1, m.joypadButtons)
	case ButtonSelect:
		m.joypadButtons = bitutil.Reset(2, m.joypadButtons)
	case ButtonStart:
		m.joypadButtons = bitutil.Reset(3, m.joypadButtons)
	}
	after := m.joypadButtons&0x0F | m.joypadDpad<<4
	if before&^after != 0 {
		m.ifReg |= uint8(ioaddr.Joypad)
	}
	m.updateJoypadRegister()
}

// ReleaseButton sets the given button's bit back (1 means released).
func (m *MMU) ReleaseButton(b Button) {
	switch b {
	case ButtonRight:
		m.joypadDpad = bitutil.Set(0, m.joypadDpad)
	case ButtonLeft:
		m.joypadDpad = bitutil.Set(1, m.joypadDpad)
	case ButtonUp:
		m.joypadDpad = bitutil.Set(2, m.joypadDpad)
	case ButtonDown:
		m.joypadDpad = bitutil.Set(3, m.joypadDpad)
	case ButtonA:
		m.joypadButtons = bitutil.Set(0, m.joypadButtons)
	case ButtonB:
		m.joypadButtons = bitutil.Set(1, m.joypadButtons)
	case ButtonSelect:
		m.joypadButtons = bitutil.Set(2, m.joypadButtons)
	case ButtonStart:
		m.joypadButtons = bitutil.Set(3, m.joypadButtons)
	}
	m.updateJoypadRegister()
}
