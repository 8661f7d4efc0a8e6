package cart

import (
	"github.com/kestrelmark/goboycore/internal/core/cpuerr"
)

// Cartridge is the cpu.Bus-facing view of an inserted ROM: header metadata
// plus whichever MBC its cartridge-type byte names.
type Cartridge struct {
	Header     Header
	mbc        MBC
	hasBattery bool
}

// New parses rom's header and builds the matching MBC, or returns a
// CartridgeUnsupportedError if the cartridge-type byte names a chip this
// core does not implement (MMM01, HuC1/3, Game Boy Camera, and anything
// beyond the MBC0/1/2/3/5 family).
func New(rom []byte) (*Cartridge, error) {
	h := parseHeader(rom)

	var m MBC
	switch h.Type {
	case 0x00:
		m = newMBC0(rom)
	case 0x01, 0x02, 0x03:
		m = newMBC1(rom, h.RAMBanks)
	case 0x05, 0x06:
		m = newMBC2(rom)
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		m = newMBC3(rom, h.RAMBanks)
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		m = newMBC5(rom, h.RAMBanks)
	default:
		return nil, &cpuerr.CartridgeUnsupportedError{MBCType: h.Type}
	}

	return &Cartridge{Header: h, mbc: m, hasBattery: hasBattery(h.Type)}, nil
}

func (c *Cartridge) Read(addr uint16) uint8        { return c.mbc.Read(addr) }
func (c *Cartridge) Write(addr uint16, value uint8) { c.mbc.Write(addr, value) }

// HasBattery reports whether this cartridge's external RAM should be
// persisted across sessions.
func (c *Cartridge) HasBattery() bool { return c.hasBattery }

// SnapshotSRAM returns a copy of the cartridge's external RAM, or nil if it
// has none. Round-tripping this through RestoreSRAM on a fresh Cartridge
// built from the same ROM reproduces identical MBC Read behavior for every
// address in 0xA000-0xBFFF (the save-state SRAM invariant).
func (c *Cartridge) SnapshotSRAM() []byte {
	live := c.mbc.SRAM()
	if live == nil {
		return nil
	}
	out := make([]byte, len(live))
	copy(out, live)
	return out
}

// RestoreSRAM copies data into the cartridge's external RAM, truncating or
// zero-padding to fit if the lengths differ.
func (c *Cartridge) RestoreSRAM(data []byte) {
	live := c.mbc.SRAM()
	if live == nil {
		return
	}
	n := copy(live, data)
	for i := n; i < len(live); i++ {
		live[i] = 0
	}
}
