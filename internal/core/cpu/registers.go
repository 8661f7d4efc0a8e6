package cpu

import "github.com/kestrelmark/goboycore/internal/core/bitutil"

// Flag bits within F, held in bits 7-4. Bits 3-0 are always zero.
const (
	FlagZ uint8 = 0x80
	FlagN uint8 = 0x40
	FlagH uint8 = 0x20
	FlagC uint8 = 0x10
)

// Registers holds the eight 8-bit registers and the two 16-bit special
// registers of the LR35902. AF/BC/DE/HL are views computed from the pairs,
// not stored separately.
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8
	SP   uint16
	PC   uint16
}

// Reset sets the documented DMG power-on register state.
func (r *Registers) Reset() {
	r.SetAF(0x01B0)
	r.SetBC(0x0013)
	r.SetDE(0x00D8)
	r.SetHL(0x014D)
	r.SP = 0xFFFE
	r.PC = 0x0100
}

func (r *Registers) AF() uint16 { return bitutil.Combine(r.A, r.F&0xF0) }
func (r *Registers) BC() uint16 { return bitutil.Combine(r.B, r.C) }
func (r *Registers) DE() uint16 { return bitutil.Combine(r.D, r.E) }
func (r *Registers) HL() uint16 { return bitutil.Combine(r.H, r.L) }

func (r *Registers) SetAF(v uint16) {
	r.A = bitutil.High(v)
	r.F = bitutil.Low(v) & 0xF0
}
func (r *Registers) SetBC(v uint16) { r.B, r.C = bitutil.High(v), bitutil.Low(v) }
func (r *Registers) SetDE(v uint16) { r.D, r.E = bitutil.High(v), bitutil.Low(v) }
func (r *Registers) SetHL(v uint16) { r.H, r.L = bitutil.High(v), bitutil.Low(v) }

// HasFlag reports whether every bit set in mask is set in F.
func (r *Registers) HasFlag(mask uint8) bool { return r.F&mask == mask }
