package apu

import "github.com/kestrelmark/goboycore/internal/core/ioaddr"

// frameSequencerPeriod is the number of CPU cycles between 512 Hz frame
// sequencer ticks (4194304 Hz / 512 Hz).
const frameSequencerPeriod = 8192

// APU owns channels 1 (square+sweep) and 2 (square), the frame sequencer
// that drives their length/envelope/sweep units, and the NR5x master
// controls. Channels 3 and 4 are a documented non-goal.
type APU struct {
	ch1 *Square
	ch2 *Square

	power bool

	volLeft, volRight   uint8
	ch1Left, ch1Right   bool
	ch2Left, ch2Right   bool

	seqStep    uint8
	cycleAccum int
	lastCycle  uint64
}

func New() *APU {
	return &APU{ch1: NewSquare(true), ch2: NewSquare(false), power: true}
}

// Advance runs the frame sequencer up to the given absolute cycle. Unlike
// LCD.Advance it returns nothing, since the APU never raises an interrupt
// (MMU.Advance simply calls it unconditionally).
func (a *APU) Advance(cycle uint64) {
	delta := cycle - a.lastCycle
	a.lastCycle = cycle

	a.cycleAccum += int(delta)
	for a.cycleAccum >= frameSequencerPeriod {
		a.cycleAccum -= frameSequencerPeriod
		a.tickFrameSequencer()
	}
}

func (a *APU) tickFrameSequencer() {
	switch a.seqStep {
	case 0, 4:
		a.ch1.TickLength()
		a.ch2.TickLength()
	case 2, 6:
		a.ch1.TickLength()
		a.ch2.TickLength()
		a.ch1.TickSweep()
	case 7:
		a.ch1.TickEnvelope()
		a.ch2.TickEnvelope()
	}
	a.seqStep = (a.seqStep + 1) % 8
}

// Sample mixes both channels at cycle into a single [-1, 1] value. Stereo
// panning is tracked but the core exposes only a mono pull, matching the
// spec's single-stream audio sink contract.
func (a *APU) Sample(cycle uint64) float64 {
	if !a.power {
		return 0
	}
	mix := a.ch1.Sample(cycle) + a.ch2.Sample(cycle)
	return mix / 2
}

func (a *APU) ReadRegister(addr uint16) uint8 {
	switch addr {
	case ioaddr.NR10:
		v := uint8(0x80)
		v |= a.ch1.sweepPeriod << 4
		if a.ch1.sweepDown {
			v |= 0x08
		}
		v |= a.ch1.sweepShift
		return v
	case ioaddr.NR11:
		return a.ch1.duty<<6 | 0x3F
	case ioaddr.NR12:
		return envelopeByte(a.ch1)
	case ioaddr.NR13:
		return 0xFF
	case ioaddr.NR14:
		v := uint8(0xBF)
		if a.ch1.lengthEnable {
			v |= 0x40
		}
		return v
	case ioaddr.NR21:
		return a.ch2.duty<<6 | 0x3F
	case ioaddr.NR22:
		return envelopeByte(a.ch2)
	case ioaddr.NR23:
		return 0xFF
	case ioaddr.NR24:
		v := uint8(0xBF)
		if a.ch2.lengthEnable {
			v |= 0x40
		}
		return v
	case ioaddr.NR50:
		return a.volLeft<<4 | a.volRight
	case ioaddr.NR51:
		return panningByte(a)
	case ioaddr.NR52:
		return a.nr52()
	}
	return 0xFF
}

func envelopeByte(s *Square) uint8 {
	v := s.volumeInitial << 4
	if s.envelopeUp {
		v |= 0x08
	}
	v |= s.envelopePeriod
	return v
}

func panningByte(a *APU) uint8 {
	var v uint8
	if a.ch1Right {
		v |= 0x01
	}
	if a.ch2Right {
		v |= 0x02
	}
	if a.ch1Left {
		v |= 0x10
	}
	if a.ch2Left {
		v |= 0x20
	}
	return v
}

func (a *APU) nr52() uint8 {
	v := uint8(0x70)
	if a.power {
		v |= 0x80
	}
	if a.ch1.enabled {
		v |= 0x01
	}
	if a.ch2.enabled {
		v |= 0x02
	}
	return v
}

func (a *APU) WriteRegister(addr uint16, value uint8) {
	if !a.power && addr != ioaddr.NR52 {
		return
	}
	switch addr {
	case ioaddr.NR10:
		a.ch1.sweepPeriod = (value >> 4) & 0x07
		a.ch1.sweepDown = value&0x08 != 0
		a.ch1.sweepShift = value & 0x07
	case ioaddr.NR11:
		a.ch1.duty = (value >> 6) & 0x03
		a.ch1.lengthLoad = value & 0x3F
		a.ch1.length = 64 - a.ch1.lengthLoad
	case ioaddr.NR12:
		a.ch1.volumeInitial = (value >> 4) & 0x0F
		a.ch1.envelopeUp = value&0x08 != 0
		a.ch1.envelopePeriod = value & 0x07
		a.ch1.dacOn = value&0xF8 != 0
		if !a.ch1.dacOn {
			a.ch1.enabled = false
		}
	case ioaddr.NR13:
		a.ch1.frequency = (a.ch1.frequency &^ 0xFF) | uint16(value)
	case ioaddr.NR14:
		a.ch1.frequency = (a.ch1.frequency & 0xFF) | uint16(value&0x07)<<8
		a.ch1.lengthEnable = value&0x40 != 0
		if value&0x80 != 0 {
			a.ch1.Trigger()
		}
	case ioaddr.NR21:
		a.ch2.duty = (value >> 6) & 0x03
		a.ch2.lengthLoad = value & 0x3F
		a.ch2.length = 64 - a.ch2.lengthLoad
	case ioaddr.NR22:
		a.ch2.volumeInitial = (value >> 4) & 0x0F
		a.ch2.envelopeUp = value&0x08 != 0
		a.ch2.envelopePeriod = value & 0x07
		a.ch2.dacOn = value&0xF8 != 0
		if !a.ch2.dacOn {
			a.ch2.enabled = false
		}
	case ioaddr.NR23:
		a.ch2.frequency = (a.ch2.frequency &^ 0xFF) | uint16(value)
	case ioaddr.NR24:
		a.ch2.frequency = (a.ch2.frequency & 0xFF) | uint16(value&0x07)<<8
		a.ch2.lengthEnable = value&0x40 != 0
		if value&0x80 != 0 {
			a.ch2.Trigger()
		}
	case ioaddr.NR50:
		a.volLeft = (value >> 4) & 0x07
		a.volRight = value & 0x07
	case ioaddr.NR51:
		a.ch1Right = value&0x01 != 0
		a.ch2Right = value&0x02 != 0
		a.ch1Left = value&0x10 != 0
		a.ch2Left = value&0x20 != 0
	case ioaddr.NR52:
		a.power = value&0x80 != 0
		if !a.power {
			*a.ch1 = Square{hasSweep: true}
			*a.ch2 = Square{hasSweep: false}
			a.volLeft, a.volRight = 0, 0
			a.ch1Left, a.ch1Right, a.ch2Left, a.ch2Right = false, false, false, false
		}
	}
}
