// Package apu implements the two square-wave channels of the DMG audio
// processing unit (channels 3 and 4 are a documented non-goal). Channels are
// pure functions of their register state and the CPU cycle counter; sampling
// never mutates anything the CPU can observe, only the channel's own
// duty-step cursor.
package apu

// dutyTable holds the four documented 8-step waveform patterns (12.5%, 25%,
// 50%, 75% duty), each entry 0 (low) or 1 (high).
var dutyTable = [4][8]uint8{
	{0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 1, 1, 1},
	{0, 1, 1, 1, 1, 1, 1, 0},
}

// Square is one square-wave channel: channel 2 has no frequency sweep
// (hasSweep false collapses the sweep unit to a no-op).
type Square struct {
	hasSweep bool

	enabled bool
	dacOn   bool

	frequency uint16 // 11-bit
	duty      uint8  // 0-3
	dutyStep  uint8
	offset    uint64 // cycle at which the current duty step began

	lengthLoad   uint8 // NRx1 bits 5-0 (64 - this = initial counter)
	length       uint8
	lengthEnable bool

	volume         uint8
	volumeInitial  uint8
	envelopeUp     bool
	envelopePeriod uint8
	envelopeTimer  uint8

	sweepPeriod uint8
	sweepDown   bool
	sweepShift  uint8
	sweepTimer  uint8
	shadowFreq  uint16
}

// NewSquare creates a channel; hasSweep selects channel-1 behavior.
func NewSquare(hasSweep bool) *Square {
	return &Square{hasSweep: hasSweep}
}

func (s *Square) period() uint64 {
	if s.frequency >= 2048 {
		return 0
	}
	return 4 * uint64(2048-s.frequency)
}

// Sample advances the duty-step cursor to match cycle and returns the
// channel's output in [-1, 1], or 0 if the channel is inactive, its DAC is
// off, or its period is zero (frequency == 2048).
func (s *Square) Sample(cycle uint64) float64 {
	p := s.period()
	if !s.enabled || !s.dacOn || p == 0 {
		return 0
	}

	steps := (cycle - s.offset) / p
	s.dutyStep = uint8((uint64(s.dutyStep) + steps) % 8)
	s.offset += steps * p

	bit := dutyTable[s.duty][s.dutyStep]
	volNorm := float64(s.volume) / 15.0
	if bit == 0 {
		return -volNorm
	}
	return volNorm
}

// Trigger restarts the channel: reloads the length counter if it is
// currently zero, resets the envelope and (for channel 1) the sweep unit,
// and re-enables output.
func (s *Square) Trigger() {
	if s.length == 0 {
		s.length = 64 - s.lengthLoad
	}
	s.volume = s.volumeInitial
	s.envelopeTimer = s.envelopePeriod
	s.enabled = s.dacOn

	if s.hasSweep {
		s.shadowFreq = s.frequency
		s.sweepTimer = s.sweepPeriod
		if s.sweepTimer == 0 {
			s.sweepTimer = 8
		}
		if s.sweepShift != 0 && s.sweepOverflow(s.shadowFreq) {
			s.enabled = false
		}
	}
}

func (s *Square) sweepOverflow(freq uint16) bool {
	delta := freq >> s.sweepShift
	var next uint16
	if s.sweepDown {
		next = freq - delta
	} else {
		next = freq + delta
	}
	return next > 2047
}

// TickLength runs at 256 Hz: decrements the length counter while enabled,
// silencing the channel when it reaches zero.
func (s *Square) TickLength() {
	if !s.lengthEnable || s.length == 0 {
		return
	}
	s.length--
	if s.length == 0 {
		s.enabled = false
	}
}

// TickEnvelope runs at 64 Hz: steps volume toward 0 or 15 every
// envelopePeriod ticks.
func (s *Square) TickEnvelope() {
	if s.envelopePeriod == 0 {
		return
	}
	if s.envelopeTimer > 0 {
		s.envelopeTimer--
	}
	if s.envelopeTimer == 0 {
		s.envelopeTimer = s.envelopePeriod
		if s.envelopeUp && s.volume < 15 {
			s.volume++
		} else if !s.envelopeUp && s.volume > 0 {
			s.volume--
		}
	}
}

// TickSweep runs at 128 Hz, channel 1 only: recomputes frequency from the
// shadow frequency every sweepPeriod ticks, disabling the channel on
// overflow past 2047.
func (s *Square) TickSweep() {
	if !s.hasSweep || s.sweepPeriod == 0 {
		return
	}
	if s.sweepTimer > 0 {
		s.sweepTimer--
	}
	if s.sweepTimer != 0 {
		return
	}
	s.sweepTimer = s.sweepPeriod

	if s.sweepShift == 0 {
		return
	}
	delta := s.shadowFreq >> s.sweepShift
	var next uint16
	if s.sweepDown {
		next = s.shadowFreq - delta
	} else {
		next = s.shadowFreq + delta
	}
	if next > 2047 {
		s.enabled = false
		return
	}
	s.shadowFreq = next
	s.frequency = next
}
