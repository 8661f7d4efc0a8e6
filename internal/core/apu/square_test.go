package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTriggeredSquare(hasSweep bool, frequency uint16, duty uint8, volume uint8) *Square {
	s := NewSquare(hasSweep)
	s.frequency = frequency
	s.duty = duty
	s.volumeInitial = volume
	s.dacOn = true
	s.Trigger()
	return s
}

func TestSquare_DutyStepAdvancesEveryPeriod(t *testing.T) {
	s := newTriggeredSquare(false, 2000, 0, 15)
	require := 4 * (2048 - 2000)
	assert.Equal(t, uint64(require), s.period())

	first := s.Sample(0)
	last := s.Sample(uint64(require) * 7)

	assert.Equal(t, -1.0, first)
	assert.Equal(t, 1.0, last)
}

func TestSquare_FrequencyAtMaxDisablesOutput(t *testing.T) {
	s := newTriggeredSquare(false, 2048, 0, 15)

	assert.Equal(t, uint64(0), s.period())
	assert.Equal(t, 0.0, s.Sample(100))
}

func TestSquare_LengthSilencesChannel(t *testing.T) {
	s := newTriggeredSquare(false, 1000, 0, 15)
	s.lengthLoad = 63
	s.length = 1
	s.lengthEnable = true

	s.TickLength()

	assert.False(t, s.enabled)
	assert.Equal(t, 0.0, s.Sample(100))
}

func TestSquare_EnvelopeSaturates(t *testing.T) {
	s := newTriggeredSquare(false, 1000, 0, 0)
	s.envelopeUp = true
	s.envelopePeriod = 1
	s.envelopeTimer = 1

	for i := 0; i < 20; i++ {
		s.TickEnvelope()
	}

	assert.Equal(t, uint8(15), s.volume)
}

func TestSquare_SweepDisablesOnOverflow(t *testing.T) {
	s := newTriggeredSquare(true, 2000, 0, 15)
	s.sweepPeriod = 1
	s.sweepShift = 1
	s.sweepTimer = 1
	s.shadowFreq = 2000

	for i := 0; i < 5; i++ {
		s.TickSweep()
	}

	assert.False(t, s.enabled)
}
