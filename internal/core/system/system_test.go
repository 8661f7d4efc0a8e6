package system

import (
	"testing"
	"time"

	"github.com/kestrelmark/goboycore/internal/core/ioaddr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func romOf(size int, code ...uint8) []byte {
	rom := make([]byte, size)
	rom[0x0147] = 0x00
	rom[0x0148] = 0x00
	rom[0x0149] = 0x00
	copy(rom[0x0100:], code)
	return rom
}

func TestFromCart_BootRegisterState(t *testing.T) {
	rom := romOf(0x8000)
	s, err := FromCart(rom)
	require.NoError(t, err)

	assert.Equal(t, uint16(0x0100), s.cpu.PC)
	assert.Equal(t, uint16(0xFFFE), s.cpu.SP)
}

func TestStep_HundredNOPs(t *testing.T) {
	code := make([]uint8, 100)
	rom := romOf(0x8000, code...) // all zero bytes == NOP

	s, err := FromCart(rom)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.NoError(t, s.Step())
	}

	assert.Equal(t, uint16(0x0100+100), s.cpu.PC)
	assert.Equal(t, uint64(400), s.cpu.Cycle)
}

func TestStep_HaltWithLCDOffWakesOnTimerInterrupt(t *testing.T) {
	code := []uint8{
		0x3E, 0x00, 0xEA, 0x40, 0xFF, // LD A,0x00 ; LD (LCDC),A -- turn the LCD off
		0x3E, 0x04, 0xEA, 0x07, 0xFF, // LD A,0x04 ; LD (TAC),A -- timer enabled, bit 9
		0x3E, 0xFF, 0xEA, 0x05, 0xFF, // LD A,0xFF ; LD (TIMA),A -- one tick from overflow
		0x3E, 0x04, 0xEA, 0xFF, 0xFF, // LD A,0x04 ; LD (IE),A -- enable Timer interrupt
		0xFB, // EI
		0x76, // HALT
	}
	rom := romOf(0x8000, code...)

	s, err := FromCart(rom)
	require.NoError(t, err)

	const instructionCount = 10 // 4 LD-pairs + EI + HALT
	for i := 0; i < instructionCount; i++ {
		require.NoError(t, s.Step())
	}
	require.True(t, s.cpu.Halted)

	for i := 0; i < 100000 && s.cpu.Halted; i++ {
		require.NoError(t, s.Step())
	}

	assert.False(t, s.cpu.Halted, "a Timer interrupt must wake a halted CPU even with the LCD disabled")
}

func TestRunFrame_AdvancesAtLeastOneFrame(t *testing.T) {
	rom := romOf(0x8000, 0x00, 0xC3, 0x00, 0x01) // NOP; JP 0x0100
	s, err := FromCart(rom)
	require.NoError(t, err)

	require.NoError(t, s.RunFrame())

	assert.GreaterOrEqual(t, s.cpu.Cycle, uint64(FrameCycles))
}

func TestRunFrame_RaisesVBlank(t *testing.T) {
	rom := romOf(0x8000, 0x00, 0xC3, 0x00, 0x01)
	s, err := FromCart(rom)
	require.NoError(t, err)
	s.mmu.Write(ioaddr.IE, uint8(ioaddr.VBlank))

	require.NoError(t, s.RunFrame())

	// A full frame's worth of cycles must cross at least one vblank edge,
	// which sets the IF bit even though IME is off and nothing dispatched it.
	assert.NotEqual(t, uint8(0), s.mmu.Read(ioaddr.IF)&uint8(ioaddr.VBlank))
}

func TestSetButtonState_TransitionRaisesJoypadInterrupt(t *testing.T) {
	rom := romOf(0x8000)
	s, err := FromCart(rom)
	require.NoError(t, err)

	s.SetButtonState(ButtonA)

	assert.NotEqual(t, uint8(0), s.mmu.Read(ioaddr.IF)&uint8(ioaddr.Joypad))
}

func TestSetButtonState_NoChangeIsNoOp(t *testing.T) {
	rom := romOf(0x8000)
	s, err := FromCart(rom)
	require.NoError(t, err)

	s.SetButtonState(ButtonA)
	s.mmu.Write(ioaddr.IF, 0)
	s.SetButtonState(ButtonA)

	assert.Equal(t, uint8(0), s.mmu.Read(ioaddr.IF)&uint8(ioaddr.Joypad))
}

func TestPullSample_AdvancesSampledCycle(t *testing.T) {
	rom := romOf(0x8000)
	s, err := FromCart(rom)
	require.NoError(t, err)

	before := s.sampleCycle
	s.PullSample(44100)

	assert.Greater(t, s.sampleCycle, before)
	assert.InDelta(t, ClockRate/44100.0, s.sampleCycle-before, 1e-9)
}

func TestRunForDuration_ConvertsDurationToCycles(t *testing.T) {
	rom := romOf(0x8000)
	s, err := FromCart(rom)
	require.NoError(t, err)

	require.NoError(t, s.RunForDuration(time.Millisecond))

	assert.GreaterOrEqual(t, s.cpu.Cycle, uint64(ClockRate/1000))
}

func TestDecodeError_PropagatesFromStep(t *testing.T) {
	rom := romOf(0x8000, 0xD3) // illegal opcode
	s, err := FromCart(rom)
	require.NoError(t, err)

	err = s.Step()

	require.Error(t, err)
}

func TestSnapshotRestoreSRAM_RoundTrip(t *testing.T) {
	rom := romOf(0x8000)
	rom[0x0147] = 0x03 // MBC1+RAM+BATTERY
	rom[0x0149] = 0x02 // 8KiB RAM
	s, err := FromCart(rom)
	require.NoError(t, err)

	data := make([]byte, 0x2000)
	data[0] = 0x99
	s.RestoreSRAM(data)

	got := s.SnapshotSRAM()
	require.NotNil(t, got)
	assert.Equal(t, uint8(0x99), got[0])
}
