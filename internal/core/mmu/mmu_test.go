package mmu

import (
	"testing"

	"github.com/kestrelmark/goboycore/internal/core/ioaddr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func romROM0(size int) []byte {
	rom := make([]byte, size)
	rom[0x0147] = 0x00 // MBC0
	rom[0x0148] = 0x00 // 32KB
	rom[0x0149] = 0x00 // no RAM
	return rom
}

func TestLoadCartridge_RoutesROMReads(t *testing.T) {
	m := New()
	rom := romROM0(0x8000)
	rom[0x0100] = 0xAB
	require.NoError(t, m.LoadCartridge(rom))

	assert.Equal(t, uint8(0xAB), m.Read(0x0100))
}

func TestRead_NoCartridge_ReturnsSentinel(t *testing.T) {
	m := New()

	assert.Equal(t, uint8(0xFF), m.Read(0x0100))
}

func TestWRAM_EchoMirroring(t *testing.T) {
	m := New()

	m.Write(ioaddr.WRAMStart, 0x42)

	assert.Equal(t, uint8(0x42), m.Read(ioaddr.EchoStart))

	m.Write(ioaddr.EchoStart+5, 0x7A)
	assert.Equal(t, uint8(0x7A), m.Read(ioaddr.WRAMStart+5))
}

func TestHRAM_ReadWrite(t *testing.T) {
	m := New()

	m.Write(ioaddr.HRAMStart, 0x11)
	m.Write(ioaddr.HRAMEnd, 0x22)

	assert.Equal(t, uint8(0x11), m.Read(ioaddr.HRAMStart))
	assert.Equal(t, uint8(0x22), m.Read(ioaddr.HRAMEnd))
}

func TestIF_UpperBitsReadAsOne(t *testing.T) {
	m := New()

	m.Write(ioaddr.IF, 0x01)

	assert.Equal(t, uint8(0xE1), m.Read(ioaddr.IF))
}

func TestIE_PlainReadWrite(t *testing.T) {
	m := New()

	m.Write(ioaddr.IE, 0x1F)

	assert.Equal(t, uint8(0x1F), m.Read(ioaddr.IE))
}

func TestJoypad_GroupSelectSynthesis(t *testing.T) {
	m := New()

	m.PressButton(ButtonA)
	m.PressButton(ButtonRight)

	m.Write(ioaddr.P1, 0x00) // select both groups

	assert.Equal(t, uint8(0b11000000), m.Read(ioaddr.P1)&0b11110000)
	assert.Equal(t, uint8(0x0E), m.Read(ioaddr.P1)&0x0F) // bit0 low (A and Right both pressed, AND'd)
}

func TestJoypad_PressRaisesInterruptOnTransition(t *testing.T) {
	m := New()
	m.Write(ioaddr.IE, 0x1F)

	m.PressButton(ButtonStart)

	assert.Equal(t, uint8(ioaddr.Joypad), m.Read(ioaddr.IF)&0x1F)
}

func TestDMA_CopiesOAMAndQueuesCycleCharge(t *testing.T) {
	m := New()
	rom := romROM0(0x8000)
	for i := 0; i < 160; i++ {
		rom[0x4000+i] = uint8(i)
	}
	require.NoError(t, m.LoadCartridge(rom))

	m.Write(ioaddr.DMA, 0x40)

	assert.Equal(t, uint8(0), m.Read(ioaddr.OAMStart))
	assert.Equal(t, uint8(159), m.Read(ioaddr.OAMStart+159))
	assert.Equal(t, uint64(160), m.TakeExtraCycles())
	assert.Equal(t, uint64(0), m.TakeExtraCycles(), "charge is cleared once taken")
}

func TestAdvance_TimerOverflow_RaisesInterrupt(t *testing.T) {
	m := New()
	m.Write(ioaddr.TAC, 0x05) // enabled, bit 3
	m.Write(ioaddr.TIMA, 0xFF)
	m.Write(ioaddr.TMA, 0x10)

	var cycle uint64
	var raised bool
	for i := 0; i < 2000; i++ {
		cycle++
		m.Advance(cycle)
		if m.Read(ioaddr.IF)&uint8(ioaddr.Timer) != 0 {
			raised = true
			break
		}
	}

	assert.True(t, raised)
	assert.Equal(t, uint8(0x10), m.Read(ioaddr.TIMA))
}

func TestAdvance_VBlankInterrupt_PropagatesFromLCD(t *testing.T) {
	m := New()

	var cycle uint64
	var raised bool
	for i := 0; i < 70224; i++ {
		cycle++
		m.Advance(cycle)
		if m.Read(ioaddr.IF)&uint8(ioaddr.VBlank) != 0 {
			raised = true
			break
		}
	}

	assert.True(t, raised)
}

func TestUnusedOAMRegion_ReadsSentinel(t *testing.T) {
	m := New()

	assert.Equal(t, uint8(0xFF), m.Read(0xFEA0))
}

func TestNextEventCycle_LCDDisabled_StillTracksTimerOverflow(t *testing.T) {
	m := New()
	m.Write(ioaddr.LCDC, 0x00) // LCD off
	m.Write(ioaddr.TAC, 0x05)  // enabled, bit 3
	m.Write(ioaddr.TIMA, 0xFF)
	m.Write(ioaddr.TMA, 0x10)

	first := m.NextEventCycle(0)
	require.Greater(t, first, uint64(1), "must jump straight to the timer edge, not single-step")

	var cycle uint64
	for i := 0; i < 2000; i++ {
		next := m.NextEventCycle(cycle)
		require.Greater(t, next, cycle, "NextEventCycle must always progress, even with the LCD disabled")
		cycle = next
		m.Advance(cycle)
		if m.Read(ioaddr.IF)&uint8(ioaddr.Timer) != 0 {
			return
		}
	}

	t.Fatal("timer interrupt never raised while fast-forwarding with the LCD disabled")
}
