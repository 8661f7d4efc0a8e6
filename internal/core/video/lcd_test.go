package video

import (
	"testing"

	"github.com/kestrelmark/goboycore/internal/core/ioaddr"
	"github.com/stretchr/testify/assert"
)

func TestPaletteConvert(t *testing.T) {
	assert.Equal(t, uint8(0b11), paletteConvert(0, 0b11))
	assert.Equal(t, uint8(0b00), paletteConvert(3, 0b00111111))
	assert.Equal(t, uint8(0b01), paletteConvert(1, 0b0100))
}

func TestWriteVRAM_RefreshesTileCache(t *testing.T) {
	l := New()

	l.WriteVRAM(0x8000, 0x3C)
	l.WriteVRAM(0x8001, 0x7E)

	assert.Equal(t, tileRow{0, 2, 3, 3, 3, 3, 2, 0}, l.tiles[0].rows[0])
}

func TestWriteOAM_RefreshesSpriteCache(t *testing.T) {
	l := New()

	l.WriteOAM(ioaddr.OAMStart, 20)     // Y
	l.WriteOAM(ioaddr.OAMStart+1, 30)   // X
	l.WriteOAM(ioaddr.OAMStart+2, 0x05) // tile
	l.WriteOAM(ioaddr.OAMStart+3, 0x80) // behind BG

	assert.Equal(t, sprite{y: 20, x: 30, tileIndex: 0x05, flags: 0x80}, l.sprites[0])
	assert.True(t, l.sprites[0].behindBG())
}

func TestAdvance_OneFrame_RaisesExactlyOneVBlank(t *testing.T) {
	l := New()
	l.WriteRegister(ioaddr.STAT, 0x20) // enable the OAM-scan STAT interrupt too

	var vblanks int
	var cycle uint64
	for i := 0; i < ScreenCycles; i++ {
		cycle++
		interrupts := l.Advance(cycle)
		if interrupts&uint8(ioaddr.VBlank) != 0 {
			vblanks++
		}
	}

	assert.Equal(t, 1, vblanks)
}

func TestAdvance_LYSequence(t *testing.T) {
	l := New()

	seen := map[uint8]bool{}
	var cycle uint64
	for i := 0; i < ScreenCycles; i++ {
		cycle++
		l.Advance(cycle)
		seen[l.ly] = true
	}

	for ly := uint8(0); ly < 154; ly++ {
		assert.True(t, seen[ly], "LY=%d should occur", ly)
	}
}

func TestAdvance_LCDDisabled_NoProgress(t *testing.T) {
	l := New()
	l.WriteRegister(ioaddr.LCDC, 0x00)

	interrupts := l.Advance(1000)

	assert.Equal(t, uint8(0), interrupts)
	assert.Equal(t, uint8(0), l.ly)
}

func TestNextEventCycle_AdvancesToTransition(t *testing.T) {
	l := New()

	next := l.NextEventCycle(0)

	assert.Equal(t, uint64(Mode10Cycles), next)
}
