package video

import (
	"github.com/kestrelmark/goboycore/internal/core/bitutil"
	"github.com/kestrelmark/goboycore/internal/core/ioaddr"
)

// Timing constants derived from the 4.19 MHz DMG clock (spec section 4.5).
const (
	LineCycles   = 456
	HblankCycles = 204
	Mode10Cycles = 80
	ScreenCycles = 154 * LineCycles
	VblankCycles = 10 * LineCycles

	transferCycles = LineCycles - HblankCycles - Mode10Cycles // mode 11 (drawing)
)

type mode uint8

const (
	modeHBlank mode = iota
	modeVBlank
	modeOAMScan
	modeTransfer
)

// LCD owns VRAM, OAM, the decoded tile/sprite caches, the scanline timing
// state machine and the double-buffered framebuffer. It is driven purely by
// the cycle counter the CPU passes into Advance; it never calls back into
// the CPU.
type LCD struct {
	vram [0x2000]byte
	oam  [0xA0]byte

	tiles   [384]tile
	sprites [40]sprite

	lcdc, stat             uint8
	scy, scx               uint8
	ly, lyc                uint8
	bgp, obp0, obp1        uint8
	wy, wx                 uint8

	mode        mode
	modeCounter int
	lastCycle   uint64

	buf *doubleBuffer
}

// New creates an LCD with registers at their documented power-on values.
func New() *LCD {
	l := &LCD{buf: newDoubleBuffer()}
	l.Reset()
	return l
}

func (l *LCD) Reset() {
	l.lcdc = 0x91
	l.stat = 0x85
	l.scy, l.scx = 0, 0
	l.ly, l.lyc = 0, 0
	l.bgp, l.obp0, l.obp1 = 0xFC, 0xFF, 0xFF
	l.wy, l.wx = 0, 0
	l.mode = modeOAMScan
	l.modeCounter = 0
	l.lastCycle = 0
}

func (l *LCD) enabled() bool { return bitutil.IsSet(7, l.lcdc) }

func (l *LCD) setSTATMode(m mode) {
	l.mode = m
	l.stat = (l.stat &^ 0x03) | uint8(m)
}

// Framebuffer returns the last fully-rendered frame.
func (l *LCD) Framebuffer() *FrameBuffer { return l.buf.front }

// ReadVRAM/WriteVRAM expose the 0x8000-0x9FFF window. Writes into the tile
// data area (0x8000-0x97FF) eagerly refresh the affected tile's decoded row.
func (l *LCD) ReadVRAM(addr uint16) uint8 { return l.vram[addr-ioaddr.VRAMStart] }

func (l *LCD) WriteVRAM(addr uint16, value uint8) {
	offset := addr - ioaddr.VRAMStart
	l.vram[offset] = value
	if offset < 0x1800 {
		l.refreshTile(int(offset / 16))
	}
}

func (l *LCD) refreshTile(index int) {
	base := index * 16
	for row := 0; row < 8; row++ {
		low := l.vram[base+row*2]
		high := l.vram[base+row*2+1]
		l.tiles[index].rows[row] = decodeTileRow(low, high)
	}
}

func (l *LCD) ReadOAM(addr uint16) uint8 { return l.oam[addr-ioaddr.OAMStart] }

func (l *LCD) WriteOAM(addr uint16, value uint8) {
	offset := addr - ioaddr.OAMStart
	l.oam[offset] = value
	l.refreshSprite(int(offset / 4))
}

// WriteOAMByte is used by DMA, which copies raw bytes directly rather than
// going through the normal bus-write path.
func (l *LCD) WriteOAMByte(index int, value uint8) {
	l.oam[index] = value
	l.refreshSprite(index / 4)
}

func (l *LCD) refreshSprite(index int) {
	if index < 0 || index >= 40 {
		return
	}
	base := index * 4
	l.sprites[index] = decodeSprite(l.oam[base], l.oam[base+1], l.oam[base+2], l.oam[base+3])
}

// ReadRegister/WriteRegister expose LCDC, STAT, SCY/SCX, LY, LYC, BGP,
// OBP0/OBP1, WY/WX. LY and the mode bits of STAT are read-only from the
// bus's perspective; writes to LY are silently discarded and writes to
// STAT preserve the mode/coincidence bits.
func (l *LCD) ReadRegister(addr uint16) uint8 {
	switch addr {
	case ioaddr.LCDC:
		return l.lcdc
	case ioaddr.STAT:
		return l.stat | 0x80
	case ioaddr.SCY:
		return l.scy
	case ioaddr.SCX:
		return l.scx
	case ioaddr.LY:
		return l.ly
	case ioaddr.LYC:
		return l.lyc
	case ioaddr.BGP:
		return l.bgp
	case ioaddr.OBP0:
		return l.obp0
	case ioaddr.OBP1:
		return l.obp1
	case ioaddr.WY:
		return l.wy
	case ioaddr.WX:
		return l.wx
	}
	return 0xFF
}

func (l *LCD) WriteRegister(addr uint16, value uint8) {
	switch addr {
	case ioaddr.LCDC:
		wasEnabled := l.enabled()
		l.lcdc = value
		if wasEnabled && !l.enabled() {
			l.ly = 0
			l.mode = modeHBlank
			l.modeCounter = 0
		}
	case ioaddr.STAT:
		l.stat = (l.stat & 0x07) | (value &^ 0x07)
	case ioaddr.SCY:
		l.scy = value
	case ioaddr.SCX:
		l.scx = value
	case ioaddr.LY:
		// read-only
	case ioaddr.LYC:
		l.lyc = value
	case ioaddr.BGP:
		l.bgp = value
	case ioaddr.OBP0:
		l.obp0 = value
	case ioaddr.OBP1:
		l.obp1 = value
	case ioaddr.WY:
		l.wy = value
	case ioaddr.WX:
		l.wx = value
	}
}

func (l *LCD) checkLYC(interrupts *uint8) {
	if l.ly == l.lyc {
		l.stat |= 0x04
		if bitutil.IsSet(6, l.stat) {
			*interrupts |= uint8(ioaddr.LCDSTAT)
		}
	} else {
		l.stat &^= 0x04
	}
}

// Advance drives the LCD's timing state machine up to the given absolute
// cycle, returning every interrupt bit raised by any edge crossed in this
// call OR-ed together (spec section 9, open question (b): a peripheral
// pump must never silently drop a coincident edge).
func (l *LCD) Advance(cycle uint64) uint8 {
	delta := cycle - l.lastCycle
	l.lastCycle = cycle

	if !l.enabled() {
		return 0
	}

	var interrupts uint8
	for i := uint64(0); i < delta; i++ {
		l.modeCounter++

		switch l.mode {
		case modeOAMScan:
			if l.modeCounter >= Mode10Cycles {
				l.modeCounter = 0
				l.setSTATMode(modeTransfer)
			}
		case modeTransfer:
			if l.modeCounter >= transferCycles {
				l.modeCounter = 0
				l.renderScanline()
				l.setSTATMode(modeHBlank)
				if bitutil.IsSet(3, l.stat) {
					interrupts |= uint8(ioaddr.LCDSTAT)
				}
			}
		case modeHBlank:
			if l.modeCounter >= HblankCycles {
				l.modeCounter = 0
				l.ly++
				if l.ly == 144 {
					l.setSTATMode(modeVBlank)
					l.buf.swap()
					interrupts |= uint8(ioaddr.VBlank)
					if bitutil.IsSet(4, l.stat) {
						interrupts |= uint8(ioaddr.LCDSTAT)
					}
				} else {
					l.setSTATMode(modeOAMScan)
					if bitutil.IsSet(5, l.stat) {
						interrupts |= uint8(ioaddr.LCDSTAT)
					}
				}
				l.checkLYC(&interrupts)
			}
		case modeVBlank:
			if l.modeCounter >= LineCycles {
				l.modeCounter = 0
				l.ly++
				if l.ly == 154 {
					l.ly = 0
					l.setSTATMode(modeOAMScan)
					if bitutil.IsSet(5, l.stat) {
						interrupts |= uint8(ioaddr.LCDSTAT)
					}
				}
				l.checkLYC(&interrupts)
			}
		}
	}

	return interrupts
}

// NextEventCycle returns the absolute cycle of the next mode transition at
// or after from, letting a halted CPU fast-forward instead of stepping one
// cycle at a time.
func (l *LCD) NextEventCycle(from uint64) uint64 {
	if !l.enabled() {
		return from
	}

	var duration int
	switch l.mode {
	case modeOAMScan:
		duration = Mode10Cycles
	case modeTransfer:
		duration = transferCycles
	case modeHBlank:
		duration = HblankCycles
	case modeVBlank:
		duration = LineCycles
	}

	remaining := duration - l.modeCounter
	if remaining < 1 {
		remaining = 1
	}
	return l.lastCycle + uint64(remaining)
}
