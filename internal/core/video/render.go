package video

import "github.com/kestrelmark/goboycore/internal/core/bitutil"

// renderScanline draws the current LY row into the back buffer, at the
// start of hblank exactly as real hardware commits a scanline's pixels
// (spec section 4.5). bgColorIndex tracks the raw (pre-palette) background
// color index per pixel so sprite priority can test against "background
// color 0" specifically, not the post-palette RGBA value.
func (l *LCD) renderScanline() {
	if int(l.ly) >= Height {
		return
	}

	var bgColorIndex [Width]uint8

	if bitutil.IsSet(0, l.lcdc) {
		l.renderBackground(&bgColorIndex)
		l.renderWindow(&bgColorIndex)
	}

	if bitutil.IsSet(1, l.lcdc) {
		l.renderSprites(&bgColorIndex)
	}
}

func (l *LCD) bgTileMapBase() uint16 {
	if bitutil.IsSet(3, l.lcdc) {
		return 0x9C00
	}
	return 0x9800
}

func (l *LCD) windowTileMapBase() uint16 {
	if bitutil.IsSet(6, l.lcdc) {
		return 0x9C00
	}
	return 0x9800
}

// tileIndexAt looks up the tile number stored in a background/window map at
// (col, row) of 32x32 tiles, then resolves it to a tile-cache index using
// either unsigned (0x8000 base) or signed (0x9000 base, tiles -128..127)
// addressing per LCDC bit 4.
func (l *LCD) tileIndexAt(mapBase uint16, col, row int) int {
	addr := mapBase + uint16(row*32+col) - 0x8000
	raw := l.vram[addr]

	if bitutil.IsSet(4, l.lcdc) {
		return int(raw)
	}
	return 256 + int(int8(raw))
}

func (l *LCD) renderBackground(bgColorIndex *[Width]uint8) {
	mapBase := l.bgTileMapBase()
	y := (int(l.ly) + int(l.scy)) % 256

	for x := 0; x < Width; x++ {
		translatedX := (x + int(l.scx)) % 256
		col := translatedX / 8
		row := y / 8

		tileIdx := l.tileIndexAt(mapBase, col, row)
		t := &l.tiles[tileIdx]
		color := t.rows[y%8][translatedX%8]

		bgColorIndex[x] = color
		l.buf.back.set(x, int(l.ly), paletteConvert(color, l.bgp))
	}
}

func (l *LCD) renderWindow(bgColorIndex *[Width]uint8) {
	if !bitutil.IsSet(5, l.lcdc) {
		return
	}
	if l.wy > l.ly {
		return
	}

	adjustedWX := int(l.wx) - 7
	if adjustedWX >= Width {
		return
	}

	mapBase := l.windowTileMapBase()
	windowY := int(l.ly) - int(l.wy)
	row := windowY / 8

	for x := maxInt(adjustedWX, 0); x < Width; x++ {
		windowX := x - adjustedWX
		col := windowX / 8

		tileIdx := l.tileIndexAt(mapBase, col, row)
		t := &l.tiles[tileIdx]
		color := t.rows[windowY%8][windowX%8]

		bgColorIndex[x] = color
		l.buf.back.set(x, int(l.ly), paletteConvert(color, l.bgp))
	}
}

func (l *LCD) renderSprites(bgColorIndex *[Width]uint8) {
	height := 8
	if bitutil.IsSet(2, l.lcdc) {
		height = 16
	}

	ly := int(l.ly)
	drawn := 0

	for i := 0; i < 40 && drawn < 10; i++ {
		s := l.sprites[i]
		screenY := int(s.y) - 16
		screenX := int(s.x) - 8

		if ly < screenY || ly >= screenY+height {
			continue
		}
		if screenX <= -8 || screenX >= Width {
			continue
		}
		drawn++

		tileRow := ly - screenY
		if s.flipY() {
			tileRow = height - 1 - tileRow
		}

		tileIndex := int(s.tileIndex)
		if height == 16 {
			tileIndex &^= 1
			tileIndex += tileRow / 8
			tileRow %= 8
		}

		row := l.tiles[tileIndex].rows[tileRow]
		palette := l.obp0
		if s.paletteOBP1() {
			palette = l.obp1
		}

		for px := 0; px < 8; px++ {
			x := screenX + px
			if x < 0 || x >= Width {
				continue
			}
			col := px
			if s.flipX() {
				col = 7 - px
			}
			color := row[col]
			if color == 0 {
				continue
			}
			if s.behindBG() && bgColorIndex[x] != 0 {
				continue
			}
			l.buf.back.set(x, ly, paletteConvert(color, palette))
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
