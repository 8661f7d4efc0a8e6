package video

import "github.com/kestrelmark/goboycore/internal/core/bitutil"

// tileRow is one decoded 8x8 tile row: 8 color indices in 0-3, derived from
// the two bit-plane bytes VRAM stores it as.
type tileRow [8]uint8

func decodeTileRow(low, high uint8) tileRow {
	var row tileRow
	for x := 0; x < 8; x++ {
		bitIdx := uint8(7 - x)
		pixel := uint8(0)
		if bitutil.IsSet(bitIdx, low) {
			pixel |= 1
		}
		if bitutil.IsSet(bitIdx, high) {
			pixel |= 2
		}
		row[x] = pixel
	}
	return row
}

// tile is the fully decoded form of one 16-byte VRAM tile, refreshed
// eagerly whenever either of its bytes is written (spec section 9: no lazy
// recompute in the render path).
type tile struct {
	rows [8]tileRow
}
