package video

import "github.com/kestrelmark/goboycore/internal/core/bitutil"

// sprite is the decoded form of one 4-byte OAM entry, refreshed eagerly on
// any write into that entry's 4 bytes.
type sprite struct {
	y, x      uint8
	tileIndex uint8
	flags     uint8
}

func decodeSprite(y, x, tileIndex, flags uint8) sprite {
	return sprite{y: y, x: x, tileIndex: tileIndex, flags: flags}
}

func (s sprite) paletteOBP1() bool { return bitutil.IsSet(4, s.flags) }
func (s sprite) flipX() bool       { return bitutil.IsSet(5, s.flags) }
func (s sprite) flipY() bool       { return bitutil.IsSet(6, s.flags) }
func (s sprite) behindBG() bool    { return bitutil.IsSet(7, s.flags) }
