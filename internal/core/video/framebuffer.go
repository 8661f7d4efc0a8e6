package video

// Package video implements the DMG LCD: scanline timing, the tile/sprite
// decode caches, and the double-buffered RGBA framebuffer.

const (
	Width  = 160
	Height = 144
)

// Palette is the hard-coded 4-shade RGBA palette every BGP/OBP0/OBP1 color
// index is mapped through before it reaches the framebuffer.
var Palette = [4][4]uint8{
	{234, 255, 186, 255},
	{150, 187, 146, 255},
	{68, 106, 81, 255},
	{0, 14, 2, 255},
}

// FrameBuffer is a 160x144 grid of RGBA pixels.
type FrameBuffer struct {
	pixels [Width * Height][4]uint8
}

func (f *FrameBuffer) set(x, y int, colorIndex uint8) {
	f.pixels[y*Width+x] = Palette[colorIndex&3]
}

// At returns the RGBA bytes at (x,y).
func (f *FrameBuffer) At(x, y int) [4]uint8 { return f.pixels[y*Width+x] }

// Pixels returns the whole buffer as a flat RGBA byte slice, 4 bytes/pixel.
func (f *FrameBuffer) Pixels() []byte {
	out := make([]byte, 0, Width*Height*4)
	for _, p := range f.pixels {
		out = append(out, p[0], p[1], p[2], p[3])
	}
	return out
}

// doubleBuffer holds the in-progress and last-completed frames; Swap is
// called once per vblank rising edge.
type doubleBuffer struct {
	front *FrameBuffer
	back  *FrameBuffer
}

func newDoubleBuffer() *doubleBuffer {
	return &doubleBuffer{front: &FrameBuffer{}, back: &FrameBuffer{}}
}

func (d *doubleBuffer) swap() { d.front, d.back = d.back, d.front }
