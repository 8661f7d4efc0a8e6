// Package cart parses Game Boy ROM headers and implements the memory bank
// controllers (MBC0/1/2/3/5) that back the cartridge address windows
// (0x0000-0x7FFF, 0xA000-0xBFFF).
package cart

// Header field offsets within the 0x150-byte cartridge header.
const (
	titleAddress         = 0x134
	titleLength          = 16
	cartridgeTypeAddress = 0x147
	romSizeAddress       = 0x148
	ramSizeAddress       = 0x149
)

// Header is the decoded subset of the cartridge header this core needs to
// pick an MBC and size its RAM.
type Header struct {
	Title    string
	Type     uint8
	ROMBanks int
	RAMBanks int
}

// ramBankCounts maps the RAM-size header byte to a bank count (8KiB each).
// 0x01 (a single partial 2KiB bank) is rounded up to one full bank; any
// byte not listed here is treated as no RAM rather than rejected.
var ramBankCounts = map[uint8]int{
	0x00: 0,
	0x01: 1,
	0x02: 1,
	0x03: 4,
	0x04: 16,
	0x05: 8,
}

// parseHeader reads Header fields out of a ROM image. It does not validate
// the header checksum; a corrupt checksum does not, on real hardware,
// prevent the cartridge from running.
func parseHeader(rom []byte) Header {
	h := Header{
		Type:     rom[cartridgeTypeAddress],
		ROMBanks: 2 << rom[romSizeAddress],
		RAMBanks: ramBankCounts[rom[ramSizeAddress]],
	}

	end := titleAddress + titleLength
	for i := titleAddress; i < end; i++ {
		b := rom[i]
		if b == 0 {
			break
		}
		h.Title += string(rune(b))
	}

	return h
}

// hasBattery reports whether the cartridge type byte names a battery-backed
// variant (exposed as Cartridge.HasBattery). SnapshotSRAM does not consult
// it: it copies any external RAM.
func hasBattery(cartType uint8) bool {
	switch cartType {
	case 0x03, 0x06, 0x09, 0x0D, 0x0F, 0x10, 0x13, 0x1B, 0x1E, 0x22, 0xFF:
		return true
	}
	return false
}

func hasRTC(cartType uint8) bool {
	return cartType == 0x0F || cartType == 0x10
}

func hasRumble(cartType uint8) bool {
	switch cartType {
	case 0x1C, 0x1D, 0x1E:
		return true
	}
	return false
}
