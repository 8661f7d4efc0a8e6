package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PrimaryTable(t *testing.T) {
	tests := []struct {
		name       string
		window     [3]byte
		wantLength uint8
		wantCycles uint8
	}{
		{"NOP", [3]byte{0x00, 0, 0}, 1, 4},
		{"LD B,n", [3]byte{0x06, 0x42, 0}, 2, 8},
		{"LD (HL),B", [3]byte{0x70, 0, 0}, 1, 8},
		{"INC (HL)", [3]byte{0x34, 0, 0}, 1, 12},
		{"ADD A,(HL)", [3]byte{0x86, 0, 0}, 1, 8},
		{"JP nn", [3]byte{0xC3, 0x00, 0x01}, 3, 16},
		{"CALL nn", [3]byte{0xCD, 0x00, 0x01}, 3, 24},
		{"RST 38h", [3]byte{0xFF, 0, 0}, 1, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instr, ok := decode(tt.window)
			require.True(t, ok)
			assert.Equal(t, tt.wantLength, instr.Length)
			assert.Equal(t, tt.wantCycles, instr.BaseCycles)
			assert.NotNil(t, instr.Exec)
		})
	}
}

func TestDecode_IllegalOpcodes(t *testing.T) {
	for _, op := range illegalOpcodes {
		t.Run("", func(t *testing.T) {
			_, ok := decode([3]byte{op, 0, 0})
			assert.False(t, ok)
		})
	}
}

func TestDecode_CBPrefixed(t *testing.T) {
	tests := []struct {
		name       string
		window     [3]byte
		wantCycles uint8
	}{
		{"RLC B", [3]byte{0xCB, 0x00, 0}, 8},
		{"BIT 0,B", [3]byte{0xCB, 0x40, 0}, 8},
		{"BIT 0,(HL)", [3]byte{0xCB, 0x46, 0}, 12},
		{"RES 0,(HL)", [3]byte{0xCB, 0x86, 0}, 16},
		{"SET 7,A", [3]byte{0xCB, 0xFF, 0}, 8},
		{"SWAP A", [3]byte{0xCB, 0x37, 0}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instr, ok := decode(tt.window)
			require.True(t, ok)
			assert.Equal(t, uint8(2), instr.Length)
			assert.Equal(t, tt.wantCycles, instr.BaseCycles)
		})
	}
}

func TestDecode_CBNeverIllegal(t *testing.T) {
	for op := 0; op <= 0xFF; op++ {
		_, ok := decode([3]byte{0xCB, byte(op), 0})
		assert.True(t, ok)
	}
}

func TestDecode_EveryLegalOpcodeHasExec(t *testing.T) {
	for op := 0; op <= 0xFF; op++ {
		if isIllegal(uint8(op)) {
			continue
		}
		instr, ok := decode([3]byte{byte(op), 0, 0})
		require.True(t, ok, "opcode 0x%02X", op)
		assert.NotNil(t, instr.Exec, "opcode 0x%02X", op)
		assert.Greater(t, instr.Length, uint8(0), "opcode 0x%02X", op)
	}
}
