package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name       string
		a, b       uint8
		wantResult uint8
		wantFlags  uint8
	}{
		{"no carry", 0x01, 0x01, 0x02, 0},
		{"zero result", 0x00, 0x00, 0x00, FlagZ},
		{"half carry", 0x0F, 0x01, 0x10, FlagH},
		{"full carry", 0xFF, 0x01, 0x00, FlagZ | FlagH | FlagC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, flags := Add(tt.a, tt.b)
			assert.Equal(t, tt.wantResult, result)
			assert.Equal(t, tt.wantFlags, flags)
		})
	}
}

func TestSub(t *testing.T) {
	tests := []struct {
		name       string
		a, b       uint8
		wantResult uint8
		wantFlags  uint8
	}{
		{"no borrow", 0x02, 0x01, 0x01, FlagN},
		{"zero result", 0x01, 0x01, 0x00, FlagZ | FlagN},
		{"half borrow", 0x10, 0x01, 0x0F, FlagN | FlagH},
		{"full borrow", 0x00, 0x01, 0xFF, FlagN | FlagH | FlagC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, flags := Sub(tt.a, tt.b)
			assert.Equal(t, tt.wantResult, result)
			assert.Equal(t, tt.wantFlags, flags)
		})
	}
}

func TestIncDec_PreserveCarry(t *testing.T) {
	result, f := Inc(0xFF, FlagC)
	assert.Equal(t, uint8(0x00), result)
	assert.Equal(t, FlagZ|FlagH|FlagC, f)

	result, f = Dec(0x01, FlagC)
	assert.Equal(t, uint8(0x00), result)
	assert.Equal(t, FlagZ|FlagN|FlagC, f)
}

func TestAnd_AlwaysSetsHalfCarry(t *testing.T) {
	_, f := And(0xFF, 0x00)
	assert.Equal(t, FlagZ|FlagH, f)
}

func TestOrXor_ClearHalfCarryAndCarry(t *testing.T) {
	_, f := Or(0x00, 0x00)
	assert.Equal(t, FlagZ, f)

	_, f = Xor(0xFF, 0xFF)
	assert.Equal(t, FlagZ, f)
}

func TestAdd16_PreservesZ(t *testing.T) {
	result, f := Add16(0xFFFF, 0x0001, FlagZ)
	assert.Equal(t, uint16(0x0000), result)
	assert.Equal(t, FlagZ|FlagH|FlagC, f)

	result, f = Add16(0x0FFF, 0x0001, 0)
	assert.Equal(t, uint16(0x1000), result)
	assert.Equal(t, FlagH, f)
}

func TestAddSPSigned_FlagsFromLowByte(t *testing.T) {
	result, f := AddSPSigned(0x00FF, 1)
	assert.Equal(t, uint16(0x0100), result)
	assert.Equal(t, FlagH|FlagC, f)

	result, f = AddSPSigned(0x0005, -1)
	assert.Equal(t, uint16(0x0004), result)
}

func TestRotateShift_RLC(t *testing.T) {
	result, f := rotateShift(shiftRLC, 0x80, false)
	assert.Equal(t, uint8(0x01), result)
	assert.Equal(t, FlagC, f)
}

func TestRotateShift_SRA_PreservesSignBit(t *testing.T) {
	result, _ := rotateShift(shiftSRA, 0x80, false)
	assert.Equal(t, uint8(0xC0), result)
}

func TestRotateAccumulator_NeverSetsZ(t *testing.T) {
	_, f := RotateAccumulator(shiftRLC, 0x00, false)
	assert.Equal(t, uint8(0), f)
}

func TestSwap(t *testing.T) {
	result, f := Swap(0xAB)
	assert.Equal(t, uint8(0xBA), result)
	assert.Equal(t, uint8(0), f)

	_, f = Swap(0x00)
	assert.Equal(t, FlagZ, f)
}

func TestBit_PreservesCarry(t *testing.T) {
	f := Bit(7, 0x80, FlagC)
	assert.Equal(t, FlagH|FlagC, f)

	f = Bit(7, 0x00, 0)
	assert.Equal(t, FlagZ|FlagH, f)
}

func TestDecimalAdjust_AfterAdd(t *testing.T) {
	// 0x45 + 0x38 = 0x7D binary, which is not valid BCD for the low nibble
	// sum (5+8=13); DAA should correct it to 0x83.
	a, f := Add(0x45, 0x38)
	assert.Equal(t, uint8(0x7D), a)
	a, f = DecimalAdjust(a, f)
	assert.Equal(t, uint8(0x83), a)
	assert.False(t, f&FlagC != 0)
}

func TestDecimalAdjust_AfterSubWithBorrow(t *testing.T) {
	a, f := Sub(0x00, 0x01)
	a, f = DecimalAdjust(a, f)
	assert.Equal(t, uint8(0x99), a)
	assert.True(t, f&FlagC != 0)
}
