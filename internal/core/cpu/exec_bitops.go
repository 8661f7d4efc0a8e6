package cpu

// Rotate/shift/swap/bit-family execution, covering both the 0xCB-prefixed
// table and the four unprefixed accumulator rotates (RLCA/RLA/RRCA/RRA).

func execRLCA(c *CPU, _ [3]byte) int {
	c.A, c.F = RotateAccumulator(shiftRLC, c.A, c.HasFlag(FlagC))
	return 4
}
func execRLA(c *CPU, _ [3]byte) int {
	c.A, c.F = RotateAccumulator(shiftRL, c.A, c.HasFlag(FlagC))
	return 4
}
func execRRCA(c *CPU, _ [3]byte) int {
	c.A, c.F = RotateAccumulator(shiftRRC, c.A, c.HasFlag(FlagC))
	return 4
}
func execRRA(c *CPU, _ [3]byte) int {
	c.A, c.F = RotateAccumulator(shiftRR, c.A, c.HasFlag(FlagC))
	return 4
}

func execCBRotate(kind shiftKind, reg uint8) instrFunc {
	return func(c *CPU, _ [3]byte) int {
		v := c.reg8(reg)
		v, c.F = rotateShift(kind, v, c.HasFlag(FlagC))
		c.setReg8(reg, v)
		if reg == 6 {
			return 16
		}
		return 8
	}
}

func execCBSwap(reg uint8) instrFunc {
	return func(c *CPU, _ [3]byte) int {
		v := c.reg8(reg)
		v, c.F = Swap(v)
		c.setReg8(reg, v)
		if reg == 6 {
			return 16
		}
		return 8
	}
}

func execCBBit(bitIdx, reg uint8) instrFunc {
	return func(c *CPU, _ [3]byte) int {
		c.F = Bit(bitIdx, c.reg8(reg), c.F)
		if reg == 6 {
			return 12
		}
		return 8
	}
}

func execCBRes(bitIdx, reg uint8) instrFunc {
	return func(c *CPU, _ [3]byte) int {
		v := c.reg8(reg) &^ (1 << bitIdx)
		c.setReg8(reg, v)
		if reg == 6 {
			return 16
		}
		return 8
	}
}

func execCBSet(bitIdx, reg uint8) instrFunc {
	return func(c *CPU, _ [3]byte) int {
		v := c.reg8(reg) | (1 << bitIdx)
		c.setReg8(reg, v)
		if reg == 6 {
			return 16
		}
		return 8
	}
}
