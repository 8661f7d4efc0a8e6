package cpu

// Control-flow execution: jumps, calls, returns, restarts, and the
// processor-control opcodes (NOP/HALT/STOP/DI/EI).

func execNOP(c *CPU, _ [3]byte) int { return 4 }

func execHALT(c *CPU, _ [3]byte) int {
	c.Halted = true
	return 4
}

// execSTOP consumes its throwaway operand byte and otherwise does nothing.
// STOP's low-power/double-speed-switch behavior is a non-goal for this core.
func execSTOP(c *CPU, _ [3]byte) int { return 4 }

func execDI(c *CPU, _ [3]byte) int {
	c.IME = false
	c.imePending = false
	return 4
}

func execEI(c *CPU, _ [3]byte) int {
	c.imePending = true
	return 4
}

func execJPnn(c *CPU, w [3]byte) int {
	c.PC = imm16(w)
	return 16
}

func execJPHL(c *CPU, _ [3]byte) int {
	c.PC = c.HL()
	return 4
}

func execJPcc(cond uint8) instrFunc {
	return func(c *CPU, w [3]byte) int {
		if c.condition(cond) {
			c.PC = imm16(w)
			return 16
		}
		return 12
	}
}

func execJRe(c *CPU, w [3]byte) int {
	c.PC = uint16(int32(c.PC) + int32(immSigned8(w)))
	return 12
}

func execJRcc(cond uint8) instrFunc {
	return func(c *CPU, w [3]byte) int {
		if c.condition(cond) {
			c.PC = uint16(int32(c.PC) + int32(immSigned8(w)))
			return 12
		}
		return 8
	}
}

func execCALLnn(c *CPU, w [3]byte) int {
	c.pushStack(c.PC)
	c.PC = imm16(w)
	return 24
}

func execCALLcc(cond uint8) instrFunc {
	return func(c *CPU, w [3]byte) int {
		if c.condition(cond) {
			c.pushStack(c.PC)
			c.PC = imm16(w)
			return 24
		}
		return 12
	}
}

func execRET(c *CPU, _ [3]byte) int {
	c.PC = c.popStack()
	return 16
}

func execRETI(c *CPU, _ [3]byte) int {
	c.PC = c.popStack()
	c.IME = true
	c.imePending = false
	return 16
}

func execRETcc(cond uint8) instrFunc {
	return func(c *CPU, _ [3]byte) int {
		if c.condition(cond) {
			c.PC = c.popStack()
			return 20
		}
		return 8
	}
}

func execRST(vector uint16) instrFunc {
	return func(c *CPU, _ [3]byte) int {
		c.pushStack(c.PC)
		c.PC = vector
		return 16
	}
}
