package cpu

// Load-family execution: 8/16-bit register, immediate and indirect moves.

func execLDrr(dst, src uint8) instrFunc {
	return func(c *CPU, _ [3]byte) int {
		c.setReg8(dst, c.reg8(src))
		if dst == 6 || src == 6 {
			return 8
		}
		return 4
	}
}

func execLDrn(dst uint8) instrFunc {
	return func(c *CPU, w [3]byte) int {
		c.setReg8(dst, imm8(w))
		if dst == 6 {
			return 12
		}
		return 8
	}
}

func execLDrrnn(pair uint8) instrFunc {
	return func(c *CPU, w [3]byte) int {
		c.setReg16sp(pair, imm16(w))
		return 12
	}
}

func execLDBCA(c *CPU, _ [3]byte) int { c.bus.Write(c.BC(), c.A); return 8 }
func execLDDEA(c *CPU, _ [3]byte) int { c.bus.Write(c.DE(), c.A); return 8 }
func execLDHLIA(c *CPU, _ [3]byte) int {
	hl := c.HL()
	c.bus.Write(hl, c.A)
	c.SetHL(hl + 1)
	return 8
}
func execLDHLDA(c *CPU, _ [3]byte) int {
	hl := c.HL()
	c.bus.Write(hl, c.A)
	c.SetHL(hl - 1)
	return 8
}

func execLDABC(c *CPU, _ [3]byte) int { c.A = c.bus.Read(c.BC()); return 8 }
func execLDADE(c *CPU, _ [3]byte) int { c.A = c.bus.Read(c.DE()); return 8 }
func execLDAHLI(c *CPU, _ [3]byte) int {
	hl := c.HL()
	c.A = c.bus.Read(hl)
	c.SetHL(hl + 1)
	return 8
}
func execLDAHLD(c *CPU, _ [3]byte) int {
	hl := c.HL()
	c.A = c.bus.Read(hl)
	c.SetHL(hl - 1)
	return 8
}

func execLDnnSP(c *CPU, w [3]byte) int {
	addr := imm16(w)
	c.bus.Write(addr, byte(c.SP))
	c.bus.Write(addr+1, byte(c.SP>>8))
	return 20
}

func execLDHnA(c *CPU, w [3]byte) int {
	c.bus.Write(0xFF00+uint16(imm8(w)), c.A)
	return 12
}

func execLDHAn(c *CPU, w [3]byte) int {
	c.A = c.bus.Read(0xFF00 + uint16(imm8(w)))
	return 12
}

func execLDCIndA(c *CPU, _ [3]byte) int {
	c.bus.Write(0xFF00+uint16(c.C), c.A)
	return 8
}

func execLDACIndA(c *CPU, _ [3]byte) int {
	c.A = c.bus.Read(0xFF00 + uint16(c.C))
	return 8
}

func execLDnnA(c *CPU, w [3]byte) int {
	c.bus.Write(imm16(w), c.A)
	return 16
}

func execLDAnn(c *CPU, w [3]byte) int {
	c.A = c.bus.Read(imm16(w))
	return 16
}

func execLDSPHL(c *CPU, _ [3]byte) int {
	c.SP = c.HL()
	return 8
}

func execLDHLSPe(c *CPU, w [3]byte) int {
	result, f := AddSPSigned(c.SP, immSigned8(w))
	c.SetHL(result)
	c.F = f
	return 12
}

func execPUSH(pair uint8) instrFunc {
	return func(c *CPU, _ [3]byte) int {
		c.pushStack(c.reg16af(pair))
		return 16
	}
}

func execPOP(pair uint8) instrFunc {
	return func(c *CPU, _ [3]byte) int {
		c.setReg16af(pair, c.popStack())
		return 12
	}
}
