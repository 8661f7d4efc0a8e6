// Package cpu implements the Sharp LR35902 fetch-decode-execute loop: an
// instruction-atomic interpreter whose only notion of sub-instruction time is
// the declared cycle cost of each decoded instruction (spec section 1, "Out
// of scope": sub-instruction-level bus timing).
package cpu

import (
	"github.com/kestrelmark/goboycore/internal/core/cpuerr"
	"github.com/kestrelmark/goboycore/internal/core/ioaddr"
)

// Bus is everything the CPU needs from its memory/peripheral owner. The MMU
// implements it; peripherals are never referenced directly by the CPU, only
// through the bus and the monotonic cycle counter (spec section 9).
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	// Advance drives every peripheral up to the given absolute cycle,
	// collecting every interrupt any of them raise and OR-ing them into IF.
	Advance(cycle uint64)
	// NextEventCycle returns the smallest absolute cycle at or after from at
	// which some peripheral is known to raise its next edge, used to
	// fast-forward a halted CPU instead of stepping cycle by cycle.
	NextEventCycle(from uint64) uint64
	// TakeExtraCycles returns and clears any cycle cost a peripheral charged
	// outside the decoded instruction's own timing, such as an OAM DMA
	// transfer triggered by the write just executed (spec section 5).
	TakeExtraCycles() uint64
}

// historyDepth is the ring buffer size used for crash-time diagnostics
// (spec section 4.8 step 3 / section 7).
const historyDepth = 50

// HistoryEntry records one decoded instruction for the diagnostic ring buffer.
type HistoryEntry struct {
	PC     uint16
	Opcode uint8
	CB     bool
}

// CPU is the Sharp LR35902 interpreter: registers, interrupt master enable,
// halt state and the monotonic cycle counter, driving a Bus.
type CPU struct {
	Registers

	bus Bus

	IME        bool
	imePending bool
	Halted     bool

	Cycle uint64

	history    [historyDepth]HistoryEntry
	historyPos int
	historyLen int
}

// New creates a CPU wired to bus, with registers at their documented
// power-on values (spec section 3, "Lifecycles").
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.Reset()
	return c
}

// Reset re-initializes registers to the documented DMG power-on state and
// clears interrupt/halt/cycle state.
func (c *CPU) Reset() {
	c.Registers.Reset()
	c.IME = false
	c.imePending = false
	c.Halted = false
	c.Cycle = 0
	c.historyPos = 0
	c.historyLen = 0
}

// History returns the most recently recorded instructions, oldest first.
func (c *CPU) History() []HistoryEntry {
	out := make([]HistoryEntry, c.historyLen)
	start := c.historyPos - c.historyLen
	for i := 0; i < c.historyLen; i++ {
		idx := (start + i) % historyDepth
		if idx < 0 {
			idx += historyDepth
		}
		out[i] = c.history[idx]
	}
	return out
}

func (c *CPU) record(entry HistoryEntry) {
	c.history[c.historyPos] = entry
	c.historyPos = (c.historyPos + 1) % historyDepth
	if c.historyLen < historyDepth {
		c.historyLen++
	}
}

// Step executes exactly one fetch-decode-execute cycle, per spec section 4.8:
//
//  1. If halted and no interrupt is pending, do nothing (the caller should
//     fast-forward using NextEventCycle).
//  2. Prefetch a 3-byte window from PC and decode it.
//  3. Record the instruction in the diagnostic ring buffer.
//  4. Advance PC by the instruction's length.
//  5. Execute, mutating registers and memory through the bus.
//  6. Advance the cycle counter by the instruction's cycle cost plus any
//     extra cycles the bus charged for a side effect of the write, such as
//     an OAM DMA transfer.
//  7. Drive peripherals up to the new cycle count.
//  8. Service at most one pending, enabled interrupt.
func (c *CPU) Step() error {
	if c.imePending {
		c.IME = true
		c.imePending = false
	}

	if c.Halted {
		if c.pendingInterrupts() == 0 {
			return nil
		}
		c.Halted = false
	}

	var window [3]byte
	window[0] = c.bus.Read(c.PC)
	window[1] = c.bus.Read(c.PC + 1)
	window[2] = c.bus.Read(c.PC + 2)

	instr, ok := decode(window)
	if !ok {
		cb := window[0] == 0xCB
		op := window[0]
		if cb {
			op = window[1]
		}
		return decodeFatalError(c.PC, op, cb)
	}

	cb := window[0] == 0xCB
	opcodeByte := window[0]
	if cb {
		opcodeByte = window[1]
	}
	c.record(HistoryEntry{PC: c.PC, Opcode: opcodeByte, CB: cb})

	c.PC += uint16(instr.Length)

	taken := instr.Exec(c, window)
	c.Cycle += uint64(taken) + c.bus.TakeExtraCycles()
	c.bus.Advance(c.Cycle)

	c.serviceInterrupt()

	return nil
}

func (c *CPU) pendingInterrupts() uint8 {
	return c.bus.Read(ioaddr.IF) & c.bus.Read(ioaddr.IE) & 0x1F
}

// serviceInterrupt dispatches the single lowest-numbered pending, enabled
// interrupt, if IME is set and one is pending.
func (c *CPU) serviceInterrupt() {
	if !c.IME {
		return
	}

	pending := c.pendingInterrupts()
	if pending == 0 {
		return
	}

	for _, i := range ioaddr.Ordered {
		if pending&uint8(i) == 0 {
			continue
		}

		c.IME = false

		ifReg := c.bus.Read(ioaddr.IF)
		c.bus.Write(ioaddr.IF, ifReg&^uint8(i))

		c.pushStack(c.PC)
		c.PC = ioaddr.Vector(i)

		c.Cycle += 20
		c.bus.Advance(c.Cycle)
		return
	}
}

func (c *CPU) pushStack(v uint16) {
	c.SP--
	c.bus.Write(c.SP, byte(v>>8))
	c.SP--
	c.bus.Write(c.SP, byte(v))
}

func (c *CPU) popStack() uint16 {
	lo := c.bus.Read(c.SP)
	c.SP++
	hi := c.bus.Read(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// decodeFatalError wraps an illegal opcode into the shared error taxonomy;
// kept here so decode.go stays focused on table construction.
func decodeFatalError(pc uint16, opcode uint8, cb bool) error {
	return &cpuerr.DecodeError{PC: pc, Opcode: opcode, CBPage: cb}
}
