package cart

// MBC is the memory-bank-controller contract every cartridge type
// implements: bank-aware reads/writes over the two address windows the MMU
// routes to the cartridge (ROM at 0x0000-0x7FFF, external RAM at
// 0xA000-0xBFFF). Writes into the ROM window do not mutate ROM; they are
// the banking control registers.
type MBC interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	// SRAM returns the live external-RAM backing store, or nil if the
	// cartridge has none, for battery-backed save/restore.
	SRAM() []byte
}

// mbc0 is a plain unbanked cartridge: ROM mapped directly, no RAM, every
// write to the ROM window silently discarded.
type mbc0 struct {
	rom []byte
}

func newMBC0(rom []byte) *mbc0 { return &mbc0{rom: rom} }

func (m *mbc0) Read(addr uint16) uint8 {
	if int(addr) < len(m.rom) {
		return m.rom[addr]
	}
	return 0xFF
}
func (m *mbc0) Write(addr uint16, value uint8) {}
func (m *mbc0) SRAM() []byte                   { return nil }

// mbc1 is the common banked controller: 5-bit ROM bank number extended by
// 2 more bits that double as the RAM bank number or the ROM bank's own
// upper bits, selected by bankingMode.
type mbc1 struct {
	rom         []byte
	ram         []byte
	romBank     uint8
	ramBank     uint8
	ramEnabled  bool
	bankingMode uint8
}

func newMBC1(rom []byte, ramBanks int) *mbc1 {
	return &mbc1{rom: rom, ram: make([]byte, ramBanks*0x2000), romBank: 1}
}

func (m *mbc1) effectiveROMBank() uint8 {
	bank := m.romBank
	if m.bankingMode == 0 {
		// ROM mode: the upper 2 bits (set via the 0x4000-0x5FFF register)
		// are folded into the effective bank even though romBank itself only
		// tracks the lower 5 bits plus whatever was last latched there.
		return bank
	}
	return bank & 0x1F
}

func (m *mbc1) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.romAt(0, addr)
	case addr <= 0x7FFF:
		return m.romAt(m.effectiveROMBank(), addr-0x4000)
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[m.ramOffset()+uint32(addr-0xA000)]
	}
	return 0xFF
}

func (m *mbc1) romAt(bank uint8, offset uint16) uint8 {
	idx := uint32(bank)*0x4000 + uint32(offset)
	if int(idx) >= len(m.rom) {
		idx %= uint32(len(m.rom))
	}
	return m.rom[idx]
}

func (m *mbc1) ramOffset() uint32 {
	bank := uint32(0)
	if m.bankingMode == 1 {
		bank = uint32(m.ramBank & 0x03)
	}
	off := bank * 0x2000
	if len(m.ram) > 0 {
		off %= uint32(len(m.ram))
	}
	return off
}

func (m *mbc1) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case addr <= 0x3FFF:
		bank := value & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.romBank = (m.romBank &^ 0x1F) | bank
	case addr <= 0x5FFF:
		sel := value & 0x03
		if m.bankingMode == 0 {
			m.romBank = (m.romBank & 0x1F) | (sel << 5)
		} else {
			m.ramBank = sel
		}
	case addr <= 0x7FFF:
		m.bankingMode = value & 0x01
	case addr >= 0xA000 && addr <= 0xBFFF:
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[m.ramOffset()+uint32(addr-0xA000)] = value
		}
	}
}

func (m *mbc1) SRAM() []byte { return m.ram }

// mbc2 has a fixed 512x4-bit built-in RAM (no external RAM chip) and a
// single-byte ROM bank register; bit 8 of the control address distinguishes
// RAM-enable writes from ROM-bank writes instead of a separate address
// range.
type mbc2 struct {
	rom        []byte
	ram        [512]byte // low nibble significant only
	romBank    uint8
	ramEnabled bool
}

func newMBC2(rom []byte) *mbc2 { return &mbc2{rom: rom, romBank: 1} }

func (m *mbc2) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.rom[addr]
	case addr <= 0x7FFF:
		idx := uint32(m.romBank)*0x4000 + uint32(addr-0x4000)
		if int(idx) >= len(m.rom) {
			idx %= uint32(len(m.rom))
		}
		return m.rom[idx]
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		return m.ram[addr&0x1FF] | 0xF0
	}
	return 0xFF
}

func (m *mbc2) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x3FFF:
		if addr&0x100 == 0 {
			m.ramEnabled = value&0x0F == 0x0A
		} else {
			bank := value & 0x0F
			if bank == 0 {
				bank = 1
			}
			m.romBank = bank
		}
	case addr >= 0xA000 && addr <= 0xBFFF:
		if m.ramEnabled {
			m.ram[addr&0x1FF] = value & 0x0F
		}
	}
}

func (m *mbc2) SRAM() []byte { return m.ram[:] }

// rtcRegisters holds the MBC3 real-time clock's latched register values.
// Actual wall-clock advancement is a non-goal; the registers are exposed so
// save state round-trips and register reads/writes behave, but time does
// not pass in them on its own.
type rtcRegisters struct {
	seconds, minutes, hours uint8
	daysLow, daysHigh       uint8
}

// mbc3 adds a 7-bit ROM bank register, RAM banks 0-3 or one of 5 RTC
// registers selected by the same bank-select write, and a latch sequence
// (write 0x00 then 0x01 to 0x6000-0x7FFF) that copies live RTC state into a
// readable snapshot.
type mbc3 struct {
	rom        []byte
	ram        []byte
	rtc        rtcRegisters
	latched    rtcRegisters
	romBank    uint8
	ramRTCSel  uint8
	ramEnabled bool
	latchState uint8
}

func newMBC3(rom []byte, ramBanks int) *mbc3 {
	return &mbc3{rom: rom, ram: make([]byte, ramBanks*0x2000), romBank: 1}
}

func (m *mbc3) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.rom[addr]
	case addr <= 0x7FFF:
		idx := uint32(m.romBank)*0x4000 + uint32(addr-0x4000)
		if int(idx) >= len(m.rom) {
			idx %= uint32(len(m.rom))
		}
		return m.rom[idx]
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return 0xFF
		}
		if m.ramRTCSel <= 0x03 {
			if len(m.ram) == 0 {
				return 0xFF
			}
			off := uint32(m.ramRTCSel) * 0x2000
			return m.ram[off+uint32(addr-0xA000)]
		}
		switch m.ramRTCSel {
		case 0x08:
			return m.latched.seconds
		case 0x09:
			return m.latched.minutes
		case 0x0A:
			return m.latched.hours
		case 0x0B:
			return m.latched.daysLow
		case 0x0C:
			return m.latched.daysHigh
		}
	}
	return 0xFF
}

func (m *mbc3) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case addr <= 0x3FFF:
		bank := value & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case addr <= 0x5FFF:
		m.ramRTCSel = value
	case addr <= 0x7FFF:
		if m.latchState == 0x00 && value == 0x01 {
			m.latched = m.rtc
		}
		m.latchState = value
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled {
			return
		}
		if m.ramRTCSel <= 0x03 {
			if len(m.ram) == 0 {
				return
			}
			off := uint32(m.ramRTCSel) * 0x2000
			m.ram[off+uint32(addr-0xA000)] = value
			return
		}
		switch m.ramRTCSel {
		case 0x08:
			m.rtc.seconds = value
		case 0x09:
			m.rtc.minutes = value
		case 0x0A:
			m.rtc.hours = value
		case 0x0B:
			m.rtc.daysLow = value
		case 0x0C:
			m.rtc.daysHigh = value
		}
	}
}

func (m *mbc3) SRAM() []byte { return m.ram }

// mbc5 is the simplest banked controller: a full 9-bit ROM bank number
// (bank 0 is a valid switchable bank, unlike MBC1/3) and a 4-bit RAM bank,
// each in its own register with no shared banking-mode quirk.
type mbc5 struct {
	rom        []byte
	ram        []byte
	romBank    uint16
	ramBank    uint8
	ramEnabled bool
}

func newMBC5(rom []byte, ramBanks int) *mbc5 {
	return &mbc5{rom: rom, ram: make([]byte, ramBanks*0x2000), romBank: 1}
}

func (m *mbc5) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.rom[addr]
	case addr <= 0x7FFF:
		idx := uint32(m.romBank)*0x4000 + uint32(addr-0x4000)
		if int(idx) >= len(m.rom) {
			idx %= uint32(len(m.rom))
		}
		return m.rom[idx]
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		off := uint32(m.ramBank) * 0x2000 % uint32(len(m.ram))
		return m.ram[off+uint32(addr-0xA000)]
	}
	return 0xFF
}

func (m *mbc5) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = value&0x0F == 0x0A
	case addr <= 0x2FFF:
		m.romBank = (m.romBank &^ 0xFF) | uint16(value)
	case addr <= 0x3FFF:
		m.romBank = (m.romBank & 0xFF) | uint16(value&0x01)<<8
	case addr <= 0x5FFF:
		m.ramBank = value & 0x0F
	case addr >= 0xA000 && addr <= 0xBFFF:
		if m.ramEnabled && len(m.ram) > 0 {
			off := uint32(m.ramBank) * 0x2000 % uint32(len(m.ram))
			m.ram[off+uint32(addr-0xA000)] = value
		}
	}
}

func (m *mbc5) SRAM() []byte { return m.ram }
