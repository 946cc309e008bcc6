package chip8

import "fmt"

/// Disassemble the CHIP-8 instruction at an address in memory.
///
func (vm *CHIP_8) Disassemble(address uint16) string {
	i := address & 0xFFF

	// fetch the instruction at this location
	inst := uint16(vm.Memory[i])<<8 | uint16(vm.Memory[(i+1)&0xFFF])

	// end of program memory?
	if inst == 0 {
		return fmt.Sprintf("%04X -", i)
	}

	return fmt.Sprintf("%04X - %s", i, Decode(inst))
}

/// String returns the assembly mnemonic and operands of an instruction,
/// or "??" if the instruction is invalid.
///
func (inst Instruction) String() string {
	a, b, n := inst.NNN, inst.KK, inst.N
	x, y := inst.X, inst.Y

	// instruction decoding
	switch w := inst.Word; {
	case w == 0x00E0:
		return "CLS"
	case w == 0x00EE:
		return "RET"
	case w&0xF000 == 0x1000:
		return fmt.Sprintf("JP     #%03X", a)
	case w&0xF000 == 0x2000:
		return fmt.Sprintf("CALL   #%03X", a)
	case w&0xF000 == 0x3000:
		return fmt.Sprintf("SE     V%X, #%02X", x, b)
	case w&0xF000 == 0x4000:
		return fmt.Sprintf("SNE    V%X, #%02X", x, b)
	case w&0xF00F == 0x5000:
		return fmt.Sprintf("SE     V%X, V%X", x, y)
	case w&0xF000 == 0x6000:
		return fmt.Sprintf("LD     V%X, #%02X", x, b)
	case w&0xF000 == 0x7000:
		return fmt.Sprintf("ADD    V%X, #%02X", x, b)
	case w&0xF00F == 0x8000:
		return fmt.Sprintf("LD     V%X, V%X", x, y)
	case w&0xF00F == 0x8001:
		return fmt.Sprintf("OR     V%X, V%X", x, y)
	case w&0xF00F == 0x8002:
		return fmt.Sprintf("AND    V%X, V%X", x, y)
	case w&0xF00F == 0x8003:
		return fmt.Sprintf("XOR    V%X, V%X", x, y)
	case w&0xF00F == 0x8004:
		return fmt.Sprintf("ADD    V%X, V%X", x, y)
	case w&0xF00F == 0x8005:
		return fmt.Sprintf("SUB    V%X, V%X", x, y)
	case w&0xF00F == 0x8006:
		return fmt.Sprintf("SHR    V%X", x)
	case w&0xF00F == 0x8007:
		return fmt.Sprintf("SUBN   V%X, V%X", x, y)
	case w&0xF00F == 0x800E:
		return fmt.Sprintf("SHL    V%X", x)
	case w&0xF00F == 0x9000:
		return fmt.Sprintf("SNE    V%X, V%X", x, y)
	case w&0xF000 == 0xA000:
		return fmt.Sprintf("LD     I, #%03X", a)
	case w&0xF000 == 0xB000:
		return fmt.Sprintf("JP     V0, #%03X", a)
	case w&0xF000 == 0xC000:
		return fmt.Sprintf("RND    V%X, #%02X", x, b)
	case w&0xF000 == 0xD000:
		return fmt.Sprintf("DRW    V%X, V%X, %d", x, y, n)
	case w&0xF0FF == 0xE09E:
		return fmt.Sprintf("SKP    V%X", x)
	case w&0xF0FF == 0xE0A1:
		return fmt.Sprintf("SKNP   V%X", x)
	case w&0xF0FF == 0xF007:
		return fmt.Sprintf("LD     V%X, DT", x)
	case w&0xF0FF == 0xF00A:
		return fmt.Sprintf("LD     V%X, K", x)
	case w&0xF0FF == 0xF015:
		return fmt.Sprintf("LD     DT, V%X", x)
	case w&0xF0FF == 0xF018:
		return fmt.Sprintf("LD     ST, V%X", x)
	case w&0xF0FF == 0xF01E:
		return fmt.Sprintf("ADD    I, V%X", x)
	case w&0xF0FF == 0xF029:
		return fmt.Sprintf("LD     F, V%X", x)
	case w&0xF0FF == 0xF033:
		return fmt.Sprintf("LD     B, V%X", x)
	case w&0xF0FF == 0xF055:
		return fmt.Sprintf("LD     [I], V%X", x)
	case w&0xF0FF == 0xF065:
		return fmt.Sprintf("LD     V%X, [I]", x)
	}

	// unknown instruction
	return "??"
}
