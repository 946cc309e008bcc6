package chip8

/// Instruction is a decoded 16-bit CHIP-8 instruction word and all of
/// the operand fields that can be extracted from it. Which fields are
/// meaningful depends on the opcode class.
///
type Instruction struct {
	/// Word is the raw instruction, most-significant byte first.
	///
	Word uint16

	/// Class is the top nibble (opcode class).
	///
	Class byte

	/// NNN is the 12-bit address operand.
	///
	NNN uint16

	/// X and Y are the register operands.
	///
	X, Y uint

	/// N is the low nibble operand.
	///
	N byte

	/// KK is the low byte operand.
	///
	KK byte
}

/// Decode extracts the operand fields of an instruction word. It never
/// fails; validating the fields is up to the dispatcher.
///
func Decode(word uint16) Instruction {
	return Instruction{
		Word:  word,
		Class: byte(word >> 12),
		NNN:   word & 0xFFF,
		X:     uint(word>>8) & 0xF,
		Y:     uint(word>>4) & 0xF,
		N:     byte(word & 0xF),
		KK:    byte(word & 0xFF),
	}
}
