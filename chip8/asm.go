/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package chip8

import (
	"bufio"
	"bytes"
	"sort"

	"github.com/pkg/errors"
)

/// Assembly is a completely assembled source file.
///
type Assembly struct {
	/// ROM is the final, assembled bytes to load at 0x200.
	///
	ROM []byte

	/// Labels maps each label to its address or EQU value.
	///
	Labels map[string]int

	/// unresolved label references, keyed by the address to patch
	unresolved map[int]string
}

/// Assemble a CHIP-8 source file. Labels start in the first column,
/// instructions and directives must be indented, and ';' begins a
/// comment. Errors are reported with the offending line number.
///
func Assemble(program []byte) (out *Assembly, err error) {
	var line int

	// create an empty, return assembly
	out = &Assembly{
		ROM:        make([]byte, ProgramStart, MemorySize),
		Labels:     make(map[string]int),
		unresolved: make(map[int]string),
	}

	// handle panics during assembly
	defer func() {
		if r := recover(); r != nil {
			out = nil

			if line > 0 {
				err = errors.Errorf("line %d - %v", line, r)
			} else {
				err = errors.Errorf("%v", r)
			}
		}
	}()

	// create simple line scanner over the file
	reader := bytes.NewReader(bytes.ToUpper(program))
	scanner := bufio.NewScanner(reader)

	// parse and assemble
	for line = 1; scanner.Scan(); line++ {
		out.assemble(&tokenScanner{bytes: scanner.Bytes()})

		if len(out.ROM) > MemorySize {
			panic("program too large")
		}
	}

	// clear the line number as we're done assembling
	line = 0

	// resolve all label addresses
	for address, label := range out.unresolved {
		v, ok := out.Labels[label]
		if !ok {
			continue
		}

		// NOTE: All instructions taking a label take a 12-bit address
		//       in the low 12 bits of the word, as does WORD.
		out.ROM[address] = byte(v>>8)&0xF | (out.ROM[address] & 0xF0)
		out.ROM[address+1] = byte(v & 0xFF)

		delete(out.unresolved, address)
	}

	// if there are any unresolved addresses, fail on the first one
	if len(out.unresolved) > 0 {
		missing := make([]string, 0, len(out.unresolved))
		for _, label := range out.unresolved {
			missing = append(missing, label)
		}
		sort.Strings(missing)

		panic("unresolved label: " + missing[0])
	}

	// drop the first 512 bytes from the rom
	out.ROM = out.ROM[ProgramStart:]

	return
}

/// Compile a single line into the assembly.
///
func (a *Assembly) assemble(s *tokenScanner) {
	t := s.scanToken()

	// assign labels
	if t.typ == TOKEN_LABEL {
		t = a.assembleLabel(t.val.(string), s)
	}

	switch t.typ {
	case TOKEN_INSTRUCTION:
		a.assembleInstruction(t.val.(string), s)
	case TOKEN_END:
	default:
		panic("unexpected token")
	}
}

/// Add a label to the assembly. Returns the token following it.
///
func (a *Assembly) assembleLabel(label string, s *tokenScanner) token {
	if _, exists := a.Labels[label]; exists {
		panic("duplicate label: " + label)
	}

	// by default, the label is assigned the current address
	a.Labels[label] = len(a.ROM)

	// scan the next token
	t := s.scanToken()

	// if EQU, reassign the label
	if t.typ == TOKEN_EQU {
		if v := s.scanToken(); v.typ == TOKEN_LIT {
			a.Labels[label] = v.val.(int)

			// should be the final token
			if t = s.scanToken(); t.typ == TOKEN_END {
				return t
			}
		}

		panic("illegal label assignment")
	}

	return t
}

/// Compile a single instruction into the assembly.
///
func (a *Assembly) assembleInstruction(i string, s *tokenScanner) {
	tokens := s.scanOperands()

	var b []byte

	switch i {
	case "CLS":
		b = a.assembleNoOperands(tokens, 0x00E0)
	case "RET":
		b = a.assembleNoOperands(tokens, 0x00EE)
	case "JP":
		b = a.assembleJP(tokens)
	case "CALL":
		b = a.assembleAddress(tokens, 0x2000)
	case "SE":
		b = a.assembleSkip(tokens, 0x3000, 0x5000)
	case "SNE":
		b = a.assembleSkip(tokens, 0x4000, 0x9000)
	case "SKP":
		b = a.assembleX(tokens, 0xE09E)
	case "SKNP":
		b = a.assembleX(tokens, 0xE0A1)
	case "OR":
		b = a.assembleXY(tokens, 0x8001)
	case "AND":
		b = a.assembleXY(tokens, 0x8002)
	case "XOR":
		b = a.assembleXY(tokens, 0x8003)
	case "SUB":
		b = a.assembleXY(tokens, 0x8005)
	case "SUBN":
		b = a.assembleXY(tokens, 0x8007)
	case "SHR":
		b = a.assembleShift(tokens, 0x8006)
	case "SHL":
		b = a.assembleShift(tokens, 0x800E)
	case "ADD":
		b = a.assembleADD(tokens)
	case "RND":
		b = a.assembleRND(tokens)
	case "DRW":
		b = a.assembleDRW(tokens)
	case "LD":
		b = a.assembleLD(tokens)
	case "BYTE":
		b = a.assembleBYTE(tokens)
	case "WORD":
		b = a.assembleWORD(tokens)
	case "ALIGN":
		b = a.assembleALIGN(tokens)
	case "PAD":
		b = a.assemblePAD(tokens)
	}

	a.ROM = append(a.ROM, b...)
}

/// Assemble a single operand, expanding label references. References to
/// labels not yet defined are recorded and patched once assembly ends.
///
func (a *Assembly) assembleOperand(t token) token {
	if t.typ == TOKEN_REF {
		label := t.val.(string)
		if v, exists := a.Labels[label]; exists {
			t = token{typ: TOKEN_LIT, val: v}
		} else {
			t = token{typ: TOKEN_LIT, val: ProgramStart}

			// add an unresolved address
			a.unresolved[len(a.ROM)] = label
		}
	}

	return t
}

/// Match the desired tokens with a list of tokens. Expand labels.
///
func (a *Assembly) assembleOperands(tokens []token, m ...tokenType) ([]token, bool) {
	ops := make([]token, 0, 3)

	// the number of desired tokens should match
	if len(tokens) != len(m) {
		return nil, false
	}

	// expand and compare the token types
	for i, typ := range m {
		t := tokens[i]

		// only expand references where a literal is wanted
		if typ == TOKEN_LIT {
			t = a.assembleOperand(t)
		}

		// compare token types
		if t.typ != typ {
			return nil, false
		}

		// append the operand
		ops = append(ops, t)
	}

	return ops, true
}

/// word returns an instruction as big-endian bytes.
///
func word(w int) []byte {
	return []byte{byte(w >> 8), byte(w)}
}

/// isByte is true if a literal fits an 8-bit operand.
///
func isByte(n int) bool {
	return n >= -0x80 && n < 0x100
}

/// isAddress is true if a literal fits a 12-bit operand.
///
func isAddress(n int) bool {
	return n >= 0 && n < MemorySize
}

/// Assemble an instruction that takes no operands.
///
func (a *Assembly) assembleNoOperands(tokens []token, op int) []byte {
	if len(tokens) == 0 {
		return word(op)
	}

	panic("illegal instruction")
}

/// Assemble an instruction taking a 12-bit address.
///
func (a *Assembly) assembleAddress(tokens []token, op int) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_LIT); ok {
		if n := ops[0].val.(int); isAddress(n) {
			return word(op | n)
		}
	}

	panic("illegal instruction")
}

/// Assemble an instruction taking a single v-register.
///
func (a *Assembly) assembleX(tokens []token, op int) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V); ok {
		return word(op | ops[0].val.(int)<<8)
	}

	panic("illegal instruction")
}

/// Assemble an instruction taking two v-registers.
///
func (a *Assembly) assembleXY(tokens []token, op int) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		return word(op | ops[0].val.(int)<<8 | ops[1].val.(int)<<4)
	}

	panic("illegal instruction")
}

/// Assemble a SHR or SHL instruction. The optional second register is
/// ignored by the interpreter.
///
func (a *Assembly) assembleShift(tokens []token, op int) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V); ok {
		return word(op | ops[0].val.(int)<<8)
	}

	return a.assembleXY(tokens, op)
}

/// Assemble a JP instruction.
///
func (a *Assembly) assembleJP(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		v := ops[0].val.(int)
		n := ops[1].val.(int)

		if v == 0 && isAddress(n) {
			return word(0xB000 | n)
		}

		panic("illegal instruction")
	}

	return a.assembleAddress(tokens, 0x1000)
}

/// Assemble a SE or SNE instruction.
///
func (a *Assembly) assembleSkip(tokens []token, byteOp, regOp int) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		return word(regOp | ops[0].val.(int)<<8 | ops[1].val.(int)<<4)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		if n := ops[1].val.(int); isByte(n) {
			return word(byteOp | ops[0].val.(int)<<8 | n&0xFF)
		}
	}

	panic("illegal instruction")
}

/// Assemble an ADD instruction.
///
func (a *Assembly) assembleADD(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		return word(0x8004 | ops[0].val.(int)<<8 | ops[1].val.(int)<<4)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_I, TOKEN_V); ok {
		return word(0xF01E | ops[1].val.(int)<<8)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		if n := ops[1].val.(int); isByte(n) {
			return word(0x7000 | ops[0].val.(int)<<8 | n&0xFF)
		}
	}

	panic("illegal instruction")
}

/// Assemble a RND instruction.
///
func (a *Assembly) assembleRND(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		if n := ops[1].val.(int); isByte(n) {
			return word(0xC000 | ops[0].val.(int)<<8 | n&0xFF)
		}
	}

	panic("illegal instruction")
}

/// Assemble a DRW instruction.
///
func (a *Assembly) assembleDRW(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V, TOKEN_LIT); ok {
		x := ops[0].val.(int)
		y := ops[1].val.(int)
		n := ops[2].val.(int)

		if n >= 0 && n < 0x10 {
			return word(0xD000 | x<<8 | y<<4 | n)
		}
	}

	panic("illegal instruction")
}

/// Assemble a LD instruction.
///
func (a *Assembly) assembleLD(tokens []token) []byte {
	if len(tokens) != 2 {
		panic("illegal instruction")
	}

	// register to register forms are matched first
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		return word(0x8000 | ops[0].val.(int)<<8 | ops[1].val.(int)<<4)
	}

	forms := []struct {
		dst, src tokenType
		op       int
	}{
		{TOKEN_V, TOKEN_DT, 0xF007},
		{TOKEN_V, TOKEN_K, 0xF00A},
		{TOKEN_DT, TOKEN_V, 0xF015},
		{TOKEN_ST, TOKEN_V, 0xF018},
		{TOKEN_F, TOKEN_V, 0xF029},
		{TOKEN_B, TOKEN_V, 0xF033},
	}

	for _, f := range forms {
		if ops, ok := a.assembleOperands(tokens, f.dst, f.src); ok {
			x := ops[0]
			if f.dst != TOKEN_V {
				x = ops[1]
			}

			return word(f.op | x.val.(int)<<8)
		}
	}

	// indirect loads and stores through I
	if t := tokens[0]; t.typ == TOKEN_ADDRESS && t.val.(token).typ == TOKEN_I && tokens[1].typ == TOKEN_V {
		return word(0xF055 | tokens[1].val.(int)<<8)
	}

	if t := tokens[1]; t.typ == TOKEN_ADDRESS && t.val.(token).typ == TOKEN_I && tokens[0].typ == TOKEN_V {
		return word(0xF065 | tokens[0].val.(int)<<8)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_I, TOKEN_LIT); ok {
		if n := ops[1].val.(int); isAddress(n) {
			return word(0xA000 | n)
		}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		if n := ops[1].val.(int); isByte(n) {
			return word(0x6000 | ops[0].val.(int)<<8 | n&0xFF)
		}
	}

	panic("illegal instruction")
}

/// Assemble a BYTE directive.
///
func (a *Assembly) assembleBYTE(tokens []token) []byte {
	b := make([]byte, 0, len(tokens))

	for _, t := range tokens {
		switch t.typ {
		case TOKEN_LIT:
			if !isByte(t.val.(int)) {
				panic("invalid byte")
			}

			b = append(b, byte(t.val.(int)))
		case TOKEN_TEXT:
			b = append(b, t.val.(string)...)
		default:
			panic("invalid byte")
		}
	}

	return b
}

/// Assemble a WORD directive.
///
func (a *Assembly) assembleWORD(tokens []token) []byte {
	b := make([]byte, 0, len(tokens)*2)

	for _, t := range tokens {
		// each word is its own unresolved reference
		a.ROM = append(a.ROM, b...)
		b = b[:0]

		op := a.assembleOperand(t)

		if op.typ != TOKEN_LIT || op.val.(int) < 0 || op.val.(int) > 0xFFFF {
			panic("invalid word")
		}

		b = append(b, word(op.val.(int))...)
	}

	return b
}

/// Sizes must be known when the directive is assembled, so they can't
/// be forward references.
///
func (a *Assembly) assembleSize(tokens []token) ([]token, bool) {
	if len(tokens) == 1 && tokens[0].typ == TOKEN_REF {
		if _, exists := a.Labels[tokens[0].val.(string)]; !exists {
			panic("size must be defined before use")
		}
	}

	return a.assembleOperands(tokens, TOKEN_LIT)
}

/// Assemble an ALIGN directive.
///
func (a *Assembly) assembleALIGN(tokens []token) []byte {
	if ops, ok := a.assembleSize(tokens); ok {
		n := ops[0].val.(int)

		if n > 0 && n&(n-1) == 0 {
			pad := (n - len(a.ROM)&(n-1)) & (n - 1)

			// reserve pad bytes to meet alignment
			return make([]byte, pad)
		}
	}

	panic("illegal alignment")
}

/// Assemble a PAD directive.
///
func (a *Assembly) assemblePAD(tokens []token) []byte {
	if ops, ok := a.assembleSize(tokens); ok {
		n := ops[0].val.(int)

		if n >= 0 && n <= MemorySize-len(a.ROM) {
			return make([]byte, n)
		}
	}

	panic("illegal size")
}
