package chip8

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

/// Kinds of assembler tokens.
///
type tokenType uint

const (
	TOKEN_END tokenType = iota
	TOKEN_LABEL
	TOKEN_REF
	TOKEN_INSTRUCTION
	TOKEN_EQU
	TOKEN_ADDRESS
	TOKEN_V
	TOKEN_I
	TOKEN_B
	TOKEN_F
	TOKEN_K
	TOKEN_DT
	TOKEN_ST
	TOKEN_LIT
	TOKEN_TEXT
)

/// A single token read from a source line. Literals carry an int,
/// registers their index, text and identifiers a string, and an
/// indirection the token inside the brackets.
///
type token struct {
	typ tokenType
	val interface{}
}

/// Tokenizer over one upper-cased source line.
///
type tokenScanner struct {
	bytes []byte
	pos   int
}

/// Mnemonics and directives the assembler understands.
///
var mnemonics = map[string]bool{
	"CLS": true, "RET": true, "JP": true, "CALL": true, "SE": true,
	"SNE": true, "SKP": true, "SKNP": true, "LD": true, "OR": true,
	"AND": true, "XOR": true, "ADD": true, "SUB": true, "SUBN": true,
	"SHR": true, "SHL": true, "RND": true, "DRW": true,
	"BYTE": true, "WORD": true, "ALIGN": true, "PAD": true,
}

/// Named registers other than V0-VF.
///
var registers = map[string]tokenType{
	"I":  TOKEN_I,
	"B":  TOKEN_B,
	"F":  TOKEN_F,
	"K":  TOKEN_K,
	"D":  TOKEN_DT,
	"DT": TOKEN_DT,
	"S":  TOKEN_ST,
	"ST": TOKEN_ST,
}

func isIdent(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

/// peek returns the next character after any white space, or 0 at the
/// end of the line or at a comment.
///
func (s *tokenScanner) peek() byte {
	for s.pos < len(s.bytes) && s.bytes[s.pos] <= ' ' {
		s.pos++
	}

	if s.pos == len(s.bytes) || s.bytes[s.pos] == ';' {
		return 0
	}

	return s.bytes[s.pos]
}

/// scanToken reads the next token. Only an identifier in the very
/// first column is a label.
///
func (s *tokenScanner) scanToken() token {
	if s.pos == 0 && len(s.bytes) > 0 && s.bytes[0] >= 'A' && s.bytes[0] <= 'Z' {
		return s.scanLabel()
	}

	switch c := s.peek(); {
	case c == 0:
		s.pos = len(s.bytes)
		return token{typ: TOKEN_END}
	case c == '[':
		return s.scanIndirection()
	case c == '#':
		return s.scanNumber(16, "0123456789ABCDEF")
	case c == '$':
		return s.scanNumber(2, ".01")
	case c == '-' || c >= '0' && c <= '9':
		return s.scanNumber(10, "0123456789")
	case c == '"' || c == '\'':
		return s.scanString(c)
	case c == '_' || c >= 'A' && c <= 'Z':
		return s.scanIdentifier()
	}

	panic(errors.Errorf("unexpected character: %c", s.bytes[s.pos]))
}

/// scanOperands reads the rest of the line as comma-separated operands.
///
func (s *tokenScanner) scanOperands() []token {
	tokens := make([]token, 0, 3)

	if s.peek() == 0 {
		return tokens
	}

	for {
		tokens = append(tokens, s.scanToken())

		switch s.peek() {
		case 0:
			return tokens
		case ',':
			s.pos++

			if s.peek() == 0 {
				panic("expected operand")
			}
		default:
			panic("unexpected token")
		}
	}
}

/// scanLabel reads a label in the first column. A trailing colon is
/// optional.
///
func (s *tokenScanner) scanLabel() token {
	id := s.scanIdentifier()
	if id.typ != TOKEN_REF {
		panic("expected label")
	}

	if s.pos < len(s.bytes) && s.bytes[s.pos] == ':' {
		s.pos++
	}

	return token{typ: TOKEN_LABEL, val: id.val}
}

/// scanIdentifier reads a mnemonic, a register or a label reference.
///
func (s *tokenScanner) scanIdentifier() token {
	start := s.pos

	for s.pos < len(s.bytes) && isIdent(s.bytes[s.pos]) {
		s.pos++
	}

	id := string(s.bytes[start:s.pos])

	// V0-VF
	if len(id) == 2 && id[0] == 'V' {
		if n := strings.IndexByte("0123456789ABCDEF", id[1]); n >= 0 {
			return token{typ: TOKEN_V, val: n}
		}
	}

	if typ, ok := registers[id]; ok {
		return token{typ: typ}
	}

	switch {
	case id == "EQU":
		return token{typ: TOKEN_EQU}
	case mnemonics[id]:
		return token{typ: TOKEN_INSTRUCTION, val: id}
	}

	return token{typ: TOKEN_REF, val: id}
}

/// scanIndirection reads a bracketed operand, e.g. [I].
///
func (s *tokenScanner) scanIndirection() token {
	s.pos++

	t := s.scanToken()

	if s.peek() != ']' {
		panic("illegal indirection")
	}

	s.pos++

	return token{typ: TOKEN_ADDRESS, val: t}
}

/// scanNumber reads a literal in a base. Hex literals are prefixed with
/// '#' and binary with '$', where a '.' may stand in for a '0' so that
/// sprite rows are easy to read. Decimal literals may be negative.
///
func (s *tokenScanner) scanNumber(base int, digits string) token {
	start := s.pos

	// skip the prefix or the sign
	if base != 10 || s.bytes[s.pos] == '-' {
		s.pos++
	}

	first := s.pos

	for s.pos < len(s.bytes) && strings.IndexByte(digits, s.bytes[s.pos]) >= 0 {
		s.pos++
	}

	lit := string(s.bytes[first:s.pos])
	if base == 2 {
		lit = strings.ReplaceAll(lit, ".", "0")
	}
	if s.bytes[start] == '-' {
		lit = "-" + lit
	}

	n, err := strconv.ParseInt(lit, base, 32)
	if err != nil {
		panic(errors.Errorf("illegal literal: %s", string(s.bytes[start:s.pos])))
	}

	return token{typ: TOKEN_LIT, val: int(n)}
}

/// scanString reads text between matching quotes.
///
func (s *tokenScanner) scanString(quote byte) token {
	s.pos++

	end := s.pos
	for end < len(s.bytes) && s.bytes[end] != quote {
		end++
	}

	if end == len(s.bytes) {
		panic("unterminated string")
	}

	text := string(s.bytes[s.pos:end])
	s.pos = end + 1

	return token{typ: TOKEN_TEXT, val: text}
}
