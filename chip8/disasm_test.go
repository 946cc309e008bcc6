package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	vm := newVM(t, []byte{
		0x00, 0xE0,
		0xA2, 0x34,
		0xD1, 0x25,
		0xF3, 0x55,
		0x81, 0x26,
		0x01, 0x23,
	})

	tests := []struct {
		address uint16
		text    string
	}{
		{0x200, "0200 - CLS"},
		{0x202, "0202 - LD     I, #234"},
		{0x204, "0204 - DRW    V1, V2, 5"},
		{0x206, "0206 - LD     [I], V3"},
		{0x208, "0208 - SHR    V1"},
		{0x20A, "020A - ??"},
		{0x20C, "020C -"},
		{0x1200, "0200 - CLS"},
	}

	for _, test := range tests {
		assert.Equal(t, test.text, vm.Disassemble(test.address))
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		word uint16
		text string
	}{
		{0x00EE, "RET"},
		{0x1ABC, "JP     #ABC"},
		{0x2ABC, "CALL   #ABC"},
		{0x3A0F, "SE     VA, #0F"},
		{0x4A0F, "SNE    VA, #0F"},
		{0x5AB0, "SE     VA, VB"},
		{0x6A0F, "LD     VA, #0F"},
		{0x7A0F, "ADD    VA, #0F"},
		{0x8AB4, "ADD    VA, VB"},
		{0x8AB7, "SUBN   VA, VB"},
		{0x8ABE, "SHL    VA"},
		{0x9AB0, "SNE    VA, VB"},
		{0xB123, "JP     V0, #123"},
		{0xCA0F, "RND    VA, #0F"},
		{0xEA9E, "SKP    VA"},
		{0xEAA1, "SKNP   VA"},
		{0xFA07, "LD     VA, DT"},
		{0xFA0A, "LD     VA, K"},
		{0xFA15, "LD     DT, VA"},
		{0xFA18, "LD     ST, VA"},
		{0xFA1E, "ADD    I, VA"},
		{0xFA29, "LD     F, VA"},
		{0xFA33, "LD     B, VA"},
		{0xFA65, "LD     VA, [I]"},
	}

	for _, test := range tests {
		assert.Equal(t, test.text, Decode(test.word).String())
	}
}
