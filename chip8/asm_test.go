package chip8

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestAssembleRoundTrip(t *testing.T) {
	for w := 0; w <= 0xFFFF; w++ {
		inst := Decode(uint16(w))

		s := inst.String()
		if s == "??" {
			continue
		}

		// the shift source register isn't disassembled
		want := uint16(w)
		if w&0xF00F == 0x8006 || w&0xF00F == 0x800E {
			want &^= 0x00F0
		}

		asm, err := Assemble([]byte("  " + s))
		if err != nil {
			t.Fatalf("%04X %q: %v", w, s, err)
		}
		if got := uint16(asm.ROM[0])<<8 | uint16(asm.ROM[1]); got != want || len(asm.ROM) != 2 {
			t.Fatalf("%04X %q: assembled %X", w, s, asm.ROM)
		}
	}
}

func TestAssembleLabels(t *testing.T) {
	asm, err := Assemble([]byte(strings.Join([]string{
		"; a comment line",
		"SPRITE EQU #300",
		"START:",
		"  LD I, SPRITE  ; equate",
		"  CALL DRAW     ; forward reference",
		"  JP START",
		"DRAW",
		"  JP V0, TABLE",
		"TABLE",
		"  WORD TABLE, END, #1234",
		"END",
	}, "\n")))
	assert.NoError(t, err)

	assert.Equal(t, 0x300, asm.Labels["SPRITE"])
	assert.Equal(t, 0x200, asm.Labels["START"])
	assert.Equal(t, 0x206, asm.Labels["DRAW"])
	assert.Equal(t, 0x208, asm.Labels["TABLE"])
	assert.Equal(t, 0x20E, asm.Labels["END"])

	assert.Equal(t, []byte{
		0xA3, 0x00,
		0x22, 0x06,
		0x12, 0x00,
		0xB2, 0x08,
		0x02, 0x08,
		0x02, 0x0E,
		0x12, 0x34,
	}, asm.ROM)
}

func TestAssembleLowercase(t *testing.T) {
	asm, err := Assemble([]byte("loop:\n  add v1, #1\n  se v1, vf\n  jp loop"))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x71, 0x01, 0x51, 0xF0, 0x12, 0x00}, asm.ROM)
}

func TestAssembleDirectives(t *testing.T) {
	tests := []struct {
		name   string
		source string
		rom    []byte
	}{
		{"byte literals", "  BYTE 1, -1, #7F, $1.1.....", []byte{0x01, 0xFF, 0x7F, 0xA0}},
		{"byte text", "  BYTE \"HI\", 0", []byte{'H', 'I', 0}},
		{"word", "  WORD #ABCD, 2", []byte{0xAB, 0xCD, 0x00, 0x02}},
		{"align", "  BYTE 1\n  ALIGN 4\n  BYTE 2", []byte{1, 0, 0, 0, 2}},
		{"align already aligned", "  BYTE 1, 2\n  ALIGN 2\n  BYTE 3", []byte{1, 2, 3}},
		{"pad", "  BYTE 1\n  PAD 3\n  BYTE 2", []byte{1, 0, 0, 0, 2}},
		{"pad with equate", "SIZE EQU 2\n  PAD SIZE", []byte{0, 0}},
		{"shift with source", "  SHR V3, V4\n  SHL V5", []byte{0x83, 0x46, 0x85, 0x0E}},
		{"indirect", "  LD [I], V7\n  LD V7, [I]", []byte{0xF7, 0x55, 0xF7, 0x65}},
		{"timers", "  LD V2, DT\n  LD DT, V2\n  LD ST, V2", []byte{0xF2, 0x07, 0xF2, 0x15, 0xF2, 0x18}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			asm, err := Assemble([]byte(test.source))
			assert.NoError(t, err)
			assert.Equal(t, test.rom, asm.ROM)
		})
	}
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		err    string
	}{
		{"duplicate label", "A\n  CLS\nA", "line 3 - duplicate label: A"},
		{"unresolved label", "  CLS\n  JP NOWHERE\n  CALL ALSO", "unresolved label: ALSO"},
		{"byte out of range", "  LD V0, 256", "line 1 - illegal instruction"},
		{"address out of range", "  JP #1000", "line 1 - illegal instruction"},
		{"unindented instruction", "CLS", "line 1 - expected label"},
		{"unknown instruction", "  NOP", "line 1 - unexpected token"},
		{"extra operand", "  CLS V0", "line 1 - illegal instruction"},
		{"bad sprite height", "  DRW V0, V1, 16", "line 1 - illegal instruction"},
		{"jump offset register", "  JP V1, #200", "line 1 - illegal instruction"},
		{"forward byte operand", "  LD V0, LATER\nLATER", "line 1 - illegal instruction"},
		{"forward size", "  ALIGN SIZE\nSIZE EQU 4", "line 1 - size must be defined before use"},
		{"bad alignment", "  ALIGN 3", "line 1 - illegal alignment"},
		{"bad equate", "X EQU V0", "line 1 - illegal label assignment"},
		{"missing operand", "  LD V0,", "line 1 - expected operand"},
		{"unterminated string", "  BYTE \"ABC", "line 1 - unterminated string"},
		{"too large", "  PAD 3584\n  BYTE 1", "line 2 - program too large"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			asm, err := Assemble([]byte(test.source))
			assert.Error(t, err, test.err)
			assert.True(t, asm == nil)
		})
	}
}

func TestAssembleAndRun(t *testing.T) {
	vm := newVM(t, assemble(t,
		"  LD V0, 0",
		"  LD V1, 10",
		"LOOP",
		"  ADD V0, 3",
		"  ADD V1, -1",
		"  SE V1, 0",
		"  JP LOOP",
		"  LD B, V0",
	))
	vm.I = 0x300

	step(t, vm, 2+10*4-1+1)

	assert.Equal(t, byte(30), vm.V[0])
	assert.Equal(t, []byte{0, 3, 0}, vm.Memory[0x300:0x303])
}
