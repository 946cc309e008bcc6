package chip8

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// fixedRandom returns bytes from a fixed sequence, repeating it.
type fixedRandom struct {
	seq []byte
	pos int
}

func (r *fixedRandom) Byte() byte {
	b := r.seq[r.pos%len(r.seq)]
	r.pos++
	return b
}

// assemble builds a program from indented source lines.
func assemble(t *testing.T, lines ...string) []byte {
	t.Helper()

	asm, err := Assemble([]byte(strings.Join(lines, "\n")))
	assert.NoError(t, err)
	return asm.ROM
}

// newVM loads a program one instruction per tick, so tests can reason
// about a single instruction at a time.
func newVM(t *testing.T, program []byte, opts ...Option) *CHIP_8 {
	t.Helper()

	opts = append([]Option{
		WithInstructionsPerTick(1),
		WithRandom(&fixedRandom{seq: []byte{0xFF}}),
		WithLogger(log.NewTestLogger(t)),
	}, opts...)

	vm, err := LoadROM(program, opts...)
	assert.NoError(t, err)
	return vm
}

// newHaltingVM is newVM for programs expected to fault. The test logger
// fails a test on any error record, and every fault is logged as one.
func newHaltingVM(t *testing.T, program []byte, opts ...Option) *CHIP_8 {
	t.Helper()

	return newVM(t, program, append(opts, WithLogger(log.NewNop()))...)
}

// step executes n instructions and fails the test on any fault.
func step(t *testing.T, vm *CHIP_8, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		assert.NoError(t, vm.Step())
	}
}

func TestLoadROM(t *testing.T) {
	vm := newVM(t, []byte{0x12, 0x34, 0x56})

	assert.Equal(t, Glyphs[:], vm.Memory[:len(Glyphs)])
	assert.Equal(t, []byte{0x12, 0x34, 0x56}, vm.Memory[ProgramStart:ProgramStart+3])
	assert.Equal(t, byte(0), vm.Memory[ProgramStart+3])
	assert.Equal(t, uint16(ProgramStart), vm.PC)
	assert.Equal(t, uint8(0), vm.SP)
	assert.Equal(t, uint16(0), vm.I)
	assert.Equal(t, 0, vm.Frame().Lit())
	assert.False(t, vm.Halted())
}

func TestLoadROMSize(t *testing.T) {
	vm, err := LoadROM(make([]byte, MaxProgramSize))
	assert.NoError(t, err)
	assert.True(t, vm != nil)

	vm, err = LoadROM(make([]byte, MaxProgramSize+1))
	assert.True(t, errors.Is(err, ErrImageTooLarge))
	assert.True(t, vm == nil)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.ch8")
	assert.True(t, err != nil)
}

func TestReset(t *testing.T) {
	vm := newVM(t, assemble(t,
		"  LD V3, #42",
		"  LD I, #300",
		"  LD [I], V3",
		"  LD DT, V3",
		"  CLS",
	))
	step(t, vm, 5)

	// V0-V3 were saved, so the byte lands at I+3
	assert.Equal(t, byte(0x42), vm.Memory[0x303])

	vm.Reset()

	assert.Equal(t, byte(0), vm.Memory[0x303])
	assert.Equal(t, byte(0), vm.V[3])
	assert.Equal(t, byte(0), vm.DT)
	assert.Equal(t, uint16(0), vm.I)
	assert.Equal(t, uint16(ProgramStart), vm.PC)
	assert.Equal(t, int64(0), vm.Cycles)
}

func TestAdvanceTimers(t *testing.T) {
	vm := newVM(t, assemble(t,
		"  LD V0, 2",
		"  LD DT, V0",
		"  LD ST, V0",
		"LOOP",
		"  JP LOOP",
	), WithInstructionsPerTick(3))

	_, err := vm.Advance([16]bool{})
	assert.NoError(t, err)

	// both timers were set to 2 during the tick, then counted down
	assert.Equal(t, byte(1), vm.DT)
	assert.Equal(t, byte(1), vm.ST)
	assert.True(t, vm.SoundActive())

	for i := 0; i < 5; i++ {
		_, err = vm.Advance([16]bool{})
		assert.NoError(t, err)
		assert.Equal(t, byte(0), vm.DT)
		assert.Equal(t, byte(0), vm.ST)
	}

	assert.False(t, vm.SoundActive())
}

func TestAdvanceDelayTimerRead(t *testing.T) {
	vm := newVM(t, assemble(t,
		"  LD V0, 10",
		"  LD DT, V0",
		"  LD V1, DT",
		"  LD V2, DT",
	))

	for i := 0; i < 4; i++ {
		_, err := vm.Advance([16]bool{})
		assert.NoError(t, err)
	}

	assert.Equal(t, byte(9), vm.V[1])
	assert.Equal(t, byte(8), vm.V[2])
}

func TestAdvanceInstructionBudget(t *testing.T) {
	program := assemble(t,
		"  LD V0, 1",
		"  LD V1, 2",
		"  LD V2, 3",
		"  LD V3, 4",
		"  LD V4, 5",
	)

	t.Run("budget limits instructions", func(t *testing.T) {
		vm := newVM(t, program, WithInstructionsPerTick(3))

		_, err := vm.Advance([16]bool{})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), vm.Cycles)
		assert.Equal(t, uint16(0x206), vm.PC)
	})

	t.Run("budget below one runs one", func(t *testing.T) {
		vm := newVM(t, program, WithInstructionsPerTick(0))

		_, err := vm.Advance([16]bool{})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), vm.Cycles)
	})

	t.Run("speed adjust", func(t *testing.T) {
		vm := newVM(t, program, WithInstructionsPerTick(1))

		vm.DecSpeed()
		assert.Equal(t, 1, vm.Config.InstructionsPerTick)

		vm.IncSpeed()
		vm.IncSpeed()
		assert.Equal(t, 3, vm.Config.InstructionsPerTick)

		for i := 0; i < 2*MaxInstructionsPerTick; i++ {
			vm.IncSpeed()
		}
		assert.Equal(t, MaxInstructionsPerTick, vm.Config.InstructionsPerTick)
	})
}

func TestAdvanceStopOnRedraw(t *testing.T) {
	program := assemble(t,
		"  LD V0, 1",
		"  CLS",
		"  LD V1, 2",
		"  LD V2, 3",
	)

	vm := newVM(t, program, WithInstructionsPerTick(10))

	_, err := vm.Advance([16]bool{})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), vm.Cycles)
	assert.Equal(t, byte(0), vm.V[1])

	cfg := DefaultConfig()
	cfg.InstructionsPerTick = 4
	cfg.StopOnRedraw = false
	vm = newVM(t, program, WithConfig(cfg))

	_, err = vm.Advance([16]bool{})
	assert.NoError(t, err)
	assert.Equal(t, int64(4), vm.Cycles)
	assert.Equal(t, byte(3), vm.V[2])
}

func TestAdvanceKeyWait(t *testing.T) {
	vm := newVM(t, assemble(t,
		"  LD V5, #AA",
		"  LD V5, K",
		"  LD V6, 1",
		"DONE",
		"  JP DONE",
	), WithInstructionsPerTick(10))

	// nothing pressed: the key wait stays put and V5 is untouched
	for i := 0; i < 5; i++ {
		_, err := vm.Advance([16]bool{})
		assert.NoError(t, err)
		assert.Equal(t, uint16(0x202), vm.PC)
		assert.True(t, vm.Waiting())
		assert.Equal(t, byte(0xAA), vm.V[5])
		assert.Equal(t, byte(0), vm.V[6])
	}

	// keys 0x3 and 0xC pressed: the lowest one is taken
	var keys [16]bool
	keys[0xC] = true
	keys[0x3] = true

	_, err := vm.Advance(keys)
	assert.NoError(t, err)
	assert.False(t, vm.Waiting())
	assert.Equal(t, byte(3), vm.V[5])
	assert.Equal(t, byte(1), vm.V[6])
	assert.Equal(t, uint16(0x206), vm.PC)
}

func TestAdvanceKeyWaitKeyZero(t *testing.T) {
	vm := newVM(t, assemble(t,
		"  LD V5, K",
	))

	var keys [16]bool
	keys[0] = true

	_, err := vm.Advance(keys)
	assert.NoError(t, err)
	assert.False(t, vm.Waiting())
	assert.Equal(t, byte(0), vm.V[5])
	assert.Equal(t, uint16(0x202), vm.PC)
}

func TestAdvanceFault(t *testing.T) {
	vm := newHaltingVM(t, assemble(t,
		"  LD V0, 3",
		"  LD DT, V0",
		"  WORD #0123",
	), WithInstructionsPerTick(10))

	_, err := vm.Advance([16]bool{})
	assert.Error(t, err, "invalid opcode #0123 at #0204")
	assert.True(t, errors.Is(err, ErrInvalidOpcode))
	assert.True(t, vm.Halted())

	fault := vm.Fault()
	assert.True(t, fault != nil)
	assert.Equal(t, InvalidOpcode, fault.Kind)
	assert.Equal(t, uint16(0x204), fault.PC)
	assert.Equal(t, uint16(0x0123), fault.Word)

	// the halted machine doesn't run or count down
	assert.Equal(t, byte(3), vm.DT)
	_, err2 := vm.Advance([16]bool{})
	assert.Equal(t, err, err2)
	assert.Equal(t, byte(3), vm.DT)
	assert.Equal(t, int64(2), vm.Cycles)

	// reset clears the fault
	vm.Reset()
	assert.False(t, vm.Halted())
	assert.NoError(t, vm.Step())
}

func TestStackOverflow(t *testing.T) {
	vm := newHaltingVM(t, assemble(t,
		"LOOP",
		"  CALL LOOP",
	))

	step(t, vm, StackDepth)
	assert.Equal(t, uint8(StackDepth), vm.SP)

	err := vm.Step()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.False(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint8(StackDepth), vm.SP)
	assert.Equal(t, uint16(ProgramStart), vm.PC)
	assert.Equal(t, "stack overflow at #0200 (CALL   #200)", err.Error())
}

func TestStackUnderflow(t *testing.T) {
	vm := newHaltingVM(t, assemble(t,
		"  RET",
	))

	err := vm.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, StackUnderflow, vm.Fault().Kind)
	assert.Equal(t, uint8(0), vm.SP)
}

func TestTrace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InstructionsPerTick = 2
	cfg.Trace = true

	vm := newVM(t, assemble(t,
		"  LD V0, 1",
		"  ADD V0, V0",
	), WithConfig(cfg))

	_, err := vm.Advance([16]bool{})
	assert.NoError(t, err)
	assert.Equal(t, byte(2), vm.V[0])
}

func TestScenarioBCD(t *testing.T) {
	vm := newVM(t, []byte{0x6A, 0x05, 0xA0, 0x00, 0xFA, 0x33})
	step(t, vm, 3)

	assert.Equal(t, []byte{0, 0, 5}, vm.Memory[0:3])
}

func TestScenarioDraw(t *testing.T) {
	vm := newVM(t, []byte{
		0x00, 0xE0, // CLS
		0x60, 0x00, // LD V0, 0
		0x61, 0x00, // LD V1, 0
		0xA2, 0x0C, // LD I, #20C
		0xD0, 0x11, // DRW V0, V1, 1
		0x12, 0x0A, // JP #20A
		0x80, // sprite
	})
	vm.V[0xF] = 0xFF
	step(t, vm, 5)

	frame := vm.Frame()
	assert.True(t, frame.Pixel(0, 0))
	assert.False(t, frame.Pixel(1, 0))
	assert.Equal(t, 1, frame.Lit())
	assert.Equal(t, byte(0), vm.V[0xF])
}
