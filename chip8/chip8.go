package chip8

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

const (
	/// ProgramStart is where program images are loaded and execution
	/// begins.
	///
	ProgramStart = 0x200

	/// MemorySize is the size of addressable memory.
	///
	MemorySize = 0x1000

	/// MaxProgramSize is the largest program image that can be loaded.
	///
	MaxProgramSize = MemorySize - ProgramStart

	/// StackDepth is the number of nested subroutine calls allowed.
	///
	StackDepth = 16
)

/// CHIP_8 virtual machine emulator.
///
type CHIP_8 struct {
	/// ROM memory for CHIP-8. This holds the glyph sprites as well as
	/// the program image. It is a pristine state upon being loaded that
	/// Memory can be reset back to.
	///
	ROM [MemorySize]byte

	/// Memory addressable by CHIP-8. The first 512 bytes are reserved
	/// for the glyph sprites.
	///
	Memory [MemorySize]byte

	/// PC is the program counter. All programs begin at 0x200.
	///
	PC uint16

	/// SP is the number of return addresses on the stack.
	///
	SP uint8

	/// Stack holds subroutine return addresses.
	///
	Stack [StackDepth]uint16

	/// I is the address register.
	///
	I uint16

	/// V are the 16 virtual registers.
	///
	V [16]byte

	/// The delay and sound timer registers. Each counts down once per
	/// tick until it reaches zero.
	///
	DT, ST byte

	/// Keys hold the state of the 16-key pad for the current tick.
	///
	Keys [16]bool

	/// Cycles is how many instructions have been executed.
	///
	Cycles int64

	/// Config controls the instruction budget of each tick.
	///
	Config Config

	// video memory, see Frame
	video Frame

	// set by instructions that change video memory
	redraw bool

	// true while Fx0A is blocked waiting for a key
	waiting bool

	// the fault that halted the machine
	fault *Fault

	random Random
	logger *log.Logger
}

/// LoadROM creates a new CHIP-8 virtual machine from a program image.
///
func LoadROM(program []byte, opts ...Option) (*CHIP_8, error) {
	if len(program) > MaxProgramSize {
		return nil, errors.Wrapf(ErrImageTooLarge, "%d bytes, at most %d fit", len(program), MaxProgramSize)
	}

	// create the new CHIP-8 virtual machine
	vm := &CHIP_8{
		Config: DefaultConfig(),
	}

	for _, opt := range opts {
		opt(vm)
	}

	if vm.random == nil {
		vm.random = defaultRandom()
	}

	// copy the glyph sprites and the program into the CHIP-8
	copy(vm.ROM[:], Glyphs[:])
	copy(vm.ROM[ProgramStart:], program)

	// reset the VM memory
	vm.Reset()

	return vm, nil
}

/// LoadFile loads a ROM file and returns a new CHIP-8 virtual machine.
///
func LoadFile(file string, opts ...Option) (*CHIP_8, error) {
	program, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "reading rom")
	}

	vm, err := LoadROM(program, opts...)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}

	return vm, nil
}

/// Reset the CHIP-8 virtual machine to the state right after loading.
///
func (vm *CHIP_8) Reset() {
	vm.Memory = vm.ROM

	// reset video memory and keys
	vm.video = Frame{}
	vm.Keys = [16]bool{}

	// reset program counter and stack
	vm.PC = ProgramStart
	vm.SP = 0
	vm.Stack = [StackDepth]uint16{}

	// reset address and virtual registers
	vm.I = 0
	vm.V = [16]byte{}

	// reset timer registers
	vm.DT = 0
	vm.ST = 0

	vm.Cycles = 0
	vm.redraw = false
	vm.waiting = false
	vm.fault = nil
}

/// Frame returns a copy of the current video memory.
///
func (vm *CHIP_8) Frame() Frame {
	return vm.video
}

/// Halted is true once a fault has stopped the machine.
///
func (vm *CHIP_8) Halted() bool {
	return vm.fault != nil
}

/// Fault returns the fault that halted the machine, or nil.
///
func (vm *CHIP_8) Fault() *Fault {
	return vm.fault
}

/// Waiting is true while an LD Vx, K instruction is blocked.
///
func (vm *CHIP_8) Waiting() bool {
	return vm.waiting
}

/// SoundActive is true while the sound timer is running.
///
func (vm *CHIP_8) SoundActive() bool {
	return vm.ST > 0
}

/// IncSpeed raises the instruction budget of a tick by one.
///
func (vm *CHIP_8) IncSpeed() {
	if vm.Config.InstructionsPerTick < MaxInstructionsPerTick {
		vm.Config.InstructionsPerTick++
	}
}

/// DecSpeed lowers the instruction budget of a tick by one.
///
func (vm *CHIP_8) DecSpeed() {
	if vm.Config.InstructionsPerTick > 1 {
		vm.Config.InstructionsPerTick--
	}
}

/// Advance runs a single tick: latch the keys, execute up to the
/// configured number of instructions, then count the timers down.
/// Once a fault occurs, every following tick returns it until Reset.
///
func (vm *CHIP_8) Advance(keys [16]bool) (Frame, error) {
	if vm.fault != nil {
		return vm.video, vm.fault
	}

	vm.Keys = keys

	n := vm.Config.InstructionsPerTick
	if n < 1 {
		n = 1
	}

	for i := 0; i < n; i++ {
		if err := vm.Step(); err != nil {
			return vm.video, err
		}

		// no reason to spin on a key wait, the keys won't change
		if vm.waiting || (vm.redraw && vm.Config.StopOnRedraw) {
			break
		}
	}

	if vm.DT > 0 {
		vm.DT--
	}
	if vm.ST > 0 {
		vm.ST--
	}

	return vm.video, nil
}

/// Step the CHIP-8 virtual machine a single instruction.
///
func (vm *CHIP_8) Step() error {
	if vm.fault != nil {
		return vm.fault
	}

	pc := vm.PC

	// fetch the next instruction
	inst := Decode(vm.fetch())

	if vm.Config.Trace && vm.logger != nil {
		vm.logger.Debug("exec",
			log.String("pc", fmt.Sprintf("#%04X", pc)),
			log.String("inst", inst.String()))
	}

	vm.redraw = false

	if kind, ok := vm.execute(inst); !ok {
		return vm.halt(kind, pc, inst.Word)
	}

	// increment the cycle count
	vm.Cycles += 1

	return nil
}

/// Fetch the next 16-bit instruction to execute.
///
func (vm *CHIP_8) fetch() uint16 {
	i := vm.PC

	// advance the program counter
	vm.PC += 2

	// return the 16-bit instruction
	return uint16(vm.Memory[i&0xFFF])<<8 | uint16(vm.Memory[(i+1)&0xFFF])
}

/// halt the machine with a fault.
///
func (vm *CHIP_8) halt(kind FaultKind, pc, word uint16) error {
	vm.PC = pc
	vm.fault = &Fault{Kind: kind, PC: pc, Word: word}

	if vm.logger != nil {
		vm.logger.Error("CHIP-8 halted", vm.fault,
			log.String("fault", kind.String()),
			log.String("pc", fmt.Sprintf("#%04X", pc)),
			log.String("opcode", fmt.Sprintf("#%04X", word)))
	}

	return vm.fault
}
