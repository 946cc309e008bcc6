package chip8

import (
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
)

const (
	/// DefaultInstructionsPerTick is how many instructions are run for
	/// every call to Advance. At 60 ticks per second this is close to
	/// the ~500 instructions per second the RCA 1802 interpreter managed.
	///
	DefaultInstructionsPerTick = 10

	/// MaxInstructionsPerTick bounds IncSpeed.
	///
	MaxInstructionsPerTick = 100
)

/// Config controls how the virtual machine is driven.
///
type Config struct {
	/// InstructionsPerTick is the instruction budget of a single tick.
	/// Values below 1 are treated as 1.
	///
	InstructionsPerTick int

	/// StopOnRedraw ends a tick early once CLS or DRW has executed, so
	/// each tick shows at most one new frame.
	///
	StopOnRedraw bool

	/// Trace logs every executed instruction at debug level.
	///
	Trace bool
}

/// DefaultConfig returns the configuration used when none is given.
///
func DefaultConfig() Config {
	return Config{
		InstructionsPerTick: DefaultInstructionsPerTick,
		StopOnRedraw:        true,
	}
}

/// Random supplies the bytes used by the RND instruction.
///
type Random interface {
	Byte() byte
}

type mathRandom struct {
	rng *rand.Rand
}

/// NewRandom returns a Random backed by math/rand using the seed given.
///
func NewRandom(seed int64) Random {
	return &mathRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r *mathRandom) Byte() byte {
	return byte(r.rng.Intn(0x100))
}

/// Option customizes a virtual machine created by LoadROM.
///
type Option func(vm *CHIP_8)

/// WithConfig replaces the whole configuration.
///
func WithConfig(cfg Config) Option {
	return func(vm *CHIP_8) {
		vm.Config = cfg
	}
}

/// WithInstructionsPerTick sets the instruction budget of a tick.
///
func WithInstructionsPerTick(n int) Option {
	return func(vm *CHIP_8) {
		vm.Config.InstructionsPerTick = n
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(vm *CHIP_8) {
		vm.logger = logger
	}
}

func WithRandom(r Random) Option {
	return func(vm *CHIP_8) {
		vm.random = r
	}
}

func defaultRandom() Random {
	return NewRandom(time.Now().UTC().UnixNano())
}
