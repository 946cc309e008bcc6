package chip8

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	/// ErrImageTooLarge is returned when a program image doesn't fit
	/// between 0x200 and the end of memory.
	///
	ErrImageTooLarge = errors.New("image too large")

	/// Sentinels matched by faults of each kind with errors.Is.
	///
	ErrInvalidOpcode  = errors.New("invalid opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
)

/// FaultKind identifies why the virtual machine halted.
///
type FaultKind uint

const (
	InvalidOpcode FaultKind = iota
	StackOverflow
	StackUnderflow
)

func (k FaultKind) String() string {
	switch k {
	case InvalidOpcode:
		return "invalid opcode"
	case StackOverflow:
		return "stack overflow"
	case StackUnderflow:
		return "stack underflow"
	}

	return fmt.Sprintf("fault(%d)", uint(k))
}

/// Fault is a fatal execution error. It records the address of the
/// instruction that caused it and the raw instruction word.
///
type Fault struct {
	Kind FaultKind
	PC   uint16
	Word uint16
}

func (f *Fault) Error() string {
	if f.Kind == InvalidOpcode {
		return fmt.Sprintf("%s #%04X at #%04X", f.Kind, f.Word, f.PC)
	}

	return fmt.Sprintf("%s at #%04X (%s)", f.Kind, f.PC, Decode(f.Word))
}

/// Is matches a fault against the sentinel error of its kind.
///
func (f *Fault) Is(target error) bool {
	switch target {
	case ErrInvalidOpcode:
		return f.Kind == InvalidOpcode
	case ErrStackOverflow:
		return f.Kind == StackOverflow
	case ErrStackUnderflow:
		return f.Kind == StackUnderflow
	}

	return false
}
