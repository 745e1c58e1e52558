package ostrich

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRegister      = errors.New("unknown register")
	ErrStackOverflow        = errors.New("stack overflow")
	ErrStackUnderflow       = errors.New("stack underflow")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrIllegalInstruction   = errors.New("illegal instruction")
)

// StackError describes an out of bounds stack access.
type StackError struct {
	Err       error // ErrStackOverflow or ErrStackUnderflow
	Address   MachineAddress
	Beginning MachineAddress
	Size      MachineAddress
}

func (e *StackError) Error() string {
	return fmt.Sprintf("%v at address 0x%X (stack spans 0x%X bytes below 0x%X)",
		e.Err, e.Address, e.Size, e.Beginning)
}

func (e *StackError) Unwrap() error {
	return e.Err
}
