package assembler

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyLine        = errors.New("empty line")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrUnknownMnemonic  = errors.New("unknown mnemonic")
	ErrOperandCount     = errors.New("wrong number of operands")
	ErrUnknownRegister  = errors.New("unknown register")
	ErrBadOperand       = errors.New("bad operand")
	ErrBadNumber        = errors.New("malformed number")
	ErrBadAddress       = errors.New("malformed memory address")
	ErrOutOfRange       = errors.New("number out of range")
	ErrTrailingInput    = errors.New("trailing input")
)

// ParseError locates a syntax error. Err is one of the sentinels above.
type ParseError struct {
	Line  int // 1-based, 0 when parsing a single line
	Input string
	Err   error
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newError(err error, input, format string, args ...any) *ParseError {
	return &ParseError{
		Input: input,
		Err:   err,
		Msg:   fmt.Sprintf(format, args...),
	}
}
