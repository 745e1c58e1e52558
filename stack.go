package ostrich

import (
	"fmt"
	"slices"
)

// Stack is a byte addressable region that grows downward: address
// beginning is buffer index 0, beginning-1 is index 1 and so on.
// Words are stored little-endian, the least significant byte sitting
// at the highest index of the word.
type Stack struct {
	size      MachineAddress
	beginning MachineAddress
	content   []byte
}

func MakeStack(size, beginning MachineAddress) (*Stack, error) {
	if size > 0 && beginning < size-1 {
		return nil, fmt.Errorf(
			"%w: stack is %d big, so beginning must be at least %d. %d is too small",
			ErrInvalidConfiguration, size, size-1, beginning,
		)
	}
	return &Stack{
		size:      size,
		beginning: beginning,
		content:   make([]byte, size),
	}, nil
}

func (s *Stack) Size() MachineAddress {
	return s.size
}

func (s *Stack) Beginning() MachineAddress {
	return s.beginning
}

// Content returns a copy of the buffer, index 0 being Beginning().
func (s *Stack) Content() []byte {
	return slices.Clone(s.content)
}

func (s *Stack) Clone() *Stack {
	return &Stack{
		size:      s.size,
		beginning: s.beginning,
		content:   slices.Clone(s.content),
	}
}

// wordIndex returns the buffer index of the most significant byte of the
// word at address.
func (s *Stack) wordIndex(address MachineAddress) (MachineAddress, error) {
	if address > s.beginning {
		return 0, s.newError(ErrStackUnderflow, address)
	}
	index := s.beginning - address
	if s.size < WordSize || index > s.size-WordSize {
		return 0, s.newError(ErrStackOverflow, address)
	}
	return index, nil
}

func (s *Stack) Store(address MachineAddress, value MachineWord) error {
	index, err := s.wordIndex(address)
	if err != nil {
		return err
	}
	lsbIndex := index + WordSize - 1
	for i := MachineAddress(0); i < WordSize; i++ {
		s.content[lsbIndex-i] = byte(value >> (i * 8))
	}
	return nil
}

func (s *Stack) Load(address MachineAddress) (MachineWord, error) {
	index, err := s.wordIndex(address)
	if err != nil {
		return 0, err
	}
	var value MachineWord
	for i := index; i < index+WordSize; i++ {
		value = value<<8 | MachineWord(s.content[i])
	}
	return value, nil
}

func (s *Stack) newError(err error, address MachineAddress) error {
	return &StackError{
		Err:       err,
		Address:   address,
		Beginning: s.beginning,
		Size:      s.size,
	}
}
