package ostrich

import (
	"fmt"
	"strconv"
	"strings"
)

type AdditiveOperator uint8

const (
	OpPlus AdditiveOperator = iota
	OpMinus
)

func (op AdditiveOperator) String() string {
	switch op {
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// Apply wraps around on overflow; bounds are only enforced by the stack.
func (op AdditiveOperator) Apply(a, b MachineWord) MachineWord {
	if op == OpMinus {
		return a - b
	}
	return a + b
}

// MemoryAddress is an effective address of the form
// base (+|-) index*scale (+|-) displacement.
type MemoryAddress struct {
	Base                 RegisterName
	IndexOperator        AdditiveOperator
	HasIndex             bool
	Index                RegisterName
	Scale                uint8
	DisplacementOperator AdditiveOperator
	Displacement         uint8
}

func (m MemoryAddress) Resolve(regs *RegisterFile) (MachineAddress, error) {
	result, err := regs.Read(m.Base)
	if err != nil {
		return 0, err
	}
	if m.HasIndex {
		index, err := regs.Read(m.Index)
		if err != nil {
			return 0, err
		}
		result = m.IndexOperator.Apply(result, index*MachineWord(m.Scale))
	}
	return m.DisplacementOperator.Apply(result, MachineWord(m.Displacement)), nil
}

// String omits the index term when absent and a zero displacement.
func (m MemoryAddress) String() string {
	var sb strings.Builder
	sb.WriteString(m.Base.String())
	if m.HasIndex {
		fmt.Fprintf(&sb, "%v(%v*%d)", m.IndexOperator, m.Index, m.Scale)
	}
	if m.Displacement != 0 {
		fmt.Fprintf(&sb, "%v%d", m.DisplacementOperator, m.Displacement)
	}
	return sb.String()
}

// LongString prints every term, including the ones that do not apply.
func (m MemoryAddress) LongString() string {
	index := "none"
	if m.HasIndex {
		index = m.Index.String()
	}
	return fmt.Sprintf("%v%v(%s*%d)%v%d",
		m.Base, m.IndexOperator, index, m.Scale, m.DisplacementOperator, m.Displacement)
}
