package ostrich

type (
	MachineAddress = uint64
	MachineWord    = uint64
)

// WordSize is the width in bytes of every stack access.
const WordSize = 8

// Source is a loaded program. It is only ever replaced as a whole.
type Source []Instruction
