package ostrich

import (
	"fmt"
	"strconv"
)

type RegisterName uint8

const (
	RegRAX RegisterName = iota
	RegRBX
	RegRCX
	RegRDX
	RegRSI
	RegRDI
	RegRBP
	RegRSP
	RegisterCount
)

const RegStackPointer = RegRSP

type RegisterTag byte

const (
	RegisterTagGeneralPurpose RegisterTag = 1 << iota
	RegisterTagSpecial
)

type RegisterInfo struct {
	Name     string
	Desc     string
	Longdesc string
	Tags     RegisterTag
}

var registerInfo = [RegisterCount]RegisterInfo{
	RegRAX: {
		Name: "rax", Desc: "Accumulator",
		Longdesc: "General purpose; conventionally holds arithmetic results",
		Tags:     RegisterTagGeneralPurpose,
	},
	RegRBX: {
		Name: "rbx", Desc: "Base",
		Longdesc: "General purpose; conventionally holds a base address",
		Tags:     RegisterTagGeneralPurpose,
	},
	RegRCX: {
		Name: "rcx", Desc: "Counter",
		Longdesc: "General purpose",
		Tags:     RegisterTagGeneralPurpose,
	},
	RegRDX: {
		Name: "rdx", Desc: "Data",
		Longdesc: "General purpose",
		Tags:     RegisterTagGeneralPurpose,
	},
	RegRSI: {
		Name: "rsi", Desc: "Source index",
		Longdesc: "General purpose",
		Tags:     RegisterTagGeneralPurpose,
	},
	RegRDI: {
		Name: "rdi", Desc: "Destination index",
		Longdesc: "General purpose",
		Tags:     RegisterTagGeneralPurpose,
	},
	RegRBP: {
		Name: "rbp", Desc: "Base pointer",
		Longdesc: "General purpose; conventionally points at the current frame",
		Tags:     RegisterTagGeneralPurpose,
	},
	RegRSP: {
		Name: "rsp", Desc: "Stack pointer",
		Longdesc: "Points at the next free stack word; push stores then moves it down by 8, pop moves it up by 8 then loads",
		Tags:     RegisterTagGeneralPurpose | RegisterTagSpecial,
	},
}

func (r RegisterName) Valid() bool {
	return r < RegisterCount
}

func (r RegisterName) Info() RegisterInfo {
	if !r.Valid() {
		return RegisterInfo{Name: r.String()}
	}
	return registerInfo[r]
}

func (r RegisterName) String() string {
	if !r.Valid() {
		return "reg(" + strconv.Itoa(int(r)) + ")"
	}
	return registerInfo[r].Name
}

// RegisterByName maps an assembly mnemonic to its register.
func RegisterByName(name string) (RegisterName, bool) {
	for r := RegisterName(0); r < RegisterCount; r++ {
		if registerInfo[r].Name == name {
			return r, true
		}
	}
	return 0, false
}

type Register struct {
	Name  RegisterName
	Value MachineWord
}

// RegisterFile is indexed by RegisterName. Being an array, assigning it
// copies every register.
type RegisterFile [RegisterCount]MachineWord

func (rf *RegisterFile) Read(name RegisterName) (MachineWord, error) {
	if !name.Valid() {
		return 0, fmt.Errorf("%w: %v", ErrUnknownRegister, name)
	}
	return rf[name], nil
}

func (rf *RegisterFile) Write(name RegisterName, value MachineWord) error {
	if !name.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownRegister, name)
	}
	rf[name] = value
	return nil
}

func (rf *RegisterFile) Registers() []Register {
	out := make([]Register, RegisterCount)
	for idx, value := range rf {
		out[idx] = Register{Name: RegisterName(idx), Value: value}
	}
	return out
}

func startupRegisters(stack *Stack) (out RegisterFile) {
	out[RegStackPointer] = stack.Beginning()
	return out
}
