package ostrich

import (
	"fmt"
)

type Cpu struct {
	stack           *Stack
	source          Source
	nextInstruction int
	registers       RegisterFile
}

func MakeCpu(stack *Stack, source Source) *Cpu {
	return &Cpu{
		stack:     stack,
		source:    source,
		registers: startupRegisters(stack),
	}
}

func (c *Cpu) NextInstruction() int {
	return c.nextInstruction
}

func (c *Cpu) Done() bool {
	return c.nextInstruction >= len(c.source)
}

func (c *Cpu) Registers() []Register {
	return c.registers.Registers()
}

// Register returns 0 for names outside the register file.
func (c *Cpu) Register(name RegisterName) MachineWord {
	value, _ := c.registers.Read(name)
	return value
}

func (c *Cpu) LoadEffectiveAddress(m MemoryAddress) (MachineAddress, error) {
	return m.Resolve(&c.registers)
}

// Step executes the instruction under the cursor and advances it. Once the
// end of the source is reached it does nothing.
func (c *Cpu) Step() error {
	if c.Done() {
		return nil
	}
	if err := c.Execute(c.source[c.nextInstruction]); err != nil {
		return err
	}
	c.nextInstruction++
	return nil
}

// Execute applies a single instruction without touching the cursor.
// Nothing is written unless the whole instruction succeeds.
func (c *Cpu) Execute(instruction Instruction) error {
	switch inst := instruction.(type) {
	case Inc:
		return c.mapRegister(inst.Register, func(v MachineWord) MachineWord { return v + 1 })
	case Dec:
		return c.mapRegister(inst.Register, func(v MachineWord) MachineWord { return v - 1 })
	case Add:
		value, err := c.resolve(inst.Source)
		if err != nil {
			return err
		}
		return c.mapRegister(inst.Destination, func(v MachineWord) MachineWord { return v + value })
	case Mov:
		value, err := c.resolve(inst.Source)
		if err != nil {
			return err
		}
		return c.registers.Write(inst.Destination, value)
	case Push:
		return c.push(inst.Register)
	case Pop:
		return c.pop(inst.Register)
	}
	return fmt.Errorf("%w: %v", ErrIllegalInstruction, instruction)
}

func (c *Cpu) mapRegister(name RegisterName, mapf func(MachineWord) MachineWord) error {
	old, err := c.registers.Read(name)
	if err != nil {
		return err
	}
	return c.registers.Write(name, mapf(old))
}

func (c *Cpu) resolve(op Operand) (MachineWord, error) {
	switch op := op.(type) {
	case RegisterName:
		return c.registers.Read(op)
	case Immediate:
		return MachineWord(op), nil
	case MemoryAddress:
		address, err := op.Resolve(&c.registers)
		if err != nil {
			return 0, err
		}
		return c.stack.Load(address)
	}
	return 0, fmt.Errorf("%w: bad operand %v", ErrIllegalInstruction, FormatOperand(op))
}

func (c *Cpu) push(name RegisterName) error {
	value, err := c.registers.Read(name)
	if err != nil {
		return err
	}
	sp := c.registers[RegStackPointer]
	if err := c.stack.Store(sp, value); err != nil {
		return err
	}
	c.registers[RegStackPointer] = sp - WordSize
	return nil
}

func (c *Cpu) pop(name RegisterName) error {
	if !name.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownRegister, name)
	}
	sp := c.registers[RegStackPointer] + WordSize
	value, err := c.stack.Load(sp)
	if err != nil {
		return err
	}
	// pop rsp ends up holding the loaded value
	c.registers[RegStackPointer] = sp
	c.registers[name] = value
	return nil
}

// clone deep copies the cpu along with the stack it runs against.
func (c *Cpu) clone() *Cpu {
	out := *c
	out.stack = c.stack.Clone()
	return &out
}
