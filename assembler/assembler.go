package assembler

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"ostrich"
)

var recognizerBaseMap = map[*regexp.Regexp]int{
	regexp.MustCompile("^0b([0-1]+)$"):       2,
	regexp.MustCompile("^0o([0-7]+)$"):       8,
	regexp.MustCompile("^([0-9]+)$"):         10,
	regexp.MustCompile("^0x([0-9a-fA-F]+)$"): 16,
}

// ParseNum accepts decimal and 0x, 0o and 0b prefixed literals.
func ParseNum(in string) (uint64, error) {
	for recognizer, base := range recognizerBaseMap {
		matches := recognizer.FindStringSubmatch(in)
		if len(matches) > 1 {
			return strconv.ParseUint(matches[1], base, 64)
		}
	}
	return 0, errors.New("invalid number")
}

type parser struct {
	line   string
	tokens []Token
	pos    int
}

func (p *parser) peekAt(offset int) (Token, bool) {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[idx], true
}

func (p *parser) peek() (Token, bool) {
	return p.peekAt(0)
}

func (p *parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// rest quotes the unconsumed part of the line for error messages.
func (p *parser) rest() string {
	tok, ok := p.peek()
	if !ok {
		return "end of input"
	}
	return "'" + p.line[tok.Pos:] + "'"
}

func (p *parser) errorf(err error, format string, args ...any) *ParseError {
	return newError(err, p.line, format, args...)
}

func (p *parser) expect(kind TokenKind, text string, err error) error {
	tok, ok := p.peek()
	if !ok || tok.Kind != kind || tok.Text != text {
		return p.errorf(err, "expected '%s', found %s", text, p.rest())
	}
	p.pos++
	return nil
}

func (p *parser) parseRegister() (ostrich.RegisterName, error) {
	tok, ok := p.peek()
	if !ok || tok.Kind != TokenWord {
		return 0, p.errorf(ErrBadAddress, "expected a register name, found %s", p.rest())
	}
	reg, found := ostrich.RegisterByName(tok.Text)
	if !found {
		return 0, p.errorf(ErrUnknownRegister, "unknown register name '%s'", tok.Text)
	}
	p.pos++
	return reg, nil
}

func (p *parser) parseUint8() (uint8, error) {
	tok, ok := p.peek()
	if !ok || tok.Kind != TokenNumber {
		return 0, p.errorf(ErrBadAddress, "expected a number, found %s", p.rest())
	}
	p.pos++
	num, err := ParseNum(tok.Text)
	if errors.Is(err, strconv.ErrRange) || (err == nil && num > math.MaxUint8) {
		return 0, p.errorf(ErrOutOfRange, "expected a number <= %d, but got %s", math.MaxUint8, tok.Text)
	}
	if err != nil {
		return 0, p.errorf(ErrBadNumber, "failed to parse integer from '%s'", tok.Text)
	}
	return uint8(num), nil
}

// peekAdditive reports whether the next token is + or -.
func (p *parser) peekAdditive() (ostrich.AdditiveOperator, bool) {
	tok, ok := p.peek()
	if !ok || tok.Kind != TokenOperator {
		return 0, false
	}
	switch tok.Text {
	case "+":
		return ostrich.OpPlus, true
	case "-":
		return ostrich.OpMinus, true
	}
	return 0, false
}

// parseMemoryBody reads base (+|-) index-term (+|-) displacement where
// both trailing terms are optional and the index term is either a bare
// register or (register*scale).
func (p *parser) parseMemoryBody() (ostrich.MemoryAddress, error) {
	var m ostrich.MemoryAddress
	base, err := p.parseRegister()
	if err != nil {
		return m, err
	}
	m.Base = base

	if op, ok := p.peekAdditive(); ok {
		after, _ := p.peekAt(1)
		if after.Kind == TokenWord || after.Kind == TokenLeftParen {
			p.pos++
			m.IndexOperator, m.HasIndex, m.Scale = op, true, 1
			if after.Kind == TokenLeftParen {
				p.pos++
				if m.Index, err = p.parseRegister(); err != nil {
					return m, err
				}
				if err := p.expect(TokenOperator, "*", ErrBadAddress); err != nil {
					return m, err
				}
				if m.Scale, err = p.parseUint8(); err != nil {
					return m, err
				}
				if err := p.expect(TokenRightParen, ")", ErrBadAddress); err != nil {
					return m, err
				}
			} else if m.Index, err = p.parseRegister(); err != nil {
				return m, err
			}
		}
	}

	if op, ok := p.peekAdditive(); ok {
		p.pos++
		m.DisplacementOperator = op
		if m.Displacement, err = p.parseUint8(); err != nil {
			return m, err
		}
		if m.Displacement == 0 {
			// "-0" prints as nothing and reads back as "+0"
			m.DisplacementOperator = ostrich.OpPlus
		}
	}
	return m, nil
}

func (p *parser) parseOperand() (ostrich.Operand, error) {
	tok, _ := p.next()
	switch tok.Kind {
	case TokenNumber:
		num, err := ParseNum(tok.Text)
		if err != nil {
			return nil, p.errorf(ErrBadNumber, "malformed number '%s'", tok.Text)
		}
		return ostrich.Immediate(num), nil
	case TokenLeftBracket:
		return nil, p.errorf(ErrBadOperand, "memory operands are written 'qword ptr [...]', found '%s'", p.line[tok.Pos:])
	}

	if tok.Text == "qword" {
		if err := p.expect(TokenWord, "ptr", ErrBadOperand); err != nil {
			return nil, err
		}
		if err := p.expect(TokenLeftBracket, "[", ErrBadAddress); err != nil {
			return nil, err
		}
		m, err := p.parseMemoryBody()
		if err != nil {
			return nil, err
		}
		if tok, ok := p.peek(); !ok || tok.Kind != TokenRightBracket {
			if _, additive := p.peekAdditive(); additive || !ok {
				return nil, p.errorf(ErrBadAddress, "expected ']', found %s", p.rest())
			}
			return nil, p.errorf(ErrBadAddress, "missing operator, expected '+', '-' or ']', found %s", p.rest())
		}
		p.pos++
		return m, nil
	}

	reg, found := ostrich.RegisterByName(tok.Text)
	if !found {
		return nil, p.errorf(ErrUnknownRegister, "unknown register name '%s'", tok.Text)
	}
	return reg, nil
}

func startsOperand(tok Token) bool {
	return tok.Kind == TokenWord || tok.Kind == TokenNumber || tok.Kind == TokenLeftBracket
}

// parseOperands reads operands separated by spaces or commas.
func (p *parser) parseOperands() ([]ostrich.Operand, error) {
	var operands []ostrich.Operand
	for {
		tok, ok := p.peek()
		if !ok || !startsOperand(tok) {
			return operands, nil
		}
		op, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		operands = append(operands, op)

		if tok, ok := p.peek(); ok && tok.Kind == TokenComma {
			p.pos++
			if tok, ok := p.peek(); !ok || !startsOperand(tok) {
				return nil, p.errorf(ErrBadOperand, "expected an operand after ',', found %s", p.rest())
			}
		}
	}
}

func ParseInstruction(line string) (ostrich.Instruction, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, newError(ErrEmptyLine, line, "failed to parse empty source line")
	}
	p := &parser{line: line, tokens: tokens}

	mnemonic, _ := p.next()
	kind, found := ostrich.LookupInstruction(mnemonic.Text)
	if mnemonic.Kind != TokenWord || !found {
		return nil, p.errorf(ErrUnknownMnemonic,
			"failed to parse '%s', instruction '%s' not recognized", line, mnemonic.Text)
	}

	operands, err := p.parseOperands()
	if err != nil {
		return nil, err
	}
	if _, ok := p.peek(); ok {
		return nil, p.errorf(ErrTrailingInput, "unexpected trailing characters: %s", p.rest())
	}
	if len(operands) != kind.NumArgs {
		return nil, p.errorf(ErrOperandCount,
			"wrong number of operands, got %d, expected %d", len(operands), kind.NumArgs)
	}
	return p.build(kind, operands)
}

func (p *parser) build(kind ostrich.InstructionKind, operands []ostrich.Operand) (ostrich.Instruction, error) {
	reg, isReg := operands[0].(ostrich.RegisterName)
	if !isReg {
		return nil, p.errorf(ErrBadOperand, "'%s' expects a register as first operand, got '%s'",
			kind.Name, ostrich.FormatOperand(operands[0]))
	}
	switch kind.Name {
	case "inc":
		return ostrich.Inc{Register: reg}, nil
	case "dec":
		return ostrich.Dec{Register: reg}, nil
	case "push":
		return ostrich.Push{Register: reg}, nil
	case "pop":
		return ostrich.Pop{Register: reg}, nil
	case "add":
		return ostrich.Add{Destination: reg, Source: operands[1]}, nil
	case "mov":
		return ostrich.Mov{Destination: reg, Source: operands[1]}, nil
	}
	return nil, p.errorf(ErrUnknownMnemonic, "no encoding for instruction '%s'", kind.Name)
}

// ParseMemoryAddress parses the text found between the brackets of a
// memory operand, e.g. "rax+(rbx*2)-4".
func ParseMemoryAddress(text string) (ostrich.MemoryAddress, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return ostrich.MemoryAddress{}, err
	}
	p := &parser{line: text, tokens: tokens}
	m, err := p.parseMemoryBody()
	if err != nil {
		return ostrich.MemoryAddress{}, err
	}
	if _, ok := p.peek(); ok {
		return ostrich.MemoryAddress{}, p.errorf(ErrTrailingInput, "unexpected trailing characters: %s", p.rest())
	}
	return m, nil
}

// Parse reads one instruction per line. Lines may end in "\r\n". Empty
// lines are skipped.
func Parse(text string) (ostrich.Source, error) {
	var source ostrich.Source
	for idx, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		inst, err := ParseInstruction(line)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Line = idx + 1
			}
			return nil, err
		}
		source = append(source, inst)
	}
	return source, nil
}

func Read(r io.Reader) (ostrich.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return Parse(string(data))
}

// Format prints a source back in its canonical form.
func Format(source ostrich.Source) string {
	var sb strings.Builder
	for _, inst := range source {
		sb.WriteString(inst.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
