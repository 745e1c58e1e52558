package assembler

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type TokenKind uint8

const (
	TokenWord TokenKind = iota
	TokenNumber
	TokenComma
	TokenOperator
	TokenLeftBracket
	TokenRightBracket
	TokenLeftParen
	TokenRightParen
)

var tokenKindNames = []string{
	"Word",
	"Number",
	"Comma",
	"Operator",
	"LeftBracket",
	"RightBracket",
	"LeftParenthesis",
	"RightParenthesis",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

type Token struct {
	Kind TokenKind
	Text string
	Pos  int // byte offset in the line
}

func (t Token) String() string {
	return t.Kind.String() + "{" + t.Text + "}"
}

var singleCharTokens = map[byte]TokenKind{
	',': TokenComma,
	'+': TokenOperator,
	'-': TokenOperator,
	'*': TokenOperator,
	'[': TokenLeftBracket,
	']': TokenRightBracket,
	'(': TokenLeftParen,
	')': TokenRightParen,
}

func isWordChar(ch byte) bool {
	return ch < unicode.MaxASCII && (unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_')
}

// Tokenize splits one source line. Numbers start with a digit and run over
// letters too, so that 0xfe stays one token; validating them is left to
// the parser.
func Tokenize(line string) ([]Token, error) {
	var tokens []Token
	for pos := 0; pos < len(line); {
		ch := line[pos]
		if ch == ' ' || ch == '\t' {
			pos++
			continue
		}
		if kind, found := singleCharTokens[ch]; found {
			tokens = append(tokens, Token{Kind: kind, Text: line[pos : pos+1], Pos: pos})
			pos++
			continue
		}
		if !isWordChar(ch) {
			r, _ := utf8.DecodeRuneInString(line[pos:])
			return tokens, newError(ErrInvalidCharacter, line, "invalid character %q at column %d", r, pos+1)
		}
		end := pos
		for end < len(line) && isWordChar(line[end]) {
			end++
		}
		kind := TokenWord
		if unicode.IsDigit(rune(ch)) {
			kind = TokenNumber
		}
		tokens = append(tokens, Token{Kind: kind, Text: line[pos:end], Pos: pos})
		pos = end
	}
	return tokens, nil
}
