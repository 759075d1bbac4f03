package asm

import (
	"strings"

	"github.com/pkg/errors"

	"nibasm/pkg/isa"
)

type parseOptions struct {
	destructive bool
}

// ParseLine turns one source line into its tokens: none for blank and
// comment lines, two for an instruction, an even number for DATA.
// lineNo is only used for error reporting.
func ParseLine(line string, lineNo int) ([]Token, error) {
	return parseLine(line, lineNo, parseOptions{})
}

// ParseSource parses every line of src into one program. The returned map
// records, for each line that produced tokens, the address of its first
// token.
func ParseSource(src string) (Program, map[byte]int, error) {
	return parseSource(src, parseOptions{})
}

func parseSource(src string, opts parseOptions) (Program, map[byte]int, error) {
	program := make(Program, 0, isa.MemorySize)
	sourceMap := make(map[byte]int)

	for i, raw := range strings.Split(src, "\n") {
		tokens, err := parseLine(strings.TrimSuffix(raw, "\r"), i, opts)
		if err != nil {
			return nil, nil, err
		}
		if len(tokens) == 0 {
			continue
		}
		if len(program) <= isa.MaxAddress {
			sourceMap[byte(len(program))] = i
		}
		program = append(program, tokens...)
	}

	return program, sourceMap, nil
}

func parseLine(raw string, lineNo int, opts parseOptions) ([]Token, error) {
	s := &lineScanner{src: raw}
	s.skipSpace()
	if s.done() || s.hasPrefix("//") {
		return nil, nil
	}

	tokens, err := parseStatement(s, opts)
	if err != nil {
		return nil, &ParseError{Line: lineNo, Text: raw, Err: err}
	}
	return tokens, nil
}

func parseStatement(s *lineScanner, opts parseOptions) ([]Token, error) {
	word := s.word()
	if word == "" {
		return nil, errors.Errorf("expected mnemonic at column %d", s.pos)
	}

	var tokens []Token
	var err error
	if strings.EqualFold(word, "DATA") {
		tokens, err = parseData(s)
	} else {
		op, ok := isa.Lookup(word)
		if !ok {
			return nil, errors.Errorf("unknown mnemonic %q", word)
		}
		tokens, err = parseInstruction(s, op, opts)
	}
	if err != nil {
		return nil, err
	}

	// The second label goes on the last byte before alignment padding.
	head, tail, err := parseLabels(s)
	if err != nil {
		return nil, err
	}
	if head != "" {
		tokens[0].Label = head
	}
	if tail != "" {
		tokens[len(tokens)-1].Label = tail
	}

	if err := parseTerminator(s); err != nil {
		return nil, err
	}

	if len(tokens)%isa.CellSize != 0 {
		tokens = append(tokens, Const(0x00))
	}
	return tokens, nil
}

func parseInstruction(s *lineScanner, op isa.Opcode, opts parseOptions) ([]Token, error) {
	s.skipSpace()
	if !isHexDigit(s.peek()) {
		return nil, errors.Errorf("%s expects a register at column %d", op, s.pos)
	}
	reg := hexValue(s.next())
	if isHexDigit(s.peek()) {
		return nil, errors.Errorf("register must be a single hex digit at column %d", s.pos-1)
	}

	operand := Const(0x00)
	s.skipSpace()
	switch c := s.peek(); {
	case c == '"':
		name, err := s.quoted()
		if err != nil {
			return nil, err
		}
		operand = Ref(name)
	case c == '!' && opts.destructive:
		s.next()
		name, err := s.quoted()
		if err != nil {
			return nil, err
		}
		operand = DestructiveRef(name)
	case isHexDigit(c):
		b, err := s.hexByte()
		if err != nil {
			return nil, err
		}
		operand = Const(b)
	}

	return []Token{Const(isa.Pack(op, reg)), operand}, nil
}

func parseData(s *lineScanner) ([]Token, error) {
	s.skipSpace()

	var data []byte
	if s.peek() == '"' {
		text, err := s.quoted()
		if err != nil {
			return nil, err
		}
		data = []byte(text)
	} else {
		for isHexDigit(s.peek()) {
			b, err := s.hexByte()
			if err != nil {
				return nil, err
			}
			data = append(data, b)
			s.skipSpace()
		}
	}
	if len(data) == 0 {
		return nil, errors.New("DATA expects a non-empty string or a list of hex bytes")
	}

	tokens := make([]Token, len(data), len(data)+1)
	for i, b := range data {
		tokens[i] = Const(b)
	}
	return tokens, nil
}

func parseLabels(s *lineScanner) (head, tail string, err error) {
	for i := 0; i < 2; i++ {
		s.skipSpace()
		if s.peek() != ':' {
			break
		}
		s.next()
		s.skipSpace()
		if s.peek() != '"' {
			return "", "", errors.Errorf("expected quoted label after ':' at column %d", s.pos)
		}
		name, err := s.quoted()
		if err != nil {
			return "", "", err
		}
		if name == "" {
			return "", "", errors.New("empty label name")
		}
		if i == 0 {
			head = name
		} else {
			tail = name
		}
	}
	return head, tail, nil
}

// parseTerminator accepts the end of the line, a ';' terminator or a '//'
// comment. Anything after either is ignored.
func parseTerminator(s *lineScanner) error {
	s.skipSpace()
	if s.done() || s.peek() == ';' || s.hasPrefix("//") {
		return nil
	}
	return errors.Errorf("unexpected %q at column %d", s.src[s.pos:], s.pos)
}

type lineScanner struct {
	src string
	pos int
}

func (s *lineScanner) done() bool {
	return s.pos >= len(s.src)
}

// peek returns 0 at the end of the line.
func (s *lineScanner) peek() byte {
	if s.done() {
		return 0
	}
	return s.src[s.pos]
}

func (s *lineScanner) next() byte {
	c := s.peek()
	if !s.done() {
		s.pos++
	}
	return c
}

func (s *lineScanner) hasPrefix(prefix string) bool {
	return strings.HasPrefix(s.src[s.pos:], prefix)
}

func (s *lineScanner) skipSpace() {
	for !s.done() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

func (s *lineScanner) word() string {
	start := s.pos
	for !s.done() && isLetter(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// quoted reads a double-quoted run. There are no escapes: the text ends at
// the next '"'.
func (s *lineScanner) quoted() (string, error) {
	if s.peek() != '"' {
		return "", errors.Errorf("expected '\"' at column %d", s.pos)
	}
	start := s.pos + 1
	end := strings.IndexByte(s.src[start:], '"')
	if end < 0 {
		return "", errors.Errorf("unterminated string at column %d", s.pos)
	}
	s.pos = start + end + 1
	return s.src[start : start+end], nil
}

// hexByte reads one or two hex digits. A lone digit is zero-extended.
func (s *lineScanner) hexByte() (byte, error) {
	start := s.pos
	var v byte
	for n := 0; n < 2 && isHexDigit(s.peek()); n++ {
		v = v<<4 | hexValue(s.next())
	}
	if s.pos == start {
		return 0, errors.Errorf("expected hex byte at column %d", start)
	}
	if isHexDigit(s.peek()) {
		return 0, errors.Errorf("hex byte too long at column %d", start)
	}
	return v, nil
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func hexValue(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
