package asm

import "fmt"

// Value is what a token contributes to the output: a literal byte or a
// reference to a label's address.
type Value interface {
	isValue()
	String() string
}

// Constant is emitted verbatim.
type Constant byte

// LabelRef is replaced with the address of the named label.
type LabelRef string

// DestructiveLabelRef resolves like LabelRef against the labels declared so
// far, then removes that label so the name can be declared again later.
type DestructiveLabelRef string

func (Constant) isValue()            {}
func (LabelRef) isValue()            {}
func (DestructiveLabelRef) isValue() {}

func (c Constant) String() string            { return fmt.Sprintf("0x%02X", byte(c)) }
func (r LabelRef) String() string            { return fmt.Sprintf("%q", string(r)) }
func (r DestructiveLabelRef) String() string { return fmt.Sprintf("!%q", string(r)) }

// Token is one byte of output. A non-empty Label makes the token's address
// available under that name.
type Token struct {
	Value Value
	Label string
}

func Const(b byte) Token {
	return Token{Value: Constant(b)}
}

func Ref(name string) Token {
	return Token{Value: LabelRef(name)}
}

func DestructiveRef(name string) Token {
	return Token{Value: DestructiveLabelRef(name)}
}

// WithLabel returns a copy of t declaring label.
func (t Token) WithLabel(label string) Token {
	t.Label = label
	return t
}

func (t Token) String() string {
	if t.Label == "" {
		return t.Value.String()
	}
	return fmt.Sprintf("%s : %q", t.Value, t.Label)
}

// Program is a flat token sequence. A token's address is its index; it is
// never stored on the token.
type Program []Token

// LabelTable maps label names to addresses for a single assembly run.
type LabelTable map[string]byte
