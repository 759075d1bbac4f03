package asm

type Assembler struct {
	resolver    Resolver
	parseOpts   parseOptions
	strict      bool
	destructive bool

	labels  LabelTable
	program Program
}

type Option func(*Assembler)

// WithStrictLabels makes a repeated label declaration an error instead of
// letting the last one win.
func WithStrictLabels() Option {
	return func(a *Assembler) {
		a.strict = true
	}
}

// WithDestructiveRefs enables the !"name" operand and resolves the program
// in a single pass with Destructive.
func WithDestructiveRefs() Option {
	return func(a *Assembler) {
		a.destructive = true
	}
}

// WithResolver overrides the resolution strategy.
func WithResolver(r Resolver) Option {
	return func(a *Assembler) {
		a.resolver = r
	}
}

func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{}
	for _, opt := range opts {
		opt(a)
	}

	a.parseOpts.destructive = a.destructive
	if a.resolver == nil {
		if a.destructive {
			a.resolver = Destructive{}
		} else {
			a.resolver = TwoPass{Strict: a.strict}
		}
	}
	return a
}

// Assemble parses and resolves code with the default two-pass strategy.
// The map gives, for each source line that emitted bytes, the 0-based line
// number keyed by the address of its first byte.
func Assemble(code string) ([]byte, map[byte]int, error) {
	return NewAssembler().Assemble(code)
}

func (a *Assembler) Assemble(code string) ([]byte, map[byte]int, error) {
	a.labels = nil
	a.program = nil

	program, sourceMap, err := parseSource(code, a.parseOpts)
	if err != nil {
		return nil, nil, err
	}
	a.program = program

	output, labels, err := a.resolver.Resolve(program)
	if err != nil {
		return nil, nil, err
	}
	a.labels = labels

	return output, sourceMap, nil
}

// Labels returns the label table from the last successful Assemble.
func (a *Assembler) Labels() LabelTable {
	return a.labels
}

// Tokens returns the program parsed by the last Assemble, even if
// resolution failed.
func (a *Assembler) Tokens() Program {
	return a.program
}
