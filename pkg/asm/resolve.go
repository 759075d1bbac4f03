package asm

import (
	"github.com/pkg/errors"

	"nibasm/pkg/isa"
)

// Resolver turns a program into bytes, replacing every label reference with
// the address it names.
type Resolver interface {
	Resolve(program Program) ([]byte, LabelTable, error)
}

// TwoPass builds the complete label table before resolving anything, so a
// reference may point forward or backward. A label declared twice resolves
// to its last declaration unless Strict is set.
type TwoPass struct {
	Strict bool
}

func (r TwoPass) Resolve(program Program) ([]byte, LabelTable, error) {
	if err := checkSize(program); err != nil {
		return nil, nil, err
	}

	labels, err := BuildLabelTable(program, r.Strict)
	if err != nil {
		return nil, nil, err
	}

	output := make([]byte, 0, len(program))
	for address, token := range program {
		switch v := token.Value.(type) {
		case Constant:
			output = append(output, byte(v))
		case LabelRef:
			target, ok := labels[string(v)]
			if !ok {
				return nil, nil, &UnresolvedLabelError{Label: string(v), Address: address}
			}
			output = append(output, target)
		case DestructiveLabelRef:
			return nil, nil, errors.Errorf("destructive reference %s at 0x%02X needs destructive resolution", v, address)
		default:
			return nil, nil, errors.Errorf("unknown token value %T at 0x%02X", v, address)
		}
	}

	return output, labels, nil
}

// BuildLabelTable maps every declared label to the index of the token that
// declares it. Later declarations replace earlier ones unless strict is set,
// in which case a repeated name is an error.
func BuildLabelTable(program Program, strict bool) (LabelTable, error) {
	labels := make(LabelTable)
	for address, token := range program {
		if token.Label == "" {
			continue
		}
		if first, exists := labels[token.Label]; exists && strict {
			return nil, &DuplicateLabelError{Label: token.Label, First: int(first), Second: address}
		}
		labels[token.Label] = byte(address)
	}
	return labels, nil
}

// Destructive resolves in a single pass. A DestructiveLabelRef only sees
// labels declared at or before its own token and removes the label it uses,
// so the name can be declared again further on. Plain references resolve
// against the table as it stands once the pass is over.
type Destructive struct{}

func (Destructive) Resolve(program Program) ([]byte, LabelTable, error) {
	if err := checkSize(program); err != nil {
		return nil, nil, err
	}

	labels := make(LabelTable)
	output := make([]byte, len(program))
	var pending []int

	for address, token := range program {
		if token.Label != "" {
			labels[token.Label] = byte(address)
		}

		switch v := token.Value.(type) {
		case Constant:
			output[address] = byte(v)
		case LabelRef:
			pending = append(pending, address)
		case DestructiveLabelRef:
			target, ok := labels[string(v)]
			if !ok {
				return nil, nil, &UnresolvedLabelError{Label: string(v), Address: address}
			}
			output[address] = target
			delete(labels, string(v))
		default:
			return nil, nil, errors.Errorf("unknown token value %T at 0x%02X", v, address)
		}
	}

	for _, address := range pending {
		name := string(program[address].Value.(LabelRef))
		target, ok := labels[name]
		if !ok {
			return nil, nil, &UnresolvedLabelError{Label: name, Address: address}
		}
		output[address] = target
	}

	return output, labels, nil
}

func checkSize(program Program) error {
	if len(program) > isa.MemorySize {
		return &ProgramTooLargeError{Size: len(program), Limit: isa.MemorySize}
	}
	return nil
}
