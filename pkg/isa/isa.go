package isa

import "strings"

// Opcode is the high nibble of an instruction's first byte.
type Opcode byte

const (
	OpReserved Opcode = 0x0
	OpLMEM     Opcode = 0x1
	OpLCON     Opcode = 0x2
	OpSTOR     Opcode = 0x3
	OpMOVE     Opcode = 0x4
	OpADDR     Opcode = 0x5
	OpADDF     Opcode = 0x6
	OpOR       Opcode = 0x7
	OpAND      Opcode = 0x8
	OpXOR      Opcode = 0x9
	OpROT      Opcode = 0xA
	OpJUMP     Opcode = 0xB
	OpHALT     Opcode = 0xC
	OpCHAR     Opcode = 0xD
	OpLESS     Opcode = 0xE
	OpDISP     Opcode = 0xF
)

const (
	MemorySize = 256
	MaxAddress = MemorySize - 1
	// CellSize is the width in bytes of one instruction.
	CellSize = 2
)

// mnemonics is indexed by opcode, so every nibble has exactly one slot.
var mnemonics = [16]string{
	OpReserved: "",
	OpLMEM:     "LMEM",
	OpLCON:     "LCON",
	OpSTOR:     "STOR",
	OpMOVE:     "MOVE",
	OpADDR:     "ADDR",
	OpADDF:     "ADDF",
	OpOR:       "OR",
	OpAND:      "AND",
	OpXOR:      "XOR",
	OpROT:      "ROT",
	OpJUMP:     "JUMP",
	OpHALT:     "HALT",
	OpCHAR:     "CHAR",
	OpLESS:     "LESS",
	OpDISP:     "DISP",
}

var aliases = map[string]Opcode{
	"ADD": OpADDR,
}

var byMnemonic = func() map[string]Opcode {
	m := make(map[string]Opcode, len(mnemonics)+len(aliases))
	for op, name := range mnemonics {
		if name != "" {
			m[name] = Opcode(op)
		}
	}
	for name, op := range aliases {
		m[name] = op
	}
	return m
}()

// Lookup returns the opcode for a mnemonic, ignoring case.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := byMnemonic[strings.ToUpper(mnemonic)]
	return op, ok
}

func (o Opcode) String() string {
	if int(o) < len(mnemonics) && mnemonics[o] != "" {
		return mnemonics[o]
	}
	return "OP" + string("0123456789ABCDEF"[o&0xF])
}

// Valid reports whether o has an assembler mnemonic.
func (o Opcode) Valid() bool {
	return int(o) < len(mnemonics) && mnemonics[o] != ""
}

// Pack combines an opcode and a register number into one byte.
// Only the low nibble of each is used.
func Pack(op Opcode, reg byte) byte {
	return byte(op&0xF)*0x10 + reg&0xF
}

func Unpack(b byte) (Opcode, byte) {
	return Opcode(b >> 4), b & 0xF
}
