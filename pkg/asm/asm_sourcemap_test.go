package asm

import (
	"testing"
)

func TestAssembleSourceMap(t *testing.T) {
	code := `// Line 0: Comment
LCON 1 0A ;              // Line 1: Instruction (addr 0x00)

LMEM 2 "msg" : "start" ; // Line 3: Instruction (addr 0x02), label start
DATA "Hey" : "msg" ;     // Line 4: Data, 3 bytes + 1 pad (addr 0x04)
JUMP 0 "start" ;         // Line 5: Instruction (addr 0x08)
`
	// Expected byte layout:
	// 0x00: 0x21 0x0A        LCON 1 0A
	// 0x02: 0x12 0x04        LMEM 2 msg
	// 0x04: 'H' 'e' 'y' 0x00 DATA, padded to 4 bytes
	// 0x08: 0xB0 0x02        JUMP 0 start

	image, sourceMap, err := Assemble(code)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(image) != 10 {
		t.Fatalf("len(code) = %d; want 10", len(image))
	}

	tests := []struct {
		addr byte
		line int
	}{
		{0x00, 1},
		{0x02, 3},
		{0x04, 4},
		{0x08, 5},
	}

	for _, tc := range tests {
		if got, ok := sourceMap[tc.addr]; !ok || got != tc.line {
			t.Errorf("sourceMap[0x%02X] = %d, %v; want %d", tc.addr, got, ok, tc.line)
		}
	}
	if len(sourceMap) != len(tests) {
		t.Errorf("len(sourceMap) = %d; want %d", len(sourceMap), len(tests))
	}
}
