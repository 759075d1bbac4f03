package isa

import "testing"

func TestPackUnpack(t *testing.T) {
	for op := 0; op < 16; op++ {
		for reg := 0; reg < 16; reg++ {
			b := Pack(Opcode(op), byte(reg))
			if int(b) != op*16+reg {
				t.Fatalf("Pack(%d, %d) = 0x%02X; want 0x%02X", op, reg, b, op*16+reg)
			}
			gotOp, gotReg := Unpack(b)
			if int(gotOp) != op || int(gotReg) != reg {
				t.Errorf("Unpack(0x%02X) = %d, %d; want %d, %d", b, gotOp, gotReg, op, reg)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		mnemonic string
		want     Opcode
		wantOk   bool
	}{
		{"LMEM", OpLMEM, true},
		{"lcon", OpLCON, true},
		{"ADDR", OpADDR, true},
		{"ADD", OpADDR, true},
		{"ROT", OpROT, true},
		{"DISP", OpDISP, true},
		{"DATA", 0, false},
		{"", 0, false},
		{"NOP", 0, false},
	}
	for _, tc := range tests {
		got, ok := Lookup(tc.mnemonic)
		if got != tc.want || ok != tc.wantOk {
			t.Errorf("Lookup(%q) = %v, %v; want %v, %v", tc.mnemonic, got, ok, tc.want, tc.wantOk)
		}
	}
}

func TestMnemonicRoundTrip(t *testing.T) {
	for op := Opcode(0); op < 16; op++ {
		if !op.Valid() {
			continue
		}
		got, ok := Lookup(op.String())
		if !ok || got != op {
			t.Errorf("Lookup(%q) = %v, %v; want %v", op.String(), got, ok, op)
		}
	}
	if OpReserved.Valid() {
		t.Errorf("OpReserved.Valid() = true; want false")
	}
	if got := OpReserved.String(); got != "OP0" {
		t.Errorf("OpReserved.String() = %q; want \"OP0\"", got)
	}
}
