package memimage

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"

	"nibasm/pkg/isa"
)

// errWriter keeps returning the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	if _, err := fmt.Fprintf(w.w, format, args...); err != nil {
		w.err = errors.Wrap(err, "write listing")
	}
}

// WriteListing prints image one cell per line as "AA: HHLL", followed by
// the instruction the cell decodes to. Labels, if given, are printed on
// their own line before the cell containing them.
func WriteListing(w io.Writer, image []byte, labels map[string]byte) error {
	byAddress := make(map[byte][]string)
	for name, addr := range labels {
		byAddress[addr] = append(byAddress[addr], name)
	}
	for _, names := range byAddress {
		sort.Strings(names)
	}

	ew := &errWriter{w: w}
	for addr := 0; addr < len(image); addr += isa.CellSize {
		hi := image[addr]
		var lo byte
		if addr+1 < len(image) {
			lo = image[addr+1]
		}

		for _, off := range []int{0, 1} {
			for _, name := range byAddress[byte(addr+off)] {
				if addr+off < len(image) {
					ew.printf("%s:\n", name)
				}
			}
		}

		if text := Decode(hi, lo); text != "" {
			ew.printf("%02X: %02X%02X  %s\n", addr, hi, lo, text)
		} else {
			ew.printf("%02X: %02X%02X\n", addr, hi, lo)
		}
	}
	return ew.err
}

// Decode renders a cell as an instruction, or "" if its opcode has no
// mnemonic.
func Decode(hi, lo byte) string {
	op, reg := isa.Unpack(hi)
	if !op.Valid() {
		return ""
	}
	return fmt.Sprintf("%-4s %X %02X", op, reg, lo)
}
