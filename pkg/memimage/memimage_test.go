package memimage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestPad(t *testing.T) {
	code := []byte{0x21, 0x01, 0x48, 0x49}
	image, err := Pad(code)
	if err != nil {
		t.Fatalf("Pad failed: %v", err)
	}
	if len(image) != 256 {
		t.Fatalf("len(Pad()) = %d; want 256", len(image))
	}
	if !bytes.Equal(image[:4], code) {
		t.Errorf("Pad()[:4] = %v; want %v", image[:4], code)
	}
	for i, b := range image[4:] {
		if b != 0 {
			t.Fatalf("Pad()[%d] = 0x%02X; want 0", i+4, b)
		}
	}

	full := make([]byte, 256)
	if _, err := Pad(full); err != nil {
		t.Errorf("Pad(256 bytes) error = %v", err)
	}
	if _, err := Pad(make([]byte, 257)); err == nil {
		t.Errorf("Pad(257 bytes) error = nil; want error")
	}
}

func TestPadWith(t *testing.T) {
	code := []byte{0x01}
	got, err := PadWith(code, 4, 0xFF)
	if err != nil {
		t.Fatalf("PadWith failed: %v", err)
	}
	want := []byte{0x01, 0xFF, 0xFF, 0xFF}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PadWith() = %v; want %v", got, want)
	}
	if code[0] != 0x01 || len(code) != 1 {
		t.Errorf("PadWith modified its input: %v", code)
	}
}

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.bin")

	image, _ := Pad([]byte{0xC0, 0x00})
	if err := Write(path, image); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(got, image) {
		t.Errorf("Read() differs from written image")
	}
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "missing.bin"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Read(missing) error = %v; want os.ErrNotExist", err)
	}

	big := filepath.Join(dir, "big.bin")
	if err := os.WriteFile(big, make([]byte, 300), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(big); err == nil {
		t.Errorf("Read(300 bytes) error = nil; want error")
	}

	if _, err := ReadSource(filepath.Join(dir, "missing.asm")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadSource(missing) error = %v; want os.ErrNotExist", err)
	}

	if err := Write(filepath.Join(dir, "no", "such", "dir.bin"), nil); err == nil {
		t.Errorf("Write(bad dir) error = nil; want error")
	}
}

func TestWriteListing(t *testing.T) {
	image := []byte{0x21, 0x01, 0x48, 0x49, 0x00, 0x00}
	labels := map[string]byte{"s": 2, "start": 0, "h": 3}

	var buf bytes.Buffer
	if err := WriteListing(&buf, image, labels); err != nil {
		t.Fatalf("WriteListing failed: %v", err)
	}

	want := strings.Join([]string{
		"start:",
		"00: 2101  LCON 1 01",
		"s:",
		"h:",
		"02: 4849  MOVE 8 49",
		"04: 0000",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("WriteListing() =\n%s\nwant\n%s", got, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteListingError(t *testing.T) {
	err := WriteListing(failingWriter{}, []byte{0xC0, 0x00, 0xC0, 0x00}, nil)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("WriteListing() error = %v; want wrapped write error", err)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		hi, lo byte
		want   string
	}{
		{0x21, 0x01, "LCON 1 01"},
		{0xC0, 0x00, "HALT 0 00"},
		{0x7F, 0xAB, "OR   F AB"},
		{0x00, 0x00, ""},
	}
	for _, tc := range tests {
		if got := Decode(tc.hi, tc.lo); got != tc.want {
			t.Errorf("Decode(0x%02X, 0x%02X) = %q; want %q", tc.hi, tc.lo, got, tc.want)
		}
	}
}
