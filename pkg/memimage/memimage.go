// Package memimage reads and writes the fixed-size memory images produced
// by the assembler.
package memimage

import (
	"os"

	"github.com/pkg/errors"

	"nibasm/pkg/isa"
)

// ReadSource loads an assembly source file.
func ReadSource(path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read source")
	}
	return string(source), nil
}

// Pad zero-fills code to a full memory image.
func Pad(code []byte) ([]byte, error) {
	return PadWith(code, isa.MemorySize, 0x00)
}

// PadWith returns a copy of code extended to size bytes with fill.
func PadWith(code []byte, size int, fill byte) ([]byte, error) {
	if len(code) > size {
		return nil, errors.Errorf("program too large for memory: %d bytes > %d bytes", len(code), size)
	}
	image := make([]byte, size)
	n := copy(image, code)
	for i := n; i < size; i++ {
		image[i] = fill
	}
	return image, nil
}

func Write(path string, image []byte) error {
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return errors.Wrap(err, "write image")
	}
	return nil
}

// Read loads an image file. Files larger than memory are rejected; shorter
// ones are returned as they are.
func Read(path string) ([]byte, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read image")
	}
	if len(image) > isa.MemorySize {
		return nil, errors.Errorf("read image %v: file too large (%d bytes)", path, len(image))
	}
	return image, nil
}
