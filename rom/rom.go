// Package rom loads CHIP-8 family program images. Unlike cartridge
// formats with a header (iNES and friends), a CHIP-8 ROM is a flat
// binary blob intended to be copied verbatim at the interpreter's
// start address; this package's only job is getting those bytes off
// disk (or out of an in-memory byte slice) with a size check.
package rom

import (
	"fmt"
	"os"
)

// MaxSize is the largest program this package will accept: the full
// 65536-byte address space minus the smallest plausible start address
// (0x200), leaving no room to special-case an origin at construction
// time.
const MaxSize = 0x10000 - 0x200

// ROM is a loaded program image, ready to be handed to
// chip8.Machine.LoadProgram.
type ROM struct {
	path string
	data []byte
}

// Load reads path off disk and wraps its contents as a ROM. It
// returns an error if the file cannot be read or exceeds MaxSize.
func Load(path string) (*ROM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rom: couldn't read %q: %w", path, err)
	}
	return FromBytes(path, data)
}

// FromBytes wraps an already-loaded byte slice as a ROM, useful for
// embedded programs or tests. path is retained only for diagnostics.
func FromBytes(path string, data []byte) (*ROM, error) {
	if len(data) > MaxSize {
		return nil, fmt.Errorf("rom: %q is %d bytes, exceeds max size %d", path, len(data), MaxSize)
	}
	r := &ROM{path: path, data: make([]byte, len(data))}
	copy(r.data, data)
	return r, nil
}

// Path returns the source path the ROM was loaded from (empty for
// in-memory ROMs constructed via FromBytes with an empty path).
func (r *ROM) Path() string { return r.path }

// Size returns the number of program bytes.
func (r *ROM) Size() int { return len(r.data) }

// Bytes returns the program bytes. Callers must not mutate the
// returned slice.
func (r *ROM) Bytes() []byte { return r.data }
