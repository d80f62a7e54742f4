// Package chip8 implements the CHIP-8/SUPER-CHIP/XO-CHIP execution
// core: machine state, the opcode executor, and the per-frame run
// loop. It performs no I/O; the host drives it by calling Run once per
// frame and reading the keyboard/display around it.
package chip8

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tbarlow/chip8vm/display"
	"github.com/tbarlow/chip8vm/quirks"
)

const (
	stackDepth    = 16
	memorySize    = 0x10000
	defaultOrigin = 0x200
)

// Options configures a Machine at construction time. The zero value is
// not generally useful; start from DefaultOptions and override fields.
type Options struct {
	// StartAddress is where PC begins and where ROM bytes are loaded.
	// Defaults to 0x200, the historical CHIP-8 origin.
	StartAddress uint16
	// Fonts supplies the small and (optionally) large glyph bitmaps
	// copied into memory at construction.
	Fonts FontSet
	// Quirks selects the behavioral variant. Use quirks.Profile to
	// look up a named platform preset.
	Quirks quirks.Quirks
	// Rand supplies randomness for the RANDOM opcode. If nil, a
	// machine-local source seeded from time.Now().UnixNano() is used,
	// so Options is deterministic only when Rand is set explicitly
	// (tests should always set it).
	Rand *rand.Rand
}

// DefaultOptions returns Options for plain CHIP-8: origin 0x200, the
// built-in font set, and the "chip8" quirk profile.
func DefaultOptions() Options {
	q, _ := quirks.Profile("chip8")
	return Options{
		StartAddress: defaultOrigin,
		Fonts:        DefaultFontSet(),
		Quirks:       q,
	}
}

// Validate reports whether o can be used to construct a Machine.
func (o Options) Validate() error {
	if int(o.StartAddress)+2 >= memorySize {
		return fmt.Errorf("chip8: start address %#04x leaves no room for a program", o.StartAddress)
	}
	switch o.Quirks.LoresDXY0 {
	case quirks.LoresNone, quirks.LoresBigSprite, quirks.LoresTallSprite:
	default:
		return fmt.Errorf("chip8: invalid LoresDXY0 quirk value %d", o.Quirks.LoresDXY0)
	}
	return nil
}

// Machine holds every piece of interpreter state: registers, memory,
// timers, the keyboard latch, and the display buffer it drives. All
// fields are owned exclusively by the Machine; nothing here is safe to
// share across goroutines without external synchronization, matching
// the single-threaded cooperative model the host is expected to run.
type Machine struct {
	pc uint16
	sp uint8

	stack  [stackDepth]uint16
	memory [memorySize]byte

	i uint16
	v [16]uint8

	flags [16]uint8

	delay uint8
	sound uint8

	keyboard [16]bool

	display *display.Buffer
	quirks  quirks.Quirks
	rand    *rand.Rand
}

// New constructs a Machine from opts, preloading font data at the
// reserved low-memory offsets. Returns an error if opts fails
// Validate.
func New(opts Options) (*Machine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{
		pc:      opts.StartAddress,
		display: display.New(),
		quirks:  opts.Quirks,
		rand:    opts.Rand,
	}
	if m.rand == nil {
		m.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	copy(m.memory[fontBase:], opts.Fonts.Small[:])
	copy(m.memory[bigFontBase:], opts.Fonts.Big[:])

	return m, nil
}

// LoadProgram copies program into memory starting at the configured
// start address. It returns an error, and copies nothing, if program
// does not fit before the top of memory.
func (m *Machine) LoadProgram(program []byte) error {
	start := int(m.pc)
	if start+len(program) > memorySize {
		return fmt.Errorf("chip8: program of %d bytes does not fit at origin %#04x", len(program), start)
	}
	copy(m.memory[start:], program)
	return nil
}

// PC returns the current program counter. Exposed for debugging and tests.
func (m *Machine) PC() uint16 { return m.pc }

// SP returns the current stack depth (0 means empty).
func (m *Machine) SP() uint8 { return m.sp }

// Register returns V[idx&0xF].
func (m *Machine) Register(idx uint8) uint8 { return m.v[idx&0xF] }

// Index returns the current value of I.
func (m *Machine) Index() uint16 { return m.i }

// Delay returns the current delay timer value.
func (m *Machine) Delay() uint8 { return m.delay }

// Sound returns the current sound timer value; non-zero means "beep".
func (m *Machine) Sound() uint8 { return m.sound }

// Display returns the DisplayBuffer this Machine draws into. The host
// reads it between frames via its Read method.
func (m *Machine) Display() *display.Buffer { return m.display }

// SetKey sets the pressed state of key (0-15). The host must only call
// this between Run invocations, per the single-threaded scheduling
// model.
func (m *Machine) SetKey(key uint8, pressed bool) {
	m.keyboard[key&0xF] = pressed
}
