package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tbarlow/chip8vm/chip8"
)

// halfBlock is the Unicode upper-half-block glyph used to pack two
// vertical CHIP-8 pixels into one terminal cell, the way most
// terminal CHIP-8 frontends render without a graphics backend.
const halfBlock = "▀"

// TermDriver renders the display as text over stdin/stdout, for
// running ROMs headless (SSH, CI) where no window server is
// available. It implements the same Driver interface as EbitenDriver
// but without a render loop of its own: main drives the frame timing
// and calls PollInput/Render/Beep directly.
//
// Grounded on IntuitionEngine's terminal_host.go for the raw-mode
// stdin handling and golang.org/x/term's MakeRaw/Restore pair; the
// hex keypad scan uses the host.Driver split go-hachi documents in
// hachi/driver.go, adapted to a polling read instead of a callback.
type TermDriver struct {
	fd       int
	oldState *term.State
	keys     [16]bool
}

// NewTermDriver constructs a driver that reads from os.Stdin and
// writes to os.Stdout.
func NewTermDriver() *TermDriver {
	return &TermDriver{}
}

func (d *TermDriver) Init(m *chip8.Machine) error {
	d.fd = int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(d.fd)
	if err != nil {
		return fmt.Errorf("chip8vm: terminal raw mode: %w", err)
	}
	d.oldState = oldState
	fmt.Fprint(os.Stdout, "\x1b[2J\x1b[H")
	return nil
}

// PollInput reads any buffered stdin bytes and maps ASCII keys to the
// hex keypad using the same "1234/qwer/asdf/zxcv" layout as the
// ebiten driver, so ROMs behave identically under either frontend.
// Keys do not latch: a terminal in raw mode has no key-release events,
// so each poll clears every key before reapplying whatever was read
// this tick.
func (d *TermDriver) PollInput(m *chip8.Machine) {
	for i := range d.keys {
		d.keys[i] = false
	}

	buf := make([]byte, 16)
	n, _ := os.Stdin.Read(buf)
	for _, b := range buf[:n] {
		if key, ok := termKeyMap[strings.ToLower(string(b))]; ok {
			d.keys[key] = true
		}
	}
	for key, pressed := range d.keys {
		m.SetKey(uint8(key), pressed)
	}
}

var termKeyMap = map[string]uint8{
	"1": 0x1, "2": 0x2, "3": 0x3, "4": 0xC,
	"q": 0x4, "w": 0x5, "e": 0x6, "r": 0xD,
	"a": 0x7, "s": 0x8, "d": 0x9, "f": 0xE,
	"z": 0xA, "x": 0x0, "c": 0xB, "v": 0xF,
}

// Render draws the display using half-block glyphs: each terminal row
// packs two display rows by combining the foreground (upper,
// even-indexed row) and background (lower, odd-indexed row) color of
// one cell.
func (d *TermDriver) Render(m *chip8.Machine) {
	disp := m.Display()
	if !disp.Dirty() {
		return
	}
	rows := disp.Read()

	var b strings.Builder
	b.WriteString("\x1b[H")
	for y := 0; y < len(rows); y += 2 {
		for x := 0; x < len(rows[y]); x++ {
			top := rows[y][x] != 0
			bottom := y+1 < len(rows) && rows[y+1][x] != 0
			b.WriteString(halfBlockCell(top, bottom))
		}
		b.WriteString("\r\n")
	}
	fmt.Fprint(os.Stdout, b.String())
}

// halfBlockCell renders one terminal cell from the on/off state of the
// two display pixels it packs.
func halfBlockCell(top, bottom bool) string {
	switch {
	case top && bottom:
		return "\x1b[37;47m" + halfBlock + "\x1b[0m"
	case top:
		return "\x1b[37;40m" + halfBlock + "\x1b[0m"
	case bottom:
		return "\x1b[30;47m" + halfBlock + "\x1b[0m"
	default:
		return " "
	}
}

// Beep writes a terminal bell character while the sound timer is
// active. There is no tone generator over a raw terminal, so this is
// the closest headless analogue of EbitenDriver's square wave.
func (d *TermDriver) Beep(sound uint8) {
	if sound > 0 {
		fmt.Fprint(os.Stdout, "\a")
	}
}

func (d *TermDriver) Close() error {
	if d.oldState != nil {
		return term.Restore(d.fd, d.oldState)
	}
	return nil
}
