// Command chip8vm runs CHIP-8/SUPER-CHIP/XO-CHIP ROMs against the
// chip8 execution core. The core package performs no I/O; everything
// in this package is host glue: picking a video/audio/input backend,
// polling the keyboard, and driving Machine.Run once per frame.
package main

import "github.com/tbarlow/chip8vm/chip8"

// A Driver is how the host loop talks to a platform-specific frontend.
// Two drivers are registered: "ebiten" (window, keyboard, square-wave
// beep) and "term" (raw terminal half-block rendering, no audio).
type Driver interface {
	// Init is called once before the first frame, after the Machine is
	// constructed, so the driver can size a window or clear the screen.
	Init(m *chip8.Machine) error
	// PollInput copies the host's current key state into m via SetKey.
	// Called once per frame before Run.
	PollInput(m *chip8.Machine)
	// Render draws m's display buffer if it is dirty. Called once per
	// frame after Run.
	Render(m *chip8.Machine)
	// Beep is called once per frame with the current sound timer value;
	// a driver plays a tone while it is above zero and silences it
	// otherwise.
	Beep(sound uint8)
	// Close releases any host resources (window, audio context,
	// terminal raw mode) the driver acquired in Init.
	Close() error
}
