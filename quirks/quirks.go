// Package quirks defines the behavioral switches that select between
// historically incompatible variants of the same CHIP-8 opcodes, and a
// registry of named profiles for the platforms that popularized each
// variant (original CHIP-8, SUPER-CHIP, XO-CHIP).
package quirks

import "fmt"

// LoresSprite selects what an N=0 sprite draw does in low-resolution mode.
type LoresSprite uint8

const (
	// LoresNone means a DXY0 in lores mode has no effect.
	LoresNone LoresSprite = iota
	// LoresBigSprite means DXY0 draws a 16x16 sprite, same as hires.
	LoresBigSprite
	// LoresTallSprite means DXY0 draws an 8x16 sprite.
	LoresTallSprite
)

// Quirks selects between historically incompatible semantics for a
// handful of opcodes. The zero value is every quirk off, which matches
// no real platform exactly; use Profile to get a named, historically
// accurate bundle.
//
// 7  bit layout of nothing in particular - these are just named bools,
// documented like a hardware register bank since every one of them is
// a single yes/no switch on a specific opcode family.
type Quirks struct {
	// Shift: 8XY6/8XYE read Vx instead of Vy as the shift operand.
	Shift bool
	// LoadStore: FX55/FX65 leave I unmodified instead of advancing it.
	LoadStore bool
	// Jump0: BNNN adds V[high nibble of NNN] instead of V0.
	Jump0 bool
	// Logic: 8XY1/8XY2/8XY3 clear VF after the bitwise op.
	Logic bool
	// Clip: sprite drawing clips at the screen edge instead of
	// wrapping. The core always clips; this field is read-only
	// platform metadata, not a live switch.
	Clip bool
	// VBlank: RunLoop halts after the first DXYN each call.
	VBlank bool
	// ResClear: 00FE/00FF (LORES/HIRES) clear the display.
	ResClear bool
	// DelayWrap: the delay timer is not auto-decremented by RunLoop;
	// the host is responsible for it.
	DelayWrap bool
	// LoresDXY0 selects DXY0 behavior while in low-resolution mode.
	LoresDXY0 LoresSprite
	// MultiCollision enables the XO-CHIP multi-row collision counter
	// instead of a 0/1 flag. Not required by the default opcode table;
	// carried for parity with platforms that rely on it.
	MultiCollision bool
	// LastPlaneCollision makes a multi-plane DXYN report only the
	// last-drawn plane's collision instead of OR-ing every plane's
	// collision together. OR-of-planes is the default; this is the
	// escape hatch for bit-for-bit source parity with platforms that
	// only look at the last plane drawn.
	LastPlaneCollision bool
}

// registry is a global table of named quirk bundles, populated by
// init() below.
var registry = map[string]Quirks{}

// Register adds a named quirk profile. It panics on a duplicate name:
// profile collisions are a programming error, not a runtime condition.
func Register(name string, q Quirks) {
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("quirks: profile %q already registered", name))
	}
	registry[name] = q
}

// Profile returns the named quirk bundle and true, or the zero value
// and false if no such profile has been registered.
func Profile(name string) (Quirks, bool) {
	q, ok := registry[name]
	return q, ok
}

func init() {
	Register("chip8", Quirks{
		Shift:     false,
		LoadStore: false,
		Jump0:     false,
		Logic:     false,
		Clip:      true,
		VBlank:    true,
		ResClear:  true,
		LoresDXY0: LoresNone,
	})

	Register("schip-modern", Quirks{
		Shift:     true,
		LoadStore: true,
		Jump0:     true,
		Logic:     false,
		Clip:      true,
		VBlank:    false,
		ResClear:  false,
		LoresDXY0: LoresTallSprite,
	})

	Register("xochip", Quirks{
		Shift:          false,
		LoadStore:      true,
		Jump0:          false,
		Logic:          false,
		Clip:           true,
		VBlank:         false,
		ResClear:       true,
		LoresDXY0:      LoresBigSprite,
		MultiCollision: true,
	})
}
