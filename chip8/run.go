package chip8

import "github.com/tbarlow/chip8vm/decode"

// RunResult reports what happened during one Run call: how many
// instructions actually executed (which can be less than the
// requested tick count when the vblank quirk breaks the loop early or
// an error ends it), the last opcode fetched, and whether the vblank
// quirk was the reason the loop stopped short.
type RunResult struct {
	Ticks           int
	LastOpcode      uint16
	HaltedForVBlank bool
}

// Run drives up to ticks fetch-decode-execute cycles: the host calls
// this once per frame with ticks set to its configured
// instructions-per-frame. Timers decrement once, before the loop, never
// once per instruction. A non-nil error (including *ExitError) ends the
// run immediately; the host decides whether to keep calling Run
// afterward.
func (m *Machine) Run(ticks int) (RunResult, error) {
	if m.delay > 0 && !m.quirks.DelayWrap {
		m.delay--
	}
	if m.sound > 0 {
		m.sound--
	}

	result := RunResult{}
	for i := 0; i < ticks; i++ {
		opcode := m.readWord(m.pc)
		m.pc += 2
		result.Ticks++
		result.LastOpcode = opcode

		op, err := decode.Decode(opcode)
		if err != nil {
			return result, err
		}
		if err := m.exec(op); err != nil {
			return result, err
		}

		if m.quirks.VBlank && opcode >= 0xD000 && opcode <= 0xDFFF {
			result.HaltedForVBlank = true
			break
		}
	}

	return result, nil
}
