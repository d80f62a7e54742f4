package chip8

import "testing"

func TestCallThenExitScenario(t *testing.T) {
	m := newTestMachine(t, []byte{0x22, 0x04, 0x00, 0x00, 0x00, 0xFD})

	if _, err := m.Run(1); err != nil {
		t.Fatalf("Run after CALL: %v", err)
	}
	if m.sp != 1 || m.stack[1] != 0x202 || m.pc != 0x204 {
		t.Fatalf("after CALL: sp=%d stack[1]=%#04x pc=%#04x, want sp=1 stack[1]=0x202 pc=0x204",
			m.sp, m.stack[1], m.pc)
	}

	_, err := m.Run(1)
	if err == nil {
		t.Fatal("expected ExitError after the second instruction")
	}
	if _, ok := err.(*ExitError); !ok {
		t.Fatalf("error = %v (%T), want *ExitError", err, err)
	}
}

func TestCallReturnRestoresPC(t *testing.T) {
	// 0x200: CALL 0x206
	// 0x202: (never reached directly; RETURN lands back here)
	// 0x206: RETURN
	m := newTestMachine(t, []byte{
		0x22, 0x06, // 0x200 CALL 0x206
		0x00, 0x00, // 0x202 padding
		0x00, 0x00, // 0x204 padding
		0x00, 0xEE, // 0x206 RETURN
	})

	if _, err := m.Run(2); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if m.pc != 0x202 {
		t.Errorf("PC = %#04x, want 0x202 (restored after CALL/RETURN)", m.pc)
	}
	if m.sp != 0 {
		t.Errorf("sp = %d, want 0 (unchanged after CALL/RETURN pair)", m.sp)
	}
}

func TestVBlankQuirkHaltsAfterOneDraw(t *testing.T) {
	opts := DefaultOptions()
	opts.Quirks.VBlank = true
	m, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// DXY1 draws a 1-row sprite at (V0,V0)=(0,0), then a run of 98
	// NOPs (encoded here as SET_IMM V0,0, which is harmless).
	program := make([]byte, 0)
	program = append(program, 0xD0, 0x01) // DRAW V0,V0,1
	for i := 0; i < 98; i++ {
		program = append(program, 0x60, 0x00) // SET V0, 0
	}
	if err := m.LoadProgram(program); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}

	result, err := m.Run(100)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.HaltedForVBlank {
		t.Error("HaltedForVBlank = false, want true")
	}
	if result.Ticks != 1 {
		t.Errorf("Ticks = %d, want 1", result.Ticks)
	}
}

func TestSetIndexLongDuringSkipAdvancesPCByFour(t *testing.T) {
	m := newTestMachine(t, []byte{
		0x30, 0x00, // 0x200 SKIP_EQ_IMM V0,0 (V0==0, so this skips)
		0xF0, 0x00, // 0x202 SET_INDEX_LONG marker (the "next instruction" being skipped)
		0x12, 0x34, // 0x204 the long-immediate's second word
		0x00, 0xFD, // 0x206 EXIT -- reached only if the skip advanced by 4
	})

	if _, err := m.Run(1); err != nil {
		t.Fatalf("Run (skip): %v", err)
	}
	if m.pc != 0x206 {
		t.Fatalf("PC = %#04x after skip, want 0x206 (advanced past the 4-byte long immediate)", m.pc)
	}

	_, err := m.Run(1)
	if _, ok := err.(*ExitError); !ok {
		t.Fatalf("error = %v (%T), want *ExitError", err, err)
	}
}

func TestTimersDecrementOncePerRun(t *testing.T) {
	m := newTestMachine(t, nil)
	m.delay = 5
	m.sound = 3

	if _, err := m.Run(0); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if m.delay != 4 {
		t.Errorf("delay = %d, want 4", m.delay)
	}
	if m.sound != 2 {
		t.Errorf("sound = %d, want 2", m.sound)
	}
}

func TestDelayWrapQuirkSuppressesAutoDecrement(t *testing.T) {
	m := newTestMachine(t, nil)
	m.quirks.DelayWrap = true
	m.delay = 5

	if _, err := m.Run(0); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if m.delay != 5 {
		t.Errorf("delay = %d, want 5 (unchanged with delay_wrap quirk set)", m.delay)
	}
}

func TestUnknownOpcodeSurfacesFromRun(t *testing.T) {
	m := newTestMachine(t, []byte{0x50, 0x04}) // 5XY4 is not a recognized 5-family form
	if _, err := m.Run(1); err == nil {
		t.Fatal("expected an error decoding an unrecognized opcode")
	}
}
