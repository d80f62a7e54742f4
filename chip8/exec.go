package chip8

import (
	"github.com/tbarlow/chip8vm/decode"
	"github.com/tbarlow/chip8vm/quirks"
)

// readWord returns the big-endian 16-bit word at addr, wrapping at the
// top of memory the same way PC arithmetic does.
func (m *Machine) readWord(addr uint16) uint16 {
	hi := m.memory[addr]
	lo := m.memory[addr+1]
	return uint16(hi)<<8 | uint16(lo)
}

// skip advances PC past the instruction it currently points at. Most
// instructions are two bytes; the 0xF000 long-immediate is four, so
// the lookahead checks for it and consumes the extra word. This is the
// single helper every conditional-skip opcode and BLOCK_KEY's
// key-press path routes through.
func (m *Machine) skip() {
	next := m.readWord(m.pc)
	m.pc += 2
	if next == 0xF000 {
		m.pc += 2
	}
}

// exec applies one decoded operation to the machine. It is the
// Executor described in spec form: control flow, arithmetic, memory,
// display, timer, and keypad opcodes all funnel through this switch.
func (m *Machine) exec(op decode.Op) error {
	switch op.Kind {
	case decode.ScrollDown:
		m.display.ScrollDown(int(op.N))
	case decode.ScrollUp:
		m.display.ScrollUp(int(op.N))
	case decode.Clear:
		m.display.ClearAll()
	case decode.Return:
		if m.sp == 0 {
			return &StackUnderflowError{PC: m.pc}
		}
		m.pc = m.stack[m.sp]
		m.sp--
	case decode.ScrollRight:
		m.display.ScrollRight(4)
	case decode.ScrollLeft:
		m.display.ScrollLeft(4)
	case decode.Exit:
		return &ExitError{PC: m.pc}
	case decode.Lores:
		m.display.SetLores(m.quirks.ResClear)
	case decode.Hires:
		m.display.SetHires(m.quirks.ResClear)
	case decode.MachineCode:
		return &MachineCodeError{PC: m.pc, NNN: op.NNN}
	case decode.Jump:
		m.pc = op.NNN
	case decode.Call:
		if m.sp >= stackDepth-1 {
			return &StackOverflowError{PC: m.pc}
		}
		m.sp++
		m.stack[m.sp] = m.pc
		m.pc = op.NNN
	case decode.SkipEqImm:
		if m.v[op.X] == op.KK {
			m.skip()
		}
	case decode.SkipNeqImm:
		if m.v[op.X] != op.KK {
			m.skip()
		}
	case decode.SkipEqReg:
		if m.v[op.X] == m.v[op.Y] {
			m.skip()
		}
	case decode.SkipNeqReg:
		if m.v[op.X] != m.v[op.Y] {
			m.skip()
		}
	case decode.StoreRange:
		m.storeLoadRange(op.X, op.Y, true)
	case decode.LoadRange:
		m.storeLoadRange(op.X, op.Y, false)
	case decode.SetImm:
		m.v[op.X] = op.KK
	case decode.AddImm:
		m.v[op.X] += op.KK
	case decode.LoadReg:
		m.v[op.X] = m.v[op.Y]
	case decode.Or:
		m.v[op.X] |= m.v[op.Y]
		if m.quirks.Logic {
			m.v[0xF] = 0
		}
	case decode.And:
		m.v[op.X] &= m.v[op.Y]
		if m.quirks.Logic {
			m.v[0xF] = 0
		}
	case decode.Xor:
		m.v[op.X] ^= m.v[op.Y]
		if m.quirks.Logic {
			m.v[0xF] = 0
		}
	case decode.AddReg:
		sum := uint16(m.v[op.X]) + uint16(m.v[op.Y])
		carry := uint8(0)
		if sum > 0xFF {
			carry = 1
		}
		m.v[0xF] = carry
		m.v[op.X] = uint8(sum)
	case decode.Sub:
		borrow := uint8(0)
		if m.v[op.X] >= m.v[op.Y] {
			borrow = 1
		}
		m.v[0xF] = borrow
		m.v[op.X] = m.v[op.X] - m.v[op.Y]
	case decode.SubReverse:
		borrow := uint8(0)
		if m.v[op.Y] >= m.v[op.X] {
			borrow = 1
		}
		m.v[0xF] = borrow
		m.v[op.X] = m.v[op.Y] - m.v[op.X]
	case decode.ShiftRight:
		operand := m.v[op.Y]
		if m.quirks.Shift {
			operand = m.v[op.X]
		}
		m.v[0xF] = operand & 1
		m.v[op.X] = operand >> 1
	case decode.ShiftLeft:
		operand := m.v[op.Y]
		if m.quirks.Shift {
			operand = m.v[op.X]
		}
		m.v[0xF] = (operand >> 7) & 1
		m.v[op.X] = operand << 1
	case decode.SetIndex:
		m.i = op.NNN
	case decode.JumpRel:
		base := m.v[0]
		if m.quirks.Jump0 {
			base = m.v[(op.NNN>>8)&0xF]
		}
		m.pc = uint16(base) + op.NNN
	case decode.Random:
		m.v[op.X] = uint8(m.rand.Intn(256)) & op.KK
	case decode.Draw:
		return m.execDraw(op)
	case decode.SkipKey:
		if m.keyboard[m.v[op.X]&0xF] {
			m.skip()
		}
	case decode.SkipNotKey:
		if !m.keyboard[m.v[op.X]&0xF] {
			m.skip()
		}
	case decode.SetIndexLong:
		m.i = m.readWord(m.pc)
		m.pc += 2
	case decode.SelectPlane:
		if op.N > 3 {
			return &InvalidPlaneError{PC: m.pc, N: op.N}
		}
		m.display.SetPlane(op.N)
	case decode.AudioPattern, decode.AudioPitch:
		// XO-CHIP audio opcodes are host concerns; the core no-ops them.
	case decode.LoadDelay:
		m.v[op.X] = m.delay
	case decode.BlockKey:
		m.execBlockKey(op)
	case decode.SetDelay:
		m.delay = m.v[op.X]
	case decode.SetSound:
		m.sound = m.v[op.X]
	case decode.AddIndex:
		m.i += uint16(m.v[op.X])
	case decode.FontChar:
		m.i = fontBase + uint16(m.v[op.X]&0xF)*5
	case decode.BigFontChar:
		m.i = bigFontBase + uint16(m.v[op.X]&0xF)*10
	case decode.BCD:
		val := m.v[op.X]
		m.memory[m.i] = val / 100
		m.memory[m.i+1] = (val / 10) % 10
		m.memory[m.i+2] = val % 10
	case decode.Store:
		for n := uint16(0); n <= uint16(op.X); n++ {
			m.memory[m.i+n] = m.v[n]
		}
		if !m.quirks.LoadStore {
			m.i += uint16(op.X) + 1
		}
	case decode.Load:
		for n := uint16(0); n <= uint16(op.X); n++ {
			m.v[n] = m.memory[m.i+n]
		}
		if !m.quirks.LoadStore {
			m.i += uint16(op.X) + 1
		}
	case decode.StoreFlags:
		for n := uint8(0); n <= op.X; n++ {
			m.flags[n] = m.v[n]
		}
	case decode.LoadFlags:
		for n := uint8(0); n <= op.X; n++ {
			m.v[n] = m.flags[n]
		}
	case decode.ToggleLoadStoreQuirk:
		m.quirks.LoadStore = !m.quirks.LoadStore
	default:
		return &MachineCodeError{PC: m.pc, NNN: uint16(op.Kind)}
	}
	return nil
}

// storeLoadRange implements the XO-CHIP 5XY2/5XY3 register-range
// save/restore: V[x..=y] (counting up if x<=y, down otherwise) moves
// to or from consecutive bytes at I. I itself is never modified.
func (m *Machine) storeLoadRange(x, y uint8, store bool) {
	step := 1
	if y < x {
		step = -1
	}
	reg := int(x)
	offset := uint16(0)
	for {
		if store {
			m.memory[m.i+offset] = m.v[reg]
		} else {
			m.v[reg] = m.memory[m.i+offset]
		}
		if reg == int(y) {
			break
		}
		reg += step
		offset++
	}
}

// execBlockKey implements FX0A: halt on this instruction until a key
// is pressed, then consume it.
func (m *Machine) execBlockKey(op decode.Op) {
	for key := uint8(0); key < 16; key++ {
		if m.keyboard[key] {
			m.v[op.X] = key
			m.keyboard[key] = false
			m.skip()
			return
		}
	}
	// No key pressed: rewind PC so the same instruction fetches again
	// next tick.
	m.pc -= 2
}

// execDraw resolves the sprite dimensions for DXYN (including the
// DXY0 "wide sprite" forms) and issues one draw per selected plane,
// advancing the memory cursor between planes and folding their
// collision results into VF. By default collisions OR together into a
// 0/1 flag; LastPlaneCollision keeps only the last-drawn plane's
// result, and MultiCollision reports the XO-CHIP row-collision count
// instead of clamping to 1.
func (m *Machine) execDraw(op decode.Op) error {
	height, wide := m.drawDimensions(op.N)
	if height == 0 {
		return nil
	}

	bytesPerRow := 1
	if wide {
		bytesPerRow = 2
	}
	spriteBytes := height * bytesPerRow

	plane := m.display.ActivePlane()
	cursor := m.i
	collision := uint8(0)

	for _, color := range [2]uint8{1, 2} {
		if plane&color == 0 {
			continue
		}
		rows := make([]uint8, spriteBytes)
		for i := 0; i < spriteBytes; i++ {
			rows[i] = m.memory[cursor+uint16(i)]
		}
		cursor += uint16(spriteBytes)

		m.display.SetPlane(color)
		rowHits := uint8(m.display.Draw(rows, int(m.v[op.X]), int(m.v[op.Y]), wide))
		if !m.quirks.MultiCollision && rowHits > 1 {
			rowHits = 1
		}

		switch {
		case m.quirks.LastPlaneCollision:
			collision = rowHits
		case m.quirks.MultiCollision:
			collision += rowHits
		case rowHits != 0:
			collision = 1
		}
	}

	m.display.SetPlane(plane)
	m.v[0xF] = collision
	return nil
}

// drawDimensions resolves DXYN's sprite height per the executor design:
// N!=0 is always an 8-wide, N-tall sprite; N==0 depends on resolution
// and the lores_dxy0 quirk. height==0 signals the documented no-op case.
func (m *Machine) drawDimensions(n uint8) (height int, wide bool) {
	if n != 0 {
		return int(n), false
	}
	if m.display.Hires() || m.quirks.LoresDXY0 == quirks.LoresBigSprite {
		return 16, true
	}
	if m.quirks.LoresDXY0 == quirks.LoresTallSprite {
		return 16, false
	}
	return 0, false
}
