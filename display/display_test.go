package display

import "testing"

func TestDrawXORIdempotence(t *testing.T) {
	b := New()
	sprite := []uint8{0xFF}

	if c := b.Draw(sprite, 0, 0, false); c != 0 {
		t.Fatalf("first draw collision = %d, want 0", c)
	}
	if b.Clear() {
		t.Fatal("Clear() = true after drawing a lit sprite")
	}
	if !b.Dirty() {
		t.Fatal("Dirty() = false after draw")
	}

	row := b.Read()[0]
	for x := 0; x < 8; x++ {
		if row[x]&Plane1 == 0 {
			t.Errorf("row[%d] = %#02x, want plane1 bit set", x, row[x])
		}
	}

	if c := b.Draw(sprite, 0, 0, false); c != 1 {
		t.Fatalf("second draw collision = %d, want 1", c)
	}
	if !b.Clear() {
		t.Fatal("Clear() = false after XOR-ing the same sprite back off")
	}
}

func TestDrawClipsAtBothEdges(t *testing.T) {
	b := New()
	sprite := []uint8{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

	b.Draw(sprite, LoresWidth-3, LoresHeight-2, false)
	rows := b.Read()

	for y := 0; y < LoresHeight; y++ {
		for x := 0; x < LoresWidth; x++ {
			if x < LoresWidth-3 || y < LoresHeight-2 {
				if rows[y][x] != 0 {
					t.Fatalf("unexpected lit pixel at (%d,%d) outside draw target", x, y)
				}
			}
		}
	}
	// Only 3 columns and 2 rows of the 8x5 sprite are in bounds.
	for y := LoresHeight - 2; y < LoresHeight; y++ {
		for x := LoresWidth - 3; x < LoresWidth; x++ {
			if rows[y][x]&Plane1 == 0 {
				t.Errorf("expected lit pixel at (%d,%d)", x, y)
			}
		}
	}
}

func TestScrollByZeroIsNoop(t *testing.T) {
	b := New()
	b.Draw([]uint8{0xFF}, 10, 10, false)
	before := b.Read()
	b.dirty = false

	b.ScrollUp(0)
	b.ScrollDown(0)
	b.ScrollLeft(0)
	b.ScrollRight(0)

	if b.Dirty() {
		t.Fatal("scroll by 0 set dirty")
	}
	after := b.Read()
	for y := range before {
		for x := range before[y] {
			if before[y][x] != after[y][x] {
				t.Fatalf("scroll by 0 mutated pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestScrollOnlyAffectsActivePlane(t *testing.T) {
	b := New()
	b.SetPlane(Plane1 | Plane2)
	b.Draw([]uint8{0x80}, 5, 5, false) // lights bit for both planes at (5,5)

	b.SetPlane(Plane1)
	b.ScrollRight(1)

	rows := b.Read()
	if rows[5][6]&Plane1 == 0 {
		t.Error("plane1 did not scroll right")
	}
	if rows[5][6]&Plane2 != 0 {
		t.Error("plane2 scrolled even though it wasn't active")
	}
	if rows[5][5]&Plane2 == 0 {
		t.Error("plane2 bit at original column should remain untouched")
	}
}

func TestHiresClearOnSwitch(t *testing.T) {
	b := New()
	b.Draw([]uint8{0xFF}, 0, 0, false)
	if b.Clear() {
		t.Fatal("expected non-clear buffer before switch")
	}

	b.SetHires(true)
	if !b.Clear() {
		t.Error("SetHires(true) should clear a non-clear buffer")
	}
	if b.Width() != HiresWidth || b.Height() != HiresHeight {
		t.Errorf("resolution = %dx%d, want %dx%d", b.Width(), b.Height(), HiresWidth, HiresHeight)
	}
}

func TestWideSpriteMSBFirst(t *testing.T) {
	b := New()
	b.SetHires(false)
	// Row 0: 0xFF,0x00 -> left 8 pixels lit, right 8 clear.
	b.Draw([]uint8{0xFF, 0x00}, 0, 0, true)
	row := b.Read()[0]
	for x := 0; x < 8; x++ {
		if row[x]&Plane1 == 0 {
			t.Errorf("col %d should be lit", x)
		}
	}
	for x := 8; x < 16; x++ {
		if row[x]&Plane1 != 0 {
			t.Errorf("col %d should be clear", x)
		}
	}
}
