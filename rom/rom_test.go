package rom

import "testing"

func TestFromBytesRoundTrip(t *testing.T) {
	program := []byte{0x12, 0x34, 0x56}
	r, err := FromBytes("inline", program)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if r.Size() != len(program) {
		t.Errorf("Size() = %d, want %d", r.Size(), len(program))
	}
	if string(r.Bytes()) != string(program) {
		t.Errorf("Bytes() = %v, want %v", r.Bytes(), program)
	}
	if r.Path() != "inline" {
		t.Errorf("Path() = %q, want %q", r.Path(), "inline")
	}
}

func TestFromBytesRejectsOversizedProgram(t *testing.T) {
	_, err := FromBytes("too-big", make([]byte, MaxSize+1))
	if err == nil {
		t.Fatal("expected an error for an oversized program")
	}
}

func TestFromBytesCopiesTheCallersSlice(t *testing.T) {
	program := []byte{0xAA}
	r, err := FromBytes("inline", program)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	program[0] = 0xFF
	if r.Bytes()[0] != 0xAA {
		t.Error("mutating the caller's slice after FromBytes mutated the ROM")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/to/a.ch8"); err == nil {
		t.Fatal("expected an error loading a nonexistent file")
	}
}
