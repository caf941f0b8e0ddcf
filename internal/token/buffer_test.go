package token

import (
	"fmt"
	"testing"
)

func loc(line, col uint32) Location {
	return Location{Source: 0, LineStart: line, ColStart: col, LineEnd: line, ColEnd: col}
}

func TestBufferCreateTokenAssignsDenseIDs(t *testing.T) {
	var buf Buffer

	id0 := buf.CreateToken(KwLet, loc(1, 1))
	id1 := buf.CreateBoolToken(BoolLit, loc(1, 5), true)
	id2 := buf.CreateUintToken(IntLit, loc(1, 10), 42)
	id3 := buf.CreateFloatToken(FloatLit, loc(1, 13), 3.5)
	id4 := buf.CreateStringToken(StringLit, loc(1, 17), "hello")

	for i, id := range []ID{id0, id1, id2, id3, id4} {
		if id != ID(i) {
			t.Errorf("expected ID %d, got %d", i, id)
		}
	}
	if buf.Len() != 5 {
		t.Errorf("expected 5 tokens, got %d", buf.Len())
	}
}

func TestBufferPayloads(t *testing.T) {
	var buf Buffer

	plain := buf.Get(buf.CreateToken(Semicolon, loc(1, 1)))
	if plain.Payload() != PayloadNone {
		t.Errorf("expected none payload, got %v", plain.Payload())
	}

	b := buf.Get(buf.CreateBoolToken(BoolLit, loc(1, 2), true))
	if !b.Bool() {
		t.Error("expected bool payload true")
	}

	u := buf.Get(buf.CreateUintToken(IntLit, loc(1, 3), 1234))
	if u.Uint() != 1234 {
		t.Errorf("expected 1234, got %d", u.Uint())
	}

	f := buf.Get(buf.CreateFloatToken(FloatLit, loc(1, 4), 0.25))
	if f.Float() != 0.25 {
		t.Errorf("expected 0.25, got %g", f.Float())
	}

	s := buf.Get(buf.CreateStringToken(StringLit, loc(1, 5), "lit"))
	if s.StringValue() != "lit" {
		t.Errorf("expected %q, got %q", "lit", s.StringValue())
	}
}

func TestBufferPayloadAccessorPanicsOnMismatch(t *testing.T) {
	var buf Buffer
	tok := buf.Get(buf.CreateToken(Plus, loc(1, 1)))

	defer func() {
		if recover() == nil {
			t.Error("expected panic when reading a missing payload")
		}
	}()
	_ = tok.Uint()
}

func TestBufferStringRefsStableAcrossAppends(t *testing.T) {
	var buf Buffer

	id := buf.CreateStringToken(StringLit, loc(1, 1), "first")
	ref := buf.Get(id).StringRef()

	// Grow the buffer well past any initial capacity.
	for i := 0; i < 10000; i++ {
		buf.CreateStringToken(StringLit, loc(1, 1), fmt.Sprintf("lit-%d", i))
	}

	if ref != buf.Get(id).StringRef() {
		t.Error("string payload reference changed after appends")
	}
	if *ref != "first" {
		t.Errorf("expected %q, got %q", "first", *ref)
	}
}

func TestBufferLockRejectsCreate(t *testing.T) {
	var buf Buffer
	buf.CreateToken(KwFn, loc(1, 1))
	buf.Lock()

	if !buf.IsLocked() {
		t.Fatal("expected buffer to report locked")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on CreateToken after Lock")
		}
	}()
	buf.CreateToken(Ident, loc(1, 4))
}

func TestBufferIDs(t *testing.T) {
	var buf Buffer
	buf.CreateToken(KwIf, loc(1, 1))
	buf.CreateToken(LParen, loc(1, 4))
	buf.CreateToken(RParen, loc(1, 5))

	ids := buf.IDs()
	if len(ids) != 3 {
		t.Fatalf("expected 3 IDs, got %d", len(ids))
	}
	for i, id := range ids {
		if id != ID(i) {
			t.Errorf("expected ID %d at index %d, got %d", i, i, id)
		}
	}
}
