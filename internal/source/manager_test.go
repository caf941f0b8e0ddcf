package source

import (
	"fmt"
	"sync"
	"testing"

	"lumen/internal/token"
)

func TestAddSourceAssignsDenseIDs(t *testing.T) {
	m := NewManager()

	idA := m.AddSource("a.lum", []byte("let a = 1;"))
	idB := m.AddSource("b.lum", []byte("let b = 2;"))

	if idA != 0 || idB != 1 {
		t.Errorf("expected IDs 0 and 1, got %d and %d", idA, idB)
	}

	srcs := m.Sources()
	if len(srcs) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(srcs))
	}
	for i, src := range srcs {
		if src.ID() != ID(i) {
			t.Errorf("source at index %d has ID %d", i, src.ID())
		}
	}
	if srcs[0].Path() != "a.lum" || srcs[1].Path() != "b.lum" {
		t.Error("sources not in insertion order")
	}
}

func TestSourceDataImmutableView(t *testing.T) {
	m := NewManager()
	id := m.AddSource("a.lum", []byte("abc"))

	src := m.Get(id)
	if string(src.Data()) != "abc" {
		t.Errorf("unexpected data %q", src.Data())
	}
}

func TestTokenBufferSlotStableAcrossAdds(t *testing.T) {
	m := NewManager()
	id := m.AddSource("a.lum", nil)
	slot := m.Get(id).Tokens()

	for i := 0; i < 1000; i++ {
		m.AddSource(fmt.Sprintf("f%d.lum", i), nil)
	}

	if m.Get(id).Tokens() != slot {
		t.Error("token buffer slot moved after later AddSource calls")
	}
}

func TestConcurrentAddSourceKeepsIDsDense(t *testing.T) {
	m := NewManager()
	m.Reserve(64)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 8; i++ {
				m.AddSource(fmt.Sprintf("g%d-%d.lum", g, i), nil)
			}
		}(g)
	}
	wg.Wait()

	if m.Len() != 64 {
		t.Fatalf("expected 64 sources, got %d", m.Len())
	}
	seen := make(map[ID]bool, 64)
	for _, src := range m.Sources() {
		if seen[src.ID()] {
			t.Errorf("duplicate ID %d", src.ID())
		}
		seen[src.ID()] = true
	}
	for i := 0; i < 64; i++ {
		if !seen[ID(i)] {
			t.Errorf("missing ID %d", i)
		}
	}
}

func TestInstallTokensTwicePanics(t *testing.T) {
	m := NewManager()
	src := m.Get(m.AddSource("a.lum", nil))

	var buf token.Buffer
	buf.Lock()
	src.InstallTokens(&buf)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on second InstallTokens")
		}
	}()
	src.InstallTokens(&buf)
}
