package source

import (
	"fmt"
	"sync"

	"fortio.org/safecast"

	"lumen/internal/token"
)

// Manager is the append-only registry of all sources loaded under a driver.
// AddSource assigns dense IDs in insertion order. Mutation and mid-stage
// reads are serialized by an internal mutex; readers that observe the
// manager only after the enclosing task group has drained need no locking
// beyond what the accessors already do.
type Manager struct {
	mu      sync.Mutex
	sources []*Source
}

// NewManager returns an empty source registry.
func NewManager() *Manager {
	return &Manager{}
}

// Reserve hints that n more sources are about to be added.
func (m *Manager) Reserve(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if free := cap(m.sources) - len(m.sources); free < n {
		grown := make([]*Source, len(m.sources), len(m.sources)+n)
		copy(grown, m.sources)
		m.sources = grown
	}
}

// AddSource registers a new source and returns its dense ID. The token
// buffer is allocated here, empty, so the slot address the tokenize stage
// later writes through is already stable.
func (m *Manager) AddSource(path string, data []byte) ID {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := safecast.Conv[uint32](len(m.sources))
	if err != nil {
		panic(fmt.Errorf("source: manager length overflow: %w", err))
	}
	id := ID(next)
	m.sources = append(m.sources, &Source{
		id:     id,
		path:   path,
		data:   data,
		tokens: new(token.Buffer),
	})
	return id
}

// Get returns the source for id.
func (m *Manager) Get(id ID) *Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sources[id]
}

// Sources returns a snapshot of all registered sources in insertion order.
func (m *Manager) Sources() []*Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Source, len(m.sources))
	copy(out, m.sources)
	return out
}

// Len returns the number of registered sources.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sources)
}
