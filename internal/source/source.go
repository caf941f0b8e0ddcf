package source

import (
	"lumen/internal/token"
)

// ID uniquely identifies a source within a Manager. IDs are dense and
// gap-free from 0 to Len-1 and stay stable for the driver's lifetime.
type ID = token.SourceID

// Source is one loaded source file. Path and data are immutable after
// creation. The token buffer is allocated empty when the source is
// registered, so its address never changes; the tokenize stage replaces its
// contents in place exactly once and then it stays frozen.
type Source struct {
	id     ID
	path   string
	data   []byte
	tokens *token.Buffer
}

// ID returns the source's dense identifier.
func (s *Source) ID() ID { return s.id }

// Path returns the filesystem path the source was loaded from.
func (s *Source) Path() string { return s.path }

// Data returns the raw source bytes. Callers must not modify them.
func (s *Source) Data() []byte { return s.data }

// Tokens returns the source's token buffer. The pointer is stable from the
// moment the source is registered; the buffer is empty until the tokenize
// stage installs its contents.
func (s *Source) Tokens() *token.Buffer { return s.tokens }

// InstallTokens replaces the contents of the source's pre-allocated buffer
// with buf. The slot's address does not change, so readers holding the
// pointer from Tokens observe the new contents. The tokenize worker is the
// only writer; installing twice is a contract violation.
func (s *Source) InstallTokens(buf *token.Buffer) {
	if s.tokens.IsLocked() {
		panic("source: token buffer installed twice")
	}
	*s.tokens = *buf
}
