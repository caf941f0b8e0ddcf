package token

import (
	"fmt"

	"fortio.org/safecast"
)

// ID identifies a token inside a single Buffer. IDs are dense indices; an ID
// is only meaningful together with the buffer that produced it.
type ID uint32

// Buffer is an append-only columnar container of tokens. String literal
// payloads are stored out of band in individually boxed cells, so the
// references handed out by Token.StringRef are never invalidated by later
// appends.
//
// A Buffer is not safe for concurrent use. The driver confines each buffer to
// the worker populating it and publishes the finished buffer through the
// owning source's stable slot.
//
// The zero value is an empty, unlocked buffer ready for use.
type Buffer struct {
	tokens   []Token
	literals []*string
	locked   bool
}

func (b *Buffer) nextID() ID {
	next, err := safecast.Conv[uint32](len(b.tokens))
	if err != nil {
		panic(fmt.Errorf("token: buffer length overflow: %w", err))
	}
	return ID(next)
}

func (b *Buffer) push(tok Token) ID {
	if b.locked {
		panic("token: CreateToken on a locked buffer")
	}
	id := b.nextID()
	b.tokens = append(b.tokens, tok)
	return id
}

// CreateToken appends a token without a payload.
func (b *Buffer) CreateToken(kind Kind, loc Location) ID {
	return b.push(Token{Kind: kind, Loc: loc})
}

// CreateBoolToken appends a token with a boolean payload.
func (b *Buffer) CreateBoolToken(kind Kind, loc Location, value bool) ID {
	return b.push(Token{Kind: kind, Loc: loc, payload: PayloadBool, boolVal: value})
}

// CreateUintToken appends a token with an unsigned integer payload.
func (b *Buffer) CreateUintToken(kind Kind, loc Location, value uint64) ID {
	return b.push(Token{Kind: kind, Loc: loc, payload: PayloadInt, intVal: value})
}

// CreateFloatToken appends a token with a floating-point payload.
func (b *Buffer) CreateFloatToken(kind Kind, loc Location, value float64) ID {
	return b.push(Token{Kind: kind, Loc: loc, payload: PayloadFloat, floatVal: value})
}

// CreateStringToken appends a token that takes ownership of the given string.
// The payload is boxed in its own cell so its address survives buffer growth.
func (b *Buffer) CreateStringToken(kind Kind, loc Location, value string) ID {
	cell := new(string)
	*cell = value
	b.literals = append(b.literals, cell)
	return b.push(Token{Kind: kind, Loc: loc, payload: PayloadString, strVal: cell})
}

// Get returns the token for id. The id must come from this buffer.
func (b *Buffer) Get(id ID) *Token {
	return &b.tokens[id]
}

// Len returns the number of tokens in the buffer.
func (b *Buffer) Len() int {
	return len(b.tokens)
}

// IDs returns the dense token IDs 0..Len-1 in order.
func (b *Buffer) IDs() []ID {
	ids := make([]ID, len(b.tokens))
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// Lock freezes the buffer. Any CreateToken call after Lock panics.
func (b *Buffer) Lock() {
	b.locked = true
}

// IsLocked reports whether the buffer has been frozen.
func (b *Buffer) IsLocked() bool {
	return b.locked
}
