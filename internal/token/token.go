package token

// SourceID identifies a registered source file. The dense values are assigned
// by the source manager; the type lives here so a Location is self-contained,
// and the source package aliases it.
type SourceID uint32

// Location is a 1-based line/column range inside a source file. Column end is
// inclusive.
type Location struct {
	Source    SourceID
	LineStart uint32
	ColStart  uint32
	LineEnd   uint32
	ColEnd    uint32
}

// Payload describes which literal value, if any, a token carries.
type Payload uint8

const (
	// PayloadNone is for tokens without a literal value.
	PayloadNone Payload = iota
	// PayloadBool is for boolean literals.
	PayloadBool
	// PayloadInt is for unsigned integer literals.
	PayloadInt
	// PayloadFloat is for floating-point literals.
	PayloadFloat
	// PayloadString is for string literals.
	PayloadString
)

func (p Payload) String() string {
	switch p {
	case PayloadNone:
		return "none"
	case PayloadBool:
		return "bool"
	case PayloadInt:
		return "int"
	case PayloadFloat:
		return "float"
	case PayloadString:
		return "string"
	}
	return "unknown"
}

// Token is a single lexed token. The payload fields are private; accessors
// panic when asked for a payload kind the token does not carry.
type Token struct {
	Kind Kind
	Loc  Location

	payload  Payload
	boolVal  bool
	intVal   uint64
	floatVal float64
	strVal   *string
}

// Payload reports which literal value the token carries.
func (t *Token) Payload() Payload { return t.payload }

// Bool returns the boolean payload.
func (t *Token) Bool() bool {
	if t.payload != PayloadBool {
		panic("token: not a bool payload")
	}
	return t.boolVal
}

// Uint returns the unsigned integer payload.
func (t *Token) Uint() uint64 {
	if t.payload != PayloadInt {
		panic("token: not an int payload")
	}
	return t.intVal
}

// Float returns the floating-point payload.
func (t *Token) Float() float64 {
	if t.payload != PayloadFloat {
		panic("token: not a float payload")
	}
	return t.floatVal
}

// StringRef returns a reference to the owned string payload. The reference
// stays valid for the owning buffer's lifetime, across any number of later
// appends.
func (t *Token) StringRef() *string {
	if t.payload != PayloadString {
		panic("token: not a string payload")
	}
	return t.strVal
}

// StringValue returns the string payload by value.
func (t *Token) StringValue() string { return *t.StringRef() }
