package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"lumen/internal/source"
	"lumen/internal/token"
)

// TokenDump is the serializable view of one token.
type TokenDump struct {
	ID      uint32 `json:"id" msgpack:"id"`
	Kind    string `json:"kind" msgpack:"kind"`
	Line    uint32 `json:"line" msgpack:"line"`
	Col     uint32 `json:"col" msgpack:"col"`
	EndLine uint32 `json:"end_line" msgpack:"end_line"`
	EndCol  uint32 `json:"end_col" msgpack:"end_col"`
	Payload string `json:"payload,omitempty" msgpack:"payload,omitempty"`
	Value   any    `json:"value,omitempty" msgpack:"value,omitempty"`
}

// DumpTokens flattens a source's token buffer for serialization.
func DumpTokens(src *source.Source) []TokenDump {
	buf := src.Tokens()
	out := make([]TokenDump, 0, buf.Len())
	for _, id := range buf.IDs() {
		tok := buf.Get(id)
		dump := TokenDump{
			ID:      uint32(id),
			Kind:    tok.Kind.String(),
			Line:    tok.Loc.LineStart,
			Col:     tok.Loc.ColStart,
			EndLine: tok.Loc.LineEnd,
			EndCol:  tok.Loc.ColEnd,
		}
		switch tok.Payload() {
		case token.PayloadBool:
			dump.Payload = "bool"
			dump.Value = tok.Bool()
		case token.PayloadInt:
			dump.Payload = "int"
			dump.Value = tok.Uint()
		case token.PayloadFloat:
			dump.Payload = "float"
			dump.Value = tok.Float()
		case token.PayloadString:
			dump.Payload = "string"
			dump.Value = tok.StringValue()
		}
		out = append(out, dump)
	}
	return out
}

// FormatTokensPretty writes a human-readable token listing.
func FormatTokensPretty(w io.Writer, src *source.Source) error {
	buf := src.Tokens()
	for _, id := range buf.IDs() {
		tok := buf.Get(id)
		if _, err := fmt.Fprintf(w, "%4d: %-10s at %d:%d-%d:%d",
			id, tok.Kind,
			tok.Loc.LineStart, tok.Loc.ColStart,
			tok.Loc.LineEnd, tok.Loc.ColEnd); err != nil {
			return err
		}
		switch tok.Payload() {
		case token.PayloadBool:
			fmt.Fprintf(w, " %v", tok.Bool())
		case token.PayloadInt:
			fmt.Fprintf(w, " %d", tok.Uint())
		case token.PayloadFloat:
			fmt.Fprintf(w, " %g", tok.Float())
		case token.PayloadString:
			fmt.Fprintf(w, " %q", tok.StringValue())
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes the token listing as indented JSON.
func FormatTokensJSON(w io.Writer, src *source.Source) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(DumpTokens(src))
}

// FormatTokensMsgpack writes the token listing as a msgpack array.
func FormatTokensMsgpack(w io.Writer, src *source.Source) error {
	return msgpack.NewEncoder(w).Encode(DumpTokens(src))
}
