package source

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts raw file bytes to UTF-8. A UTF-8 BOM is stripped; UTF-16
// content (either endianness, detected by BOM) is transcoded. Valid UTF-8
// without a BOM passes through untouched, so line and column accounting stays
// byte-exact for plain ASCII and UTF-8 sources; ill-formed UTF-8 sequences
// are replaced with U+FFFD. Newlines are left alone: the diagnostic
// renderer and the lexer both understand \n, \r, and \r\n.
func Decode(raw []byte) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return nil, fmt.Errorf("decode source bytes: %w", err)
	}
	return out, nil
}
