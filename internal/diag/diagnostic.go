package diag

import (
	"lumen/internal/token"
)

// Note is a secondary note attached to a diagnostic.
type Note struct {
	Message string
	Loc     *token.Location
}

// Diagnostic is one message produced by the driver or one of its stages.
// Loc is nil for diagnostics without a source position (file access errors,
// trace output).
type Diagnostic struct {
	Level   Level
	Code    Code
	Loc     *token.Location
	Message string
	Infos   []Note
}
