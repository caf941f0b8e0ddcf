package diag

import "fmt"

// Code identifies the kind of a diagnostic.
type Code uint16

const (
	// UnknownCode is the zero value; real diagnostics always carry a code.
	UnknownCode Code = 0

	// Misc diagnostics (driver / file access)
	MiscFileDoesNotExist Code = 100
	MiscLoadFileFailed   Code = 101
	MiscTrace            Code = 110
	MiscDebug            Code = 111

	// Lexical diagnostics
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005
	LexTooManyErrors            Code = 1006
)

var codeNames = map[Code]string{
	UnknownCode:                 "UnknownCode",
	MiscFileDoesNotExist:        "MiscFileDoesNotExist",
	MiscLoadFileFailed:          "MiscLoadFileFailed",
	MiscTrace:                   "MiscTrace",
	MiscDebug:                   "MiscDebug",
	LexUnknownChar:              "LexUnknownChar",
	LexUnterminatedString:       "LexUnterminatedString",
	LexUnterminatedBlockComment: "LexUnterminatedBlockComment",
	LexBadNumber:                "LexBadNumber",
	LexBadEscape:                "LexBadEscape",
	LexTooManyErrors:            "LexTooManyErrors",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}
