package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lumen/internal/diag"
	"lumen/internal/driver"
	"lumen/internal/source"
	"lumen/internal/token"
)

// NewCallback returns the default diagnostic callback: it renders every
// diagnostic to w. The driver already serializes callback invocations, so
// the writer needs no extra locking.
func NewCallback(w io.Writer, colored bool) driver.DiagnosticCallback {
	return func(d *driver.Driver, dg diag.Diagnostic) {
		Render(w, d.SourceManager(), dg, colored)
	}
}

// Render writes one diagnostic: a <Level|Code> header, then the source
// location with a caret span, then any attached infos.
func Render(w io.Writer, mgr *source.Manager, dg diag.Diagnostic, colored bool) {
	levelColor(dg.Level, colored).Fprintf(w, "<%s|%s> %s\n", dg.Level, dg.Code, dg.Message)

	if dg.Loc != nil {
		renderLocation(w, mgr.Get(dg.Loc.Source), dg.Level, *dg.Loc, colored)
	}
	for _, info := range dg.Infos {
		paint(color.FgCyan, colored).Fprintf(w, "\t<Info> %s\n", info.Message)
		if info.Loc != nil {
			renderLocation(w, mgr.Get(info.Loc.Source), diag.Info, *info.Loc, colored)
		}
	}
}

// renderLocation draws the file position, the offending source line with its
// leading whitespace stripped, and a caret line underneath: ^^^ covering the
// span for single-line locations, ^~~~ to the end of the line for multi-line
// ones.
func renderLocation(w io.Writer, src *source.Source, level diag.Level, loc token.Location, colored bool) {
	gray := paint(color.FgHiBlack, colored)
	gray.Fprintf(w, "\t%s:%d:%d\n", src.Path(), loc.LineStart, loc.ColStart)

	data := src.Data()

	// Scan forward to the wanted line. \n, \r, and \r\n each end a line.
	cursor := 0
	line := uint32(1)
	for line < loc.LineStart && cursor < len(data) {
		switch data[cursor] {
		case '\n':
			line++
		case '\r':
			line++
			if cursor+1 < len(data) && data[cursor+1] == '\n' {
				cursor++
			}
		}
		cursor++
	}

	// Collect the line, dropping leading whitespace and shifting the caret
	// column to match.
	var lineBuf strings.Builder
	pointCol := int(loc.ColStart)
	stripping := true
	for cursor < len(data) && data[cursor] != '\n' && data[cursor] != '\r' {
		b := data[cursor]
		if stripping && (b == ' ' || b == '\t') {
			pointCol--
		} else {
			stripping = false
			lineBuf.WriteByte(b)
		}
		cursor++
	}
	lineStr := lineBuf.String()
	if pointCol < 1 {
		pointCol = 1
	}

	lineNum := fmt.Sprintf("%d", loc.LineStart)
	gray.Fprintf(w, "\t%s | %s\n", lineNum, lineStr)
	gray.Fprintf(w, "\t%s | ", strings.Repeat(" ", len(lineNum)))

	runes := []rune(lineStr)
	prefixEnd := pointCol - 1
	if prefixEnd > len(runes) {
		prefixEnd = len(runes)
	}

	var pointer strings.Builder
	// Pad by display width so the carets line up under wide runes too.
	pointer.WriteString(strings.Repeat(" ", runewidth.StringWidth(string(runes[:prefixEnd]))))

	if loc.LineStart == loc.LineEnd {
		span := int(loc.ColEnd) - int(loc.ColStart) + 1
		if span < 1 {
			span = 1
		}
		spanEnd := prefixEnd + span
		if spanEnd > len(runes) {
			spanEnd = len(runes)
		}
		width := span
		if spanEnd > prefixEnd {
			width = runewidth.StringWidth(string(runes[prefixEnd:spanEnd]))
		}
		if width < 1 {
			width = 1
		}
		pointer.WriteString(strings.Repeat("^", width))
	} else {
		pointer.WriteString("^")
		if tail := len(runes) - prefixEnd - 1; tail > 0 {
			pointer.WriteString(strings.Repeat("~", tail))
		}
	}
	pointer.WriteString("\n")

	levelColor(level, colored).Fprint(w, pointer.String())
}

func levelColor(level diag.Level, colored bool) *color.Color {
	switch level {
	case diag.Fatal, diag.Error:
		return paint(color.FgRed, colored)
	case diag.Warning:
		return paint(color.FgYellow, colored)
	default:
		return paint(color.FgCyan, colored)
	}
}

func paint(attr color.Attribute, colored bool) *color.Color {
	c := color.New(attr)
	if !colored {
		c.DisableColor()
	}
	return c
}
