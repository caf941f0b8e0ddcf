package lexer_test

import (
	"testing"

	"lumen/internal/diag"
	"lumen/internal/lexer"
	"lumen/internal/source"
	"lumen/internal/token"
)

// testReporter collects everything the lexer reports.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(level diag.Level, code diag.Code, loc token.Location, msg string) {
	l := loc
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Level: level, Code: code, Loc: &l, Message: msg,
	})
}

func (r *testReporter) errorCount() int {
	count := 0
	for _, d := range r.diagnostics {
		if d.Level.CountsAsError() {
			count++
		}
	}
	return count
}

func tokenizeText(t *testing.T, text string, opts lexer.Options) *token.Buffer {
	t.Helper()
	mgr := source.NewManager()
	src := mgr.Get(mgr.AddSource("test.lum", []byte(text)))
	buf, err := lexer.Tokenize(src, opts)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	return buf
}

func kinds(buf *token.Buffer) []token.Kind {
	out := make([]token.Kind, 0, buf.Len())
	for _, id := range buf.IDs() {
		out = append(out, buf.Get(id).Kind)
	}
	return out
}

func TestTokenizeStatement(t *testing.T) {
	rep := &testReporter{}
	buf := tokenizeText(t, `let answer = 42;`, lexer.Options{Reporter: rep})

	want := []token.Kind{token.KwLet, token.Ident, token.Assign, token.IntLit, token.Semicolon, token.EOF}
	got := kinds(buf)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	ident := buf.Get(1)
	if ident.StringValue() != "answer" {
		t.Errorf("expected ident payload %q, got %q", "answer", ident.StringValue())
	}
	lit := buf.Get(3)
	if lit.Uint() != 42 {
		t.Errorf("expected int payload 42, got %d", lit.Uint())
	}
	if rep.errorCount() != 0 {
		t.Errorf("expected no errors, got %d", rep.errorCount())
	}
}

func TestTokenizeLiteralPayloads(t *testing.T) {
	buf := tokenizeText(t, `true false 3.25 0x1F "a\tb"`, lexer.Options{})

	if got := buf.Get(0); !got.Bool() {
		t.Error("expected true payload")
	}
	if got := buf.Get(1); got.Bool() {
		t.Error("expected false payload")
	}
	if got := buf.Get(2); got.Float() != 3.25 {
		t.Errorf("expected 3.25, got %g", got.Float())
	}
	if got := buf.Get(3); got.Uint() != 0x1F {
		t.Errorf("expected 31, got %d", got.Uint())
	}
	if got := buf.Get(4); got.StringValue() != "a\tb" {
		t.Errorf("expected escaped string, got %q", got.StringValue())
	}
}

func TestTokenizeLocations(t *testing.T) {
	buf := tokenizeText(t, "let x\nlet y\n", lexer.Options{})

	secondLet := buf.Get(2)
	if secondLet.Kind != token.KwLet {
		t.Fatalf("expected KwLet, got %v", secondLet.Kind)
	}
	loc := secondLet.Loc
	if loc.LineStart != 2 || loc.ColStart != 1 || loc.LineEnd != 2 || loc.ColEnd != 3 {
		t.Errorf("unexpected location %+v", loc)
	}
}

func TestTokenizeCRLFLocations(t *testing.T) {
	buf := tokenizeText(t, "x\r\ny", lexer.Options{})

	y := buf.Get(1)
	if y.Loc.LineStart != 2 || y.Loc.ColStart != 1 {
		t.Errorf("expected y at 2:1, got %d:%d", y.Loc.LineStart, y.Loc.ColStart)
	}
}

func TestTokenizeComments(t *testing.T) {
	buf := tokenizeText(t, "a // line comment\n/* block\ncomment */ b", lexer.Options{})

	got := kinds(buf)
	want := []token.Kind{token.Ident, token.Ident, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTokenizeUnknownCharReported(t *testing.T) {
	rep := &testReporter{}
	tokenizeText(t, "let # x", lexer.Options{Reporter: rep})

	if rep.errorCount() != 1 {
		t.Fatalf("expected 1 error, got %d", rep.errorCount())
	}
	if rep.diagnostics[0].Code != diag.LexUnknownChar {
		t.Errorf("expected LexUnknownChar, got %v", rep.diagnostics[0].Code)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	rep := &testReporter{}
	tokenizeText(t, "\"abc\nx", lexer.Options{Reporter: rep})

	if rep.errorCount() != 1 {
		t.Fatalf("expected 1 error, got %d", rep.errorCount())
	}
	if rep.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Errorf("expected LexUnterminatedString, got %v", rep.diagnostics[0].Code)
	}
}

func TestTokenizeErrorBudgetAborts(t *testing.T) {
	mgr := source.NewManager()
	src := mgr.Get(mgr.AddSource("test.lum", []byte("# # # # #")))

	rep := &testReporter{}
	_, err := lexer.Tokenize(src, lexer.Options{Reporter: rep, MaxErrors: 2})
	if err == nil {
		t.Fatal("expected an error once the budget is exhausted")
	}
	last := rep.diagnostics[len(rep.diagnostics)-1]
	if last.Code != diag.LexTooManyErrors {
		t.Errorf("expected LexTooManyErrors last, got %v", last.Code)
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	const text = `fn add(a, b) { return a + b; } // trailing`

	first := tokenizeText(t, text, lexer.Options{})
	second := tokenizeText(t, text, lexer.Options{})

	if first.Len() != second.Len() {
		t.Fatalf("lengths differ: %d vs %d", first.Len(), second.Len())
	}
	for _, id := range first.IDs() {
		a, b := first.Get(id), second.Get(id)
		if a.Kind != b.Kind || a.Loc != b.Loc {
			t.Errorf("token %d differs: %+v vs %+v", id, a, b)
		}
	}
}
