package driver

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/hassan/cminus/internal/diag"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		ok       bool
		resolved bool
		codes    []diag.Code
	}{
		{
			name:     "clean program",
			src:      "struct P { int x; }; struct P p; void main() { p.x = 1; }",
			ok:       true,
			resolved: true,
		},
		{
			name:     "syntax error stops before name analysis",
			src:      "int x = 1; void f() { y = 2; }",
			resolved: false,
			codes:    []diag.Code{diag.SyntaxError},
		},
		{
			name:     "name errors",
			src:      "void v; void f() { y = 2; }",
			resolved: true,
			codes:    []diag.Code{diag.NonFunctionDeclaredVoid, diag.UndeclaredIdentifier},
		},
		{
			name:     "warnings do not fail",
			src:      "int x; void f() { x = 99999999999; }",
			ok:       true,
			resolved: true,
		},
		{
			name:     "illegal character",
			src:      "int x; @ void f() { }",
			resolved: false,
			codes:    []diag.Code{diag.SyntaxError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Config{}.Analyze(tt.src, "test.cm")
			if res.OK() != tt.ok {
				t.Errorf("OK() = %v, want %v\n%v", res.OK(), tt.ok, res.Diags.Err())
			}
			if res.Resolved() != tt.resolved {
				t.Errorf("Resolved() = %v, want %v", res.Resolved(), tt.resolved)
			}
			if diff := deep.Equal(res.Diags.Codes(), tt.codes); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestAnalyze_WarningIsReported(t *testing.T) {
	res := Config{}.Analyze("int x; void f() { x = 99999999999; }", "test.cm")
	all := res.Diags.All()
	if len(all) != 1 || all[0].Severity != diag.Warning {
		t.Fatalf("diagnostics: %v", all)
	}
}

func TestAnalyze_MaxDepth(t *testing.T) {
	src := "int x; void f() { x = " + strings.Repeat("(", 20) + "1" + strings.Repeat(")", 20) + "; }"

	res := Config{MaxDepth: 8}.Analyze(src, "test.cm")
	if res.Diags.Count(diag.NestingTooDeep) != 1 {
		t.Errorf("codes %v, want one NestingTooDeep", res.Diags.Codes())
	}

	if res := (Config{}).Analyze(src, "test.cm"); !res.OK() {
		t.Errorf("default depth rejected the program: %v", res.Diags.Err())
	}
}

func TestAnalyze_Logging(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	cfg.Analyze("int x;", "test.cm")
	if !strings.Contains(buf.String(), "parsing successful") {
		t.Errorf("missing parse trace:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "name analysis finished") {
		t.Errorf("logger not passed to the resolver:\n%s", buf.String())
	}
}

func TestResult_Unparse(t *testing.T) {
	var out bytes.Buffer

	res := Config{}.Analyze("int z; void main() { z = 1; }", "test.cm")
	if err := res.Unparse(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "z(int) = 1;") {
		t.Errorf("unparse output:\n%s", out.String())
	}

	out.Reset()
	res = Config{}.Analyze("void main() { z = 1; }", "test.cm")
	if err := res.Unparse(&out); err == nil {
		t.Error("expected refusal for a failed analysis")
	}
	if out.Len() != 0 {
		t.Errorf("wrote output for a failed analysis:\n%s", out.String())
	}
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.cm")
	if err := os.WriteFile(path, []byte("int x;\nvoid f() { y = 1; }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Config{}.AnalyzeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	errs := res.Diags.Errors()
	if len(errs) != 1 || errs[0].Pos.Filename != path || errs[0].Pos.Line != 2 {
		t.Errorf("diagnostics: %v", errs)
	}
	if _, ok := res.Globals.Lookup("f"); !ok {
		t.Error("f missing from globals")
	}

	_, err = Config{}.AnalyzeFile(filepath.Join(dir, "missing.cm"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: got %v", err)
	}
}
