package executor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nlindqvist/golisp/pkg/interpreter"
)

func TestExecuteFileRunsEachTopLevelForm(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lisp")
	src := "(define x 10)\n(define y (+ x 5))\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write error: %v", err)
	}

	interp, err := interpreter.New()
	if err != nil {
		t.Fatalf("interpreter.New error: %v", err)
	}
	if err := ExecuteFile(interp, path); err != nil {
		t.Fatalf("ExecuteFile error: %v", err)
	}

	v, err := interp.Interpret("y")
	if err != nil {
		t.Fatalf("interpret error: %v", err)
	}
	if got, want := v.String(), "15"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestExecuteFileMissingFile(t *testing.T) {
	interp, err := interpreter.New()
	if err != nil {
		t.Fatalf("interpreter.New error: %v", err)
	}
	if err := ExecuteFile(interp, "/nonexistent/path.lisp"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
