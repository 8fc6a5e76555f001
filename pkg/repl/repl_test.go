package repl

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/nlindqvist/golisp/pkg/types"
)

type mockInterpreter struct {
	responses []interpretResponse
	callIndex int
}

type interpretResponse struct {
	result types.Value
	err    error
}

func (m *mockInterpreter) Interpret(input string) (types.Value, error) {
	if m.callIndex >= len(m.responses) {
		return types.Integer(0), nil
	}
	r := m.responses[m.callIndex]
	m.callIndex++
	return r.result, r.err
}

func newMockInterpreter(responses ...interpretResponse) *mockInterpreter {
	return &mockInterpreter{responses: responses}
}

func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestContainsExpression(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"empty string", "", false},
		{"whitespace only", "   \n\t  ", false},
		{"simple expression", "(+ 1 2)", true},
		{"comment only", "; just a comment", false},
		{"expression then comment", "(+ 1 2) ; adds", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := containsExpression(tt.input); got != tt.expected {
				t.Errorf("containsExpression(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCountParens(t *testing.T) {
	inString, escaped := false, false
	if got := countParens("(+ 1 2)", &inString, &escaped); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}

	inString, escaped = false, false
	if got := countParens("(+ 1 (* 2 3)", &inString, &escaped); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestREPLWithOptionsEvaluatesAndPrints(t *testing.T) {
	color.NoColor = true
	mock := newMockInterpreter(interpretResponse{result: types.Integer(3)})
	input := "(+ 1 2)\nquit\n"
	scanner := bufio.NewScanner(strings.NewReader(input))

	output := captureOutput(func() {
		REPLWithOptions(mock, scanner, false)
	})

	if !strings.Contains(output, "=> 3") {
		t.Fatalf("expected result in output, got: %q", output)
	}
}

func TestREPLWithOptionsFormatsErrors(t *testing.T) {
	mock := newMockInterpreter(interpretResponse{err: testErr("undefined symbol: x")})
	input := "x\nquit\n"
	scanner := bufio.NewScanner(strings.NewReader(input))

	output := captureOutput(func() {
		REPLWithOptions(mock, scanner, false)
	})

	if !strings.Contains(output, "undefined symbol: x") {
		t.Fatalf("expected formatted error in output, got: %q", output)
	}
}

type testErr string

func (e testErr) Error() string { return string(e) }
