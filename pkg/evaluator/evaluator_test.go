package evaluator_test

import (
	"testing"

	"github.com/nlindqvist/golisp/pkg/bootstrap"
	"github.com/nlindqvist/golisp/pkg/compiler"
	"github.com/nlindqvist/golisp/pkg/evaluator"
	"github.com/nlindqvist/golisp/pkg/parser"
	"github.com/nlindqvist/golisp/pkg/tokenizer"
	"github.com/nlindqvist/golisp/pkg/types"
)

func newTestEvaluator(t *testing.T) *evaluator.Evaluator {
	t.Helper()
	root, err := bootstrap.RootEnvironment()
	if err != nil {
		t.Fatalf("bootstrap error: %v", err)
	}
	return evaluator.New(root)
}

func compileSrc(t *testing.T, src string) types.Value {
	t.Helper()
	tokens, err := tokenizer.New(src).Tokenize()
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	node, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return compiler.Compile(node)
}

func evalSrc(t *testing.T, ev *evaluator.Evaluator, src string) types.Value {
	t.Helper()
	v, err := ev.Eval(compileSrc(t, src))
	if err != nil {
		t.Fatalf("eval(%q) error: %v", src, err)
	}
	return v
}

func TestArithmetic(t *testing.T) {
	ev := newTestEvaluator(t)
	v := evalSrc(t, ev, "(+ 1 2)")
	if v != types.Integer(3) {
		t.Fatalf("got %v", v)
	}
}

func TestDefineThenUse(t *testing.T) {
	ev := newTestEvaluator(t)
	evalSrc(t, ev, "(define x 10)")
	v := evalSrc(t, ev, "(+ x 5)")
	if v != types.Integer(15) {
		t.Fatalf("got %v", v)
	}
}

func TestClosure(t *testing.T) {
	ev := newTestEvaluator(t)
	evalSrc(t, ev, "(define mk (lambda (x) (lambda () x)))")
	evalSrc(t, ev, "(define f (mk 7))")
	v := evalSrc(t, ev, "(f)")
	if v != types.Integer(7) {
		t.Fatalf("got %v", v)
	}
}

func TestTailRecursion(t *testing.T) {
	ev := newTestEvaluator(t)
	evalSrc(t, ev, "(define loop (lambda (n) (cond ((= n 0) #t) (#t (loop (- n 1))))))")
	v := evalSrc(t, ev, "(loop 10000)")
	if v != types.Boolean(true) {
		t.Fatalf("got %v", v)
	}
}

func TestMutationThroughCar(t *testing.T) {
	ev := newTestEvaluator(t)
	evalSrc(t, ev, "(define p (quote (1 2 3)))")
	evalSrc(t, ev, "(set! (car p) 9)")
	v := evalSrc(t, ev, "p")
	if got, want := v.String(), "(9 2 3)"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	tail := evalSrc(t, ev, "(cdr p)")
	if got, want := tail.String(), "(2 3)"; got != want {
		t.Fatalf("(cdr p) got %q want %q", got, want)
	}
}

func TestClosedOverMutationDoesNotPersistAcrossFrames(t *testing.T) {
	// This repo resolves spec.md §9's open question by NOT elevating inner
	// define to letrec: the inner define binds n in the frame of that call
	// to c, so each call to c gets its own n. The returned counter captures
	// that frame, so its first call yields 1 (later calls keep counting up).
	ev := newTestEvaluator(t)
	evalSrc(t, ev, "(define c (lambda () (begin (define n 0) (lambda () (begin (set! n (+ n 1)) n)))))")
	evalSrc(t, ev, "(define counter (c))")
	v := evalSrc(t, ev, "(counter)")
	if v != types.Integer(1) {
		t.Fatalf("got %v", v)
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	ev := newTestEvaluator(t)
	v := evalSrc(t, ev, "(quote (a b c))")
	if got, want := v.String(), "(a b c)"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestEmptyApplication(t *testing.T) {
	ev := newTestEvaluator(t)
	_, err := ev.Eval(types.Null)
	assertKind(t, err, evaluator.KindEmptyApplication)
}

func TestUndefinedSymbol(t *testing.T) {
	ev := newTestEvaluator(t)
	_, err := ev.Eval(types.Intern("nope"))
	assertKind(t, err, evaluator.KindUndefinedSymbol)
}

func TestNotCallable(t *testing.T) {
	ev := newTestEvaluator(t)
	_, err := ev.Eval(compileSrc(t, "(1 2)"))
	assertKind(t, err, evaluator.KindNotCallable)
}

func TestArityMismatch(t *testing.T) {
	ev := newTestEvaluator(t)
	evalSrc(t, ev, "(define f (lambda (x y) x))")
	_, err := ev.Eval(compileSrc(t, "(f 1)"))
	assertKind(t, err, evaluator.KindArityMismatch)
}

func TestCondNoMatchingArmYieldsNull(t *testing.T) {
	ev := newTestEvaluator(t)
	v := evalSrc(t, ev, "(cond (#f 1))")
	if !types.IsNull(v) {
		t.Fatalf("got %v, want null", v)
	}
}

func TestCondTruthiness(t *testing.T) {
	ev := newTestEvaluator(t)
	v := evalSrc(t, ev, "(cond ((quote ()) 1) (#t 2))")
	if v != types.Integer(1) {
		t.Fatalf("null should be truthy in cond, got %v", v)
	}
}

func TestSetUndefinedSymbol(t *testing.T) {
	ev := newTestEvaluator(t)
	_, err := ev.Eval(compileSrc(t, "(set! nope 1)"))
	assertKind(t, err, evaluator.KindUndefinedSymbol)
}

func TestCarTypeError(t *testing.T) {
	ev := newTestEvaluator(t)
	_, err := ev.Eval(compileSrc(t, "(car 5)"))
	assertKind(t, err, evaluator.KindTypeError)
}

func TestCarLogicError(t *testing.T) {
	ev := newTestEvaluator(t)
	_, err := ev.Eval(compileSrc(t, "(car (quote ()))"))
	assertKind(t, err, evaluator.KindLogicError)
}

func TestDefineMalformedIsInvalidForm(t *testing.T) {
	ev := newTestEvaluator(t)
	_, err := ev.Eval(compileSrc(t, "(define x)"))
	assertKind(t, err, evaluator.KindInvalidForm)
}

func TestLambdaMalformedParamListIsInvalidForm(t *testing.T) {
	ev := newTestEvaluator(t)
	_, err := ev.Eval(compileSrc(t, "(lambda 1 2)"))
	assertKind(t, err, evaluator.KindInvalidForm)
}

func TestLexicalCaptureSurvivesRedefinition(t *testing.T) {
	ev := newTestEvaluator(t)
	evalSrc(t, ev, "(define f (lambda (y) y))")
	evalSrc(t, ev, "(define mk (lambda (x) (lambda () (f x))))")
	evalSrc(t, ev, "(define g (mk 1))")
	evalSrc(t, ev, "(define x 999)")
	v := evalSrc(t, ev, "(g)")
	if v != types.Integer(1) {
		t.Fatalf("got %v, want 1 (captured x, not outer redefinition)", v)
	}
}

func assertKind(t *testing.T, err error, want evaluator.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %v, got nil", want)
	}
	evalErr, ok := err.(*evaluator.EvalError)
	if !ok {
		t.Fatalf("expected *evaluator.EvalError, got %T: %v", err, err)
	}
	if evalErr.Kind != want {
		t.Fatalf("got kind %v, want %v (%v)", evalErr.Kind, want, evalErr)
	}
}
