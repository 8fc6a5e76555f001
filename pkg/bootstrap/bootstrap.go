// Package bootstrap builds a fresh root environment wired with the
// standard primitive table (spec.md §4.6), the way the teacher's
// pkg/interpreter assembles its production stack before handing it to the
// REPL or executor.
package bootstrap

import (
	"github.com/nlindqvist/golisp/pkg/environment"
	"github.com/nlindqvist/golisp/pkg/registry"
	"github.com/nlindqvist/golisp/pkg/stdlib"
)

// RootEnvironment returns a new root frame preloaded with every standard
// primitive and the #t/#f constants.
func RootEnvironment() (*environment.Environment, error) {
	env, _, err := Bootstrap()
	return env, err
}

// Bootstrap returns both the root environment and the registry it was built
// from, so callers (the REPL's tab completion) can list registered
// primitives without re-deriving them from the environment's bindings.
func Bootstrap() (*environment.Environment, registry.FunctionRegistry, error) {
	reg := registry.New()
	if err := stdlib.Register(reg); err != nil {
		return nil, nil, err
	}
	return environment.New(stdlib.Bindings(reg), nil), reg, nil
}
