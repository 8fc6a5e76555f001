// Package registry provides the dynamic function registry the root
// environment is built from. Adapted from the teacher's pkg/registry:
// same Register/Get/Categories/Has shape, trimmed of the Evaluator
// callback (spec.md's primitive table has no higher-order primitives) and
// of the many categories (HTTP, JSON, hashmap, concurrency, ...) that
// belong to the teacher's larger, Non-goal builtin surface.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nlindqvist/golisp/pkg/types"
)

// BuiltinFunction is a registrable primitive: metadata plus the callable
// itself, in the shape pkg/types.Primitive expects.
type BuiltinFunction interface {
	Name() string
	Category() string
	Arity() int
	Help() string
	Call(args []types.Value) (types.Value, error)
}

// FunctionRegistry manages registered built-in functions.
type FunctionRegistry interface {
	Register(fn BuiltinFunction) error
	Get(name string) (BuiltinFunction, bool)
	List() []string
	ListByCategory(category string) []string
	Categories() []string
	Has(name string) bool
}

type registry struct {
	functions  map[string]BuiltinFunction
	categories map[string][]string
	mutex      sync.RWMutex
}

// New creates an empty function registry.
func New() FunctionRegistry {
	return &registry{
		functions:  make(map[string]BuiltinFunction),
		categories: make(map[string][]string),
	}
}

func (r *registry) Register(fn BuiltinFunction) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	name := fn.Name()
	if name == "" {
		return fmt.Errorf("function name cannot be empty")
	}
	if _, exists := r.functions[name]; exists {
		return fmt.Errorf("function %s already registered", name)
	}
	r.functions[name] = fn

	if category := fn.Category(); category != "" {
		r.categories[category] = append(r.categories[category], name)
		sort.Strings(r.categories[category])
	}
	return nil
}

func (r *registry) Get(name string) (BuiltinFunction, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	fn, exists := r.functions[name]
	return fn, exists
}

func (r *registry) List() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *registry) ListByCategory(category string) []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	funcs, exists := r.categories[category]
	if !exists {
		return []string{}
	}
	result := make([]string, len(funcs))
	copy(result, funcs)
	return result
}

func (r *registry) Categories() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	categories := make([]string, 0, len(r.categories))
	for category := range r.categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

func (r *registry) Has(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, exists := r.functions[name]
	return exists
}

// Function categories used by pkg/stdlib's primitive table (spec.md §4.6).
const (
	CategoryArithmetic = "arithmetic"
	CategoryComparison = "comparison"
	CategoryList       = "list"
	CategoryAtom       = "atom"
	CategoryLogical    = "logical"
)
