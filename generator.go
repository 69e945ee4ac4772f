package esfaker

import (
	"strconv"
	"text/template"

	"github.com/pkg/errors"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cast"
)

// Kind identifies the type held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
)

// Value is a generated value. Only the field matching Kind is meaningful.
type Value struct {
	kind Kind
	str  string
	num  int64
	flag bool
}

// String builds a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int builds an integer Value.
func Int(n int64) Value { return Value{kind: KindInt, num: n} }

// Bool builds a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Kind reports the type of v.
func (v Value) Kind() Kind { return v.kind }

// String returns the textual form substituted into a document.
// Integers and booleans print as JSON literals.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindBool:
		return strconv.FormatBool(v.flag)
	default:
		return v.str
	}
}

// Raw returns v as a plain Go value (string, int64 or bool).
func (v Value) Raw() any {
	switch v.kind {
	case KindInt:
		return v.num
	case KindBool:
		return v.flag
	default:
		return v.str
	}
}

// Args are the arguments a template passes to a generator call.
type Args []any

// Int returns argument i as an integer, or def if it is missing or cannot be parsed.
func (a Args) Int(i int, def int64) int64 {
	if i < 0 || i >= len(a) {
		return def
	}
	n, err := cast.ToInt64E(a[i])
	if err != nil {
		return def
	}
	return n
}

// Generator produces a random value on every call.
type Generator interface {
	Generate(args Args) Value
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(args Args) Value

// Generate calls f(args).
func (f GeneratorFunc) Generate(args Args) Value { return f(args) }

// Registry maps generator names to generators. It is populated once before
// rendering starts and is read-only afterwards, so it needs no locking.
type Registry struct {
	names      []string
	generators map[string]Generator
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// Register adds a generator under name.
// Returns ErrDuplicateGenerator if the name is already taken.
func (r *Registry) Register(name string, g Generator) error {
	if name == "" {
		return errors.New("generator name must not be empty")
	}
	if g == nil {
		return errors.Errorf("generator %q must not be nil", name)
	}
	if _, exists := r.generators[name]; exists {
		return errors.Wrapf(ErrDuplicateGenerator, "registering %q", name)
	}
	r.generators[name] = g
	r.names = append(r.names, name)
	return nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered generators.
func (r *Registry) Len() int { return len(r.names) }

// Invoke runs the generator registered under name.
func (r *Registry) Invoke(name string, args ...any) (Value, error) {
	g, ok := r.generators[name]
	if !ok {
		return Value{}, &UnknownGeneratorError{Name: name, Suggestions: r.Suggest(name)}
	}
	return g.Generate(Args(args)), nil
}

// Suggest returns up to three registered names that fuzzily match name.
func (r *Registry) Suggest(name string) []string {
	if name == "" {
		return nil
	}
	matches := fuzzy.Find(name, r.names)
	var out []string
	for i, m := range matches {
		if i == 3 {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// FuncMap exposes every generator as a template function returning its raw value.
func (r *Registry) FuncMap() template.FuncMap {
	funcs := make(template.FuncMap, len(r.generators))
	for name, g := range r.generators {
		g := g
		funcs[name] = func(args ...any) any {
			return g.Generate(Args(args)).Raw()
		}
	}
	return funcs
}
