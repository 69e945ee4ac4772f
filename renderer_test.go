package esfaker

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Register("Name", constant(String("Alice"))))
	require.NoError(t, r.Register("Age", constant(Int(30))))
	require.NoError(t, r.Register("Active", constant(Bool(true))))
	require.NoError(t, r.Register("Days", GeneratorFunc(func(args Args) Value {
		return Int(args.Int(0, 1))
	})))
	return NewRenderer(r)
}

func TestRender_WithoutReferencesIsIdentity(t *testing.T) {
	r := testRenderer(t)

	for _, text := range []string{
		"",
		"plain text",
		`{"name": "Bob", "tags": ["a", "b"], "n": 1}`,
		"{ braces } but no actions",
	} {
		got, err := r.Render(text)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	}
}

func TestRender_SubstitutesNaturalRepresentation(t *testing.T) {
	r := testRenderer(t)

	got, err := r.Render(`{"name": "{{Name}}", "age": {{Age}}, "active": {{Active}}}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Alice", "age": 30, "active": true}`, got)
}

func TestRender_Arguments(t *testing.T) {
	r := testRenderer(t)

	tests := map[string]struct {
		text string
		want string
	}{
		"number":      {text: "{{Days 30}}", want: "30"},
		"missing":     {text: "{{Days}}", want: "1"},
		"string":      {text: "{{Days `12`}}", want: "12"},
		"unparsable":  {text: "{{Days `soon`}}", want: "1"},
		"conditional": {text: "{{if Active}}yes{{end}}", want: "yes"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := r.Render(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRender_UnknownGenerator(t *testing.T) {
	r := testRenderer(t)

	got, err := r.Render(`{"name": "{{Name}}", "nick": "{{Nmae}}"}`)

	assert.Empty(t, got)
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	var unknown *UnknownGeneratorError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Nmae", unknown.Name)
}

func TestRender_MalformedSyntax(t *testing.T) {
	r := testRenderer(t)

	got, err := r.Render(`{"name": "{{Name"}`)

	assert.Empty(t, got)
	var renderErr *RenderError
	assert.True(t, errors.As(err, &renderErr))
}

func TestRender_ExecutionErrorReturnsNothing(t *testing.T) {
	r := testRenderer(t)

	// index on a boolean fails during execution, after "prefix" was written.
	got, err := r.Render(`prefix {{index Active 0}}`)

	assert.Empty(t, got)
	var renderErr *RenderError
	assert.True(t, errors.As(err, &renderErr))
}

func TestCompile_ReusableTemplate(t *testing.T) {
	r := NewRenderer(DefaultRegistry())

	tmpl, err := r.Compile("users", `{"id": "{{Hash}}", "name": "{{Name}}", "created": "{{DateRange 7}}"}`)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		out, err := tmpl.Execute()
		require.NoError(t, err)
		assert.True(t, json.Valid([]byte(out)), out)
	}
}

func TestRenderer_Generators(t *testing.T) {
	r := testRenderer(t)
	assert.Equal(t, []string{"Name", "Age", "Active", "Days"}, r.Generators())
}
