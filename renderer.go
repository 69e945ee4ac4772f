package esfaker

import (
	"bytes"
	"regexp"
	"text/template"
)

var undefinedFunction = regexp.MustCompile(`function "([^"]+)" not defined`)

// Renderer expands document templates using the generators of a Registry.
//
// Generators are called with the action syntax of text/template:
//
//	{"name": "{{Name}}", "created": "{{DateRange 30}}", "active": {{Boolean 200}}}
//
// A Renderer is built once per run and shared by every fixture.
type Renderer struct {
	registry *Registry
	funcs    template.FuncMap
}

// NewRenderer returns a Renderer backed by reg.
func NewRenderer(reg *Registry) *Renderer {
	return &Renderer{
		registry: reg,
		funcs:    reg.FuncMap(),
	}
}

// Generators returns the names of the available generators in registration order.
func (r *Renderer) Generators() []string {
	return r.registry.Names()
}

// Template is a parsed document template ready to be rendered repeatedly.
type Template struct {
	tmpl *template.Template
}

// Compile parses text once so it can be executed for every document.
func (r *Renderer) Compile(name, text string) (*Template, error) {
	t, err := template.New(name).Funcs(r.funcs).Parse(text)
	if err != nil {
		if m := undefinedFunction.FindStringSubmatch(err.Error()); m != nil {
			return nil, &RenderError{Err: &UnknownGeneratorError{
				Name:        m[1],
				Suggestions: r.registry.Suggest(m[1]),
			}}
		}
		return nil, &RenderError{Err: err}
	}
	return &Template{tmpl: t}, nil
}

// Execute renders one document. On failure nothing is returned.
func (t *Template) Execute() (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, nil); err != nil {
		return "", &RenderError{Err: err}
	}
	return buf.String(), nil
}

// Render compiles and executes text in one step.
func (r *Renderer) Render(text string) (string, error) {
	t, err := r.Compile("document", text)
	if err != nil {
		return "", err
	}
	return t.Execute()
}
