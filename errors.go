package esfaker

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrDuplicateGenerator is returned when a generator name is registered twice.
	ErrDuplicateGenerator = errors.New("generator already registered")

	// ErrCollectionMissing is returned when appending to a collection that does not exist.
	ErrCollectionMissing = errors.New("cannot append, collection does not exist")

	// ErrSchemaRequired is returned when a collection must be (re)created but
	// its template declares no index definition.
	ErrSchemaRequired = errors.New("schema required to (re)create collection")
)

// ConfigError reports invalid fixture arguments. It is raised before any I/O.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "invalid configuration: " + e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// TemplateError reports a template file that could not be read, parsed or rendered.
type TemplateError struct {
	Path string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %q: %v", e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// RenderError wraps the syntax or reference error raised while rendering a template.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "rendering template: " + e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }

// UnknownGeneratorError is returned for a reference to a generator that is not registered.
type UnknownGeneratorError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownGeneratorError) Error() string {
	msg := fmt.Sprintf("unknown generator %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// LifecycleError reports a failure to bring a collection into the state
// required before ingestion.
type LifecycleError struct {
	Collection string
	Err        error
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("preparing collection %q: %v", e.Collection, e.Err)
}

func (e *LifecycleError) Unwrap() error { return e.Err }

// BatchError describes a bulk write the store did not accept. It is logged,
// never returned from Insert.
type BatchError struct {
	Collection string
	Template   string
	StatusCode int
	Err        error
}

func (e *BatchError) Error() string {
	msg := fmt.Sprintf("could not insert documents into %q (template %q)", e.Collection, e.Template)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": request failed with status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BatchError) Unwrap() error { return e.Err }
