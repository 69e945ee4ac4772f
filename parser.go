package esfaker

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	indexKey  = "index"
	valuesKey = "values"
)

// LoadTemplateDocument reads a template file. JSON is expected unless the
// file ends in .yml or .yaml.
//
// The index section is handed to the store as written: numbers keep their
// literal form and object keys keep their order.
func LoadTemplateDocument(path string) (*TemplateDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TemplateError{Path: path, Err: err}
	}

	var doc *TemplateDocument
	if isYAML(path) {
		doc, err = parseYAMLTemplate(data)
	} else {
		doc, err = parseJSONTemplate(data)
	}
	if err != nil {
		return nil, &TemplateError{Path: path, Err: err}
	}
	return doc, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

func parseJSONTemplate(data []byte) (*TemplateDocument, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decoding template file")
	}

	doc := &TemplateDocument{}
	if index := raw[indexKey]; !isNull(index) {
		doc.Index = index
	}

	values := raw[valuesKey]
	switch {
	case isNull(values):
	case values[0] == '"':
		if err := json.Unmarshal(values, &doc.Values); err != nil {
			return nil, errors.Wrapf(err, "decoding %q section", valuesKey)
		}
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, values); err != nil {
			return nil, errors.Wrapf(err, "encoding %q section", valuesKey)
		}
		doc.Values = buf.String()
	}

	return doc, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func parseYAMLTemplate(data []byte) (*TemplateDocument, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decoding template file")
	}

	doc := &TemplateDocument{}
	if index, ok := raw[indexKey]; ok && !isYAMLNull(&index) {
		b, err := yamlToJSON(&index)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding %q section", indexKey)
		}
		doc.Index = b
	}

	if values, ok := raw[valuesKey]; ok && !isYAMLNull(&values) {
		if values.Kind == yaml.ScalarNode && values.ShortTag() == "!!str" {
			doc.Values = values.Value
		} else {
			b, err := yamlToJSON(&values)
			if err != nil {
				return nil, errors.Wrapf(err, "encoding %q section", valuesKey)
			}
			doc.Values = string(b)
		}
	}

	return doc, nil
}

func isYAMLNull(n *yaml.Node) bool {
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// yamlToJSON converts a YAML node into JSON, keeping mapping order and the
// literal text of decimal numbers.
func yamlToJSON(n *yaml.Node) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := writeYAMLNode(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeYAMLNode(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeYAMLNode(buf, n.Content[0])
	case yaml.AliasNode:
		return writeYAMLNode(buf, n.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, n.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeYAMLNode(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeYAMLNode(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.ScalarNode:
		return writeYAMLScalar(buf, n)
	}
	return errors.Errorf("line %d: unsupported YAML node", n.Line)
}

func writeYAMLScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		buf.WriteString(strconv.FormatBool(b))
		return nil
	case "!!int", "!!float":
		// Decimal literals are already valid JSON numbers.
		var num json.Number
		if err := json.Unmarshal([]byte(n.Value), &num); err == nil {
			buf.WriteString(num.String())
			return nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return errors.Wrapf(err, "line %d", n.Line)
		}
		buf.Write(b)
		return nil
	}
	return writeJSONString(buf, n.Value)
}

// writeJSONString encodes s without HTML escaping so template actions
// such as {{if lt ...}} survive unchanged.
func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // trailing newline
	return nil
}
