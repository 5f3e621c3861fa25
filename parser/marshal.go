package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/erraggy/oasconsolidate/internal/fileutil"
	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"github.com/erraggy/oasconsolidate/oaserrors"
	"go.yaml.in/yaml/v4"
)

// yamlIndent is the indentation width used for YAML output.
const yamlIndent = 2

// MarshalYAML serializes the document as YAML with keys in insertion order.
//
// A detached copy is encoded so the output never contains anchors or
// aliases: a subtree that appears twice is written out twice.
func MarshalYAML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(nodeutil.DeepCopy(doc.Node())); err != nil {
		_ = enc.Close()
		return nil, &oaserrors.OutputError{Op: "marshal", Cause: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &oaserrors.OutputError{Op: "marshal", Cause: err}
	}
	return buf.Bytes(), nil
}

// MarshalJSON serializes the document as indented JSON with keys in
// insertion order.
func MarshalJSON(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshalNodeAsJSON(&buf, doc.Node()); err != nil {
		return nil, &oaserrors.OutputError{Op: "marshal", Cause: err}
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, &oaserrors.OutputError{Op: "marshal", Cause: err}
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Marshal serializes the document in the given format.
func Marshal(doc *Document, format SourceFormat) ([]byte, error) {
	if format == SourceFormatJSON {
		return MarshalJSON(doc)
	}
	return MarshalYAML(doc)
}

// WriteFile serializes the document and writes it to path with restrictive
// permissions (0600). Nothing is written if serialization fails.
func WriteFile(doc *Document, path string, format SourceFormat) error {
	data, err := Marshal(doc, format)
	if err != nil {
		var outErr *oaserrors.OutputError
		if errors.As(err, &outErr) {
			outErr.Path = path
		}
		return err
	}
	if err := os.WriteFile(path, data, fileutil.OwnerReadWrite); err != nil {
		return &oaserrors.OutputError{Path: path, Op: "write", Cause: err}
	}
	return nil
}

// marshalNodeAsJSON writes a node tree to buf as compact JSON, using each
// scalar's resolved tag to pick the JSON type.
func marshalNodeAsJSON(buf *bytes.Buffer, node *yaml.Node) error {
	if node == nil {
		buf.WriteString("null")
		return nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		return marshalNodeAsJSON(buf, nodeutil.Root(node))

	case yaml.AliasNode:
		return marshalNodeAsJSON(buf, node.Alias)

	case yaml.MappingNode:
		buf.WriteByte('{')
		first := true
		for key, val := range nodeutil.Pairs(node) {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := writeJSON(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := marshalNodeAsJSON(buf, val); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalNodeAsJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		return writeJSONScalar(buf, node)

	default:
		return fmt.Errorf("unsupported node kind %v", node.Kind)
	}
}

func writeJSONScalar(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.ShortTag() {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(node.Value))
		if err != nil {
			return writeJSON(buf, node.Value)
		}
		return writeJSON(buf, b)
	case "!!int":
		if json.Valid([]byte(node.Value)) {
			buf.WriteString(node.Value)
			return nil
		}
		if n, err := strconv.ParseInt(strings.ReplaceAll(node.Value, "_", ""), 0, 64); err == nil {
			buf.WriteString(strconv.FormatInt(n, 10))
			return nil
		}
		return writeJSON(buf, node.Value)
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return writeJSON(buf, node.Value)
		}
		if json.Valid([]byte(node.Value)) {
			buf.WriteString(node.Value)
			return nil
		}
		return writeJSON(buf, f)
	default:
		return writeJSON(buf, node.Value)
	}
}

// writeJSON marshals a value to JSON and writes it to the buffer.
func writeJSON(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
