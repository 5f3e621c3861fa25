package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"github.com/erraggy/oasconsolidate/oaserrors"
	"go.yaml.in/yaml/v4"
)

// decodeJSON decodes a JSON document into a node tree, keeping object keys in
// source order and numbers in their source spelling. A repeated key keeps its
// first position and its last value.
func decodeJSON(data []byte, sourcePath string) (*yaml.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeJSONValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, jsonParseError(data, sourcePath, dec.InputOffset(), err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return nil, jsonParseError(data, sourcePath, dec.InputOffset(), err)
	}
	return root, nil
}

func decodeJSONValue(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			m := nodeutil.Mapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				nodeutil.Set(m, key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			seq := nodeutil.Sequence()
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				seq.Content = append(seq.Content, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return seq, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(v))
	case string:
		return nodeutil.String(v), nil
	case json.Number:
		return numberNode(v), nil
	case bool:
		return nodeutil.Scalar("!!bool", strconv.FormatBool(v)), nil
	case nil:
		return nodeutil.Scalar("!!null", "null"), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func numberNode(n json.Number) *yaml.Node {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		return nodeutil.Scalar("!!float", s)
	}
	return nodeutil.Scalar("!!int", s)
}

// errTrailingData is reported when a JSON document has content after its
// top-level value.
var errTrailingData = errors.New("unexpected data after top-level value")

// lineColumn converts a byte offset into a 1-based line and column.
func lineColumn(data []byte, offset int64) (int, int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line := bytes.Count(prefix, []byte{'\n'}) + 1
	col := int(offset) - bytes.LastIndexByte(prefix, '\n')
	return line, col
}

func jsonParseError(data []byte, sourcePath string, offset int64, err error) error {
	line, col := lineColumn(data, offset)
	return &oaserrors.ParseError{
		Path:    sourcePath,
		Line:    line,
		Column:  col,
		Message: "invalid JSON",
		Cause:   err,
	}
}
