// Package xmljson converts the XML fragments found in campaign manifests and
// sample files into JSON documents.
package xmljson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/clbanning/mxj/v2"
)

var emptyObject = []byte("{}")

// a JSON number literal without leading zeros
var numberLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// MetadataToJSON converts a serialized <Metadata> element. Leaf values are typed
// with CastLeaf, the root element is dropped and one synthetic array level is
// removed (see RemoveArrayLevel).
// An empty or scalar-only element gives {}.
func MetadataToJSON(fragment []byte) ([]byte, error) {
	if len(bytes.TrimSpace(fragment)) == 0 {
		return emptyObject, nil
	}

	m, err := mxj.NewMapXml(fragment, false)
	if err != nil {
		return nil, fmt.Errorf("failed to convert metadata: %w", err)
	}

	var root interface{}
	for _, v := range m {
		root = v
	}

	switch value := RemoveArrayLevel(castLeaves(root)).(type) {
	case map[string]interface{}, []interface{}:
		return json.Marshal(value)
	default:
		return emptyObject, nil
	}
}

// CastLeaf types an XML text value: true/false become booleans, null becomes
// null and number literals become json.Number, keeping their exact digits.
// Codes with a leading zero such as "01" stay strings.
func CastLeaf(s string) interface{} {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if numberLiteral.MatchString(s) {
		return json.Number(s)
	}
	return s
}

func castLeaves(v interface{}) interface{} {
	switch node := v.(type) {
	case mxj.Map:
		return castObject(node)
	case map[string]interface{}:
		return castObject(node)
	case []interface{}:
		out := make([]interface{}, 0, len(node))
		for _, item := range node {
			out = append(out, castLeaves(item))
		}
		return out
	case string:
		return CastLeaf(node)
	default:
		return v
	}
}

func castObject(node map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(node))
	for k, item := range node {
		out[k] = castLeaves(item)
	}
	return out
}

// RemoveArrayLevel collapses every object whose single field is an array into
// that array, recursively. Other values are copied unchanged.
func RemoveArrayLevel(v interface{}) interface{} {
	switch node := v.(type) {
	case mxj.Map:
		return removeObjectLevel(node)
	case map[string]interface{}:
		return removeObjectLevel(node)
	case []interface{}:
		out := make([]interface{}, 0, len(node))
		for _, item := range node {
			out = append(out, RemoveArrayLevel(item))
		}
		return out
	default:
		return v
	}
}

func removeObjectLevel(node map[string]interface{}) interface{} {
	if len(node) == 1 {
		for _, only := range node {
			if arr, ok := only.([]interface{}); ok {
				return RemoveArrayLevel(arr)
			}
		}
	}
	out := make(map[string]interface{}, len(node))
	for k, item := range node {
		out[k] = RemoveArrayLevel(item)
	}
	return out
}
