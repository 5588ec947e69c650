package xmljson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LunaticDataConverter turns a Lunatic survey-data XML block into its JSON form.
// Values carry their JSON type in a "type" attribute: null, number, boolean,
// array, anything else is a string. Untyped elements with children are objects.
type LunaticDataConverter struct {
	tempDir string
}

// NewLunaticDataConverter creates a converter staging its input under tempDir
func NewLunaticDataConverter(tempDir string) *LunaticDataConverter {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &LunaticDataConverter{tempDir: tempDir}
}

// Convert converts a serialized data element. The root element is dropped and
// its content returned as a JSON object.
func (c *LunaticDataConverter) Convert(fragment []byte) (json.RawMessage, error) {
	path := filepath.Join(c.tempDir, "data-"+uuid.NewString()+".xml")
	if err := os.WriteFile(path, fragment, 0600); err != nil {
		return nil, fmt.Errorf("failed to stage data file: %w", err)
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logrus.Warnf("Unable to delete temporary data file %s: %v", path, err)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	doc, err := xmlquery.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read data xml: %w", err)
	}

	root := firstElement(doc)
	if root == nil || !hasElementChild(root) {
		return json.Marshal(map[string]interface{}{})
	}
	value, err := lunaticObject(root)
	if err != nil {
		return nil, err
	}
	return json.Marshal(value)
}

func lunaticValue(node *xmlquery.Node) (interface{}, error) {
	text := strings.TrimSpace(node.InnerText())

	switch node.SelectAttr("type") {
	case "null":
		return nil, nil
	case "number":
		if text == "" {
			return nil, nil
		}
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return nil, fmt.Errorf("invalid number value %q", text)
		}
		return json.Number(text), nil
	case "boolean":
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value %q", text)
		}
		return b, nil
	case "array":
		return lunaticArray(node)
	case "":
		if hasElementChild(node) {
			return lunaticObject(node)
		}
		return text, nil
	default:
		return text, nil
	}
}

// lunaticObject maps child names to values. A name repeated under an untyped
// element gives an array, in document order.
func lunaticObject(node *xmlquery.Node) (map[string]interface{}, error) {
	values := make(map[string][]interface{})
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		converted, err := lunaticValue(child)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", child.Data, err)
		}
		values[child.Data] = append(values[child.Data], converted)
	}

	obj := make(map[string]interface{}, len(values))
	for name, items := range values {
		if len(items) == 1 {
			obj[name] = items[0]
		} else {
			obj[name] = items
		}
	}
	return obj, nil
}

// lunaticArray gathers the values of every child element in document order
func lunaticArray(node *xmlquery.Node) ([]interface{}, error) {
	out := []interface{}{}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		converted, err := lunaticValue(child)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", child.Data, err)
		}
		out = append(out, converted)
	}
	return out, nil
}

func firstElement(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

func hasElementChild(node *xmlquery.Node) bool {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return true
		}
	}
	return false
}
