package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// loadManifest returns the parsed manifest of a section. When the manifest is
// missing or invalid the section failure is recorded and a nil node returned.
// A non-nil error aborts the run.
func (s *Service) loadManifest(pc *parseContext, sec section) (*xmlquery.Node, error) {
	content, found, err := pc.archive.Manifest(sec.manifest)
	if err != nil {
		return nil, err
	}
	if !found {
		logrus.Warnf("No file %s found in archive", sec.manifest)
		sec.fail(pc, (&ManifestNotFoundError{Name: sec.manifest}).Error())
		return nil, nil
	}

	if err := s.validator.Validate(content, sec.schema); err != nil {
		var sve *SchemaValidationError
		if !errors.As(err, &sve) {
			return nil, err
		}
		logrus.WithField("detail", sve.Detail).Warnf("File %s does not fit its template", sec.manifest)
		sec.fail(pc, templateMismatchMessage(sec.manifest, sve))
		return nil, nil
	}

	doc, err := xmlquery.Parse(bytes.NewReader(content))
	if err != nil {
		sec.fail(pc, templateMismatchMessage(sec.manifest, &SchemaValidationError{Schema: sec.schema, Detail: err.Error()}))
		return nil, nil
	}
	return doc, nil
}

// childText returns the trimmed text of the first child element called name
func childText(n *xmlquery.Node, name string) string {
	if n == nil {
		return ""
	}
	if child := n.SelectElement(name); child != nil {
		return strings.TrimSpace(child.InnerText())
	}
	return ""
}

func parseJSONArray(payload []byte) (datatypes.JSON, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(payload, &arr); err != nil {
		return nil, err
	}
	if arr == nil {
		return nil, fmt.Errorf("json value is not an array")
	}
	return compactJSON(payload)
}

func parseJSONObject(payload []byte) (datatypes.JSON, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("json value is not an object")
	}
	return compactJSON(payload)
}

func compactJSON(payload []byte) (datatypes.JSON, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload); err != nil {
		return nil, err
	}
	return datatypes.JSON(buf.Bytes()), nil
}
