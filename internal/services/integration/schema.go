package integration

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/lestrrat-go/libxml2"
	"github.com/lestrrat-go/libxml2/parser"
	"github.com/lestrrat-go/libxml2/xsd"
)

const (
	CampaignSchema            = "campaign_integration_template.xsd"
	NomenclaturesSchema       = "nomenclatures_integration_template.xsd"
	QuestionnaireModelsSchema = "questionnaireModels_integration_template.xsd"
	SampleSchema              = "sample.xsd"
)

//go:embed templates/*.xsd
var templates embed.FS

// Validator checks an XML document against a named schema
type Validator interface {
	Validate(doc []byte, schemaName string) error
}

// SchemaLoader loads a schema document by its logical name
type SchemaLoader interface {
	Load(name string) ([]byte, error)
}

// FSSchemaLoader reads schemas from a file system
type FSSchemaLoader struct {
	fsys fs.FS
}

// NewEmbeddedSchemaLoader returns a loader over the schemas shipped with the binary
func NewEmbeddedSchemaLoader() *FSSchemaLoader {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return &FSSchemaLoader{fsys: sub}
}

// NewFSSchemaLoader returns a loader over fsys
func NewFSSchemaLoader(fsys fs.FS) *FSSchemaLoader {
	return &FSSchemaLoader{fsys: fsys}
}

func (l *FSSchemaLoader) Load(name string) ([]byte, error) {
	content, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", name, err)
	}
	return content, nil
}

// SchemaValidator validates documents with libxml2. Network access is disabled
// while parsing, so no external DTD or schema is ever resolved.
// Compiled schemas are kept until Close.
type SchemaValidator struct {
	loader SchemaLoader

	mu      sync.Mutex
	schemas map[string]*xsd.Schema
}

func NewSchemaValidator(loader SchemaLoader) *SchemaValidator {
	return &SchemaValidator{
		loader:  loader,
		schemas: make(map[string]*xsd.Schema),
	}
}

// Validate returns a *SchemaValidationError when doc is not well formed or does
// not fit the schema. Other errors mean the schema itself could not be used.
func (v *SchemaValidator) Validate(doc []byte, schemaName string) error {
	schema, err := v.schema(schemaName)
	if err != nil {
		return err
	}

	parsed, err := libxml2.Parse(doc, parser.XMLParseNoNet)
	if err != nil {
		return &SchemaValidationError{Schema: schemaName, Detail: err.Error()}
	}
	defer parsed.Free()

	if err := schema.Validate(parsed); err != nil {
		return &SchemaValidationError{Schema: schemaName, Detail: validationDetail(err)}
	}
	return nil
}

func (v *SchemaValidator) schema(name string) (*xsd.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.schemas[name]; ok {
		return s, nil
	}
	content, err := v.loader.Load(name)
	if err != nil {
		return nil, err
	}
	s, err := xsd.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	v.schemas[name] = s
	return s, nil
}

// Close frees the compiled schemas
func (v *SchemaValidator) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for name, s := range v.schemas {
		s.Free()
		delete(v.schemas, name)
	}
}

func validationDetail(err error) string {
	var sve xsd.SchemaValidationError
	if errors.As(err, &sve) {
		msgs := make([]string, 0, len(sve.Errors()))
		for _, e := range sve.Errors() {
			msgs = append(msgs, strings.TrimSpace(e.Error()))
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return strings.TrimSpace(err.Error())
}
