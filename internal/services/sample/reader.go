// Package sample turns a sample XML file into survey units of an existing campaign.
package sample

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
	"github.com/jeandelest/Queen-Back-Office/internal/services/integration"
)

// CampaignResolver loads the summary of a stored campaign
type CampaignResolver interface {
	GetSummary(ctx context.Context, id string) (*models.CampaignSummary, error)
}

// DataConverter converts the Data block of a survey unit to JSON
type DataConverter interface {
	Convert(fragment []byte) (json.RawMessage, error)
}

// Reader builds a Sample from a file. Any inconsistency aborts the whole file.
type Reader struct {
	validator integration.Validator
	campaigns CampaignResolver
	converter DataConverter
}

func NewReader(validator integration.Validator, campaigns CampaignResolver, converter DataConverter) *Reader {
	return &Reader{
		validator: validator,
		campaigns: campaigns,
		converter: converter,
	}
}

type personalizationVariable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Read validates the file against the sample schema, resolves its campaign and
// converts every survey unit in document order. Nothing is persisted.
func (r *Reader) Read(ctx context.Context, path string) (*models.Sample, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample file: %w", err)
	}

	if err := r.validator.Validate(content, integration.SampleSchema); err != nil {
		return nil, err
	}

	doc, err := xmlquery.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, &integration.SchemaValidationError{Schema: integration.SampleSchema, Detail: err.Error()}
	}

	campaign, err := r.resolveCampaign(ctx, doc)
	if err != nil {
		return nil, err
	}

	logger := logrus.WithField("campaign_id", campaign.ID)
	units := []models.SurveyUnit{}
	seen := make(map[string]bool)
	for _, node := range xmlquery.Find(doc, "/Campaign/SurveyUnits/SurveyUnit") {
		unit, err := r.readSurveyUnit(node, campaign, seen)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			continue
		}
		logger.WithField("survey_unit_id", unit.ID).Debug("Survey unit read")
		units = append(units, *unit)
	}

	logger.Infof("Sample %s holds %d survey units", filepath.Base(path), len(units))
	return &models.Sample{
		SourceName:  filepath.Base(path),
		Campaign:    *campaign,
		SurveyUnits: units,
	}, nil
}

func (r *Reader) resolveCampaign(ctx context.Context, doc *xmlquery.Node) (*models.CampaignSummary, error) {
	nodes := xmlquery.Find(doc, "/Campaign")
	if len(nodes) != 1 {
		return nil, ErrCampaignNotResolved
	}
	id := strings.ToUpper(childText(nodes[0], "Id"))
	if id == "" {
		return nil, ErrCampaignNotResolved
	}

	summary, err := r.campaigns.GetSummary(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && summary == nil) {
		return nil, fmt.Errorf("%w: campaign %s not found", ErrCampaignNotResolved, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign %s: %w", id, err)
	}
	return summary, nil
}

// readSurveyUnit converts one SurveyUnit element. A nil unit means the element
// has no id and is skipped.
func (r *Reader) readSurveyUnit(node *xmlquery.Node, campaign *models.CampaignSummary, seen map[string]bool) (*models.SurveyUnit, error) {
	id := childText(node, "Id")
	if id == "" {
		return nil, nil
	}
	if seen[id] {
		return nil, &DuplicateIdentifierError{ID: id}
	}

	questionnaireID := childText(node, "QuestionnaireModelId")
	if !campaign.HasQuestionnaire(questionnaireID) {
		return nil, &DataIntegrityError{SurveyUnitID: id, QuestionnaireID: questionnaireID, CampaignID: campaign.ID}
	}

	personalization, err := personalizationJSON(node.SelectElement("Personalization"))
	if err != nil {
		return nil, fmt.Errorf("failed to convert personalization of survey unit %s: %w", id, err)
	}

	dataNode := node.SelectElement("Data")
	if dataNode == nil {
		return nil, &MissingDataError{SurveyUnitID: id}
	}
	data, err := r.dataJSON(dataNode)
	if err != nil {
		return nil, fmt.Errorf("failed to convert data of survey unit %s: %w", id, err)
	}

	seen[id] = true
	return &models.SurveyUnit{
		ID:                   id,
		CampaignID:           campaign.ID,
		QuestionnaireModelID: questionnaireID,
		Personalization:      personalization,
		Data:                 data,
		Comment:              datatypes.JSON(`{}`),
	}, nil
}

// personalizationJSON maps Variable{Name,Value} children to [{name,value}].
// An absent or empty block gives null.
func personalizationJSON(node *xmlquery.Node) (datatypes.JSON, error) {
	if node == nil {
		return nil, nil
	}
	variables := []personalizationVariable{}
	for _, v := range node.SelectElements("Variable") {
		variables = append(variables, personalizationVariable{
			Name:  childText(v, "Name"),
			Value: childText(v, "Value"),
		})
	}
	if len(variables) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(variables)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// dataJSON converts a Data block. A block without child element gives {}.
func (r *Reader) dataJSON(node *xmlquery.Node) (datatypes.JSON, error) {
	if !hasElementChild(node) {
		return datatypes.JSON(`{}`), nil
	}
	converted, err := r.converter.Convert([]byte(node.OutputXML(true)))
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(converted), nil
}

func hasElementChild(node *xmlquery.Node) bool {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return true
		}
	}
	return false
}

func childText(n *xmlquery.Node, name string) string {
	if child := n.SelectElement(name); child != nil {
		return strings.TrimSpace(child.InnerText())
	}
	return ""
}
