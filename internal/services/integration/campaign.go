package integration

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
	"github.com/jeandelest/Queen-Back-Office/internal/services/cache"
	"github.com/jeandelest/Queen-Back-Office/internal/xmljson"
)

type campaignDescriptor struct {
	ID       string
	Label    string
	Metadata datatypes.JSON
}

// processCampaign creates or updates the single campaign of campaign.xml
func (s *Service) processCampaign(pc *parseContext) error {
	doc, err := s.loadManifest(pc, campaignSection)
	if err != nil || doc == nil {
		return err
	}

	d, err := readCampaignDescriptor(xmlquery.FindOne(doc, "/Campaign"))
	if err != nil {
		return err
	}

	res, err := resolveOrCreate(pc.ctx, pc.gateways.Campaigns.FindByID, d.ID, func() *models.Campaign {
		return &models.Campaign{ID: d.ID}
	})
	if err != nil {
		return err
	}

	campaign := res.Entity
	campaign.Label = d.Label
	campaign.Metadata = d.Metadata

	logger := logrus.WithField("campaign_id", d.ID)
	status := models.IntegrationUpdated
	if res.IsNew {
		logger.Info("Creating campaign")
		if err := pc.gateways.Campaigns.Create(pc.ctx, campaign); err != nil {
			return fmt.Errorf("failed to create campaign %s: %w", d.ID, err)
		}
		status = models.IntegrationCreated
	} else {
		logger.Info("Updating campaign")
		if err := pc.gateways.Campaigns.Update(pc.ctx, campaign); err != nil {
			return fmt.Errorf("failed to update campaign %s: %w", d.ID, err)
		}
	}

	pc.emit(cache.CampaignUpserted(d.ID)...)
	campaignSection.outcome(pc, d.ID, status, nil)
	return nil
}

func readCampaignDescriptor(root *xmlquery.Node) (campaignDescriptor, error) {
	d := campaignDescriptor{
		ID:       strings.ToUpper(childText(root, "Id")),
		Label:    childText(root, "Label"),
		Metadata: datatypes.JSON(`{}`),
	}
	if root == nil {
		return d, nil
	}
	if node := root.SelectElement("Metadata"); node != nil {
		metadata, err := xmljson.MetadataToJSON([]byte(node.OutputXML(true)))
		if err != nil {
			return d, fmt.Errorf("failed to convert metadata of campaign %s: %w", d.ID, err)
		}
		d.Metadata = metadata
	}
	return d, nil
}
