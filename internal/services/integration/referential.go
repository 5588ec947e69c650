package integration

import (
	"fmt"
)

// checkQuestionnaireReferences verifies that the owning campaign and every
// required nomenclature exist. It stops at the first missing reference.
func (s *Service) checkQuestionnaireReferences(pc *parseContext, d questionnaireDescriptor) (*ReferentialIntegrityError, error) {
	exists, err := pc.gateways.Campaigns.ExistsByID(pc.ctx, d.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to check campaign %s: %w", d.CampaignID, err)
	}
	if !exists {
		return &ReferentialIntegrityError{Kind: "campaign", ID: d.CampaignID}, nil
	}

	for _, id := range d.NomenclatureIDs {
		exists, err := pc.gateways.Nomenclatures.ExistsByID(pc.ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check nomenclature %s: %w", id, err)
		}
		if !exists {
			return &ReferentialIntegrityError{Kind: "nomenclature", ID: id}, nil
		}
	}
	return nil, nil
}
