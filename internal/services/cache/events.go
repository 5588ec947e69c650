// Package cache holds the cache invalidation events produced by the ingestion
// pipeline and the redis backed read-through cache they target.
package cache

import "fmt"

// Name identifies one logical cache shared with the read side
type Name string

const (
	CampaignNomenclatures      Name = "campaign_nomenclatures"
	MetadataByQuestionnaire    Name = "metadata_by_questionnaire"
	QuestionnaireExist         Name = "questionnaire_exist"
	Questionnaire              Name = "questionnaire"
	QuestionnaireNomenclatures Name = "questionnaire_nomenclatures"
	Nomenclature               Name = "nomenclature"
	CampaignMetadata           Name = "campaign_metadata"
)

// Op is the kind of invalidation
type Op string

const (
	OpEvict Op = "evict"
	OpClear Op = "clear"
)

// Event is one invalidation request. Key is empty for OpClear.
type Event struct {
	Op    Op     `json:"op"`
	Cache Name   `json:"cache"`
	Key   string `json:"key,omitempty"`
}

func (e Event) String() string {
	if e.Op == OpClear {
		return fmt.Sprintf("%s(%s)", e.Op, e.Cache)
	}
	return fmt.Sprintf("%s(%s[%s])", e.Op, e.Cache, e.Key)
}

func Evict(name Name, key string) Event {
	return Event{Op: OpEvict, Cache: name, Key: key}
}

func Clear(name Name) Event {
	return Event{Op: OpClear, Cache: name}
}

// CampaignUpserted lists the invalidations following a campaign create or update.
// Every questionnaire-level cache may embed campaign data, so they are cleared.
func CampaignUpserted(campaignID string) []Event {
	return []Event{
		Evict(CampaignNomenclatures, campaignID),
		Evict(MetadataByQuestionnaire, campaignID),
		Evict(CampaignMetadata, campaignID),
		Clear(QuestionnaireExist),
		Clear(Questionnaire),
		Clear(QuestionnaireNomenclatures),
		Clear(MetadataByQuestionnaire),
	}
}

// QuestionnaireUpserted lists the invalidations following a questionnaire model create or update
func QuestionnaireUpserted(questionnaireID string) []Event {
	return []Event{
		Evict(Questionnaire, questionnaireID),
		Evict(QuestionnaireNomenclatures, questionnaireID),
		Evict(MetadataByQuestionnaire, questionnaireID),
	}
}
