package integration

import (
	"context"

	"gorm.io/gorm"

	"github.com/jeandelest/Queen-Back-Office/internal/database/repository"
	"github.com/jeandelest/Queen-Back-Office/internal/models"
)

// CampaignGateway is the campaign storage used by the pipeline
type CampaignGateway interface {
	FindByID(ctx context.Context, id string) (*models.Campaign, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, campaign *models.Campaign) error
	Update(ctx context.Context, campaign *models.Campaign) error
}

// NomenclatureGateway is the nomenclature storage used by the pipeline
type NomenclatureGateway interface {
	FindByID(ctx context.Context, id string) (*models.Nomenclature, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Nomenclature, error)
	Create(ctx context.Context, nomenclature *models.Nomenclature) error
}

// QuestionnaireModelGateway is the questionnaire model storage used by the pipeline
type QuestionnaireModelGateway interface {
	FindByID(ctx context.Context, id string) (*models.QuestionnaireModel, error)
	Create(ctx context.Context, qm *models.QuestionnaireModel) error
	Update(ctx context.Context, qm *models.QuestionnaireModel) error
}

// Gateways are the storages bound to one transaction
type Gateways struct {
	Campaigns           CampaignGateway
	Nomenclatures       NomenclatureGateway
	QuestionnaireModels QuestionnaireModelGateway
}

// Transactor runs fn with gateways bound to a single transaction.
// An error returned by fn rolls back everything fn wrote.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(g Gateways) error) error
}

type gormTransactor struct {
	uow *repository.UnitOfWork
}

// NewGormTransactor returns a Transactor backed by the gorm repositories
func NewGormTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{uow: repository.NewUnitOfWork(db)}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(g Gateways) error) error {
	return t.uow.Do(ctx, func(repos *repository.Repositories) error {
		return fn(Gateways{
			Campaigns:           repos.Campaigns,
			Nomenclatures:       repos.Nomenclatures,
			QuestionnaireModels: repos.QuestionnaireModels,
		})
	})
}
