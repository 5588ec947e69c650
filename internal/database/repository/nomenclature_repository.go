package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
)

type NomenclatureRepository struct {
	db *gorm.DB
}

func NewNomenclatureRepository(db *gorm.DB) *NomenclatureRepository {
	return &NomenclatureRepository{db: db}
}

// ExistsByID checks whether a nomenclature with this id is stored
func (r *NomenclatureRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Nomenclature{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// FindByID returns the nomenclature or nil when it does not exist
func (r *NomenclatureRepository) FindByID(ctx context.Context, id string) (*models.Nomenclature, error) {
	var nomenclature models.Nomenclature
	err := r.db.WithContext(ctx).First(&nomenclature, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &nomenclature, nil
}

// GetByIDs retrieves the nomenclatures matching the given ids, ordered by id
func (r *NomenclatureRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Nomenclature, error) {
	nomenclatures := []models.Nomenclature{}
	if len(ids) == 0 {
		return nomenclatures, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&nomenclatures).Error
	return nomenclatures, err
}

// Create creates a new nomenclature
func (r *NomenclatureRepository) Create(ctx context.Context, nomenclature *models.Nomenclature) error {
	return r.db.WithContext(ctx).Create(nomenclature).Error
}
