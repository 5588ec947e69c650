package models

import (
	"time"

	"gorm.io/datatypes"
)

// Nomenclature is a named reference list consumed by questionnaire models
type Nomenclature struct {
	ID    string         `json:"id" gorm:"primaryKey;type:varchar(255)"`
	Label string         `json:"label" gorm:"type:varchar(255)"`
	Value datatypes.JSON `json:"value"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Nomenclature model
func (Nomenclature) TableName() string {
	return "nomenclatures"
}

// NomenclatureResponse represents the response for nomenclature read operations
type NomenclatureResponse struct {
	ID    string         `json:"id" example:"cities2019"`
	Label string         `json:"label" example:"french cities on 2019"`
	Value datatypes.JSON `json:"value" swaggertype:"array,object"`
}
