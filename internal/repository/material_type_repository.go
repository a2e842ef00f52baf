package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/entity"
)

type MaterialTypeRepository struct {
	db *gorm.DB
}

func NewMaterialTypeRepository(db *gorm.DB) *MaterialTypeRepository {
	return &MaterialTypeRepository{db: db}
}

func (r *MaterialTypeRepository) List(ctx context.Context) ([]entity.MaterialType, error) {
	var types []entity.MaterialType
	err := r.db.WithContext(ctx).Order("material_type_id").Find(&types).Error
	return types, err
}

func (r *MaterialTypeRepository) Create(ctx context.Context, mt *entity.MaterialType) error {
	return r.db.WithContext(ctx).Create(mt).Error
}
