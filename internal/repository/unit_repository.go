package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/entity"
)

type UnitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

func (r *UnitRepository) List(ctx context.Context) ([]entity.Unit, error) {
	var units []entity.Unit
	err := r.db.WithContext(ctx).Order("unit_id").Find(&units).Error
	return units, err
}

func (r *UnitRepository) Create(ctx context.Context, u *entity.Unit) error {
	return r.db.WithContext(ctx).Create(u).Error
}
