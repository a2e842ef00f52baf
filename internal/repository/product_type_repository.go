package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/entity"
)

type ProductTypeRepository struct {
	db *gorm.DB
}

func NewProductTypeRepository(db *gorm.DB) *ProductTypeRepository {
	return &ProductTypeRepository{db: db}
}

func (r *ProductTypeRepository) List(ctx context.Context) ([]entity.ProductType, error) {
	var types []entity.ProductType
	err := r.db.WithContext(ctx).Order("product_type_id").Find(&types).Error
	return types, err
}

func (r *ProductTypeRepository) Create(ctx context.Context, pt *entity.ProductType) error {
	return r.db.WithContext(ctx).Create(pt).Error
}
