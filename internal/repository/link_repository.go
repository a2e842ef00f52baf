package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/entity"
)

// LinkRow is one line of the BOM listing, ordered by product then material
// name.
type LinkRow struct {
	ProductName      string  `json:"product_name"`
	MaterialName     string  `json:"material_name"`
	RequiredQuantity float64 `json:"required_quantity"`
	LossPercentage   float64 `json:"loss_percentage"`
}

type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

func (r *LinkRepository) List(ctx context.Context) ([]LinkRow, error) {
	var rows []LinkRow
	err := r.db.WithContext(ctx).
		Table("product_materials pm").
		Select("p.name AS product_name, m.name AS material_name, pm.required_quantity, pm.loss_percentage").
		Joins("JOIN products p ON pm.product_id = p.product_id").
		Joins("JOIN materials m ON pm.material_id = m.material_id").
		Order("p.name, m.name").
		Scan(&rows).Error
	return rows, err
}

// MaterialUsageRow is one consumer of a material: the product and how much
// of the material it needs, with the material's unit for display.
type MaterialUsageRow struct {
	ProductName      string  `json:"product_name"`
	RequiredQuantity float64 `json:"required_quantity"`
	UnitAbbreviation string  `json:"unit_abbreviation"`
}

// ListByMaterial returns the products consuming one material, ordered by
// product name.
func (r *LinkRepository) ListByMaterial(ctx context.Context, materialID int64) ([]MaterialUsageRow, error) {
	var rows []MaterialUsageRow
	err := r.db.WithContext(ctx).
		Table("product_materials pm").
		Select("p.name AS product_name, pm.required_quantity, u.abbreviation AS unit_abbreviation").
		Joins("JOIN products p ON pm.product_id = p.product_id").
		Joins("JOIN materials m ON pm.material_id = m.material_id").
		Joins("JOIN units u ON m.unit_id = u.unit_id").
		Where("pm.material_id = ?", materialID).
		Order("p.name").
		Scan(&rows).Error
	return rows, err
}

// Find returns the link for a (product, material) pair, or nil when no such
// link exists.
func (r *LinkRepository) Find(ctx context.Context, productID, materialID int64) (*entity.ProductMaterial, error) {
	var link entity.ProductMaterial
	err := r.db.WithContext(ctx).
		First(&link, "product_id = ? AND material_id = ?", productID, materialID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *LinkRepository) Create(ctx context.Context, link *entity.ProductMaterial) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// UpdateQuantities overwrites the quantities of an existing pair.
func (r *LinkRepository) UpdateQuantities(ctx context.Context, productID, materialID int64, requiredQuantity, lossPercentage float64) error {
	return r.db.WithContext(ctx).Model(&entity.ProductMaterial{}).
		Where("product_id = ? AND material_id = ?", productID, materialID).
		Updates(map[string]interface{}{
			"required_quantity": requiredQuantity,
			"loss_percentage":   lossPercentage,
		}).Error
}

// Delete removes the link of one pair. An unknown pair is
// gorm.ErrRecordNotFound.
func (r *LinkRepository) Delete(ctx context.Context, productID, materialID int64) error {
	result := r.db.WithContext(ctx).
		Delete(&entity.ProductMaterial{}, "product_id = ? AND material_id = ?", productID, materialID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumRequiredQuantity is the derived material demand: the sum of
// required_quantity over every BOM link consuming the material, 0 when no
// product uses it.
func (r *LinkRepository) SumRequiredQuantity(ctx context.Context, materialID int64) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Raw("SELECT IFNULL(SUM(required_quantity), 0) FROM product_materials WHERE material_id = ?", materialID).
		Scan(&total).Error
	return total, err
}
