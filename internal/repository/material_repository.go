package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/entity"
)

// MaterialRow is one line of the materials listing: the material joined with
// its type name and unit abbreviation. RequiredQuantity is recomputed from
// the live BOM links on every read, never stored.
type MaterialRow struct {
	MaterialID       int64   `json:"material_id"`
	Name             string  `json:"name"`
	TypeName         string  `json:"type_name"`
	UnitAbbreviation string  `json:"unit_abbreviation"`
	UnitPrice        float64 `json:"unit_price"`
	StockQuantity    float64 `json:"stock_quantity"`
	MinQuantity      float64 `json:"min_quantity"`
	PackageQuantity  int64   `json:"package_quantity"`
	RequiredQuantity float64 `json:"required_quantity" gorm:"-"`
}

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// List returns materials joined with their type and unit. The joins are
// inner, so a material with a dangling reference would drop out of the
// listing instead of failing the query.
func (r *MaterialRepository) List(ctx context.Context) ([]MaterialRow, error) {
	var rows []MaterialRow
	err := r.db.WithContext(ctx).
		Table("materials m").
		Select("m.material_id, m.name, mt.name AS type_name, u.abbreviation AS unit_abbreviation, " +
			"m.unit_price, m.stock_quantity, m.min_quantity, m.package_quantity").
		Joins("JOIN material_types mt ON m.material_type_id = mt.material_type_id").
		Joins("JOIN units u ON m.unit_id = u.unit_id").
		Order("m.material_id").
		Scan(&rows).Error
	return rows, err
}

func (r *MaterialRepository) FindByID(ctx context.Context, id int64) (*entity.Material, error) {
	var m entity.Material
	if err := r.db.WithContext(ctx).First(&m, "material_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) Create(ctx context.Context, m *entity.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// Update rewrites every mutable column of the row keyed by primary key.
// An unknown id is gorm.ErrRecordNotFound.
func (r *MaterialRepository) Update(ctx context.Context, m *entity.Material) error {
	result := r.db.WithContext(ctx).Model(&entity.Material{}).
		Where("material_id = ?", m.ID).
		Updates(map[string]interface{}{
			"name":             m.Name,
			"material_type_id": m.MaterialTypeID,
			"unit_id":          m.UnitID,
			"unit_price":       m.UnitPrice,
			"stock_quantity":   m.StockQuantity,
			"min_quantity":     m.MinQuantity,
			"package_quantity": m.PackageQuantity,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&entity.Material{}, "material_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
