package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/entity"
)

// ProductRow is one line of the products listing: the product joined with
// its type name and coefficient.
type ProductRow struct {
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"name"`
	TypeName    string  `json:"type_name"`
	Coefficient float64 `json:"coefficient"`
	Description string  `json:"description"`
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context) ([]ProductRow, error) {
	var rows []ProductRow
	err := r.db.WithContext(ctx).
		Table("products p").
		Select("p.product_id, p.name, pt.name AS type_name, pt.coefficient, p.description").
		Joins("JOIN product_types pt ON p.product_type_id = pt.product_type_id").
		Order("p.product_id").
		Scan(&rows).Error
	return rows, err
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.WithContext(ctx).First(&p, "product_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Update rewrites the row keyed by primary key. An unknown id is
// gorm.ErrRecordNotFound.
func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("product_id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":            p.Name,
			"product_type_id": p.ProductTypeID,
			"description":     p.Description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the product; the storage-level cascade removes its BOM
// link rows in the same statement.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&entity.Product{}, "product_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
