package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/entity"
	"github.com/obrazplus/furniture-inventory/internal/repository"
)

// ProductInput carries the raw form fields of a product.
type ProductInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	ProductTypeID int64  `json:"product_type_id"`
}

type ProductService struct {
	productRepo *repository.ProductRepository
	db          *gorm.DB
}

func NewProductService(productRepo *repository.ProductRepository, db *gorm.DB) *ProductService {
	return &ProductService{productRepo: productRepo, db: db}
}

func (s *ProductService) List(ctx context.Context) ([]repository.ProductRow, error) {
	return s.productRepo.List(ctx)
}

// Save inserts a new product, or rewrites the row when id is given. The
// name is required.
func (s *ProductService) Save(ctx context.Context, in ProductInput, id *int64) (*entity.Product, error) {
	if in.Name == "" {
		return nil, validationErrorf("product name is required")
	}

	p := &entity.Product{
		Name:          in.Name,
		Description:   in.Description,
		ProductTypeID: in.ProductTypeID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewProductRepository(tx)
		if id != nil {
			p.ID = *id
			return repo.Update(ctx, p)
		}
		return repo.Create(ctx, p)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, &StorageConstraintError{Err: err}
	}
	return p, nil
}

// Delete removes the product; its BOM link rows go with it via the
// storage-level cascade.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return repository.NewProductRepository(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return &StorageConstraintError{Err: err}
	}
	return nil
}
