package service

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/entity"
	"github.com/obrazplus/furniture-inventory/internal/repository"
)

// MaterialInput carries the raw form fields of a material. Numeric fields
// arrive as strings and are parsed during validation.
type MaterialInput struct {
	Name            string `json:"name"`
	MaterialTypeID  int64  `json:"material_type_id"`
	UnitID          int64  `json:"unit_id"`
	UnitPrice       string `json:"unit_price"`
	StockQuantity   string `json:"stock_quantity"`
	MinQuantity     string `json:"min_quantity"`
	PackageQuantity string `json:"package_quantity"`
}

type MaterialService struct {
	materialRepo *repository.MaterialRepository
	linkRepo     *repository.LinkRepository
	db           *gorm.DB
}

func NewMaterialService(materialRepo *repository.MaterialRepository, linkRepo *repository.LinkRepository, db *gorm.DB) *MaterialService {
	return &MaterialService{materialRepo: materialRepo, linkRepo: linkRepo, db: db}
}

// List returns the materials listing with the aggregate required quantity
// recomputed per material from the live BOM links.
func (s *MaterialService) List(ctx context.Context) ([]repository.MaterialRow, error) {
	rows, err := s.materialRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		required, err := s.linkRepo.SumRequiredQuantity(ctx, rows[i].MaterialID)
		if err != nil {
			return nil, err
		}
		rows[i].RequiredQuantity = required
	}
	return rows, nil
}

// RequiredQuantity exposes the derived demand for one material.
func (s *MaterialService) RequiredQuantity(ctx context.Context, materialID int64) (float64, error) {
	return s.linkRepo.SumRequiredQuantity(ctx, materialID)
}

// Products returns the products consuming one material with their required
// quantities. The material must exist; a material no product uses yields an
// empty list.
func (s *MaterialService) Products(ctx context.Context, materialID int64) ([]repository.MaterialUsageRow, error) {
	if _, err := s.materialRepo.FindByID(ctx, materialID); err != nil {
		return nil, err
	}
	return s.linkRepo.ListByMaterial(ctx, materialID)
}

// Save validates the input and inserts a new material, or rewrites the full
// row when id is given.
func (s *MaterialService) Save(ctx context.Context, in MaterialInput, id *int64) (*entity.Material, error) {
	unitPrice, err := strconv.ParseFloat(in.UnitPrice, 64)
	if err != nil {
		return nil, validationErrorf("unit price %q is not a number", in.UnitPrice)
	}
	stockQuantity, err := strconv.ParseFloat(in.StockQuantity, 64)
	if err != nil {
		return nil, validationErrorf("stock quantity %q is not a number", in.StockQuantity)
	}
	minQuantity, err := strconv.ParseFloat(in.MinQuantity, 64)
	if err != nil {
		return nil, validationErrorf("minimum quantity %q is not a number", in.MinQuantity)
	}
	packageQuantity, err := strconv.ParseInt(in.PackageQuantity, 10, 64)
	if err != nil {
		return nil, validationErrorf("package quantity %q is not an integer", in.PackageQuantity)
	}
	if unitPrice < 0 || minQuantity < 0 {
		return nil, validationErrorf("unit price and minimum quantity must not be negative")
	}

	m := &entity.Material{
		Name:            in.Name,
		MaterialTypeID:  in.MaterialTypeID,
		UnitID:          in.UnitID,
		UnitPrice:       unitPrice,
		StockQuantity:   stockQuantity,
		MinQuantity:     minQuantity,
		PackageQuantity: packageQuantity,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewMaterialRepository(tx)
		if id != nil {
			m.ID = *id
			return repo.Update(ctx, m)
		}
		return repo.Create(ctx, m)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, &StorageConstraintError{Err: err}
	}
	return m, nil
}

// Delete removes the material. With foreign keys enforced the storage-level
// cascade removes its BOM links as well.
func (s *MaterialService) Delete(ctx context.Context, id int64) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return repository.NewMaterialRepository(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return &StorageConstraintError{Err: err}
	}
	return nil
}
