package service

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/entity"
	"github.com/obrazplus/furniture-inventory/internal/repository"
)

type LinkService struct {
	linkRepo *repository.LinkRepository
	db       *gorm.DB
}

func NewLinkService(linkRepo *repository.LinkRepository, db *gorm.DB) *LinkService {
	return &LinkService{linkRepo: linkRepo, db: db}
}

func (s *LinkService) List(ctx context.Context) ([]repository.LinkRow, error) {
	return s.linkRepo.List(ctx)
}

// Upsert links a material to a product. When the pair is already linked its
// quantities are overwritten, so the link table keeps exactly one row per
// pair.
func (s *LinkService) Upsert(ctx context.Context, productID, materialID int64, requiredQuantity, lossPercentage string) error {
	required, err := strconv.ParseFloat(requiredQuantity, 64)
	if err != nil {
		return validationErrorf("required quantity %q is not a number", requiredQuantity)
	}
	loss, err := strconv.ParseFloat(lossPercentage, 64)
	if err != nil {
		return validationErrorf("loss percentage %q is not a number", lossPercentage)
	}
	if required <= 0 || loss < 0 {
		return validationErrorf("required quantity must be positive and loss percentage must not be negative")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewLinkRepository(tx)
		existing, err := repo.Find(ctx, productID, materialID)
		if err != nil {
			return err
		}
		if existing != nil {
			return repo.UpdateQuantities(ctx, productID, materialID, required, loss)
		}
		return repo.Create(ctx, &entity.ProductMaterial{
			ProductID:        productID,
			MaterialID:       materialID,
			RequiredQuantity: required,
			LossPercentage:   loss,
		})
	})
	if err != nil {
		return &StorageConstraintError{Err: err}
	}
	return nil
}

// Delete removes the link for one (product, material) pair.
func (s *LinkService) Delete(ctx context.Context, productID, materialID int64) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return repository.NewLinkRepository(tx).Delete(ctx, productID, materialID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return &StorageConstraintError{Err: err}
	}
	return nil
}
