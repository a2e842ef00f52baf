package service

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/repository"
)

// Services bundles every service over the shared repositories.
type Services struct {
	Material *MaterialService
	Product  *ProductService
	Link     *LinkService
	Import   *ImportService
	Export   *ExportService
}

func NewServices(repos *repository.Repositories, db *gorm.DB, logger *zap.Logger) *Services {
	return &Services{
		Material: NewMaterialService(repos.Material, repos.Link, db),
		Product:  NewProductService(repos.Product, db),
		Link:     NewLinkService(repos.Link, db),
		Import:   NewImportService(db, logger),
		Export:   NewExportService(repos),
	}
}
