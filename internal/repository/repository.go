package repository

import "gorm.io/gorm"

// Repositories bundles every repository over the shared store handle.
type Repositories struct {
	MaterialType *MaterialTypeRepository
	Unit         *UnitRepository
	Material     *MaterialRepository
	ProductType  *ProductTypeRepository
	Product      *ProductRepository
	Link         *LinkRepository

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		MaterialType: NewMaterialTypeRepository(db),
		Unit:         NewUnitRepository(db),
		Material:     NewMaterialRepository(db),
		ProductType:  NewProductTypeRepository(db),
		Product:      NewProductRepository(db),
		Link:         NewLinkRepository(db),
		db:           db,
	}
}

// DB exposes the underlying handle for transaction boundaries.
func (r *Repositories) DB() *gorm.DB {
	return r.db
}
