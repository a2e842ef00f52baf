package repository

import (
	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/entity"
)

// Seed inserts the demo dataset. It is a no-op when material_types already
// has rows, so repeated startups do not duplicate data.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.MaterialType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		materialTypes := []entity.MaterialType{
			{Name: "Дерево"}, {Name: "Металл"}, {Name: "Ткань"}, {Name: "Пластик"}, {Name: "Стекло"},
		}
		if err := tx.Create(&materialTypes).Error; err != nil {
			return err
		}

		units := []entity.Unit{
			{Name: "килограмм", Abbreviation: "кг"},
			{Name: "метр", Abbreviation: "м"},
			{Name: "штука", Abbreviation: "шт"},
			{Name: "литр", Abbreviation: "л"},
			{Name: "квадратный метр", Abbreviation: "м²"},
		}
		if err := tx.Create(&units).Error; err != nil {
			return err
		}

		productTypes := []entity.ProductType{
			{Name: "Стол", Coefficient: 1.2},
			{Name: "Стул", Coefficient: 0.8},
			{Name: "Шкаф", Coefficient: 1.5},
			{Name: "Полка", Coefficient: 0.5},
			{Name: "Диван", Coefficient: 1.8},
		}
		if err := tx.Create(&productTypes).Error; err != nil {
			return err
		}

		materials := []entity.Material{
			{Name: "Дубовая доска", MaterialTypeID: 1, UnitID: 2, UnitPrice: 1500.50, StockQuantity: 100.5, MinQuantity: 20.0, PackageQuantity: 10},
			{Name: "Стальной уголок", MaterialTypeID: 2, UnitID: 1, UnitPrice: 200.75, StockQuantity: 500.25, MinQuantity: 100.0, PackageQuantity: 20},
			{Name: "Хлопковая ткань", MaterialTypeID: 3, UnitID: 2, UnitPrice: 300.00, StockQuantity: 200.0, MinQuantity: 50.0, PackageQuantity: 5},
			{Name: "Пластик ABS", MaterialTypeID: 4, UnitID: 1, UnitPrice: 450.25, StockQuantity: 300.75, MinQuantity: 75.0, PackageQuantity: 15},
			{Name: "Стекло закаленное", MaterialTypeID: 5, UnitID: 2, UnitPrice: 800.00, StockQuantity: 50.0, MinQuantity: 10.0, PackageQuantity: 5},
		}
		if err := tx.Create(&materials).Error; err != nil {
			return err
		}

		products := []entity.Product{
			{Name: "Офисный стол", Description: "Большой стол для офиса", ProductTypeID: 1},
			{Name: "Офисный стул", Description: "Удобный стул для офиса", ProductTypeID: 2},
			{Name: "Книжный шкаф", Description: "Шкаф для книг", ProductTypeID: 3},
			{Name: "Настенная полка", Description: "Полка для книг и декора", ProductTypeID: 4},
			{Name: "Угловой диван", Description: "Комфортный диван для офиса", ProductTypeID: 5},
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		links := []entity.ProductMaterial{
			{ProductID: 1, MaterialID: 1, RequiredQuantity: 2.5, LossPercentage: 5.0},
			{ProductID: 1, MaterialID: 2, RequiredQuantity: 1.0, LossPercentage: 3.0},
			{ProductID: 2, MaterialID: 1, RequiredQuantity: 1.0, LossPercentage: 5.0},
			{ProductID: 2, MaterialID: 3, RequiredQuantity: 0.5, LossPercentage: 2.0},
			{ProductID: 3, MaterialID: 1, RequiredQuantity: 5.0, LossPercentage: 8.0},
			{ProductID: 3, MaterialID: 2, RequiredQuantity: 2.0, LossPercentage: 5.0},
			{ProductID: 4, MaterialID: 1, RequiredQuantity: 1.5, LossPercentage: 5.0},
			{ProductID: 4, MaterialID: 4, RequiredQuantity: 0.8, LossPercentage: 3.0},
			{ProductID: 5, MaterialID: 3, RequiredQuantity: 3.0, LossPercentage: 10.0},
			{ProductID: 5, MaterialID: 4, RequiredQuantity: 2.5, LossPercentage: 5.0},
		}
		return tx.Create(&links).Error
	})
}
