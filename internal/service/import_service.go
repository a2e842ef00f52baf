package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/entity"
	"github.com/obrazplus/furniture-inventory/internal/rowsource"
)

// Column labels of the import spreadsheets. They are the headers the
// operators' existing files already carry, so they stay verbatim.
const (
	colMaterialTypeName       = "Тип материала"
	colProductTypeName        = "Тип продукции"
	colProductTypeCoefficient = "Коэффициент типа продукции"
	colMaterialName           = "Наименование материала"
	colMaterialPrice          = "Цена единицы материала"
	colMaterialStock          = "Количество на складе"
	colMaterialMin            = "Минимальное количество"
	colMaterialPackage        = "Количество в упаковке"
	colMaterialUnit           = "Единица измерения"
	colProductName            = "Наименование продукции"
	colLinkProduct            = "Продукция"
	colLinkQuantity           = "Необходимое количество материала"
)

// ImportResult counts what one import did.
type ImportResult struct {
	Inserted     int `json:"inserted"`
	Skipped      int `json:"skipped"`
	CreatedUnits int `json:"created_units,omitempty"`
}

// ImportService replaces one table at a time from a tabular row source.
// Every import clears the target table and inserts the parsed rows inside a
// single transaction, so a failing row rolls the whole import back and the
// previous table contents survive.
type ImportService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewImportService(db *gorm.DB, logger *zap.Logger) *ImportService {
	return &ImportService{db: db, logger: logger}
}

func readSource(src rowsource.Source) ([]rowsource.Record, error) {
	recs, err := src.Read()
	if err != nil {
		return nil, &SourceReadError{Err: err}
	}
	return recs, nil
}

// cell returns the value of one labeled column; a missing label means the
// file does not match the contract and fails the import.
func cell(rec rowsource.Record, label string, row int) (string, error) {
	v, ok := rec[label]
	if !ok {
		return "", &SourceReadError{Err: fmt.Errorf("row %d: column %q missing", row, label)}
	}
	return v, nil
}

// ImportMaterialTypes replaces the material type table.
func (s *ImportService) ImportMaterialTypes(ctx context.Context, src rowsource.Source) (*ImportResult, error) {
	recs, err := readSource(src)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM material_types").Error; err != nil {
			return err
		}
		for i, rec := range recs {
			name, err := cell(rec, colMaterialTypeName, i+2)
			if err != nil {
				return err
			}
			if err := tx.Create(&entity.MaterialType{Name: name}).Error; err != nil {
				return err
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("imported material types", zap.Int("inserted", result.Inserted))
	return result, nil
}

// ImportProductTypes replaces the product type table.
func (s *ImportService) ImportProductTypes(ctx context.Context, src rowsource.Source) (*ImportResult, error) {
	recs, err := readSource(src)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_types").Error; err != nil {
			return err
		}
		for i, rec := range recs {
			name, err := cell(rec, colProductTypeName, i+2)
			if err != nil {
				return err
			}
			raw, err := cell(rec, colProductTypeCoefficient, i+2)
			if err != nil {
				return err
			}
			coefficient, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return validationErrorf("row %d: coefficient %q is not a number", i+2, raw)
			}
			if err := tx.Create(&entity.ProductType{Name: name, Coefficient: coefficient}).Error; err != nil {
				return err
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("imported product types", zap.Int("inserted", result.Inserted))
	return result, nil
}

// ImportMaterials replaces the material table. Type names are resolved
// against a snapshot taken at import start and an unknown type fails the
// whole import; unknown unit abbreviations are registered on the fly.
func (s *ImportService) ImportMaterials(ctx context.Context, src rowsource.Source) (*ImportResult, error) {
	recs, err := readSource(src)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM materials").Error; err != nil {
			return err
		}

		typeIndex, err := materialTypeIndex(tx)
		if err != nil {
			return err
		}
		unitIndex, err := unitIndex(tx)
		if err != nil {
			return err
		}

		for i, rec := range recs {
			row := i + 2
			name, err := cell(rec, colMaterialName, row)
			if err != nil {
				return err
			}
			typeName, err := cell(rec, colMaterialTypeName, row)
			if err != nil {
				return err
			}
			unitAbbr, err := cell(rec, colMaterialUnit, row)
			if err != nil {
				return err
			}
			unitPrice, err := floatCell(rec, colMaterialPrice, row)
			if err != nil {
				return err
			}
			stockQuantity, err := floatCell(rec, colMaterialStock, row)
			if err != nil {
				return err
			}
			minQuantity, err := floatCell(rec, colMaterialMin, row)
			if err != nil {
				return err
			}
			packageRaw, err := cell(rec, colMaterialPackage, row)
			if err != nil {
				return err
			}
			packageQuantity, err := strconv.ParseInt(packageRaw, 10, 64)
			if err != nil {
				return validationErrorf("row %d: package quantity %q is not an integer", row, packageRaw)
			}

			typeID, ok := typeIndex[typeName]
			if !ok {
				return &ReferenceError{Kind: "material type", Name: typeName}
			}

			unitID, ok := unitIndex[unitAbbr]
			if !ok {
				unit := &entity.Unit{Name: unitAbbr, Abbreviation: unitAbbr}
				if err := tx.Create(unit).Error; err != nil {
					return err
				}
				unitID = unit.ID
				unitIndex[unitAbbr] = unitID
				result.CreatedUnits++
				s.logger.Info("registered new unit", zap.String("abbreviation", unitAbbr), zap.Int("row", row))
			}

			m := &entity.Material{
				Name:            name,
				MaterialTypeID:  typeID,
				UnitID:          unitID,
				UnitPrice:       unitPrice,
				StockQuantity:   stockQuantity,
				MinQuantity:     minQuantity,
				PackageQuantity: packageQuantity,
			}
			if err := tx.Create(m).Error; err != nil {
				return err
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("imported materials",
		zap.Int("inserted", result.Inserted),
		zap.Int("created_units", result.CreatedUnits),
	)
	return result, nil
}

// ImportProducts replaces the product table. An unknown product type name
// fails the whole import; descriptions default to empty.
func (s *ImportService) ImportProducts(ctx context.Context, src rowsource.Source) (*ImportResult, error) {
	recs, err := readSource(src)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM products").Error; err != nil {
			return err
		}

		typeIndex, err := productTypeIndex(tx)
		if err != nil {
			return err
		}

		for i, rec := range recs {
			row := i + 2
			typeName, err := cell(rec, colProductTypeName, row)
			if err != nil {
				return err
			}
			name, err := cell(rec, colProductName, row)
			if err != nil {
				return err
			}

			typeID, ok := typeIndex[typeName]
			if !ok {
				return &ReferenceError{Kind: "product type", Name: typeName}
			}

			p := &entity.Product{Name: name, Description: "", ProductTypeID: typeID}
			if err := tx.Create(p).Error; err != nil {
				return err
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("imported products", zap.Int("inserted", result.Inserted))
	return result, nil
}

// ImportLinks replaces the BOM link table. Unlike the other importers an
// unresolved product or material name only skips that row: link files are
// matched on free-text names and partial success is the useful outcome.
// Loss percentage defaults to 0.
func (s *ImportService) ImportLinks(ctx context.Context, src rowsource.Source) (*ImportResult, error) {
	recs, err := readSource(src)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_materials").Error; err != nil {
			return err
		}

		materialIdx, err := materialNameIndex(tx)
		if err != nil {
			return err
		}
		productIdx, err := productNameIndex(tx)
		if err != nil {
			return err
		}

		for i, rec := range recs {
			row := i + 2
			materialName, err := cell(rec, colMaterialName, row)
			if err != nil {
				return err
			}
			productName, err := cell(rec, colLinkProduct, row)
			if err != nil {
				return err
			}
			required, err := floatCell(rec, colLinkQuantity, row)
			if err != nil {
				return err
			}

			materialID, ok := materialIdx[materialName]
			if !ok {
				s.logger.Warn("material not found, skipping link",
					zap.Int("row", row), zap.String("material", materialName))
				result.Skipped++
				continue
			}
			productID, ok := productIdx[productName]
			if !ok {
				s.logger.Warn("product not found, skipping link",
					zap.Int("row", row), zap.String("product", productName))
				result.Skipped++
				continue
			}

			link := &entity.ProductMaterial{
				ProductID:        productID,
				MaterialID:       materialID,
				RequiredQuantity: required,
				LossPercentage:   0,
			}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("imported links",
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// FullImportSources holds one row source per entity for a full reload.
type FullImportSources struct {
	MaterialTypes rowsource.Source
	ProductTypes  rowsource.Source
	Materials     rowsource.Source
	Products      rowsource.Source
	Links         rowsource.Source
}

// FullImportResult collects the per-entity results of a full reload.
type FullImportResult struct {
	MaterialTypes *ImportResult `json:"material_types,omitempty"`
	ProductTypes  *ImportResult `json:"product_types,omitempty"`
	Materials     *ImportResult `json:"materials,omitempty"`
	Products      *ImportResult `json:"products,omitempty"`
	Links         *ImportResult `json:"links,omitempty"`
}

// FullImport reloads all five entities in dependency order: later imports
// resolve names against tables the earlier ones populate. The first failure
// aborts the remaining steps; steps already committed stay committed.
func (s *ImportService) FullImport(ctx context.Context, sources FullImportSources) (*FullImportResult, error) {
	result := &FullImportResult{}
	var err error

	if result.MaterialTypes, err = s.ImportMaterialTypes(ctx, sources.MaterialTypes); err != nil {
		return result, fmt.Errorf("material types: %w", err)
	}
	if result.ProductTypes, err = s.ImportProductTypes(ctx, sources.ProductTypes); err != nil {
		return result, fmt.Errorf("product types: %w", err)
	}
	if result.Materials, err = s.ImportMaterials(ctx, sources.Materials); err != nil {
		return result, fmt.Errorf("materials: %w", err)
	}
	if result.Products, err = s.ImportProducts(ctx, sources.Products); err != nil {
		return result, fmt.Errorf("products: %w", err)
	}
	if result.Links, err = s.ImportLinks(ctx, sources.Links); err != nil {
		return result, fmt.Errorf("links: %w", err)
	}
	return result, nil
}

func floatCell(rec rowsource.Record, label string, row int) (float64, error) {
	raw, err := cell(rec, label, row)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, validationErrorf("row %d: %s %q is not a number", row, label, raw)
	}
	return v, nil
}

// The name→id snapshots below are built once per import call and consulted
// for every row of that call.

type idName struct {
	ID   int64
	Name string
}

func materialTypeIndex(tx *gorm.DB) (map[string]int64, error) {
	var pairs []idName
	err := tx.Model(&entity.MaterialType{}).Select("material_type_id AS id, name").Scan(&pairs).Error
	return toIndex(pairs), err
}

func productTypeIndex(tx *gorm.DB) (map[string]int64, error) {
	var pairs []idName
	err := tx.Model(&entity.ProductType{}).Select("product_type_id AS id, name").Scan(&pairs).Error
	return toIndex(pairs), err
}

func materialNameIndex(tx *gorm.DB) (map[string]int64, error) {
	var pairs []idName
	err := tx.Model(&entity.Material{}).Select("material_id AS id, name").Scan(&pairs).Error
	return toIndex(pairs), err
}

func productNameIndex(tx *gorm.DB) (map[string]int64, error) {
	var pairs []idName
	err := tx.Model(&entity.Product{}).Select("product_id AS id, name").Scan(&pairs).Error
	return toIndex(pairs), err
}

func unitIndex(tx *gorm.DB) (map[string]int64, error) {
	var pairs []idName
	err := tx.Model(&entity.Unit{}).Select("unit_id AS id, abbreviation AS name").Scan(&pairs).Error
	return toIndex(pairs), err
}

func toIndex(pairs []idName) map[string]int64 {
	idx := make(map[string]int64, len(pairs))
	for _, p := range pairs {
		idx[p.Name] = p.ID
	}
	return idx
}
