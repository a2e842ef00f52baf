package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/obrazplus/furniture-inventory/internal/repository"
)

// ExportService writes entity sets to xlsx workbooks with the same column
// labels the importer reads, so an exported file reimports cleanly.
type ExportService struct {
	repos *repository.Repositories
}

func NewExportService(repos *repository.Repositories) *ExportService {
	return &ExportService{repos: repos}
}

func (s *ExportService) ExportMaterialTypes(ctx context.Context) (*excelize.File, string, error) {
	types, err := s.repos.MaterialType.List(ctx)
	if err != nil {
		return nil, "", err
	}
	rows := make([][]interface{}, 0, len(types))
	for _, t := range types {
		rows = append(rows, []interface{}{t.Name})
	}
	f, err := buildWorkbook([]string{colMaterialTypeName}, rows, []float64{24})
	return f, exportFilename("material_types"), err
}

func (s *ExportService) ExportProductTypes(ctx context.Context) (*excelize.File, string, error) {
	types, err := s.repos.ProductType.List(ctx)
	if err != nil {
		return nil, "", err
	}
	rows := make([][]interface{}, 0, len(types))
	for _, t := range types {
		rows = append(rows, []interface{}{t.Name, t.Coefficient})
	}
	f, err := buildWorkbook(
		[]string{colProductTypeName, colProductTypeCoefficient},
		rows, []float64{24, 28},
	)
	return f, exportFilename("product_types"), err
}

func (s *ExportService) ExportMaterials(ctx context.Context) (*excelize.File, string, error) {
	materials, err := s.repos.Material.List(ctx)
	if err != nil {
		return nil, "", err
	}
	rows := make([][]interface{}, 0, len(materials))
	for _, m := range materials {
		rows = append(rows, []interface{}{
			m.Name, m.TypeName, m.UnitPrice, m.StockQuantity,
			m.MinQuantity, m.PackageQuantity, m.UnitAbbreviation,
		})
	}
	f, err := buildWorkbook(
		[]string{
			colMaterialName, colMaterialTypeName, colMaterialPrice,
			colMaterialStock, colMaterialMin, colMaterialPackage, colMaterialUnit,
		},
		rows, []float64{30, 20, 22, 20, 24, 22, 18},
	)
	return f, exportFilename("materials"), err
}

func (s *ExportService) ExportProducts(ctx context.Context) (*excelize.File, string, error) {
	products, err := s.repos.Product.List(ctx)
	if err != nil {
		return nil, "", err
	}
	rows := make([][]interface{}, 0, len(products))
	for _, p := range products {
		rows = append(rows, []interface{}{p.TypeName, p.Name})
	}
	f, err := buildWorkbook(
		[]string{colProductTypeName, colProductName},
		rows, []float64{20, 30},
	)
	return f, exportFilename("products"), err
}

func (s *ExportService) ExportLinks(ctx context.Context) (*excelize.File, string, error) {
	links, err := s.repos.Link.List(ctx)
	if err != nil {
		return nil, "", err
	}
	rows := make([][]interface{}, 0, len(links))
	for _, l := range links {
		rows = append(rows, []interface{}{l.MaterialName, l.ProductName, l.RequiredQuantity})
	}
	f, err := buildWorkbook(
		[]string{colMaterialName, colLinkProduct, colLinkQuantity},
		rows, []float64{30, 30, 32},
	)
	return f, exportFilename("links"), err
}

func buildWorkbook(headers []string, rows [][]interface{}, colWidths []float64) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		hCell := col + "1"
		f.SetCellValue(sheet, hCell, h)
		f.SetCellStyle(sheet, hCell, hCell, boldStyle)
	}

	for r, row := range rows {
		for c, v := range row {
			cellName, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cellName, v)
		}
	}

	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	return f, nil
}

func exportFilename(entity string) string {
	return fmt.Sprintf("%s_%s.xlsx", entity, time.Now().Format("20060102"))
}
