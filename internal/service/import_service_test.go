package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/obrazplus/furniture-inventory/internal/entity"
	"github.com/obrazplus/furniture-inventory/internal/rowsource"
	"github.com/obrazplus/furniture-inventory/internal/testutil"
)

func newImportService(t *testing.T) (*ImportService, *fixture) {
	t.Helper()
	fx := newFixture(t)
	return NewImportService(fx.db, zap.NewNop()), fx
}

func TestImportMaterialTypesReplacesTable(t *testing.T) {
	svc, fx := newImportService(t)
	ctx := context.Background()

	testutil.SeedMaterialType(t, fx.db, "Старый тип")

	result, err := svc.ImportMaterialTypes(ctx, rowsource.Slice{
		{colMaterialTypeName: "Дерево"},
		{colMaterialTypeName: "Металл"},
	})
	if err != nil {
		t.Fatalf("ImportMaterialTypes: %v", err)
	}
	if result.Inserted != 2 {
		t.Fatalf("inserted: got %d, want 2", result.Inserted)
	}

	types, err := fx.repos.MaterialType.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("expected the old table to be replaced, got %d rows", len(types))
	}
	if types[0].Name != "Дерево" || types[1].Name != "Металл" {
		t.Fatalf("unexpected rows: %+v", types)
	}
}

func TestImportMaterialsUnknownTypeAborts(t *testing.T) {
	svc, fx := newImportService(t)
	ctx := context.Background()

	mt := testutil.SeedMaterialType(t, fx.db, "Дерево")
	u := testutil.SeedUnit(t, fx.db, "килограмм", "кг")
	testutil.SeedMaterial(t, fx.db, "Старая доска", mt.ID, u.ID, 90)

	_, err := svc.ImportMaterials(ctx, rowsource.Slice{
		{
			colMaterialName:     "Доска",
			colMaterialTypeName: "Дерево",
			colMaterialUnit:     "кг",
			colMaterialPrice:    "100",
			colMaterialStock:    "50",
			colMaterialMin:      "10",
			colMaterialPackage:  "5",
		},
		{
			colMaterialName:     "Слиток",
			colMaterialTypeName: "Золото", // not in the taxonomy
			colMaterialUnit:     "кг",
			colMaterialPrice:    "1",
			colMaterialStock:    "1",
			colMaterialMin:      "0",
			colMaterialPackage:  "1",
		},
	})
	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferenceError, got %v", err)
	}
	if refErr.Name != "Золото" {
		t.Fatalf("unexpected unresolved name: %q", refErr.Name)
	}

	// The transaction rolled back: the old material survived and the first
	// valid row was not committed either.
	var materials []entity.Material
	if err := fx.db.Find(&materials).Error; err != nil {
		t.Fatalf("find materials: %v", err)
	}
	if len(materials) != 1 || materials[0].Name != "Старая доска" {
		t.Fatalf("expected prior table state untouched, got %+v", materials)
	}
}

func TestImportMaterialsRegistersUnknownUnit(t *testing.T) {
	svc, fx := newImportService(t)
	ctx := context.Background()

	testutil.SeedMaterialType(t, fx.db, "Дерево")
	testutil.SeedUnit(t, fx.db, "килограмм", "кг")

	result, err := svc.ImportMaterials(ctx, rowsource.Slice{
		{
			colMaterialName:     "Доска",
			colMaterialTypeName: "Дерево",
			colMaterialUnit:     "кг",
			colMaterialPrice:    "100",
			colMaterialStock:    "50",
			colMaterialMin:      "10",
			colMaterialPackage:  "5",
		},
		{
			colMaterialName:     "Клей",
			colMaterialTypeName: "Дерево",
			colMaterialUnit:     "мл", // unknown, registered on the fly
			colMaterialPrice:    "20",
			colMaterialStock:    "30",
			colMaterialMin:      "5",
			colMaterialPackage:  "1",
		},
	})
	if err != nil {
		t.Fatalf("ImportMaterials: %v", err)
	}
	if result.Inserted != 2 || result.CreatedUnits != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	units, err := fx.repos.Unit.List(ctx)
	if err != nil {
		t.Fatalf("List units: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	created := units[1]
	if created.Name != "мл" || created.Abbreviation != "мл" {
		t.Fatalf("lazy unit must use the abbreviation for both fields: %+v", created)
	}
}

func TestImportProductsUnknownTypeAborts(t *testing.T) {
	svc, fx := newImportService(t)
	ctx := context.Background()

	pt := testutil.SeedProductType(t, fx.db, "Стол", 1.2)
	testutil.SeedProduct(t, fx.db, "Старый стол", pt.ID)

	_, err := svc.ImportProducts(ctx, rowsource.Slice{
		{colProductTypeName: "Трон", colProductName: "Золотой трон"},
	})
	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferenceError, got %v", err)
	}

	var products []entity.Product
	if err := fx.db.Find(&products).Error; err != nil {
		t.Fatalf("find products: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Старый стол" {
		t.Fatalf("expected prior table state untouched, got %+v", products)
	}
}

func TestImportProductsDefaultsDescription(t *testing.T) {
	svc, fx := newImportService(t)
	ctx := context.Background()

	testutil.SeedProductType(t, fx.db, "Стол", 1.2)

	if _, err := svc.ImportProducts(ctx, rowsource.Slice{
		{colProductTypeName: "Стол", colProductName: "Офисный стол"},
	}); err != nil {
		t.Fatalf("ImportProducts: %v", err)
	}

	var p entity.Product
	if err := fx.db.First(&p).Error; err != nil {
		t.Fatalf("find product: %v", err)
	}
	if p.Description != "" {
		t.Fatalf("description must default to empty, got %q", p.Description)
	}
}

func TestImportLinksSkipsUnresolvedRows(t *testing.T) {
	svc, fx := newImportService(t)
	ctx := context.Background()

	mt := testutil.SeedMaterialType(t, fx.db, "Дерево")
	u := testutil.SeedUnit(t, fx.db, "килограмм", "кг")
	board := testutil.SeedMaterial(t, fx.db, "Доска", mt.ID, u.ID, 100)
	pt := testutil.SeedProductType(t, fx.db, "Мебель", 1.0)
	table := testutil.SeedProduct(t, fx.db, "Стол", pt.ID)

	result, err := svc.ImportLinks(ctx, rowsource.Slice{
		{colMaterialName: "Доска", colLinkProduct: "Стол", colLinkQuantity: "2.5"},
		{colMaterialName: "Мифрил", colLinkProduct: "Стол", colLinkQuantity: "1"},
		{colMaterialName: "Доска", colLinkProduct: "Трон", colLinkQuantity: "1"},
	})
	if err != nil {
		t.Fatalf("ImportLinks: %v", err)
	}
	if result.Inserted != 1 || result.Skipped != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}

	var links []entity.ProductMaterial
	if err := fx.db.Find(&links).Error; err != nil {
		t.Fatalf("find links: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	link := links[0]
	if link.ProductID != table.ID || link.MaterialID != board.ID || link.RequiredQuantity != 2.5 {
		t.Fatalf("unexpected link: %+v", link)
	}
	if link.LossPercentage != 0 {
		t.Fatalf("loss percentage must default to 0, got %v", link.LossPercentage)
	}
}

func TestImportMissingColumnFails(t *testing.T) {
	svc, _ := newImportService(t)
	ctx := context.Background()

	_, err := svc.ImportProductTypes(ctx, rowsource.Slice{
		{colProductTypeName: "Стол"}, // coefficient column absent
	})
	var srcErr *SourceReadError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected SourceReadError, got %v", err)
	}
}

func TestFullImport(t *testing.T) {
	svc, fx := newImportService(t)
	ctx := context.Background()

	result, err := svc.FullImport(ctx, FullImportSources{
		MaterialTypes: rowsource.Slice{
			{colMaterialTypeName: "Дерево"},
		},
		ProductTypes: rowsource.Slice{
			{colProductTypeName: "Стол", colProductTypeCoefficient: "1.2"},
		},
		Materials: rowsource.Slice{
			{
				colMaterialName:     "Доска",
				colMaterialTypeName: "Дерево",
				colMaterialUnit:     "кг",
				colMaterialPrice:    "100",
				colMaterialStock:    "50",
				colMaterialMin:      "10",
				colMaterialPackage:  "5",
			},
		},
		Products: rowsource.Slice{
			{colProductTypeName: "Стол", colProductName: "Офисный стол"},
		},
		Links: rowsource.Slice{
			{colMaterialName: "Доска", colLinkProduct: "Офисный стол", colLinkQuantity: "2.5"},
		},
	})
	if err != nil {
		t.Fatalf("FullImport: %v", err)
	}
	if result.Links == nil || result.Links.Inserted != 1 {
		t.Fatalf("link import did not resolve names from earlier steps: %+v", result.Links)
	}

	// The imported link resolves against the freshly imported ids.
	var board entity.Material
	if err := fx.db.First(&board, "name = ?", "Доска").Error; err != nil {
		t.Fatalf("find material: %v", err)
	}
	var total float64
	err = fx.db.Raw("SELECT IFNULL(SUM(required_quantity), 0) FROM product_materials WHERE material_id = ?", board.ID).
		Scan(&total).Error
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if total != 2.5 {
		t.Fatalf("expected demand 2.5 after full import, got %v", total)
	}
}

func TestFullImportAbortsOnFirstFailure(t *testing.T) {
	svc, fx := newImportService(t)
	ctx := context.Background()

	pt := testutil.SeedProductType(t, fx.db, "Старый тип", 0.5)
	testutil.SeedProduct(t, fx.db, "Старый стол", pt.ID)

	_, err := svc.FullImport(ctx, FullImportSources{
		MaterialTypes: rowsource.Slice{
			{colMaterialTypeName: "Дерево"},
		},
		ProductTypes: rowsource.Slice{
			{colProductTypeName: "Стол", colProductTypeCoefficient: "1.2"},
		},
		Materials: rowsource.Slice{
			{
				colMaterialName:     "Слиток",
				colMaterialTypeName: "Золото", // fails the materials step
				colMaterialUnit:     "кг",
				colMaterialPrice:    "1",
				colMaterialStock:    "1",
				colMaterialMin:      "0",
				colMaterialPackage:  "1",
			},
		},
		Products: rowsource.Slice{
			{colProductTypeName: "Стол", colProductName: "Новый стол"},
		},
		Links: rowsource.Slice{},
	})
	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferenceError, got %v", err)
	}

	// Earlier steps committed; later steps never ran.
	var typeCount int64
	fx.db.Model(&entity.MaterialType{}).Count(&typeCount)
	if typeCount != 1 {
		t.Fatalf("material types step should have committed, got %d rows", typeCount)
	}
	var products []entity.Product
	if err := fx.db.Find(&products).Error; err != nil {
		t.Fatalf("find products: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Старый стол" {
		t.Fatalf("products step must not have run: %+v", products)
	}
}
