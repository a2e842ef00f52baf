package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/obrazplus/furniture-inventory/internal/entity"
	"github.com/obrazplus/furniture-inventory/internal/repository"
)

// SetupTestDB opens an isolated in-memory sqlite store with the schema
// created and foreign keys enforced, matching the production setup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A single connection keeps the in-memory database alive and private to
	// this test.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := repository.InitSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// SetupRouter creates a gin test router.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// DoRequest executes a JSON request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response envelope into a map.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedMaterialType creates a material type row.
func SeedMaterialType(t *testing.T, db *gorm.DB, name string) *entity.MaterialType {
	t.Helper()
	mt := &entity.MaterialType{Name: name}
	if err := db.Create(mt).Error; err != nil {
		t.Fatalf("Failed to seed material type: %v", err)
	}
	return mt
}

// SeedUnit creates a unit row.
func SeedUnit(t *testing.T, db *gorm.DB, name, abbreviation string) *entity.Unit {
	t.Helper()
	u := &entity.Unit{Name: name, Abbreviation: abbreviation}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("Failed to seed unit: %v", err)
	}
	return u
}

// SeedMaterial creates a material row referencing the given type and unit.
func SeedMaterial(t *testing.T, db *gorm.DB, name string, typeID, unitID int64, price float64) *entity.Material {
	t.Helper()
	m := &entity.Material{
		Name:            name,
		MaterialTypeID:  typeID,
		UnitID:          unitID,
		UnitPrice:       price,
		StockQuantity:   50,
		MinQuantity:     10,
		PackageQuantity: 5,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("Failed to seed material: %v", err)
	}
	return m
}

// SeedProductType creates a product type row.
func SeedProductType(t *testing.T, db *gorm.DB, name string, coefficient float64) *entity.ProductType {
	t.Helper()
	pt := &entity.ProductType{Name: name, Coefficient: coefficient}
	if err := db.Create(pt).Error; err != nil {
		t.Fatalf("Failed to seed product type: %v", err)
	}
	return pt
}

// SeedProduct creates a product row referencing the given type.
func SeedProduct(t *testing.T, db *gorm.DB, name string, typeID int64) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, ProductTypeID: typeID}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return p
}

// SeedLink creates a BOM link row.
func SeedLink(t *testing.T, db *gorm.DB, productID, materialID int64, required, loss float64) *entity.ProductMaterial {
	t.Helper()
	link := &entity.ProductMaterial{
		ProductID:        productID,
		MaterialID:       materialID,
		RequiredQuantity: required,
		LossPercentage:   loss,
	}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("Failed to seed link: %v", err)
	}
	return link
}
