package handler_test

import (
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/handler"
	"github.com/obrazplus/furniture-inventory/internal/repository"
	"github.com/obrazplus/furniture-inventory/internal/service"
	"github.com/obrazplus/furniture-inventory/internal/testutil"
)

func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := service.NewServices(repos, db, zap.NewNop())
	h := handler.NewHandlers(svc, handler.NewLookupHandler(repos))

	r := testutil.SetupRouter()
	handler.RegisterRoutes(r, h)
	return r, db
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestMaterialCRUD(t *testing.T) {
	r, db := setupAPI(t)
	mt := testutil.SeedMaterialType(t, db, "Дерево")
	u := testutil.SeedUnit(t, db, "килограмм", "кг")

	body := map[string]interface{}{
		"name":             "Доска",
		"material_type_id": mt.ID,
		"unit_id":          u.ID,
		"unit_price":       "120.5",
		"stock_quantity":   "40",
		"min_quantity":     "10",
		"package_quantity": "5",
	}
	w := testutil.DoRequest(r, "POST", "/api/v1/materials", body)
	if w.Code != 201 {
		t.Fatalf("create: status %d, body %s", w.Code, w.Body.String())
	}
	created := testutil.ParseResponse(w)
	data := created["data"].(map[string]interface{})
	id := int64(data["material_id"].(float64))
	if id == 0 {
		t.Fatal("created material has no id")
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/materials", nil)
	if w.Code != 200 {
		t.Fatalf("list: status %d", w.Code)
	}
	listed := testutil.ParseResponse(w)
	rows := listed["data"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("expected 1 material, got %d", len(rows))
	}
	row := rows[0].(map[string]interface{})
	if row["name"] != "Доска" || row["type_name"] != "Дерево" {
		t.Fatalf("unexpected listing row: %v", row)
	}
	if row["required_quantity"].(float64) != 0 {
		t.Fatalf("demand for an unlinked material must be 0, got %v", row["required_quantity"])
	}

	body["unit_price"] = "99"
	w = testutil.DoRequest(r, "PUT", "/api/v1/materials/"+itoa(id), body)
	if w.Code != 200 {
		t.Fatalf("update: status %d, body %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "DELETE", "/api/v1/materials/"+itoa(id), nil)
	if w.Code != 200 {
		t.Fatalf("delete: status %d", w.Code)
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/materials", nil)
	listed = testutil.ParseResponse(w)
	if listed["data"] != nil {
		rows = listed["data"].([]interface{})
		if len(rows) != 0 {
			t.Fatalf("expected empty listing after delete, got %v", rows)
		}
	}
}

func TestMaterialCreateRejectsBadNumbers(t *testing.T) {
	r, db := setupAPI(t)
	mt := testutil.SeedMaterialType(t, db, "Дерево")
	u := testutil.SeedUnit(t, db, "килограмм", "кг")

	w := testutil.DoRequest(r, "POST", "/api/v1/materials", map[string]interface{}{
		"name":             "Доска",
		"material_type_id": mt.ID,
		"unit_id":          u.ID,
		"unit_price":       "дорого",
		"stock_quantity":   "40",
		"min_quantity":     "10",
		"package_quantity": "5",
	})
	if w.Code != 400 {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 40000 {
		t.Fatalf("unexpected envelope code: %v", resp["code"])
	}
}

func TestMaterialCreateUnknownReferenceConflicts(t *testing.T) {
	r, _ := setupAPI(t)

	w := testutil.DoRequest(r, "POST", "/api/v1/materials", map[string]interface{}{
		"name":             "Доска",
		"material_type_id": 999,
		"unit_id":          999,
		"unit_price":       "1",
		"stock_quantity":   "1",
		"min_quantity":     "0",
		"package_quantity": "1",
	})
	if w.Code != 409 {
		t.Fatalf("expected 409 for a foreign key violation, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMaterialInvalidIDParam(t *testing.T) {
	r, _ := setupAPI(t)

	w := testutil.DoRequest(r, "DELETE", "/api/v1/materials/abc", nil)
	if w.Code != 400 {
		t.Fatalf("expected 400 for a non-numeric id, got %d", w.Code)
	}
}

func TestLinkUpsertUpdatesDemand(t *testing.T) {
	r, db := setupAPI(t)
	mt := testutil.SeedMaterialType(t, db, "Дерево")
	u := testutil.SeedUnit(t, db, "килограмм", "кг")
	board := testutil.SeedMaterial(t, db, "Доска", mt.ID, u.ID, 100)
	pt := testutil.SeedProductType(t, db, "Мебель", 1.0)
	table := testutil.SeedProduct(t, db, "Стол", pt.ID)

	path := "/api/v1/products/" + itoa(table.ID) + "/materials/" + itoa(board.ID)
	w := testutil.DoRequest(r, "PUT", path, map[string]string{
		"required_quantity": "2.5",
		"loss_percentage":   "1",
	})
	if w.Code != 200 {
		t.Fatalf("upsert: status %d, body %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/materials", nil)
	rows := testutil.ParseResponse(w)["data"].([]interface{})
	row := rows[0].(map[string]interface{})
	if row["required_quantity"].(float64) != 2.5 {
		t.Fatalf("expected demand 2.5 after upsert, got %v", row["required_quantity"])
	}

	w = testutil.DoRequest(r, "PUT", path, map[string]string{
		"required_quantity": "0",
		"loss_percentage":   "0",
	})
	if w.Code != 400 {
		t.Fatalf("zero quantity must be rejected, got %d", w.Code)
	}

	w = testutil.DoRequest(r, "DELETE", path, nil)
	if w.Code != 200 {
		t.Fatalf("delete link: status %d", w.Code)
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/links", nil)
	resp := testutil.ParseResponse(w)
	if resp["data"] != nil {
		links := resp["data"].([]interface{})
		if len(links) != 0 {
			t.Fatalf("expected no links after delete, got %v", links)
		}
	}
}

func TestMaterialUnknownIDReturnsNotFound(t *testing.T) {
	r, db := setupAPI(t)
	mt := testutil.SeedMaterialType(t, db, "Дерево")
	u := testutil.SeedUnit(t, db, "килограмм", "кг")

	body := map[string]interface{}{
		"name":             "Доска",
		"material_type_id": mt.ID,
		"unit_id":          u.ID,
		"unit_price":       "100",
		"stock_quantity":   "40",
		"min_quantity":     "10",
		"package_quantity": "5",
	}
	w := testutil.DoRequest(r, "PUT", "/api/v1/materials/999", body)
	if w.Code != 404 {
		t.Fatalf("update of unknown id: expected 404, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 40400 {
		t.Fatalf("unexpected envelope code: %v", resp["code"])
	}

	w = testutil.DoRequest(r, "DELETE", "/api/v1/materials/999", nil)
	if w.Code != 404 {
		t.Fatalf("delete of unknown id: expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProductUnknownIDReturnsNotFound(t *testing.T) {
	r, db := setupAPI(t)
	pt := testutil.SeedProductType(t, db, "Мебель", 1.0)

	w := testutil.DoRequest(r, "PUT", "/api/v1/products/999", map[string]interface{}{
		"name":            "Стол",
		"product_type_id": pt.ID,
	})
	if w.Code != 404 {
		t.Fatalf("update of unknown id: expected 404, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "DELETE", "/api/v1/products/999", nil)
	if w.Code != 404 {
		t.Fatalf("delete of unknown id: expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLinkDeleteUnknownPairReturnsNotFound(t *testing.T) {
	r, _ := setupAPI(t)

	w := testutil.DoRequest(r, "DELETE", "/api/v1/products/1/materials/1", nil)
	if w.Code != 404 {
		t.Fatalf("delete of unknown pair: expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMaterialProductsListsConsumers(t *testing.T) {
	r, db := setupAPI(t)
	mt := testutil.SeedMaterialType(t, db, "Дерево")
	u := testutil.SeedUnit(t, db, "килограмм", "кг")
	board := testutil.SeedMaterial(t, db, "Доска", mt.ID, u.ID, 100)
	glue := testutil.SeedMaterial(t, db, "Клей", mt.ID, u.ID, 20)
	pt := testutil.SeedProductType(t, db, "Мебель", 1.0)
	table := testutil.SeedProduct(t, db, "Стол", pt.ID)
	chair := testutil.SeedProduct(t, db, "Стул", pt.ID)
	testutil.SeedLink(t, db, table.ID, board.ID, 2.5, 0)
	testutil.SeedLink(t, db, chair.ID, board.ID, 1.0, 0)

	w := testutil.DoRequest(r, "GET", "/api/v1/materials/"+itoa(board.ID)+"/products", nil)
	if w.Code != 200 {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	rows := testutil.ParseResponse(w)["data"].([]interface{})
	if len(rows) != 2 {
		t.Fatalf("expected 2 consuming products, got %d", len(rows))
	}
	first := rows[0].(map[string]interface{})
	if first["product_name"] != "Стол" || first["required_quantity"].(float64) != 2.5 ||
		first["unit_abbreviation"] != "кг" {
		t.Fatalf("unexpected first row: %v", first)
	}

	// A material no product consumes yields an empty list, not an error.
	w = testutil.DoRequest(r, "GET", "/api/v1/materials/"+itoa(glue.ID)+"/products", nil)
	if w.Code != 200 {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["data"] != nil && len(resp["data"].([]interface{})) != 0 {
		t.Fatalf("expected no consumers, got %v", resp["data"])
	}

	// An unknown material id is 404, not an empty list.
	w = testutil.DoRequest(r, "GET", "/api/v1/materials/999/products", nil)
	if w.Code != 404 {
		t.Fatalf("unknown material: expected 404, got %d", w.Code)
	}
}

func TestLookupEndpoints(t *testing.T) {
	r, db := setupAPI(t)
	testutil.SeedMaterialType(t, db, "Дерево")
	testutil.SeedUnit(t, db, "килограмм", "кг")
	testutil.SeedProductType(t, db, "Мебель", 1.2)

	for _, path := range []string{
		"/api/v1/material-types",
		"/api/v1/units",
		"/api/v1/product-types",
	} {
		w := testutil.DoRequest(r, "GET", path, nil)
		if w.Code != 200 {
			t.Fatalf("%s: status %d", path, w.Code)
		}
		resp := testutil.ParseResponse(w)
		if len(resp["data"].([]interface{})) != 1 {
			t.Fatalf("%s: expected 1 row, got %v", path, resp["data"])
		}
	}
}
