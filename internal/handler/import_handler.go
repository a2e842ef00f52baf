package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/obrazplus/furniture-inventory/internal/rowsource"
	"github.com/obrazplus/furniture-inventory/internal/service"
)

type ImportHandler struct {
	svc *service.ImportService
}

func NewImportHandler(svc *service.ImportService) *ImportHandler {
	return &ImportHandler{svc: svc}
}

func formSource(c *gin.Context, field string) (rowsource.Source, func(), bool) {
	file, _, err := c.Request.FormFile(field)
	if err != nil {
		BadRequest(c, "upload an xlsx file in field "+field)
		return nil, nil, false
	}

	src, err := rowsource.OpenXLSX(file)
	if err != nil {
		file.Close()
		BadRequest(c, "cannot parse xlsx file: "+err.Error())
		return nil, nil, false
	}

	cleanup := func() {
		src.Close()
		file.Close()
	}
	return src, cleanup, true
}

func (h *ImportHandler) runImport(c *gin.Context, do func(ctx context.Context, src rowsource.Source) (*service.ImportResult, error)) {
	src, cleanup, ok := formSource(c, "file")
	if !ok {
		return
	}
	defer cleanup()

	result, err := do(c.Request.Context(), src)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, result)
}

// MaterialTypes POST /import/material-types
func (h *ImportHandler) MaterialTypes(c *gin.Context) {
	h.runImport(c, h.svc.ImportMaterialTypes)
}

// ProductTypes POST /import/product-types
func (h *ImportHandler) ProductTypes(c *gin.Context) {
	h.runImport(c, h.svc.ImportProductTypes)
}

// Materials POST /import/materials
func (h *ImportHandler) Materials(c *gin.Context) {
	h.runImport(c, h.svc.ImportMaterials)
}

// Products POST /import/products
func (h *ImportHandler) Products(c *gin.Context) {
	h.runImport(c, h.svc.ImportProducts)
}

// Links POST /import/links
func (h *ImportHandler) Links(c *gin.Context) {
	h.runImport(c, h.svc.ImportLinks)
}

// Full POST /import/full takes the five files in one multipart request:
// material_types, product_types, materials, products, links.
func (h *ImportHandler) Full(c *gin.Context) {
	var sources service.FullImportSources
	var cleanups []func()
	defer func() {
		for _, f := range cleanups {
			f()
		}
	}()

	fields := []struct {
		name string
		dst  *rowsource.Source
	}{
		{"material_types", &sources.MaterialTypes},
		{"product_types", &sources.ProductTypes},
		{"materials", &sources.Materials},
		{"products", &sources.Products},
		{"links", &sources.Links},
	}
	for _, f := range fields {
		src, cleanup, ok := formSource(c, f.name)
		if !ok {
			return
		}
		cleanups = append(cleanups, cleanup)
		*f.dst = src
	}

	result, err := h.svc.FullImport(c.Request.Context(), sources)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, result)
}
