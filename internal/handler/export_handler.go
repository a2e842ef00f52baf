package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/obrazplus/furniture-inventory/internal/service"
)

type ExportHandler struct {
	svc *service.ExportService
}

func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func (h *ExportHandler) serve(c *gin.Context, export func(ctx context.Context) (*excelize.File, string, error)) {
	f, filename, err := export(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	// The attachment headers are already sent, so a failed write cannot be
	// turned into a JSON error response; record it for the request logger.
	if err := f.Write(c.Writer); err != nil {
		c.Error(err)
	}
}

// MaterialTypes GET /export/material-types
func (h *ExportHandler) MaterialTypes(c *gin.Context) {
	h.serve(c, h.svc.ExportMaterialTypes)
}

// ProductTypes GET /export/product-types
func (h *ExportHandler) ProductTypes(c *gin.Context) {
	h.serve(c, h.svc.ExportProductTypes)
}

// Materials GET /export/materials
func (h *ExportHandler) Materials(c *gin.Context) {
	h.serve(c, h.svc.ExportMaterials)
}

// Products GET /export/products
func (h *ExportHandler) Products(c *gin.Context) {
	h.serve(c, h.svc.ExportProducts)
}

// Links GET /export/links
func (h *ExportHandler) Links(c *gin.Context) {
	h.serve(c, h.svc.ExportLinks)
}
