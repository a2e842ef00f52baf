package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/obrazplus/furniture-inventory/internal/service"
)

type LinkHandler struct {
	svc *service.LinkService
}

func NewLinkHandler(svc *service.LinkService) *LinkHandler {
	return &LinkHandler{svc: svc}
}

// LinkInput carries the quantities of one BOM link as raw form fields.
type LinkInput struct {
	RequiredQuantity string `json:"required_quantity"`
	LossPercentage   string `json:"loss_percentage"`
}

// List GET /links
func (h *LinkHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rows)
}

// Upsert PUT /products/:id/materials/:materialId
func (h *LinkHandler) Upsert(c *gin.Context) {
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}
	materialID, ok := idParam(c, "materialId")
	if !ok {
		return
	}
	var input LinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	err := h.svc.Upsert(c.Request.Context(), productID, materialID, input.RequiredQuantity, input.LossPercentage)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}

// Delete DELETE /products/:id/materials/:materialId
func (h *LinkHandler) Delete(c *gin.Context) {
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}
	materialID, ok := idParam(c, "materialId")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), productID, materialID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}
