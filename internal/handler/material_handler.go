package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/obrazplus/furniture-inventory/internal/service"
)

type MaterialHandler struct {
	svc *service.MaterialService
}

func NewMaterialHandler(svc *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{svc: svc}
}

// List GET /materials
func (h *MaterialHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rows)
}

// Products GET /materials/:id/products lists the products consuming the
// material.
func (h *MaterialHandler) Products(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	rows, err := h.svc.Products(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rows)
}

// Create POST /materials
func (h *MaterialHandler) Create(c *gin.Context) {
	var input service.MaterialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	m, err := h.svc.Save(c.Request.Context(), input, nil)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, m)
}

// Update PUT /materials/:id
func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input service.MaterialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	m, err := h.svc.Save(c.Request.Context(), input, &id)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, m)
}

// Delete DELETE /materials/:id
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}
