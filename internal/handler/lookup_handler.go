package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/obrazplus/furniture-inventory/internal/repository"
)

// LookupHandler serves the reference lists the entity forms need to fill
// their selectors.
type LookupHandler struct {
	repos *repository.Repositories
}

func NewLookupHandler(repos *repository.Repositories) *LookupHandler {
	return &LookupHandler{repos: repos}
}

// MaterialTypes GET /material-types
func (h *LookupHandler) MaterialTypes(c *gin.Context) {
	types, err := h.repos.MaterialType.List(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, types)
}

// Units GET /units
func (h *LookupHandler) Units(c *gin.Context) {
	units, err := h.repos.Unit.List(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, units)
}

// ProductTypes GET /product-types
func (h *LookupHandler) ProductTypes(c *gin.Context) {
	types, err := h.repos.ProductType.List(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, types)
}
