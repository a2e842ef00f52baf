package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every API route under /api/v1.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/materials", h.Material.List)
		v1.POST("/materials", h.Material.Create)
		v1.PUT("/materials/:id", h.Material.Update)
		v1.DELETE("/materials/:id", h.Material.Delete)
		v1.GET("/materials/:id/products", h.Material.Products)

		v1.GET("/material-types", h.Lookup.MaterialTypes)
		v1.GET("/units", h.Lookup.Units)
		v1.GET("/product-types", h.Lookup.ProductTypes)

		v1.GET("/products", h.Product.List)
		v1.POST("/products", h.Product.Create)
		v1.PUT("/products/:id", h.Product.Update)
		v1.DELETE("/products/:id", h.Product.Delete)

		v1.GET("/links", h.Link.List)
		v1.PUT("/products/:id/materials/:materialId", h.Link.Upsert)
		v1.DELETE("/products/:id/materials/:materialId", h.Link.Delete)

		imports := v1.Group("/import")
		{
			imports.POST("/material-types", h.Import.MaterialTypes)
			imports.POST("/product-types", h.Import.ProductTypes)
			imports.POST("/materials", h.Import.Materials)
			imports.POST("/products", h.Import.Products)
			imports.POST("/links", h.Import.Links)
			imports.POST("/full", h.Import.Full)
		}

		exports := v1.Group("/export")
		{
			exports.GET("/material-types", h.Export.MaterialTypes)
			exports.GET("/product-types", h.Export.ProductTypes)
			exports.GET("/materials", h.Export.Materials)
			exports.GET("/products", h.Export.Products)
			exports.GET("/links", h.Export.Links)
		}
	}
}
