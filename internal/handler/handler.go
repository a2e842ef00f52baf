package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/obrazplus/furniture-inventory/internal/service"
)

// Handlers bundles every HTTP handler.
type Handlers struct {
	Material *MaterialHandler
	Product  *ProductHandler
	Link     *LinkHandler
	Lookup   *LookupHandler
	Import   *ImportHandler
	Export   *ExportHandler
}

func NewHandlers(svc *service.Services, lookups *LookupHandler) *Handlers {
	return &Handlers{
		Material: NewMaterialHandler(svc.Material),
		Product:  NewProductHandler(svc.Product),
		Link:     NewLinkHandler(svc.Link),
		Lookup:   lookups,
		Import:   NewImportHandler(svc.Import),
		Export:   NewExportHandler(svc.Export),
	}
}

// Response is the common envelope of every JSON reply.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 200 response
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 201 response
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error envelope; the HTTP status is code/100.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// Fail maps a service error to an HTTP error response by its kind.
func Fail(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var referenceErr *service.ReferenceError
	var constraintErr *service.StorageConstraintError
	var sourceErr *service.SourceReadError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &referenceErr), errors.As(err, &sourceErr):
		BadRequest(c, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, err.Error())
	case errors.As(err, &constraintErr):
		Conflict(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
