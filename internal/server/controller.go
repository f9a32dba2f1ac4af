package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/internal/usecase"
)

type Controller interface {
	GetProduct(c echo.Context, req GetProductRequest) (models.Item, error)
	ListProducts(c echo.Context, req ListProductsRequest) ([]models.Item, error)
	CreateProduct(c echo.Context, req CreateProductRequest) (*models.WriteAck, error)
	UpdateProduct(c echo.Context, req UpdateProductRequest) (*models.WriteAck, error)
	DeleteProduct(c echo.Context, req DeleteProductRequest) (*models.WriteAck, error)
	Health(c echo.Context) error
}

type GetProductRequest struct {
	ID string `param:"id" validate:"required"`
}

type ListProductsRequest struct{}

type CreateProductRequest struct {
	Payload models.Item `body:"json"`
}

type UpdateProductRequest struct {
	ID    string      `param:"id" validate:"required"`
	Patch models.Item `body:"json"`
}

type DeleteProductRequest struct {
	ID string `param:"id" validate:"required"`
}

type controller struct {
	products usecase.ProductUsecase
}

func NewController(products usecase.ProductUsecase) Controller {
	return &controller{
		products: products,
	}
}

func (h *controller) GetProduct(c echo.Context, req GetProductRequest) (models.Item, error) {
	return h.products.GetProduct(c.Request().Context(), req.ID)
}

func (h *controller) ListProducts(c echo.Context, _ ListProductsRequest) ([]models.Item, error) {
	return h.products.ListProducts(c.Request().Context())
}

func (h *controller) CreateProduct(c echo.Context, req CreateProductRequest) (*models.WriteAck, error) {
	return h.products.CreateProduct(c.Request().Context(), req.Payload)
}

func (h *controller) UpdateProduct(c echo.Context, req UpdateProductRequest) (*models.WriteAck, error) {
	return h.products.UpdateProduct(c.Request().Context(), req.ID, req.Patch)
}

func (h *controller) DeleteProduct(c echo.Context, req DeleteProductRequest) (*models.WriteAck, error) {
	return h.products.DeleteProduct(c.Request().Context(), req.ID)
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "product-catalog",
	})
}
