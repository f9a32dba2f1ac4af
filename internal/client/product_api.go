package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/nguyentranbao-ct/product-catalog/internal/config"
	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/pkg/util"
)

// ProductAPI talks to the catalog HTTP API.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	// GetProduct returns a product with an empty ID when the server has no such id.
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (*models.WriteAck, error)
	UpdateProduct(ctx context.Context, id string, patch models.Item) (*models.WriteAck, error)
	DeleteProduct(ctx context.Context, id string) (*models.WriteAck, error)
}

// APIError is a failure envelope returned by the server.
type APIError struct {
	Status int
	models.ErrorEnvelope
}

func (e *APIError) Error() string {
	if e.ErrorMsg != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Message, e.Status, e.ErrorMsg)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

type envelope[T any] struct {
	Message string `json:"message"`
	Body    T      `json:"body"`
}

type productAPI struct {
	client *resty.Client
}

func NewProductAPI(cfg config.ClientConfig) ProductAPI {
	return &productAPI{
		client: util.NewRestyClient(cfg.BaseURL, cfg.Timeout),
	}
}

func (a *productAPI) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Item
	if err := do(ctx, a.client.R(), http.MethodGet, "/products", &items); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return util.ConvertList(items, models.ProductFromItem), nil
}

func (a *productAPI) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var item models.Item
	req := a.client.R().SetPathParam("id", id)
	if err := do(ctx, req, http.MethodGet, "/products/{id}", &item); err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	product := models.ProductFromItem(item)
	return &product, nil
}

func (a *productAPI) CreateProduct(ctx context.Context, product models.Product) (*models.WriteAck, error) {
	var ack models.WriteAck
	req := a.client.R().SetBody(product.Item())
	if err := do(ctx, req, http.MethodPost, "/products", &ack); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &ack, nil
}

func (a *productAPI) UpdateProduct(ctx context.Context, id string, patch models.Item) (*models.WriteAck, error) {
	var ack models.WriteAck
	req := a.client.R().SetPathParam("id", id).SetBody(patch)
	if err := do(ctx, req, http.MethodPut, "/products/{id}", &ack); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &ack, nil
}

func (a *productAPI) DeleteProduct(ctx context.Context, id string) (*models.WriteAck, error) {
	var ack models.WriteAck
	req := a.client.R().SetPathParam("id", id)
	if err := do(ctx, req, http.MethodDelete, "/products/{id}", &ack); err != nil {
		return nil, fmt.Errorf("delete product: %w", err)
	}
	return &ack, nil
}

func do[T any](ctx context.Context, req *resty.Request, method, url string, out *T) error {
	result := &envelope[T]{}
	failure := &models.ErrorEnvelope{}

	resp, err := req.
		SetContext(ctx).
		SetResult(result).
		SetError(failure).
		Execute(method, url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	if resp.IsError() {
		if failure.Message == "" {
			failure.Message = resp.Status()
		}
		return &APIError{Status: resp.StatusCode(), ErrorEnvelope: *failure}
	}

	*out = result.Body
	return nil
}
