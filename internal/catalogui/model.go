// Package catalogui holds the client side view state of the catalog: the
// create/edit form, the fetched product list and the selected product.
package catalogui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nguyentranbao-ct/product-catalog/internal/client"
	"github.com/nguyentranbao-ct/product-catalog/internal/models"
)

var (
	ErrIncompleteForm = errors.New("name and price are required")
	ErrNoSelection    = errors.New("no product selected")
	ErrNotEditing     = errors.New("not editing")
	ErrUnknownInput   = errors.New("unknown input")
)

// FormState mirrors the three inputs of the form.
type FormState struct {
	Name     string `json:"name" validate:"required"`
	Price    string `json:"price" validate:"required"`
	Category string `json:"category"`
}

func (f FormState) item() models.Item {
	return models.Item{
		models.AttrName:     f.Name,
		models.AttrPrice:    f.Price,
		models.AttrCategory: f.Category,
	}
}

func (f FormState) product(id string) models.Product {
	return models.Product{ID: id, Name: f.Name, Price: models.Price(f.Price), Category: f.Category}
}

// Model is not safe for concurrent use.
type Model struct {
	Form            FormState
	Products        []models.Product
	SelectedProduct *models.Product
	IsEditing       bool

	api      client.ProductAPI
	log      *zap.SugaredLogger
	validate *validator.Validate
}

func NewModel(api client.ProductAPI, log *zap.SugaredLogger) *Model {
	return &Model{
		Products: []models.Product{},
		api:      api,
		log:      log,
		validate: validator.New(),
	}
}

// Mount loads the product list.
func (m *Model) Mount(ctx context.Context) error {
	return m.refresh(ctx)
}

func (m *Model) SetInput(key, value string) error {
	switch key {
	case models.AttrName:
		m.Form.Name = value
	case models.AttrPrice:
		m.Form.Price = value
	case models.AttrCategory:
		m.Form.Category = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownInput, key)
	}
	return nil
}

// CreateProduct posts the form. Nothing is sent unless name and price are set.
func (m *Model) CreateProduct(ctx context.Context) error {
	if err := m.validate.Struct(m.Form); err != nil {
		return ErrIncompleteForm
	}

	ack, err := m.api.CreateProduct(ctx, m.Form.product(""))
	if err != nil {
		m.log.Errorw("error creating the product", "error", err)
		return err
	}

	m.Products = append(m.Products, m.Form.product(ack.ID))
	m.Form = FormState{}
	return m.refresh(ctx)
}

// SelectProduct fetches one product. An unknown id clears the selection.
func (m *Model) SelectProduct(ctx context.Context, id string) error {
	product, err := m.api.GetProduct(ctx, id)
	if err != nil {
		m.log.Errorw("error getting the product", "id", id, "error", err)
		return err
	}

	m.IsEditing = false
	if product.ID == "" {
		m.SelectedProduct = nil
		return nil
	}
	m.SelectedProduct = product
	return nil
}

// EditSelected copies the selected product into the form.
func (m *Model) EditSelected() error {
	if m.SelectedProduct == nil {
		return ErrNoSelection
	}
	m.IsEditing = true
	m.Form = FormState{
		Name:     m.SelectedProduct.Name,
		Price:    m.SelectedProduct.Price.String(),
		Category: m.SelectedProduct.Category,
	}
	return nil
}

func (m *Model) CancelEdit() {
	m.IsEditing = false
	m.Form = FormState{}
}

// SaveEdit sends the form fields as an update of the selected product.
func (m *Model) SaveEdit(ctx context.Context) error {
	if !m.IsEditing {
		return ErrNotEditing
	}
	if m.SelectedProduct == nil {
		return ErrNoSelection
	}

	id := m.SelectedProduct.ID
	if _, err := m.api.UpdateProduct(ctx, id, m.Form.item()); err != nil {
		m.log.Errorw("error updating the product", "id", id, "error", err)
		return err
	}

	updated := m.Form.product(id)
	for i := range m.Products {
		if m.Products[i].ID == id {
			m.Products[i] = updated
		}
	}
	m.IsEditing = false
	m.Form = FormState{}

	if err := m.refresh(ctx); err != nil {
		return err
	}
	return m.SelectProduct(ctx, id)
}

func (m *Model) DeleteProduct(ctx context.Context, id string) error {
	if _, err := m.api.DeleteProduct(ctx, id); err != nil {
		m.log.Errorw("error deleting the product", "id", id, "error", err)
		return err
	}

	m.Products = slices.DeleteFunc(m.Products, func(p models.Product) bool {
		return p.ID == id
	})
	m.SelectedProduct = nil
	m.IsEditing = false
	return m.refresh(ctx)
}

// Render writes the current view to w.
func (m *Model) Render(w io.Writer) error {
	return view.Execute(w, m)
}

func (m *Model) refresh(ctx context.Context) error {
	products, err := m.api.ListProducts(ctx)
	if err != nil {
		m.log.Errorw("error getting the data", "error", err)
		return err
	}
	m.Products = products
	return nil
}
