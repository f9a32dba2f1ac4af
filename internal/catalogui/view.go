package catalogui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/pkg/tmplx"
)

const viewText = `Products
{{- if .IsEditing}}
Editing {{.SelectedProduct.ID}}
{{- end}}
  Name:     {{.Form.Name}}
  Price:    {{.Form.Price}}
  Category: {{.Form.Category}}

{{pad 36 "ID"}}  {{pad 24 "NAME"}}  {{pad 10 "PRICE"}}  CATEGORY
{{- range .Products}}
{{pad 36 (default "-" .ID)}}  {{pad 24 (truncate 24 .Name)}}  {{pad 10 .Price}}  {{.Category}}
{{- else}}
(no products)
{{- end}}
{{- with .SelectedProduct}}

Selected Product Details
  ID:       {{.ID}}
  Name:     {{.Name}}
  Price:    {{.Price}}
  Category: {{.Category}}
{{- end}}
`

var view = tmplx.MustParse("catalog", viewText, tmplx.WithValidate(
	&Model{
		Products:        []models.Product{{ID: "p1", Name: "Sample", Price: "1"}},
		SelectedProduct: &models.Product{ID: "p1", Name: "Sample", Price: "1"},
		IsEditing:       true,
	},
	func(buf *bytes.Buffer) error {
		if !strings.Contains(buf.String(), "Selected Product Details") {
			return fmt.Errorf("selection section missing")
		}
		return nil
	},
))
