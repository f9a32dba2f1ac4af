package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentranbao-ct/product-catalog/internal/catalogui"
	"github.com/nguyentranbao-ct/product-catalog/internal/client"
	"github.com/nguyentranbao-ct/product-catalog/internal/importer"
	"github.com/nguyentranbao-ct/product-catalog/internal/models"
)

var productFlags struct {
	name     string
	price    string
	category string
}

var importFile string

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Work with the catalog through its HTTP API",
}

func newModel() *catalogui.Model {
	return catalogui.NewModel(client.NewProductAPI(conf.Client), log.Named("client"))
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m := newModel()
		if err := m.Mount(cmd.Context()); err != nil {
			return err
		}
		return m.Render(cmd.OutOrStdout())
	},
}

var clientGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m := newModel()
		if err := m.SelectProduct(cmd.Context(), args[0]); err != nil {
			return err
		}
		if m.SelectedProduct == nil {
			return fmt.Errorf("product %s not found", args[0])
		}
		return m.Render(cmd.OutOrStdout())
	},
}

var clientCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m := newModel()
		setInputs(cmd, m)
		if err := m.CreateProduct(cmd.Context()); err != nil {
			return err
		}
		return m.Render(cmd.OutOrStdout())
	},
}

var clientUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update the given fields of a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m := newModel()
		if err := m.SelectProduct(cmd.Context(), args[0]); err != nil {
			return err
		}
		if err := m.EditSelected(); err != nil {
			return fmt.Errorf("product %s: %w", args[0], err)
		}
		setInputs(cmd, m)
		if err := m.SaveEdit(cmd.Context()); err != nil {
			return err
		}
		return m.Render(cmd.OutOrStdout())
	},
}

var clientDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m := newModel()
		if err := m.DeleteProduct(cmd.Context(), args[0]); err != nil {
			return err
		}
		return m.Render(cmd.OutOrStdout())
	},
}

var clientImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Create products from the rows of an Excel workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := importer.ReadFile(importFile)
		if err != nil {
			return err
		}

		m := newModel()
		created, err := importer.Import(cmd.Context(), m, products)
		log.Infow("import finished", "file", importFile, "rows", len(products), "created", created)
		if err != nil {
			return err
		}
		return m.Render(cmd.OutOrStdout())
	},
}

// setInputs copies the flags the user set into the form.
func setInputs(cmd *cobra.Command, m *catalogui.Model) {
	inputs := map[string]string{
		models.AttrName:     productFlags.name,
		models.AttrPrice:    productFlags.price,
		models.AttrCategory: productFlags.category,
	}
	for key, value := range inputs {
		if cmd.Flags().Changed(key) {
			_ = m.SetInput(key, value)
		}
	}
}

func init() {
	for _, c := range []*cobra.Command{clientCreateCmd, clientUpdateCmd} {
		c.Flags().StringVar(&productFlags.name, models.AttrName, "", "product name")
		c.Flags().StringVar(&productFlags.price, models.AttrPrice, "", "product price")
		c.Flags().StringVar(&productFlags.category, models.AttrCategory, "", "product category")
	}

	clientImportCmd.Flags().StringVarP(&importFile, "file", "f", "", "path to an .xlsx workbook")
	_ = clientImportCmd.MarkFlagRequired("file")

	clientCmd.AddCommand(
		clientListCmd,
		clientGetCmd,
		clientCreateCmd,
		clientUpdateCmd,
		clientDeleteCmd,
		clientImportCmd,
	)
}
