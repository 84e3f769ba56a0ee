package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLabelsCmd() *cobra.Command {
	var inventoryFile string
	var products []string
	var out string

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Print label sheets for products of an inventory file",
		Long: `Render one A4 sheet of identical labels per selected product.

Example: eantienda-cli labels --inventory inventario.xlsx --product "Shirt Red - M" --out etiquetas.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices()
			if err != nil {
				return err
			}
			table, err := svc.loadInventory(inventoryFile)
			if err != nil {
				return err
			}

			file, failures, err := svc.inventory.RenderLabels(table, products)
			for _, failure := range failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s (%s): %s\n", failure.Caption, failure.Code, failure.Reason)
			}
			if err != nil {
				return err
			}
			if err := writeFile(out, file); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d skipped)\n", out, len(failures))
			return nil
		},
	}

	cmd.Flags().StringVar(&inventoryFile, "inventory", "", "Inventory spreadsheet")
	cmd.Flags().StringArrayVar(&products, "product", nil, "Product name to print (repeatable)")
	cmd.Flags().StringVar(&out, "out", "etiquetas.pdf", "Output PDF")
	_ = cmd.MarkFlagRequired("inventory")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}
