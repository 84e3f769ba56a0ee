package main

import (
	"fmt"

	"eantienda/domain/ean"

	"github.com/spf13/cobra"
)

func newEANCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ean",
		Short: "Work with EAN-13 identifiers",
	}
	cmd.AddCommand(newEANNextCmd(), newEANCheckCmd())
	return cmd
}

func newEANNextCmd() *cobra.Command {
	var inventoryFile string
	var prefix string

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Print the next free identifier for an inventory file",
		Long: `Read an inventory spreadsheet (.xlsx or .csv with Producto and EAN columns)
and print the identifier the next product would receive.

Example: eantienda-cli ean next --inventory inventario.xlsx`,
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
			if prefix == "" {
				prefix = svc.cfg.EAN.Prefix
			}
			if err := ean.ValidatePrefix(prefix); err != nil {
				return err
			}
			next, err := table.Suggest(prefix)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}

	cmd.Flags().StringVar(&inventoryFile, "inventory", "", "Inventory spreadsheet")
	cmd.Flags().StringVar(&prefix, "prefix", "", "8-digit prefix (default EAN_PREFIX)")
	_ = cmd.MarkFlagRequired("inventory")
	return cmd
}

func newEANCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check CODE...",
		Short: "Verify the check digit of one or more identifiers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invalid := 0
			for _, code := range args {
				if err := ean.Validate(code); err != nil {
					invalid++
					fmt.Fprintf(cmd.OutOrStdout(), "%s\tinvalid: %v\n", code, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tok\n", code)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d codes are invalid", invalid, len(args))
			}
			return nil
		},
	}
}
