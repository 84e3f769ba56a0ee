package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newCodesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Issue unique ticket codes",
	}
	cmd.AddCommand(newCodesGenerateCmd())
	return cmd
}

func newCodesGenerateCmd() *cobra.Command {
	var historyFile string
	var count int
	var prefix string
	var outHistory string
	var outPDF string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate codes absent from a history file",
		Long: `Generate COUNT new codes that do not appear in the history file, print them,
and write the updated history next to the original (or to --out-history).

Example: eantienda-cli codes generate --history codigos_unicos_historial.xlsx --count 50 --out-pdf entradas.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices()
			if err != nil {
				return err
			}
			book, err := svc.loadHistory(historyFile)
			if err != nil {
				return err
			}

			batch, err := svc.codes.Generate(book, count, prefix)
			if err != nil {
				return err
			}
			for _, code := range batch {
				fmt.Fprintln(cmd.OutOrStdout(), code)
			}

			history, err := svc.codes.ExportHistory(book)
			if err != nil {
				return err
			}
			if outHistory == "" {
				outHistory = filepath.Join(filepath.Dir(historyFile), history.Name)
			}
			if err := writeFile(outHistory, history); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "history with %d codes written to %s\n", book.History.Len(), outHistory)

			if outPDF != "" {
				cards, err := svc.codes.RenderLastBatch(book)
				if err != nil {
					return err
				}
				if err := writeFile(outPDF, cards); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "cards written to %s\n", outPDF)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&historyFile, "history", "", "History spreadsheet of issued codes")
	cmd.Flags().IntVar(&count, "count", 10, "Number of codes to generate")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Optional prefix of up to 4 letters or digits")
	cmd.Flags().StringVar(&outHistory, "out-history", "", "Updated history file (default: next to --history)")
	cmd.Flags().StringVar(&outPDF, "out-pdf", "", "Also print the new codes, one per card")
	_ = cmd.MarkFlagRequired("history")
	return cmd
}
