package main

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cobra"

	"tradeops/collections"
	"tradeops/services"
)

// newRecalcCommand returns the "recalc" command, which recalculates and stores
// every document. It is used after the reference rates change.
func newRecalcCommand(app *pocketbase.PocketBase, rates services.ReferenceRates) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "recalc",
		Short: "Recalculate the totals of every stored document",
		RunE: func(cmd *cobra.Command, args []string) error {
			var k services.DocumentKind
			if kind != "" {
				parsed, err := services.ParseDocumentKind(kind)
				if err != nil {
					return err
				}
				k = parsed
			}

			collections.Setup(app)
			report, err := services.RecalculateAll(app, k, rates)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recalculated %d documents (%d with warnings, %d failed)\n",
				report.Total, report.Warnings, report.Failed)
			if report.Failed > 0 {
				return fmt.Errorf("%d documents could not be recalculated", report.Failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only recalculate documents of this kind (INVOICE, OFFER, LOGISTICS, COMPLEX_INQUIRY)")
	return cmd
}
