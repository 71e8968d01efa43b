package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/spf13/cobra"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Query and export payments across deals",
}

var ledgerQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "List ledger rows matching the filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		result, svcErr := a.ledger.Run(cmd.Context(), ledgerFilter(cmd))
		if svcErr != nil {
			return svcErr
		}

		out := cmd.OutOrStdout()
		if len(result.Rows) > 0 {
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDEAL\tDATE\tAMOUNT\tSTATUS\tPAYERS\tPAYEES")
			for _, v := range result.Rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					v.ID, v.DealID, v.DateOnly(), v.Amount.String(), v.Status, v.Payers, v.Payees)
			}
			tw.Flush()
		}
		s := result.Summary
		fmt.Fprintf(out, "%d payments (%d paid, %d pending)\n", s.Total, s.Paid, s.Pending)
		return nil
	},
}

var ledgerExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ledger rows to a file",
	Long: `Export ledger rows to a file.

csv and xlsx are built locally from the filtered rows unless --server is
given, in which case the backend renders the csv. pdf always comes from the
backend.`,
	Args: cobra.NoArgs,
	RunE: runLedgerExport,
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.AddCommand(ledgerQueryCmd, ledgerExportCmd)

	for _, c := range []*cobra.Command{ledgerQueryCmd, ledgerExportCmd} {
		f := c.Flags()
		f.String("deal", "", "Deal id")
		f.String("mode", "", "Payment mode")
		f.String("party-type", "", "Party type (owner, investor, buyer or other)")
		f.String("party-id", "", "Party id")
		f.String("type", "", "Payment type")
		f.String("person", "", "Person name search")
		f.String("status", "", "Payment status (paid or pending)")
		f.String("from", "", "Start date (YYYY-MM-DD)")
		f.String("to", "", "End date (YYYY-MM-DD)")
		f.String("min", "", "Minimum amount")
		f.String("max", "", "Maximum amount")
	}

	ledgerExportCmd.Flags().String("format", services.FormatCSV, "Export format (csv, xlsx or pdf)")
	ledgerExportCmd.Flags().Bool("server", false, "Let the backend render the csv")
	ledgerExportCmd.Flags().StringP("out", "o", "", "Output file (defaults to the export's name)")
}

func ledgerFilter(cmd *cobra.Command) models.LedgerFilter {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return models.LedgerFilter{
		DealID:       get("deal"),
		PaymentMode:  get("mode"),
		PartyType:    get("party-type"),
		PartyID:      get("party-id"),
		PaymentType:  get("type"),
		PersonSearch: get("person"),
		Status:       get("status"),
		StartDate:    get("from"),
		EndDate:      get("to"),
		MinAmount:    get("min"),
		MaxAmount:    get("max"),
	}
}

func runLedgerExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	server, _ := cmd.Flags().GetBool("server")
	outPath, _ := cmd.Flags().GetString("out")

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	filter := ledgerFilter(cmd)

	var name string
	var data []byte
	switch {
	case format == "pdf":
		blob, svcErr := a.ledger.ServerPDF(ctx, filter)
		if svcErr != nil {
			return svcErr
		}
		name, data = blob.Filename, blob.Data
	case server && format == services.FormatCSV:
		blob, svcErr := a.ledger.ServerCSV(ctx, filter)
		if svcErr != nil {
			return svcErr
		}
		name, data = blob.Filename, blob.Data
	default:
		export, svcErr := a.ledger.Export(ctx, filter, format)
		if svcErr != nil {
			return svcErr
		}
		if export == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to export")
			return nil
		}
		name, data = export.Filename, export.Data
	}

	if outPath == "" {
		outPath = name
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", outPath, len(data))
	return nil
}
