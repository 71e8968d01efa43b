package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/payments"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/spf13/cobra"
)

var proofsCmd = &cobra.Command{
	Use:   "proofs",
	Short: "Manage the proof documents of a payment",
}

var proofsListCmd = &cobra.Command{
	Use:   "list <deal-id> <payment-id>",
	Short: "List the proofs of a payment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		views, svcErr := a.proofs.List(cmd.Context(), args[0], args[1])
		if svcErr != nil {
			return svcErr
		}
		printProofs(cmd.OutOrStdout(), views)
		return nil
	},
}

var proofsUploadCmd = &cobra.Command{
	Use:   "upload <deal-id> <payment-id> <file>",
	Short: "Attach a proof document to a payment",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		docType, _ := cmd.Flags().GetString("doc-type")
		file, err := readUpload(args[2])
		if err != nil {
			return err
		}
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		views, svcErr := a.proofs.Upload(cmd.Context(), args[0], args[1], file, docType)
		if svcErr != nil {
			return svcErr
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Proof uploaded")
		printProofs(cmd.OutOrStdout(), views)
		return nil
	},
}

var proofsDeleteCmd = &cobra.Command{
	Use:   "delete <deal-id> <payment-id> <proof-id>",
	Short: "Delete a proof document",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		var confirm services.Confirmer = services.Confirmed
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			confirm = confirmFromInput(cmd.InOrStdin(), cmd.OutOrStdout())
		}
		views, svcErr := a.proofs.Delete(cmd.Context(), args[0], args[1], args[2], confirm)
		if svcErr == services.ErrNotConfirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
		if svcErr != nil {
			return svcErr
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Proof deleted")
		printProofs(cmd.OutOrStdout(), views)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(proofsCmd)
	proofsCmd.AddCommand(proofsListCmd, proofsUploadCmd, proofsDeleteCmd)

	proofsUploadCmd.Flags().String("doc-type", "receipt", "Document type")
	proofsDeleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking")
}

func printProofs(w io.Writer, views []payments.ProofView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No proofs")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tKIND\tFILE")
	for _, v := range views {
		name := v.FileName
		if name == "" {
			name = v.FilePath
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, v.DocType, v.Kind, name)
	}
	tw.Flush()
}
