package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/payments"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/spf13/cobra"
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Record and review the payments of a deal",
}

var paymentsListCmd = &cobra.Command{
	Use:   "list <deal-id>",
	Short: "List the payments of a deal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		views, svcErr := a.payments.List(cmd.Context(), args[0])
		if svcErr != nil {
			return svcErr
		}
		printPayments(cmd.OutOrStdout(), views)
		return nil
	},
}

var paymentsAddCmd = &cobra.Command{
	Use:   "add <deal-id>",
	Short: "Record a payment",
	Long: `Record a payment against a deal.

Each --party is type:ref:role:target_type:target_ref, where ref is the
participant id, or the name for type "other". Every party is recorded with
the full payment amount. For example:

  landdeals payments add 7 --amount 1500.50 --date 2024-03-01 --mode UPI \
    --party owner:1:payer:buyer:2`,
	Args: cobra.ExactArgs(1),
	RunE: runPaymentsAdd,
}

var paymentsDeleteCmd = &cobra.Command{
	Use:   "delete <deal-id> <payment-id>",
	Short: "Delete a payment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := check(a.payments.Delete(cmd.Context(), args[0], args[1])); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Payment deleted")
		return nil
	},
}

var paymentsNoteCmd = &cobra.Command{
	Use:   "note <deal-id> <payment-id> <notes>",
	Short: "Replace the notes of a payment",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := check(a.payments.Annotate(cmd.Context(), args[0], args[1], args[2])); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Payment updated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paymentsCmd)
	paymentsCmd.AddCommand(paymentsListCmd, paymentsAddCmd, paymentsDeleteCmd, paymentsNoteCmd)

	f := paymentsAddCmd.Flags()
	f.String("amount", "", "Payment amount")
	f.String("date", "", "Payment date (YYYY-MM-DD)")
	f.String("mode", models.ModeUPI, "Payment mode (UPI, NEFT, RTGS, IMPS, Cash, Cheque or other)")
	f.String("custom-mode", "", "Payment mode text when --mode is other")
	f.String("type", models.PaymentTypeLandPurchase, "Payment type")
	f.String("status", "", "Payment status (paid or pending)")
	f.String("due-date", "", "Due date for pending payments (YYYY-MM-DD)")
	f.String("reference", "", "Transaction reference")
	f.String("notes", "", "Notes")
	f.String("description", "", "Description")
	f.StringArray("party", nil, "Party as type:ref:role:target_type:target_ref (repeatable)")
	f.String("receipt", "", "Receipt file to attach once the payment is recorded")
	f.String("doc-type", "receipt", "Document type of the receipt")
	f.Bool("force", false, "Record even if the backend reports a party mismatch")
}

func runPaymentsAdd(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	get := func(name string) string {
		v, _ := f.GetString(name)
		return v
	}

	values, _ := f.GetStringArray("party")
	parties := make([]models.Party, 0, len(values))
	for _, v := range values {
		p, err := parsePartyFlag(v)
		if err != nil {
			return err
		}
		parties = append(parties, p)
	}

	req := &services.SubmitRequest{
		DealID: args[0],
		Form: models.PaymentForm{
			Amount:      get("amount"),
			PaymentDate: get("date"),
			PaymentMode: get("mode"),
			CustomMode:  get("custom-mode"),
			PaymentType: get("type"),
			Status:      get("status"),
			DueDate:     get("due-date"),
			Reference:   get("reference"),
			Notes:       get("notes"),
			Description: get("description"),
			Parties:     parties,
		},
		DocType: get("doc-type"),
	}
	req.Force, _ = f.GetBool("force")
	if path := get("receipt"); path != "" {
		receipt, err := readUpload(path)
		if err != nil {
			return err
		}
		req.Receipt = &receipt
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if rec, err := a.session.Current(cmd.Context()); err == nil {
		req.Username = rec.User.Username
	}

	result, err := a.payments.Submit(cmd.Context(), req)
	if err != nil {
		var mismatch *payments.PartyAmountMismatchError
		if errors.As(err, &mismatch) {
			return fmt.Errorf("%w (re-run with --force to record anyway)", err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (id %s)\n", result.Message, result.PaymentID)
	if result.ProofError != "" {
		fmt.Fprintln(out, result.ProofError)
	}
	return nil
}

// parsePartyFlag reads type:ref:role:target_type:target_ref. Trailing parts
// may be left out; validation reports what is missing.
func parsePartyFlag(raw string) (models.Party, error) {
	parts := strings.Split(raw, ":")
	if len(parts) > 5 {
		return models.Party{}, fmt.Errorf("invalid party %q: expected type:ref:role:target_type:target_ref", raw)
	}
	for len(parts) < 5 {
		parts = append(parts, "")
	}

	p := models.Party{
		PartyType: models.PartyType(parts[0]),
		Role:      parts[2],
		PayToType: models.PartyType(parts[3]),
	}
	if !p.PartyType.Valid() {
		return models.Party{}, fmt.Errorf("invalid party %q: unknown type %q", raw, parts[0])
	}
	if p.PartyType == models.PartyTypeOther {
		p.PartyName = parts[1]
	} else {
		p.PartyID = models.ID(parts[1])
	}
	if p.PayToType == models.PartyTypeOther {
		p.PayToName = parts[4]
	} else {
		p.PayToID = models.ID(parts[4])
	}
	return p, nil
}
