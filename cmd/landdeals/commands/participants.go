package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/payments"
	"github.com/spf13/cobra"
)

var participantsCmd = &cobra.Command{
	Use:   "participants <deal-id>",
	Short: "Show the parties a deal's participants import as",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy, _ := cmd.Flags().GetString("strategy")
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		result, svcErr := a.deals.Participants(cmd.Context(), args[0], strategy)
		if svcErr != nil {
			return svcErr
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TYPE\tID\tROLE\tLABEL")
		for i, p := range result.Parties {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.PartyType, p.PartyID, p.Role, result.Labels[i])
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(participantsCmd)
	participantsCmd.Flags().String("strategy", payments.StrategyFirstPayer, "Role allocation (first_payer or split_equal)")
}
