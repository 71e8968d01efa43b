package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
)

// check turns a possibly nil ServiceError into an error without the typed
// nil trap.
func check(svcErr *services.ServiceError) error {
	if svcErr == nil {
		return nil
	}
	return svcErr
}

func printPayments(w io.Writer, views []services.PaymentView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No payments")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDEAL\tDATE\tAMOUNT\tMODE\tSTATUS\tFLOW")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.DealID, v.DateOnly(), v.Amount.String(), v.PaymentMode, v.Status, v.Flow)
	}
	tw.Flush()
}

func readUpload(path string) (clients.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return clients.File{}, fmt.Errorf("read %s: %w", path, err)
	}
	return clients.File{Name: filepath.Base(path), Data: data}, nil
}

// confirmFromInput asks on out and reads the answer from in. Anything but
// y or yes declines.
func confirmFromInput(in io.Reader, out io.Writer) services.ConfirmFunc {
	return func(_ context.Context, prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		var answer string
		if _, err := fmt.Fscanln(in, &answer); err != nil {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}
}
