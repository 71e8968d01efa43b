package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/auth"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/config"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/payments"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is everything a command needs. The CLI has no audit log, events or
// metrics; the services run with those disabled.
type app struct {
	session  *auth.Session
	client   *clients.APIClient
	payments services.PaymentService
	proofs   services.ProofService
	ledger   services.LedgerService
	deals    services.DealService
}

// newApp builds the app for cmd. Tests replace it.
var newApp = defaultApp

func defaultApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	baseURL := cfg.APIBaseURL
	if api, _ := cmd.Flags().GetString("api"); api != "" {
		baseURL = api
	}

	logger := zap.NewNop()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, err
		}
	}

	path, err := auth.DefaultTokenPath()
	if err != nil {
		return nil, fmt.Errorf("locate session file: %w", err)
	}
	return buildApp(auth.NewFileTokenStore(path), baseURL, cfg.RequestTimeout, logger, cmd.ErrOrStderr()), nil
}

func buildApp(store auth.TokenStore, baseURL string, timeout time.Duration, logger *zap.Logger, stderr io.Writer) *app {
	session := auth.NewSession(store, logger, auth.OnForcedLogout(func(context.Context) {
		fmt.Fprintln(stderr, "Session expired. Run \"landdeals login\" again.")
	}))
	client := clients.NewAPIClient(baseURL, timeout,
		clients.WithTokenSource(session),
		clients.WithUnauthorizedHandler(session.HandleUnauthorized),
		clients.WithLogger(logger),
	)
	return &app{
		session:  session,
		client:   client,
		payments: services.NewPaymentService(client.Payments(), nil, nil, "", nil, logger),
		proofs:   services.NewProofService(client.Payments(), payments.NewRenderTracker(), nil, "", nil, logger),
		ledger:   services.NewLedgerService(client.Payments(), nil, nil, logger),
		deals:    services.NewDealService(client.Deals(), nil, nil, "", nil, logger),
	}
}
