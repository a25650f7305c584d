// Command sentryctl is the terminal front end for the SentryPrime compliance
// monitoring service. It is a thin presentation layer: all session and
// dashboard logic lives in internal/app and below.
package main

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/sentryprime/sentryctl/internal/app"
	"github.com/sentryprime/sentryctl/internal/config"
	"github.com/sentryprime/sentryctl/internal/dashboard"
	"github.com/sentryprime/sentryctl/internal/domain"
	apperrors "github.com/sentryprime/sentryctl/internal/errors"
	"github.com/sentryprime/sentryctl/internal/gateway"
	"github.com/sentryprime/sentryctl/internal/logging"
	"github.com/sentryprime/sentryctl/internal/metrics"
	"github.com/sentryprime/sentryctl/internal/session"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		msg := err.Error()
		var structured *apperrors.Error
		if stderrors.As(err, &structured) {
			msg = structured.UserMessage()
		}
		_, _ = fmt.Fprintln(os.Stderr, "Error:", msg)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dumpMetrics bool

	root := &cobra.Command{
		Use:           "sentryctl",
		Short:         "SentryPrime accessibility compliance client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if !dumpMetrics {
				return nil
			}
			return metrics.DumpText(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().BoolVar(&dumpMetrics, "dump-metrics", false, "print collected metrics to stderr before exiting")

	root.AddCommand(newLoginCmd())
	root.AddCommand(newRegisterCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newWhoamiCmd())
	root.AddCommand(newDashboardCmd())
	root.AddCommand(newWebsitesCmd())
	root.AddCommand(newScanCmd())
	root.AddCommand(newCheckCmd())
	return root
}

func loadService() (*app.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	store := session.NewFileStore(cfg.SessionFile)
	gw := gateway.NewClient(cfg.BaseURL, &http.Client{}, store)
	agg := dashboard.NewAggregator(gw, clockwork.NewRealClock())
	websites := dashboard.NewRegistration(gw, agg)
	scans := dashboard.NewScanTrigger(gw, agg)

	return app.NewService(gw, store, agg, websites, scans, cfg.ScanMaxPages), nil
}

// requireSession restores and validates the persisted session before an
// authenticated command runs.
func requireSession(cmd *cobra.Command, svc *app.Service) (*domain.User, error) {
	user, err := svc.RestoreSession(cmd.Context())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("not signed in (run 'sentryctl login')")
	}
	return user, nil
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}

			user, err := svc.Authenticate(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", user.FullName(), user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var firstName, lastName, email, password, confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}

			user, err := svc.Register(cmd.Context(), firstName, lastName, email, password, confirm)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s <%s>\n", user.FullName(), user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "password confirmation")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the persisted session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}

			svc.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}

			user, err := requireSession(cmd, svc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:         %s\n", user.FullName())
			fmt.Fprintf(out, "Email:        %s\n", user.Email)
			fmt.Fprintf(out, "Member since: %s\n", user.CreatedAt)
			return nil
		},
	}
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Load and display the full dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}

			if _, err := requireSession(cmd, svc); err != nil {
				return err
			}

			snap, err := svc.LoadDashboard(cmd.Context())
			if err != nil {
				return err
			}

			renderSnapshot(cmd.OutOrStdout(), snap)
			return nil
		},
	}
}

func newWebsitesCmd() *cobra.Command {
	websites := &cobra.Command{Use: "websites", Short: "Manage monitored websites"}

	var name string
	add := &cobra.Command{
		Use:   "add <url>",
		Short: "Register a website for monitoring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}

			if _, err := requireSession(cmd, svc); err != nil {
				return err
			}

			snap, err := svc.AddWebsite(cmd.Context(), args[0], name)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Website added")
			renderWebsites(cmd.OutOrStdout(), snap.Websites)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "display name (optional)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List monitored websites",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}

			if _, err := requireSession(cmd, svc); err != nil {
				return err
			}

			snap, err := svc.LoadDashboard(cmd.Context())
			if err != nil {
				return err
			}

			renderWebsites(cmd.OutOrStdout(), snap.Websites)
			return nil
		},
	}

	websites.AddCommand(add)
	websites.AddCommand(list)
	return websites
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <website-id> <url>",
		Short: "Trigger a scan for a monitored website",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}

			if _, err := requireSession(cmd, svc); err != nil {
				return err
			}

			snap, err := svc.TriggerScan(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Scan triggered")
			renderScans(cmd.OutOrStdout(), snap.Scans)
			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <url>",
		Short: "Run a free anonymous accessibility scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}

			result, err := svc.RunFreeScan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderScanResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}
