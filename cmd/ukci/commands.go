package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jrsteele09/go-ukci-client/companies"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			a.navigator.location = a.cfg.GetBasePath() + a.cfg.GetLoginPath()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("UKCI_PASSWORD")
			}
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password (or UKCI_PASSWORD) are required")
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			r := a.client.Login(ctx, email, password)
			if !r.Success {
				return fmt.Errorf("login failed: %s", r.Error)
			}
			fmt.Fprintf(a.out, "Logged in as %s\n", displayName(r.Data.User.FullName(), r.Data.User.Email))
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.client.Logout()
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user and tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.client.IsAuthenticated() {
				fmt.Fprintln(a.out, "Not logged in")
				return nil
			}
			if a.creds.TokenExpired() {
				fmt.Fprintln(os.Stderr, "Warning: the stored token has expired")
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			r := a.client.GetCurrentUser(ctx)
			if !r.Success {
				return fmt.Errorf("whoami: %s", r.Error)
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Name\t%s\n", displayName(r.Data.User.FullName(), "-"))
			fmt.Fprintf(w, "Email\t%s\n", r.Data.User.Email)
			fmt.Fprintf(w, "Role\t%s\n", r.Data.User.Role)
			if t := r.Data.Tenant; t != nil {
				fmt.Fprintf(w, "Tenant\t%s (%s)\n", t.Name, t.SubscriptionTier)
			}
			if exp, ok := a.creds.TokenExpiry(); ok {
				fmt.Fprintf(w, "Expires\t%s\n", exp.Local().Format(time.RFC1123))
			}
			return w.Flush()
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search companies by name or number",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if len([]rune(strings.TrimSpace(query))) < a.cfg.GetMinSearchLength() {
				fmt.Fprintln(a.out, "No results")
				return nil
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			r := a.client.SearchCompanies(ctx, query)
			if !r.Success {
				return fmt.Errorf("search: %s", r.Error)
			}
			if len(r.Data.Items) == 0 {
				fmt.Fprintln(a.out, "No results")
				return nil
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NUMBER\tNAME\tSTATUS\tMONITORED")
			for _, c := range r.Data.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Number, c.Name, c.Status, yesNo(c.Monitored))
			}
			return w.Flush()
		},
	}
}

func newCompanyCmd(a *app) *cobra.Command {
	var monitor, unmonitor bool
	cmd := &cobra.Command{
		Use:   "company <number>",
		Short: "Show a company, optionally changing its monitoring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if monitor && unmonitor {
				return fmt.Errorf("--monitor and --unmonitor are mutually exclusive")
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			number := args[0]
			if monitor || unmonitor {
				r := a.client.ToggleMonitoring(ctx, number, monitor)
				if !r.Success {
					return fmt.Errorf("monitoring: %s", r.Error)
				}
			}
			r := a.client.GetCompany(ctx, number)
			if !r.Success {
				return fmt.Errorf("company: %s", r.Error)
			}
			printCompany(a, r.Data)
			return nil
		},
	}
	cmd.Flags().BoolVar(&monitor, "monitor", false, "Start monitoring the company")
	cmd.Flags().BoolVar(&unmonitor, "unmonitor", false, "Stop monitoring the company")
	return cmd
}

func printCompany(a *app, c companies.Company) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Number\t%s\n", c.Number)
	fmt.Fprintf(w, "Name\t%s\n", c.Name)
	fmt.Fprintf(w, "Status\t%s\n", c.Status)
	if !c.IncorporatedOn.IsZero() {
		fmt.Fprintf(w, "Incorporated\t%s\n", c.IncorporatedOn.Format("2 Jan 2006"))
	}
	fmt.Fprintf(w, "Address\t%s, %s %s\n", c.Address.Line1, c.Address.Locality, c.Address.Postcode)
	fmt.Fprintf(w, "SIC\t%s\n", strings.Join(c.SICCodes, ", "))
	fmt.Fprintf(w, "Risk\t%d/100\n", c.RiskScore)
	fmt.Fprintf(w, "Monitored\t%s\n", yesNo(c.Monitored))
	_ = w.Flush()
}

func newAlertsCmd(a *app) *cobra.Command {
	var unread bool
	var markRead string
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List alerts on monitored companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			if markRead != "" {
				r := a.client.MarkAlertRead(ctx, markRead)
				if !r.Success {
					return fmt.Errorf("alerts: %s", r.Error)
				}
			}
			r := a.client.ListAlerts(ctx, unread)
			if !r.Success {
				return fmt.Errorf("alerts: %s", r.Error)
			}
			if len(r.Data) == 0 {
				fmt.Fprintln(a.out, "No alerts")
				return nil
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tWHEN\tSEVERITY\tCOMPANY\tMESSAGE\tREAD")
			for _, alert := range r.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", alert.ID, alert.CreatedAt.Local().Format("02 Jan 15:04"),
					alert.Severity, alert.CompanyName, alert.Message, yesNo(alert.Read))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&unread, "unread", false, "Only show unread alerts")
	cmd.Flags().StringVar(&markRead, "mark-read", "", "Mark the alert with this id as read first")
	return cmd
}

func displayName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
