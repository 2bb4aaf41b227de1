// Package main provides a command line client for hospital rosters.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"medsync/config"
	"medsync/internal/client/profileapi"
	"medsync/internal/delivery/dto"
	"medsync/internal/domain/entity"
	"medsync/internal/roster"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type clientOptions struct {
	baseURL string
	token   string
	timeout time.Duration
	verbose bool
}

func rootCmd() *cobra.Command {
	opts := &clientOptions{}

	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = &config.Config{}
	}

	cmd := &cobra.Command{
		Use:           "rosterctl",
		Short:         "Manage a hospital doctor roster",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `Manage the doctor roster of the authenticated hospital.

Examples:
  rosterctl profile
  rosterctl add-doctor --name "Dr. A" --department Cardiology --phone 555-0100 \
    --slot monday="8:00 AM - 10:00 AM"
`,
	}

	cmd.PersistentFlags().StringVar(&opts.baseURL, "api-url", cfg.ProfileAPI.BaseURL, "Profile API base URL")
	cmd.PersistentFlags().StringVar(&opts.token, "token", cfg.ProfileAPI.Token, "Bearer token (defaults to PROFILE_API_TOKEN)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", cfg.ProfileAPI.Timeout, "Request timeout")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log editor transitions")

	cmd.AddCommand(profileCmd(opts))
	cmd.AddCommand(addDoctorCmd(opts))

	return cmd
}

func profileCmd(opts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the hospital profile and roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			editor, err := roster.LoadEditor(ctx, opts.client(), opts.logger())
			if err != nil {
				return err
			}
			printRoster(cmd.OutOrStdout(), editor.Profile())
			return nil
		},
	}
}

func addDoctorCmd(opts *clientOptions) *cobra.Command {
	var (
		name       string
		department string
		phone      string
		slots      []string
	)

	cmd := &cobra.Command{
		Use:   "add-doctor",
		Short: "Append a doctor to the roster",
		Long: `Append a doctor to the roster.

Each --slot takes day=slot. Available slots:
  ` + strings.Join(entity.OPDSlots, "\n  ") + `
Use "` + entity.SlotUnavailable + `" to leave a day empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			editor, err := roster.LoadEditor(ctx, opts.client(), opts.logger())
			if err != nil {
				return err
			}
			if err := editor.Open(); err != nil {
				return err
			}

			fields := map[roster.Field]string{
				roster.FieldName:       name,
				roster.FieldDepartment: department,
				roster.FieldPhone:      phone,
			}
			for field, value := range fields {
				if err := editor.SetField(field, value); err != nil {
					return err
				}
			}

			for _, s := range slots {
				day, slot, ok := strings.Cut(s, "=")
				if !ok {
					return fmt.Errorf("invalid --slot %q, want day=slot", s)
				}
				if err := editor.SetDaySlot(entity.Weekday(day), slot); err != nil {
					return fmt.Errorf("--slot %q: %w", s, err)
				}
			}

			if err := editor.Submit(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n\n", strings.TrimSpace(name), strings.TrimSpace(department))
			printRoster(cmd.OutOrStdout(), editor.Profile())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Doctor name")
	cmd.Flags().StringVar(&department, "department", "", "Department, one of: "+strings.Join(entity.Departments, ", "))
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	cmd.Flags().StringArrayVar(&slots, "slot", nil, `OPD slot as day=slot, e.g. monday="8:00 AM - 10:00 AM" (repeatable)`)

	return cmd
}

func (o *clientOptions) client() *profileapi.Client {
	httpClient := profileapi.DefaultHTTPClient()
	if o.timeout > 0 {
		httpClient.Timeout = o.timeout
	}
	return profileapi.NewClient(o.baseURL, httpClient, profileapi.StaticToken(o.token))
}

func (o *clientOptions) logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if o.verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.ErrorLevel)
	}
	return log
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printRoster(w io.Writer, profile *dto.HospitalProfileResponse) {
	fmt.Fprintf(w, "%s (%s)\n", profile.Name, profile.Email)
	if len(profile.Departments) > 0 {
		fmt.Fprintf(w, "Departments: %s\n", strings.Join(profile.Departments, ", "))
	}
	fmt.Fprintf(w, "Doctors: %d\n", len(profile.Doctors))

	for i, d := range profile.Doctors {
		availability := roster.FormatAvailability(d.OPDSchedule)
		fmt.Fprintf(w, "  %d. %s | %s | %s | %s\n", i+1, d.Name, d.Department, d.Phone, availability)
	}
}
