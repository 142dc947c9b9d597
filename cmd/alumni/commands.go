package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/alumni/internal/admin"
	"github.com/JonMunkholm/alumni/internal/core"
	"github.com/JonMunkholm/alumni/internal/database"
	"github.com/JonMunkholm/alumni/internal/logging"
)

/* ----------------------------------------
	DATA COMMANDS
---------------------------------------- */

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import alumni from a CSV file",
		Long: `Import alumni records from a CSV file with a header row.

The email and graduation_year columns are required. Rows with an invalid
email or year, or an email that is already stored, are skipped and listed.
A database error aborts the import and nothing from the file is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithOperation(cmd.Context())
			if err := a.connect(ctx); err != nil {
				return err
			}

			res, err := a.service().ImportCSV(ctx, args[0])
			if err != nil {
				return err
			}
			printImport(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func printImport(w io.Writer, res core.ImportResult) {
	fmt.Fprintf(w, "Imported %d, skipped %d (%s)\n", res.Inserted, res.SkippedCount(), res.File)
	for _, s := range res.Skipped {
		fmt.Fprintf(w, "  line %d\t%s\t%s\n", s.Line, s.Email, s.Reason)
	}
	if res.FailedRowsCSV != "" {
		fmt.Fprintf(w, "Skipped rows written to %s\n", res.FailedRowsCSV)
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Export all alumni to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithOperation(cmd.Context())
			if err := a.connect(ctx); err != nil {
				return err
			}

			res, err := a.service().ExportCSV(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", res.Rows, res.File)
			return nil
		},
	}
}

func newReportCmd(a *app) *cobra.Command {
	var events bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the alumni count by graduation year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithOperation(cmd.Context())
			if err := a.connect(ctx); err != nil {
				return err
			}
			svc := a.service()
			out := cmd.OutOrStdout()

			if events {
				return printParticipation(ctx, out, svc)
			}

			r, err := svc.AlumniReport(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Total alumni: %d\n", r.Total)
			for _, y := range r.ByYear {
				fmt.Fprintf(out, "  %d\t%d\n", y.Year, y.Count)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&events, "events", false, "Print event participation instead")
	return cmd
}

func printParticipation(ctx context.Context, w io.Writer, svc *core.Service) error {
	list, err := svc.EventParticipationReport(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "No attendance recorded.")
		return nil
	}
	for _, p := range list {
		fmt.Fprintf(w, "  %s\t%d\n", p.EventName, p.Attended)
	}
	return nil
}

/* ----------------------------------------
	ADMIN COMMANDS
---------------------------------------- */

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			db := a.cfg.Database
			if direction == "down" {
				if err := database.Rollback(db.URL, db.Password); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Rolled back one migration")
				return nil
			}

			if err := database.Migrate(db.URL, db.Password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema up to date")
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	var confirm string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all alumni data (email settings are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithOperation(cmd.Context())
			if confirm != admin.ResetConfirmation {
				return core.ValidationError{
					Field:   "confirm",
					Message: "pass --confirm " + admin.ResetConfirmation + " to delete all data",
				}
			}
			if err := a.connect(ctx); err != nil {
				return err
			}

			r := &admin.ResetDbs{Store: core.NewPgStore(a.pool)}
			if err := r.ResetAll(ctx, confirm); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All alumni data reset")
			return nil
		},
	}

	cmd.Flags().StringVar(&confirm, "confirm", "", "Type "+admin.ResetConfirmation+" to confirm")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// No configuration needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "alumni "+version+" (schema "+strconv.Itoa(database.SchemaVersion)+")")
		},
	}
}
