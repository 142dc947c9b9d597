package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/alumni/internal/admin"
	"github.com/JonMunkholm/alumni/internal/config"
	"github.com/JonMunkholm/alumni/internal/core"
	"github.com/JonMunkholm/alumni/internal/database"
	"github.com/JonMunkholm/alumni/internal/logging"
	"github.com/JonMunkholm/alumni/internal/mailer"
	"github.com/JonMunkholm/alumni/internal/tui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app holds what every subcommand shares once configuration is loaded.
type app struct {
	cfg    *config.Config
	logOut io.Closer
	pool   *pgxpool.Pool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := (&app{}).execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// execute runs the command line and reports a failure on stderr. The pool
// and log file are released on every path; cobra skips post-run hooks when
// a command fails.
func (a *app) execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		reportError(stderr, err)
	}
	return err
}

// reportError logs err with its catalog code and prints the operator
// message. Errors without a catalog entry also print the underlying detail.
func reportError(w io.Writer, err error) {
	ue := core.NewUserError(err)
	slog.Error("command failed", "error", ue.Technical, "code", ue.User.Code)

	fmt.Fprintln(w, core.FormatUserError(ue))
	if !core.IsUserFacing(err) {
		fmt.Fprintln(w, "  "+err.Error())
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "alumni",
		Short: "Alumni records management",
		Long: `Manage alumni records stored in PostgreSQL.

Run without a subcommand for the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive(cmd.Context())
		},
	}

	root.AddCommand(
		newImportCmd(a),
		newExportCmd(a),
		newReportCmd(a),
		newMigrateCmd(a),
		newResetCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads .env and configuration and starts logging.
func (a *app) setup() error {
	// Overload so a project .env wins over stale shell exports.
	envErr := godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	a.cfg = cfg

	closer, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)
	if err != nil {
		return err
	}
	a.logOut = closer

	if envErr != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}
	slog.Debug("configuration loaded", "config", cfg.String())
	return nil
}

// close releases the pool and log file. It is safe to call more than once.
func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	if a.logOut != nil {
		// Later records go to stderr, not to the closed file.
		slog.SetDefault(slog.New(logging.NewHandler(os.Stderr, a.cfg.Logging.Level, a.cfg.Logging.Format)))
		a.logOut.Close()
		a.logOut = nil
	}
}

// connect opens the pool with the configured password.
func (a *app) connect(ctx context.Context) error {
	return a.connectWith(ctx, a.cfg.Database.Password)
}

func (a *app) connectWith(ctx context.Context, password string) error {
	pool, err := database.Open(ctx, a.cfg.Database, password)
	if err != nil {
		return err
	}
	a.pool = pool
	return nil
}

// service wires the store, mail notifier and import options.
func (a *app) service() *core.Service {
	store := core.NewPgStore(a.pool)
	notifier := mailer.NewNotifier(store, nil)
	return core.NewService(store, notifier, core.ImportOptions{
		FailedRowsDir: a.cfg.Import.FailedRowsDir,
		MaxFileSize:   a.cfg.Import.MaxFileSize,
	})
}

func (a *app) runInteractive(ctx context.Context) error {
	password := a.cfg.Database.Password
	if password == "" && !database.HasPassword(a.cfg.Database.URL) {
		p, err := tui.PromptSecret("Database password", tea.WithContext(ctx))
		if err != nil {
			if errors.Is(err, tui.ErrPromptCanceled) {
				return nil
			}
			return err
		}
		password = p
	}

	if err := a.connectWith(ctx, password); err != nil {
		return err
	}

	svc := a.service()
	resetter := &admin.ResetDbs{Store: svc.Store()}

	model := tui.New(ctx, svc, resetter, a.cfg.Auth)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run menu: %w", err)
	}
	slog.Info("session ended")
	return nil
}
