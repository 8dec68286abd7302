package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"setup-checklist/internal/checklist"
	"setup-checklist/internal/config"
	"setup-checklist/internal/format"
	"setup-checklist/internal/logging"
	"setup-checklist/internal/model"
	"setup-checklist/internal/provider"
	"setup-checklist/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	Dir        string
	Source     string
	Backend    string
	Format     string
	PrettyJSON bool
	LogLevel   string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "checklist",
		Short:        "Onboarding setup checklist (TUI + scriptable commands)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Show the interactive checklist widget
  checklist --source ./steps.yaml

  # Render once, for a prompt or a page
  checklist show
  checklist show --html

  # Scriptable state
  checklist progress
  checklist dismiss
  checklist reset
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.loadConfig()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CHECKLIST_DIR", ""), "State and config dir (default: user config dir)")
	cmd.PersistentFlags().StringVar(&app.Source, "source", "", "Checklist source: http(s) URL or a .yaml/.json file (env CHECKLIST_SOURCE)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Dismissal storage backend (sqlite|json)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|edn|yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")

	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newProgressCmd(app))
	cmd.AddCommand(newDismissCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newStatusCmd(app))

	return cmd
}

// loadConfig fills every setting the flags left empty from config.yaml/env.
func (app *App) loadConfig() error {
	cfg, err := config.Load(app.Dir)
	if err != nil {
		return err
	}
	if app.Source == "" {
		app.Source = cfg.Provider.Source
	}
	if app.Backend == "" {
		app.Backend = cfg.Backend
	}
	if app.Format == "" {
		app.Format = cfg.Format
	}
	if app.LogLevel == "" {
		app.LogLevel = cfg.Log.Level
	}
	cfg.Backend = app.Backend
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := format.Normalize(app.Format); err != nil {
		return err
	}
	app.cfg = cfg
	return nil
}

// config returns the settings loaded by PersistentPreRunE, loading them on first use when a
// command runs without the root's hooks.
func (app *App) config() (*config.Config, error) {
	if app.cfg == nil {
		if err := app.loadConfig(); err != nil {
			return nil, err
		}
	}
	return app.cfg, nil
}

func (app *App) store() (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	return store.Store{Dir: dir}, nil
}

func (app *App) dismissals(log *zap.Logger) (*store.DismissalStore, store.Store, error) {
	s, err := app.store()
	if err != nil {
		return nil, s, err
	}
	kv, err := store.OpenKV(app.Backend, s)
	if err != nil {
		return nil, s, err
	}
	return store.NewDismissalStore(kv, log), s, nil
}

// provider returns nil (not an error) when no source is configured: the widget treats that
// as unavailable data and stays hidden.
func (app *App) provider(log *zap.Logger) (provider.Provider, error) {
	cfg, err := app.config()
	if err != nil {
		return nil, err
	}
	p, err := provider.FromSource(app.Source, provider.Options{
		Token:             cfg.Provider.Token,
		RequestsPerSecond: cfg.Provider.RequestsPerSecond,
	})
	if errors.Is(err, provider.ErrNoSource) {
		log.Warn("no checklist source configured; widget stays hidden")
		return nil, nil
	}
	return p, err
}

func (app *App) commandLogger() (*zap.Logger, error) {
	cfg, err := app.config()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{Level: app.LogLevel, File: cfg.Log.File})
}

// loadSession resolves the dismissal flag and fetches the checklist concurrently, then
// applies both to a fresh session.
func loadSession(ctx context.Context, dismissals *store.DismissalStore, p provider.Provider) (*checklist.Session, error) {
	var (
		dismissed bool
		query     provider.Query
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dismissed = dismissals.Read(gctx)
		return nil
	})
	g.Go(func() error {
		query = provider.Run(gctx, p)
		// A failed fetch is just unavailable data; only cancellation aborts the load.
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sess := checklist.NewSession(dismissals)
	sess.SetDismissal(model.DismissalFromBool(dismissed))
	sess.ApplyQuery(query)
	return sess, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": v}, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
