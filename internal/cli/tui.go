package cli

import (
	"strings"

	"setup-checklist/internal/logging"
	"setup-checklist/internal/tui"

	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, app *App) error {
	s, err := app.store()
	if err != nil {
		return writeErr(cmd, err)
	}
	cfg, err := app.config()
	if err != nil {
		return writeErr(cmd, err)
	}

	// stdout belongs to the terminal UI.
	logFile := strings.TrimSpace(cfg.Log.File)
	if logFile == "" {
		logFile = s.LogPath()
	}
	log, err := logging.New(logging.Options{Level: app.LogLevel, File: logFile})
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = log.Sync() }()

	dismissals, _, err := app.dismissals(log)
	if err != nil {
		return writeErr(cmd, err)
	}
	p, err := app.provider(log)
	if err != nil {
		return writeErr(cmd, err)
	}

	return tui.Run(cmd.Context(), tui.Options{
		Store:         dismissals,
		Provider:      p,
		Navigator:     tui.BrowserNavigator{BaseURL: cfg.UI.BaseURL, Opener: cfg.UI.Opener},
		Title:         cfg.UI.Title,
		Celebration:   cfg.UI.Celebration,
		QuitOnDismiss: true,
		Log:           log,
	})
}
