package cli

import (
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show where dismissal state lives and what it holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := app.commandLogger()
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = log.Sync() }()

			dismissals, s, err := app.dismissals(log)
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := app.config()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"dir":        s.Dir,
				"backend":    app.Backend,
				"location":   dismissals.Location(),
				"dismissed":  dismissals.Read(cmd.Context()),
				"source":     app.Source,
				"configFile": cfg.File,
				"logFile":    s.LogPath(),
			})
		},
	}
	return cmd
}
