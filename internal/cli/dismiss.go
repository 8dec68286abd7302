package cli

import (
	"github.com/spf13/cobra"
)

func newDismissCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dismiss",
		Short: "Hide the checklist (persists across sessions)",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := app.commandLogger()
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = log.Sync() }()

			dismissals, _, err := app.dismissals(log)
			if err != nil {
				return writeErr(cmd, err)
			}

			// Same path as the widget controls: the write never fails from here, so
			// report whether it actually stuck.
			dismissals.Write(cmd.Context())
			return writeOut(cmd, app, map[string]any{
				"dismissed": true,
				"persisted": dismissals.Read(cmd.Context()),
				"location":  dismissals.Location(),
			})
		},
	}
	return cmd
}

func newResetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the persisted dismissal so the checklist shows again",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := app.commandLogger()
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = log.Sync() }()

			dismissals, _, err := app.dismissals(log)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := dismissals.Clear(cmd.Context()); err != nil {
				return writeErr(cmd, errStore("clear", dismissals.Location(), err))
			}
			return writeOut(cmd, app, map[string]any{
				"dismissed": false,
				"location":  dismissals.Location(),
			})
		},
	}
	return cmd
}
