package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"setup-checklist/internal/checklist"
	"setup-checklist/internal/htmlview"
	"setup-checklist/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newShowCmd(app *App) *cobra.Command {
	var (
		asHTML    bool
		prerender bool
		width     int
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the checklist once (prints nothing while it is hidden)",
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
			p, err := app.provider(log)
			if err != nil {
				return writeErr(cmd, err)
			}

			var sess *checklist.Session
			if prerender {
				// What a page emits before the client has read the flag.
				sess = checklist.NewSession(dismissals)
			} else {
				sess, err = loadSession(cmd.Context(), dismissals, p)
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			cfg, err := app.config()
			if err != nil {
				return writeErr(cmd, err)
			}
			var out string
			if asHTML {
				r, err := htmlview.New()
				if err != nil {
					return writeErr(cmd, err)
				}
				out, err = r.RenderString(sess, htmlview.Options{Title: cfg.UI.Title, Celebration: cfg.UI.Celebration})
				if err != nil {
					return writeErr(cmd, err)
				}
			} else {
				if width <= 0 {
					width = terminalWidth(cmd.OutOrStdout())
				}
				out = tui.Render(sess, tui.Options{Title: cfg.UI.Title, Celebration: cfg.UI.Celebration, Log: log}, width)
			}

			log.Debug("rendered checklist", zapState(sess))
			if strings.TrimSpace(out) == "" {
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render an HTML fragment instead of terminal output")
	cmd.Flags().BoolVar(&prerender, "prerender", false, "Skip the dismissal read (emits only the placeholder with --html)")
	cmd.Flags().IntVar(&width, "width", 0, "Render width in columns (default: terminal width)")
	return cmd
}

// terminalWidth is 0 (widget default) unless w is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return cols
}
