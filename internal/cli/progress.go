package cli

import (
	"setup-checklist/internal/checklist"
	"setup-checklist/internal/model"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type progressView struct {
	State       checklist.State `json:"state"`
	Dismissed   bool            `json:"dismissed"`
	Completed   int             `json:"completed"`
	Total       int             `json:"total"`
	Percent     int             `json:"percent"`
	AllComplete bool            `json:"allComplete"`
	Items       []itemView      `json:"items"`
}

type itemView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Href      string `json:"href,omitempty"`
	Completed bool   `json:"completed"`
}

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Print checklist state and progress",
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
			sess, err := loadSession(cmd.Context(), dismissals, p)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, buildProgressView(sess))
		},
	}
	return cmd
}

func buildProgressView(sess *checklist.Session) progressView {
	pr := sess.Progress()
	v := progressView{
		State:       sess.State(),
		Dismissed:   sess.Dismissal() == model.DismissalDismissed,
		Completed:   pr.Completed,
		Total:       pr.Total,
		Percent:     pr.Rounded(),
		AllComplete: pr.AllComplete,
		Items:       []itemView{},
	}
	for _, it := range sess.Items() {
		v.Items = append(v.Items, itemView{ID: it.ID, Title: it.Title, Href: it.Href, Completed: it.Completed})
	}
	return v
}

func zapState(sess *checklist.Session) zap.Field {
	return zap.Stringer("state", sess.State())
}
