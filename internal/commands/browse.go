package commands

import (
	"context"
	"fmt"

	"c4sg/internal/projectlist"
	"c4sg/internal/session"
	"c4sg/internal/ui"
	"c4sg/internal/view"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse projects interactively",
	Long:  "Open the interactive project browser: search, page through and open projects, apply, bookmark or delete",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(commandContext(cmd))
		defer cancel()

		list := projectlist.NewController(ctx, e.client, e.cfg.PageSize, logger)
		defer list.Close()

		// The browser owns the terminal; diagnostics would garble it
		if e.cfg.LogLevel != "debug" {
			configureLogger(logger, "panic", cmd.ErrOrStderr())
		}

		model := ui.NewModel(ctx, ui.Deps{
			List:     list,
			Composer: view.NewComposer(e.client, e.client, e.client, logger),
			Actions:  view.NewActions(e.client, e.session, nil, logger),
			Session:  e.session,
		})

		if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
			return fmt.Errorf("error running browser: %w", err)
		}

		if hint := loginHint(e.session); hint != "" {
			newPrinter(cmd).Println(hint)
		}
		return nil
	},
}

// loginHint asks for a login when the browser just remembered a route for an anonymous user
func loginHint(s *session.Session) string {
	if s.Authenticated() || s.PendingRoute() == "" {
		return ""
	}
	return "Log in with 'c4sg login' to continue with the project you picked"
}
