package cli

import (
	"github.com/spf13/cobra"

	"dayplanner/internal/config"
	"dayplanner/pkg/logx"
)

// App holds what the commands need from main.
type App struct {
	Config config.Config
	Log    logx.Logger

	// IsTerminal reports whether stdout is an interactive terminal.
	IsTerminal func() bool
}

// NewRootCmd creates the top-level "dailyplanner" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "dailyplanner",
		Short:         "Organize your day for maximum productivity",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
		newBotCmd(app),
	)

	return root
}
