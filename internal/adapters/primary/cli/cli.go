package cli

import (
	do "github.com/samber/do/v2"
	"github.com/sioXD/GitLab-TimeTool/internal/adapters/primary/cli/commands"
	httpadapter "github.com/sioXD/GitLab-TimeTool/internal/adapters/primary/http"
	"github.com/sioXD/GitLab-TimeTool/internal/config"
	"github.com/sioXD/GitLab-TimeTool/internal/core/app"
	"github.com/spf13/cobra"
)

// Command creates and returns the root CLI command.
func Command(i do.Injector) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Long: `A time tracking dashboard for GitLab epics and issues.`,
	}

	appInstance := do.MustInvoke[*app.App](i)
	cfg := do.MustInvoke[*config.Config](i)
	server := do.MustInvoke[*httpadapter.Server](i)

	cmd.AddCommand(
		commands.Serve(cfg, server),
		commands.Export(appInstance),
	)

	return cmd, nil
}
