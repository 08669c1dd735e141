package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathclip/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v), added by main: debug level
//
// The logger is attached to the command context and reachable from every
// subcommand via loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Copy and paste pathway diagram fragments between documents",
		Long: `pathclip copies a selection of a pathway diagram, together with everything
its interactions and groups need to stay consistent, onto a board, and pastes
it into other documents with fresh element IDs.

Boards are local files by default; a Redis server or a 'pathclip serve'
instance can share them between machines.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pathclip/config.toml)")
	root.PersistentFlags().StringVarP(&c.boardName, "board", "b", "", "board name (default from config)")

	// Register all subcommands
	root.AddCommand(c.copyCommand())
	root.AddCommand(c.pasteCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.boardCommand())
	root.AddCommand(c.completionCommand())

	return root
}
