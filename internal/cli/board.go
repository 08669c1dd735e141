package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathclip/pkg/board"
)

// boardCommand creates the board command with subcommands for board management.
func (c *CLI) boardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage the board",
	}

	cmd.AddCommand(c.boardPathCommand())
	cmd.AddCommand(c.boardClearCommand())

	return cmd
}

func (c *CLI) boardPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where the board is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardPath(cmd.Context())
		},
	}
}

func (c *CLI) runBoardPath(ctx context.Context) error {
	cfg := c.settings()
	b, err := c.openBoard(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	printKeyValue("board", cfg.Board.Name)
	printKeyValue("backend", cfg.Board.Backend)
	switch cfg.Board.Backend {
	case board.BackendRedis:
		printKeyValue("redis", cfg.Redis.Addr)
	case board.BackendHTTP:
		printKeyValue("url", cfg.Board.URL)
	}
	if path, ok := board.Path(b, cfg.Board.Name); ok {
		printKeyValue("file", path)
	}
	printKeyValue("sessions", cfg.Paste.SessionDir)
	return nil
}

func (c *CLI) boardClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the board and its paste session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardClear(cmd.Context())
		},
	}
}

func (c *CLI) runBoardClear(ctx context.Context) error {
	name := c.settings().Board.Name
	b, err := c.openBoard(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	if err := b.Delete(ctx, name); err != nil {
		return err
	}
	store, err := c.sessions()
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, name); err != nil {
		return err
	}
	printSuccess("Board %s cleared", StyleHighlight.Render(name))
	return nil
}
