package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathclip/pkg/board"
	perrors "github.com/matzehuels/pathclip/pkg/errors"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve boards over HTTP",
		Long: `Serve the configured boards over HTTP so other machines can copy and paste
through them with backend = "http". The served boards use the file or redis
backend from the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg := c.settings()
	if cfg.Board.Backend == board.BackendHTTP {
		return perrors.New(perrors.ErrCodeInvalidConfig, "cannot serve the http backend; configure file or redis")
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	b, err := c.openBoard(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	printInfo("Serving board backend %s on %s", StyleHighlight.Render(cfg.Board.Backend), StyleHighlight.Render(addr))
	err = board.NewServer(b, loggerFromContext(ctx)).ListenAndServe(ctx, addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
