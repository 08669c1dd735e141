// Package cli implements the pathclip command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathclip/internal/config"
	"github.com/matzehuels/pathclip/pkg/board"
	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/gpml"
	"github.com/matzehuels/pathclip/pkg/pathway"
	"github.com/matzehuels/pathclip/pkg/transfer"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	boardName  string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file and applies flag overrides. It runs before
// every command.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.boardName != "" {
		if err := errors.ValidateBoardName(c.boardName); err != nil {
			return err
		}
		cfg.Board.Name = c.boardName
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "backend", cfg.Board.Backend, "board", cfg.Board.Name)
	return nil
}

// settings returns the loaded config, or the defaults before loading.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

// =============================================================================
// Factories
// =============================================================================

func (c *CLI) openBoard(ctx context.Context) (board.Board, error) {
	return board.Open(ctx, c.settings().BoardOptions())
}

func (c *CLI) sessions() (*transfer.SessionStore, error) {
	return transfer.NewSessionStore(c.settings().Paste.SessionDir)
}

func (c *CLI) adapter() *transfer.Adapter {
	return transfer.NewAdapter(transfer.WithLogger(c.Logger))
}

// boardFragment loads the current board content as a model. An empty board
// is a BoardNotFound error.
func (c *CLI) boardFragment(ctx context.Context, b board.Board) (*pathway.Model, board.Entry, error) {
	name := c.settings().Board.Name
	entry, ok, err := b.Get(ctx, name)
	if err != nil {
		return nil, board.Entry{}, err
	}
	if !ok {
		return nil, board.Entry{}, errors.New(errors.ErrCodeBoardNotFound, "board %q is empty", name)
	}
	m, err := c.adapter().Load(ctx, entry.Payload)
	if err != nil {
		return nil, board.Entry{}, err
	}
	if m == nil {
		return nil, board.Entry{}, errors.New(errors.ErrCodeInvalidPayload, "board %q holds nothing that can be pasted", name)
	}
	return m, entry, nil
}

// loadModel reads a document from path, or the board fragment if path is
// empty.
func (c *CLI) loadModel(ctx context.Context, path string) (*pathway.Model, error) {
	if path != "" {
		if err := errors.ValidatePath(path); err != nil {
			return nil, err
		}
		return gpml.ReadFile(path)
	}
	b, err := c.openBoard(ctx)
	if err != nil {
		return nil, err
	}
	defer b.Close()
	m, _, err := c.boardFragment(ctx, b)
	return m, err
}
