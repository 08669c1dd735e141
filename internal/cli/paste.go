package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/gpml"
	"github.com/matzehuels/pathclip/pkg/pathway"
	"github.com/matzehuels/pathclip/pkg/transfer"
)

type pasteOpts struct {
	at     string
	output string
}

// pasteCommand creates the paste command.
func (c *CLI) pasteCommand() *cobra.Command {
	var opts pasteOpts

	cmd := &cobra.Command{
		Use:   "paste TARGET",
		Short: "Paste the board fragment into a document",
		Long: `Paste the board fragment into TARGET.

Elements whose IDs already exist in TARGET are renamed. Pasting the same
copy again offsets it a little further each time; --at places the top-left
corner of the fragment at the given point instead.

TARGET is overwritten unless -o is given.`,
		Example: `  pathclip paste tca.gpml
  pathclip paste tca.gpml --at 120,80 -o tca-edited.gpml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPaste(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.at, "at", "", "place the fragment's top-left corner at X,Y")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: overwrite TARGET)")

	return cmd
}

func (c *CLI) runPaste(ctx context.Context, target string, opts pasteOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var cursor *pathway.Point
	if opts.at != "" {
		p, err := parsePoint(opts.at)
		if err != nil {
			return err
		}
		cursor = &p
	}
	if err := errors.ValidatePath(target); err != nil {
		return err
	}
	doc, err := gpml.ReadFile(target)
	if err != nil {
		return err
	}

	b, err := c.openBoard(ctx)
	if err != nil {
		return err
	}
	defer b.Close()
	frag, entry, err := c.boardFragment(ctx, b)
	if err != nil {
		return err
	}

	var dx, dy float64
	if cursor != nil {
		dx, dy = transfer.CursorShift(frag.Elements(), *cursor)
	} else {
		dx, dy = c.nextShift(ctx, entry.Fingerprint)
	}
	logger.Debug("pasting", "elements", frag.Len(), "dx", dx, "dy", dy)

	inserted := transfer.Paste(ctx, doc, frag, dx, dy)

	out := opts.output
	if out == "" {
		out = target
	}
	if err := gpml.WriteFile(doc, out); err != nil {
		return err
	}

	prog.done("pasted", "elements", len(inserted))
	printSuccess("Pasted %s from board %s",
		StyleHighlight.Render(fmt.Sprintf("%d elements", len(inserted))),
		StyleHighlight.Render(c.settings().Board.Name))
	printFile(out)
	return nil
}

// nextShift advances the paste session of the board. Failing to track the
// session only costs the offset, so it is logged rather than returned.
func (c *CLI) nextShift(ctx context.Context, fingerprint string) (dx, dy float64) {
	logger := loggerFromContext(ctx)
	store, err := c.sessions()
	if err != nil {
		logger.Warn("paste session unavailable", "err", err)
		return 0, 0
	}
	sess, err := store.Get(ctx, c.settings().Board.Name)
	if err != nil {
		logger.Warn("paste session unavailable", "err", err)
		return 0, 0
	}
	sess.Sync(fingerprint)
	dx, dy = sess.NextShiftBy(c.settings().Paste.Offset)
	if err := store.Set(ctx, sess); err != nil {
		logger.Warn("paste session not saved", "err", err)
	}
	return dx, dy
}

// parsePoint parses "X,Y".
func parsePoint(s string) (pathway.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return pathway.Point{}, errors.New(errors.ErrCodeInvalidInput, "invalid point %q: want X,Y", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return pathway.Point{}, errors.New(errors.ErrCodeInvalidInput, "invalid point %q: want X,Y", s)
	}
	return pathway.Point{X: x, Y: y}, nil
}
