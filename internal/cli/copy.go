package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathclip/pkg/copyset"
	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/gpml"
	"github.com/matzehuels/pathclip/pkg/pathway"
	"github.com/matzehuels/pathclip/pkg/transfer"
)

type copyOpts struct {
	all    bool
	pick   bool
	noInfo bool
	print  bool
}

// copyCommand creates the copy command.
func (c *CLI) copyCommand() *cobra.Command {
	var opts copyOpts

	cmd := &cobra.Command{
		Use:   "copy SOURCE [ID...]",
		Short: "Copy elements of a document onto the board",
		Long: `Copy the given elements of SOURCE onto the board.

The copy gets fresh element IDs. Lines keep only the ends attached to copied
elements, groups keep only copied members, and anchors travel with their
line. Selecting a group does not select its members.`,
		Example: `  pathclip copy glycolysis.gpml n1 n2 conv1
  pathclip copy glycolysis.gpml --all
  pathclip copy glycolysis.gpml --pick`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCopy(cmd.Context(), args[0], args[1:], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "copy every element of the document")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose elements interactively")
	cmd.Flags().BoolVar(&opts.noInfo, "no-info", false, "do not add placeholder metadata to the fragment")
	cmd.Flags().BoolVar(&opts.print, "print", false, "also write the fragment to stdout")
	cmd.MarkFlagsMutuallyExclusive("all", "pick")

	return cmd
}

func (c *CLI) runCopy(ctx context.Context, source string, ids []string, opts copyOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if err := errors.ValidatePath(source); err != nil {
		return err
	}
	doc, err := gpml.ReadFile(source)
	if err != nil {
		return err
	}

	selection, err := selectElements(doc, ids, opts)
	if err != nil {
		return err
	}

	var copyOptions []copyset.Option
	if opts.noInfo {
		copyOptions = append(copyOptions, copyset.WithoutSyntheticInfo())
	}

	spinner := newSpinnerWithContext(ctx, "Copying...")
	spinner.Start()
	copied, err := c.adapter().Copy(ctx, doc, selection, copyOptions...)
	spinner.Stop()
	if err != nil {
		return err
	}
	if copied.Payload.IsEmpty() {
		return errors.Internal("fragment could not be serialized")
	}

	b, err := c.openBoard(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	cfg := c.settings()
	if err := b.Put(ctx, cfg.Board.Name, copied.Payload, cfg.Board.TTL.Duration); err != nil {
		return err
	}
	if err := c.claimBoard(ctx, transfer.Fingerprint(copied.Payload)); err != nil {
		logger.Warn("paste offsets will not advance", "err", err)
	}

	prog.done("copied", "elements", copied.Fragment.Len())
	printSuccess("Copied %s to board %s",
		StyleHighlight.Render(fmt.Sprintf("%d elements", copied.Fragment.Len())),
		StyleHighlight.Render(cfg.Board.Name))
	printReport(copied.Report)

	if opts.print {
		text, _ := transfer.ExtractText(copied.Payload)
		fmt.Fprint(stdout, text)
	}
	return nil
}

// selectElements resolves the selection from IDs or flags.
func selectElements(doc *pathway.Model, ids []string, opts copyOpts) ([]pathway.Element, error) {
	switch {
	case opts.all:
		if len(ids) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--all cannot be combined with element IDs")
		}
		return doc.Elements(), nil
	case opts.pick:
		return pickElements(doc.Elements())
	}

	if len(ids) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no elements selected: pass IDs, --all or --pick")
	}
	selection := make([]pathway.Element, 0, len(ids))
	for _, id := range ids {
		e, ok := doc.Element(id)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "no element %q in document", id)
		}
		selection = append(selection, e)
	}
	return selection, nil
}

// claimBoard records that this machine owns the board content, so repeated
// pastes of it are offset.
func (c *CLI) claimBoard(ctx context.Context, fingerprint string) error {
	store, err := c.sessions()
	if err != nil {
		return err
	}
	sess, err := store.Get(ctx, c.settings().Board.Name)
	if err != nil {
		return err
	}
	sess.ObtainedOwnership(fingerprint)
	return store.Set(ctx, sess)
}
