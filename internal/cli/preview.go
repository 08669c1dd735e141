package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/render/nodelink"
)

type previewOpts struct {
	output   string
	detailed bool
}

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview [FILE]",
		Short: "Render a fragment or document as a diagram",
		Long: `Render FILE, or the board content if no file is given, as a node-link
diagram. The output format follows the extension of -o: .svg or .dot.`,
		Example: `  pathclip preview -o board.svg
  pathclip preview glycolysis.gpml -o glycolysis.dot --detailed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runPreview(cmd.Context(), path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.svg or .dot)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show IDs, types and properties in labels")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, path string, opts previewOpts) error {
	ext := strings.ToLower(filepath.Ext(opts.output))
	if ext != ".svg" && ext != ".dot" {
		return errors.New(errors.ErrCodeInvalidInput, "unsupported output format %q: use .svg or .dot", ext)
	}
	if err := errors.ValidatePath(opts.output); err != nil {
		return err
	}

	m, err := c.loadModel(ctx, path)
	if err != nil {
		return err
	}
	dot := nodelink.ToDOT(m, nodelink.Options{Detailed: opts.detailed})

	data := []byte(dot)
	if ext == ".svg" {
		spinner := newSpinnerWithContext(ctx, "Rendering...")
		spinner.Start()
		data, err = nodelink.RenderSVG(dot)
		spinner.Stop()
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	printSuccess("Rendered %d elements", m.Len())
	printFile(opts.output)
	return nil
}
