package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/gpml"
	"github.com/matzehuels/pathclip/pkg/transfer"
)

// Output formats of the inspect command.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect [FILE]",
		Short: "Summarize a fragment or document",
		Long: `Summarize the element counts of FILE, or of the board content if no file
is given. The summary is computed on the serialized text, so it also works on
documents that fail to load.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runInspect(cmd.Context(), path, format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText, "output format: text, json, yaml")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, path, format string) error {
	if format != formatText && format != formatJSON && format != formatYAML {
		return errors.New(errors.ErrCodeInvalidInput, "unknown output format %q", format)
	}

	data, source, err := c.readText(ctx, path)
	if err != nil {
		return err
	}
	summary, err := gpml.Inspect(data)
	if err != nil {
		return err
	}
	if summary == nil {
		return errors.New(errors.ErrCodeInvalidPayload, "%s is empty", source)
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case formatYAML:
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(summary)
	}

	fmt.Fprintln(stdout, StyleTitle.Render(source))
	if summary.Title != "" {
		printKeyValue("title", summary.Title)
	}
	printKeyValue("schema", strconv.Itoa(summary.SchemaVersion))
	printKeyValue("elements", strconv.Itoa(summary.Elements))
	printKeyValue("anchors", strconv.Itoa(summary.Anchors))
	for _, kind := range slices.Sorted(maps.Keys(summary.Counts)) {
		printKeyValue("  "+kind, strconv.Itoa(summary.Counts[kind]))
	}
	if summary.Synthetic {
		printDetail("carries placeholder metadata from a copy")
	}
	return nil
}

// readText returns the raw text of path, or of the board content.
func (c *CLI) readText(ctx context.Context, path string) ([]byte, string, error) {
	if path != "" {
		if err := errors.ValidatePath(path); err != nil {
			return nil, "", err
		}
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, "", errors.New(errors.ErrCodeFileNotFound, "file not found: %s", path)
		}
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", path, err)
		}
		return data, path, nil
	}

	b, err := c.openBoard(ctx)
	if err != nil {
		return nil, "", err
	}
	defer b.Close()

	name := c.settings().Board.Name
	entry, ok, err := b.Get(ctx, name)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", errors.New(errors.ErrCodeBoardNotFound, "board %q is empty", name)
	}
	text, ok := transfer.ExtractText(entry.Payload)
	if !ok {
		return nil, "", errors.New(errors.ErrCodeInvalidPayload, "board %q holds no fragment text", name)
	}
	return []byte(text), "board " + name, nil
}
