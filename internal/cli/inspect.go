package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/listviz/listviz/pkg/arena"
	"github.com/listviz/listviz/pkg/errors"
	"github.com/listviz/listviz/pkg/inspect"
	"github.com/listviz/listviz/pkg/render"
)

const (
	viewGraph = "graph"
	viewDump  = "dump"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		ops       string
		view      string
		capacity  int
		output    string
		formatStr string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Apply an operation script to a list and visualize its slots",
		Long: `Apply an operation script to a fresh list and visualize the result.

The script runs against an int list created with --capacity slots. The
physical layout is then emitted either as a Graphviz slot diagram showing
every slot with its next/prev links, the free ring, and the head/tail
markers (--view graph), or as a fixed-width text dump (--view dump).

An empty script shows the pristine arena: sentinel at slot 0 and all other
slots threaded into the free ring.

Operations: ` + opsHelp + `

Example:

  listviz inspect --ops "pushback=10,pushback=20,pushfront=5,delete=2,linearize"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), ops, view, capacity, output, formatStr)
		},
	}

	cmd.Flags().StringVar(&ops, "ops", "", "comma-separated operation script")
	cmd.Flags().StringVar(&view, "view", viewGraph, "view: graph or dump")
	cmd.Flags().IntVar(&capacity, "capacity", 10, "initial slot capacity")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (extension picks the format)")
	cmd.Flags().StringVarP(&formatStr, "format", "f", "", "output format for --view graph: svg, png, or dot")

	return cmd
}

func runInspect(ctx context.Context, ops, view string, capacity int, output, formatStr string) error {
	l, err := arena.New[int](capacity)
	if err != nil {
		return err
	}
	if err := applyScript(l, ops); err != nil {
		return err
	}

	switch view {
	case viewDump:
		if formatStr != "" {
			printWarning("--format only applies to --view graph")
		}
		var out io.Writer = os.Stdout
		if output != "" && output != "-" {
			f, err := openOutput(output)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return inspect.Dump(out, l)

	case viewGraph:
		g, err := inspect.List(l)
		if err != nil {
			return err
		}
		format, err := resolveFormat(formatStr, output, render.DOT)
		if err != nil {
			return err
		}
		if err := writeGraphArtifact(ctx, g, format, output); err != nil {
			return err
		}
		if output != "" && output != "-" {
			printSuccess("Slot diagram written")
			printFile(output)
			printSlotStats(l.Len(), l.Cap(), l.Linearized())
			if format == render.DOT {
				printNewline()
				printNextStep("Render it", fmt.Sprintf("%s render %s", appName, output))
			}
		}
		return nil

	default:
		return errors.New(errors.ErrCodeInvalidArgument, "unknown view %q (want graph or dump)", view)
	}
}
