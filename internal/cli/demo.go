package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/listviz/listviz/pkg/dot"
	"github.com/listviz/listviz/pkg/errors"
	"github.com/listviz/listviz/pkg/render"
	"github.com/listviz/listviz/pkg/stack"
)

// demoCommand creates the demo command.
func (c *CLI) demoCommand() *cobra.Command {
	var (
		value     int
		output    string
		formatStr string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Emit or render the bundled call-tree example graph",
		Long: `Emit or render the bundled call-tree example graph.

The demo builds a recursive call tree: each node calls value-1 and value-2
until it bottoms out at 0 or 1, styled as rounded red boxes with orange
edges. Every node and edge lives in the same slot arenas the inspect
command visualizes.

Without flags the graph is printed as DOT on stdout, ready to pipe into
'listviz render' or any Graphviz tool. With --output the graph is rendered
to SVG or PNG directly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("value") {
				value = c.Config.Demo.Value
			}
			return runDemo(cmd.Context(), value, output, formatStr)
		},
	}

	cmd.Flags().IntVar(&value, "value", DefaultConfig().Demo.Value, "root value of the call tree")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (extension picks the format)")
	cmd.Flags().StringVarP(&formatStr, "format", "f", "", "output format: svg, png, or dot (default from --output extension)")

	return cmd
}

func runDemo(ctx context.Context, value int, output, formatStr string) error {
	g, err := buildDemoGraph(value)
	if err != nil {
		return err
	}

	format, err := resolveFormat(formatStr, output, render.DOT)
	if err != nil {
		return err
	}

	if format != render.DOT {
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
		spinner.Start()
		if err := writeGraphArtifact(ctx, g, format, output); err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		spinner.Stop()
	} else if err := writeGraphArtifact(ctx, g, format, output); err != nil {
		return err
	}

	if output != "" && output != "-" {
		printSuccess("Demo graph written")
		printFile(output)
		if format == render.DOT {
			printNewline()
			printNextStep("Render it", fmt.Sprintf("%s render %s", appName, output))
		}
	}
	return nil
}

// buildDemoGraph builds the call tree for value: one node per recursive
// call, an edge from each caller to its callees, stopping at 0 and 1.
func buildDemoGraph(value int) (*dot.Graph, error) {
	g, err := dot.New()
	if err != nil {
		return nil, err
	}
	sg, err := g.Subgraph(dot.RankNone)
	if err != nil {
		return nil, err
	}

	if err := sg.SetNodeDefaults(dot.Node{
		Style: dot.StyleRounded,
		Color: dot.ColorRed,
		Shape: dot.ShapeBox,
	}); err != nil {
		return nil, err
	}
	if err := sg.SetEdgeDefaults(dot.Edge{
		Color: dot.ColorOrange,
		Style: dot.StyleSolid,
	}); err != nil {
		return nil, err
	}

	root, err := sg.Node("root")
	if err != nil {
		return nil, err
	}
	if err := addCallTree(sg, root, value); err != nil {
		return nil, err
	}
	return g, nil
}

// addCallTree adds the subtree for one call of value under parent. The
// traversal runs on an explicit work stack, pushing callees in reverse so
// the value-1 branch expands fully before value-2.
func addCallTree(sg *dot.Subgraph, parent dot.NodeID, value int) error {
	type call struct {
		parent dot.NodeID
		value  int
	}

	work := stack.New[call](8)
	work.Push(call{parent, value})

	for work.Len() > 0 {
		cur, err := work.Pop()
		if err != nil {
			return err
		}

		node, err := sg.Nodef("%d", cur.value)
		if err != nil {
			return err
		}
		if err := sg.Edge(cur.parent, node); err != nil {
			return err
		}

		if cur.value == 0 || cur.value == 1 {
			continue
		}
		work.Push(call{node, cur.value - 2})
		work.Push(call{node, cur.value - 1})
	}

	return nil
}

// resolveFormat picks the output format from the --format flag, then the
// output file extension, then fallback.
func resolveFormat(formatStr, output string, fallback render.Format) (render.Format, error) {
	if formatStr != "" {
		return render.ParseFormat(formatStr)
	}
	if ext := filepath.Ext(output); ext != "" {
		return render.ParseFormat(ext)
	}
	return fallback, nil
}

// writeGraphArtifact serializes g, rendering it first unless the format is
// DOT, and writes the result to output. Empty output or "-" means stdout.
func writeGraphArtifact(ctx context.Context, g *dot.Graph, format render.Format, output string) error {
	if format != render.DOT && (output == "" || output == "-") {
		return errors.New(errors.ErrCodeInvalidArgument, "rendered %s output needs --output FILE", format)
	}

	if output == "" || output == "-" {
		_, err := g.WriteTo(os.Stdout)
		return err
	}

	data, err := render.Graph(ctx, render.NewEngine(), g, format)
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}
