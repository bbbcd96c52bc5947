package dot

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// WriteTo serializes the graph as DOT text. Subgraphs appear in insertion
// order; within each subgraph block its nodes precede its edges.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("digraph {\n")
	for id, sub := range g.subgraphs.All() {
		g.writeSubgraph(&buf, id, sub)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// String returns the graph as DOT text.
func (g *Graph) String() string {
	var buf bytes.Buffer
	if _, err := g.WriteTo(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func (g *Graph) writeSubgraph(buf *bytes.Buffer, id SubgraphID, sub subgraph) {
	buf.WriteString("\tsubgraph {\n")
	if name := sub.rank.String(); name != "" {
		fmt.Fprintf(buf, "\t\trank = %s;\n", name)
	}
	for nid, tn := range g.nodes.All() {
		if tn.sub != id {
			continue
		}
		writeNode(buf, nid, tn.node)
	}
	for _, e := range sub.edges.All() {
		writeEdge(buf, e)
	}
	buf.WriteString("\t}\n")
}

func writeNode(buf *bytes.Buffer, id NodeID, n Node) {
	attrs := make([]string, 0, 5)
	if n.HTML {
		attrs = append(attrs, fmt.Sprintf("label = <%s>", n.Label))
	} else {
		attrs = append(attrs, fmt.Sprintf("label = %q", n.Label))
	}
	if name := n.Shape.String(); name != "" {
		attrs = append(attrs, fmt.Sprintf("shape = %q", name))
	}
	if name := n.Color.String(); name != "" {
		attrs = append(attrs, fmt.Sprintf("color = %q", name))
	}
	if name := n.Style.String(); name != "" {
		attrs = append(attrs, fmt.Sprintf("style = %q", name))
	}
	if n.FontColor != "" {
		attrs = append(attrs, fmt.Sprintf("fontcolor = %q", n.FontColor))
	}
	fmt.Fprintf(buf, "\t\tnode_%d [%s];\n", id, strings.Join(attrs, ", "))
}

func writeEdge(buf *bytes.Buffer, e Edge) {
	attrs := make([]string, 0, 4)
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label = %q", e.Label))
	}
	if name := e.Color.String(); name != "" {
		attrs = append(attrs, fmt.Sprintf("color = %q", name))
	}
	if name := e.Style.String(); name != "" {
		attrs = append(attrs, fmt.Sprintf("style = %q", name))
	}
	if e.NoConstraint {
		attrs = append(attrs, "constraint = false")
	}

	fmt.Fprintf(buf, "\t\t%s -> %s", endpoint(e.From, e.FromPort), endpoint(e.To, e.ToPort))
	if len(attrs) > 0 {
		fmt.Fprintf(buf, " [%s]", strings.Join(attrs, ", "))
	}
	buf.WriteString(";\n")
}

func endpoint(id NodeID, port string) string {
	if port == "" {
		return fmt.Sprintf("node_%d", id)
	}
	return fmt.Sprintf("node_%d:%s", id, port)
}
