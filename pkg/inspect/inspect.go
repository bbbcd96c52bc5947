// Package inspect draws the physical layout of arena lists and hash
// tables. Unlike a logical view, the drawings show every slot of the
// backing array, free ones included, with their next and prev links, so
// fragmentation and free-ring threading are visible at a glance.
//
// [List] and [Table] produce a [dot.Graph] ready for rendering, [Dump]
// writes a plain text table for terminals and logs.
package inspect

import (
	"fmt"
	"html"
	"strings"

	"github.com/listviz/listviz/pkg/arena"
	"github.com/listviz/listviz/pkg/dot"
	"github.com/listviz/listviz/pkg/hashtable"
)

// slotInfo is a display snapshot of one arena slot. Each row pair below
// the index header becomes a labeled cell row of the slot's node.
type slotInfo struct {
	next, prev arena.Index
	free       bool
	rows       [][2]string
}

// slotGraph holds the drawing parts shared by [List] and [Table]: a
// cycle node standing in for the sentinel, one HTML-table node per slot
// pinned into a row, and marker boxes pointing into it.
type slotGraph struct {
	graph   *dot.Graph
	markers *dot.Subgraph
	cycle   dot.NodeID
	ids     []dot.NodeID // slot index to node id, ids[0] is the cycle node
}

// newSlotGraph draws slots[i-1] as arena slot i. Links to slot 0 attach
// to the cycle node.
func newSlotGraph(slots []slotInfo, freeHead, head, tail arena.Index) (*slotGraph, error) {
	g, err := dot.New()
	if err != nil {
		return nil, err
	}
	markers, err := g.Subgraph(dot.RankNone)
	if err != nil {
		return nil, err
	}
	row, err := g.Subgraph(dot.RankSame)
	if err != nil {
		return nil, err
	}

	sg := &slotGraph{graph: g, markers: markers}
	sg.cycle, err = markers.AddNode(dot.Node{
		Label:     "cycle",
		Shape:     dot.ShapeBox,
		Style:     dot.StyleRounded,
		FontColor: "blue",
	})
	if err != nil {
		return nil, err
	}

	sg.ids = make([]dot.NodeID, len(slots)+1)
	sg.ids[0] = sg.cycle
	for i, s := range slots {
		id, err := row.AddNode(dot.Node{
			Label: slotLabel(arena.Index(i+1), s),
			Shape: dot.ShapePlaintext,
			HTML:  true,
		})
		if err != nil {
			return nil, err
		}
		sg.ids[i+1] = id
	}

	// Invisible chain pinning the row into array order.
	if err := row.SetEdgeDefaults(dot.Edge{Style: dot.StyleInvis}); err != nil {
		return nil, err
	}
	for i := 1; i < len(sg.ids)-1; i++ {
		if err := row.Edge(sg.ids[i], sg.ids[i+1]); err != nil {
			return nil, err
		}
	}

	for i, s := range slots {
		from := sg.ids[i+1]
		if err := sg.link(row, from, "next", s.next); err != nil {
			return nil, err
		}
		if err := sg.link(row, from, "prev", s.prev); err != nil {
			return nil, err
		}
	}

	if err := sg.marker("free", "seagreen", freeHead); err != nil {
		return nil, err
	}
	if err := sg.marker("head", "crimson", head); err != nil {
		return nil, err
	}
	if err := sg.marker("tail", "darkmagenta", tail); err != nil {
		return nil, err
	}
	return sg, nil
}

// link draws one next or prev edge. Slot-to-slot links stay inside the
// row and are excluded from ranking; links into the sentinel leave the
// row so they can pull the cycle node out of it.
func (sg *slotGraph) link(row *dot.Subgraph, from dot.NodeID, port string, to arena.Index) error {
	if to == arena.End {
		return sg.markers.AddEdge(dot.Edge{From: from, FromPort: port, To: sg.cycle})
	}
	return row.AddEdge(dot.Edge{
		From:         from,
		FromPort:     port,
		To:           sg.ids[to],
		Style:        dot.StyleSolid,
		NoConstraint: true,
	})
}

func (sg *slotGraph) marker(label, color string, target arena.Index) error {
	id, err := sg.markers.AddNode(dot.Node{
		Label:     label,
		Shape:     dot.ShapeBox,
		Style:     dot.StyleRounded,
		FontColor: color,
	})
	if err != nil {
		return err
	}
	if target == arena.End {
		return nil
	}
	return sg.markers.AddEdge(dot.Edge{From: id, To: sg.ids[target]})
}

func slotLabel(i arena.Index, s slotInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<table border="0" cellborder="1" cellspacing="0"><tr><td port="index" colspan="2"> %d </td></tr>`, i)
	for _, row := range s.rows {
		fmt.Fprintf(&b, `<tr><td> %s </td><td port=%q> %s </td></tr>`, row[0], row[0], row[1])
	}
	fmt.Fprintf(&b, `<tr><td> prev </td><td port="prev"> %d </td></tr><tr><td> next </td><td port="next"> %d </td></tr></table>`, s.prev, s.next)
	return b.String()
}

// cell renders a slot value for an HTML label. Free slots show up empty
// instead of flashing their zero value.
func cell(v any, free bool) string {
	if free {
		return ""
	}
	return html.EscapeString(fmt.Sprint(v))
}

// List draws the slot layout of an arena list: one table node per slot
// with its element, prev and next fields, the sentinel as a separate
// cycle node, and free, head and tail markers pointing into the row.
func List[E any](l *arena.List[E]) (*dot.Graph, error) {
	slots := make([]slotInfo, l.Cap()+1)
	for i := range slots {
		s, err := l.Slot(arena.Index(i + 1))
		if err != nil {
			return nil, err
		}
		slots[i] = slotInfo{
			next: s.Next,
			prev: s.Prev,
			free: s.Free,
			rows: [][2]string{{"elem", cell(s.Value, s.Free)}},
		}
	}
	sg, err := newSlotGraph(slots, l.FreeHead(), l.Head(), l.Tail())
	if err != nil {
		return nil, err
	}
	return sg.graph, nil
}

// Table draws a hash table's bucket array on top of the slot layout of
// its shared pair arena. Occupied buckets appear as marker boxes with an
// edge to their chain head, so chain runs can be followed through the
// arena row.
func Table[K, V any](t *hashtable.Table[K, V]) (*dot.Graph, error) {
	pairs := t.Pairs()
	slots := make([]slotInfo, pairs.Cap()+1)
	for i := range slots {
		s, err := pairs.Slot(arena.Index(i + 1))
		if err != nil {
			return nil, err
		}
		slots[i] = slotInfo{
			next: s.Next,
			prev: s.Prev,
			free: s.Free,
			rows: [][2]string{
				{"key", cell(s.Value.Key, s.Free)},
				{"value", cell(s.Value.Value, s.Free)},
			},
		}
	}
	sg, err := newSlotGraph(slots, pairs.FreeHead(), pairs.Head(), pairs.Tail())
	if err != nil {
		return nil, err
	}

	for i := 0; i < t.BucketCount(); i++ {
		head, size := t.Bucket(i)
		if size == 0 {
			continue
		}
		id, err := sg.markers.AddNode(dot.Node{
			Label:     fmt.Sprintf("bucket %d (%d)", i, size),
			Shape:     dot.ShapeBox,
			Style:     dot.StyleRounded,
			FontColor: "steelblue",
		})
		if err != nil {
			return nil, err
		}
		if err := sg.markers.AddEdge(dot.Edge{From: id, To: sg.ids[head]}); err != nil {
			return nil, err
		}
	}
	return sg.graph, nil
}
