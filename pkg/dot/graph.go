package dot

import (
	"fmt"

	"github.com/listviz/listviz/pkg/arena"
	"github.com/listviz/listviz/pkg/errors"
)

// Initial arena capacities. Lists grow on demand, these just size the
// common case of a handful of subgraphs with a few dozen nodes each.
const (
	defaultSubgraphCapacity = 3
	defaultNodeCapacity     = 10
	defaultEdgeCapacity     = 10
)

// NodeID identifies a node within its graph. It is the node's slot index
// in the shared node arena, so it is unique across subgraphs and stays
// valid as the graph grows.
type NodeID = arena.Index

// SubgraphID identifies a subgraph within its graph.
type SubgraphID = arena.Index

// Node describes a single DOT node. Zero-valued attributes are omitted
// from the output.
type Node struct {
	Label string
	Shape Shape
	Color Color
	Style Style

	// FontColor is emitted verbatim, which admits the full Graphviz color
	// space rather than just the [Color] palette.
	FontColor string

	// HTML marks Label as an HTML-like label: the writer wraps it in
	// angle brackets instead of quoting it.
	HTML bool
}

// Edge describes a directed edge. Since node identifiers are global to
// the graph, an edge may connect nodes of different subgraphs.
type Edge struct {
	From, To NodeID

	// FromPort and ToPort select cell ports of HTML-table nodes.
	FromPort, ToPort string

	Label string
	Color Color
	Style Style

	// NoConstraint excludes the edge from ranking, matching the DOT
	// attribute constraint=false.
	NoConstraint bool
}

// taggedNode is a node plus the subgraph it belongs to. All nodes share
// one arena, the tag decides which subgraph block prints them.
type taggedNode struct {
	node Node
	sub  SubgraphID
}

type subgraph struct {
	rank  Rank
	edges *arena.List[Edge]

	nodeDefaults Node
	edgeDefaults Edge
}

// Graph is a directed graph under construction. Create one with [New],
// populate it through [Graph.Subgraph] handles, and serialize it with
// [Graph.WriteTo] or [Graph.String].
type Graph struct {
	nodes     *arena.List[taggedNode]
	subgraphs *arena.List[subgraph]
}

// New returns an empty directed graph.
func New() (*Graph, error) {
	nodes, err := arena.New[taggedNode](defaultNodeCapacity)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAllocFailed, err, "dot: create graph")
	}
	subs, err := arena.New[subgraph](defaultSubgraphCapacity)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAllocFailed, err, "dot: create graph")
	}
	return &Graph{nodes: nodes, subgraphs: subs}, nil
}

// Subgraph appends a subgraph with the given rank constraint and returns
// a handle for adding nodes and edges to it. Use [RankNone] for no
// constraint.
func (g *Graph) Subgraph(rank Rank) (*Subgraph, error) {
	edges, err := arena.New[Edge](defaultEdgeCapacity)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAllocFailed, err, "dot: create subgraph")
	}
	id, err := g.subgraphs.PushBack(subgraph{rank: rank, edges: edges})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAllocFailed, err, "dot: add subgraph")
	}
	return &Subgraph{graph: g, id: id}, nil
}

// Subgraphs reports how many subgraphs the graph holds.
func (g *Graph) Subgraphs() int { return g.subgraphs.Len() }

// Nodes reports how many nodes the graph holds across all subgraphs.
func (g *Graph) Nodes() int { return g.nodes.Len() }

// Node returns the node with the given identifier.
func (g *Graph) Node(id NodeID) (Node, error) {
	tn, err := g.nodes.Value(id)
	if err != nil {
		return Node{}, errors.Wrap(errors.ErrCodeInvalidIndex, err, "dot: node %d", id)
	}
	return tn.node, nil
}

// Subgraph is a handle to one subgraph of a [Graph]. The zero value is
// not usable.
type Subgraph struct {
	graph *Graph
	id    SubgraphID
}

// ID returns the subgraph's slot index within its graph.
func (s *Subgraph) ID() SubgraphID { return s.id }

func (s *Subgraph) value() (subgraph, error) {
	sub, err := s.graph.subgraphs.Value(s.id)
	if err != nil {
		return subgraph{}, errors.Wrap(errors.ErrCodeLogicError, err, "dot: stale subgraph handle")
	}
	return sub, nil
}

// SetNodeDefaults sets the template for nodes added through [Subgraph.Node]
// and [Subgraph.Nodef] from now on. Already added nodes keep their
// attributes.
func (s *Subgraph) SetNodeDefaults(n Node) error {
	sub, err := s.value()
	if err != nil {
		return err
	}
	sub.nodeDefaults = n
	return s.graph.subgraphs.SetValue(s.id, sub)
}

// SetEdgeDefaults sets the template for edges added through [Subgraph.Edge]
// and [Subgraph.Edgef] from now on.
func (s *Subgraph) SetEdgeDefaults(e Edge) error {
	sub, err := s.value()
	if err != nil {
		return err
	}
	sub.edgeDefaults = e
	return s.graph.subgraphs.SetValue(s.id, sub)
}

// Node appends a node with the given label on top of the subgraph's node
// defaults and returns its identifier.
func (s *Subgraph) Node(label string) (NodeID, error) {
	sub, err := s.value()
	if err != nil {
		return arena.End, err
	}
	n := sub.nodeDefaults
	n.Label = label
	return s.addNode(n)
}

// Nodef is [Subgraph.Node] with a formatted label.
func (s *Subgraph) Nodef(format string, args ...any) (NodeID, error) {
	return s.Node(fmt.Sprintf(format, args...))
}

// AddNode appends a node exactly as given, bypassing the subgraph's node
// defaults.
func (s *Subgraph) AddNode(n Node) (NodeID, error) {
	if _, err := s.value(); err != nil {
		return arena.End, err
	}
	return s.addNode(n)
}

func (s *Subgraph) addNode(n Node) (NodeID, error) {
	id, err := s.graph.nodes.PushBack(taggedNode{node: n, sub: s.id})
	if err != nil {
		return arena.End, errors.Wrap(errors.ErrCodeAllocFailed, err, "dot: add node")
	}
	return id, nil
}

// Edge appends an unlabeled edge from one node to another on top of the
// subgraph's edge defaults.
func (s *Subgraph) Edge(from, to NodeID) error {
	return s.Edgef(from, to, "")
}

// Edgef appends an edge with a formatted label on top of the subgraph's
// edge defaults.
func (s *Subgraph) Edgef(from, to NodeID, format string, args ...any) error {
	sub, err := s.value()
	if err != nil {
		return err
	}
	e := sub.edgeDefaults
	e.From, e.To = from, to
	e.Label = fmt.Sprintf(format, args...)
	return s.addEdge(sub, e)
}

// AddEdge appends an edge exactly as given, bypassing the subgraph's edge
// defaults.
func (s *Subgraph) AddEdge(e Edge) error {
	sub, err := s.value()
	if err != nil {
		return err
	}
	return s.addEdge(sub, e)
}

func (s *Subgraph) addEdge(sub subgraph, e Edge) error {
	if _, err := sub.edges.PushBack(e); err != nil {
		return errors.Wrap(errors.ErrCodeAllocFailed, err, "dot: add edge")
	}
	return nil
}

// NodeAt returns the identifier of the subgraph's pos-th node in insertion
// order, counting from zero.
func (s *Subgraph) NodeAt(pos int) (NodeID, error) {
	if pos >= 0 {
		seen := 0
		for id, tn := range s.graph.nodes.All() {
			if tn.sub != s.id {
				continue
			}
			if seen == pos {
				return id, nil
			}
			seen++
		}
	}
	return arena.End, errors.New(errors.ErrCodeInvalidIndex, "dot: node position %d out of range", pos)
}

// Nodes reports how many nodes belong to the subgraph.
func (s *Subgraph) Nodes() int {
	count := 0
	for _, tn := range s.graph.nodes.All() {
		if tn.sub == s.id {
			count++
		}
	}
	return count
}

// Edges reports how many edges the subgraph holds.
func (s *Subgraph) Edges() (int, error) {
	sub, err := s.value()
	if err != nil {
		return 0, err
	}
	return sub.edges.Len(), nil
}
