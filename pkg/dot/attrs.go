// Package dot builds directed Graphviz graphs and serializes them to DOT
// text. All nodes of a graph live in one shared slot arena and carry the
// subgraph they belong to, so a node's identifier is simply its arena
// index: unique across subgraphs, stable across growth, and cheap to hand
// around while the graph is still being assembled.
//
// Attribute enums resolve to DOT keywords through hash tables keyed by the
// enum value. The zero value of every enum means "unset" and the writer
// omits the attribute, falling back to Graphviz defaults.
package dot

import (
	"github.com/listviz/listviz/pkg/hashtable"
)

// Rank controls node placement inside a subgraph.
type Rank int

// Rank placements. RankNone emits no rank constraint.
const (
	RankNone Rank = iota
	RankSame
	RankMin
	RankMax
	RankSource
	RankSink
)

// Color is a stroke color for nodes and edges.
type Color int

// Named colors. ColorDefault leaves the attribute to Graphviz.
const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorBlack
	ColorYellow
	ColorOrange
)

// Style is a drawing style for nodes and edges.
type Style int

// Drawing styles. StyleDefault leaves the attribute to Graphviz.
const (
	StyleDefault Style = iota
	StyleFilled
	StyleRounded
	StyleDashed
	StyleDiagonals
	StyleInvis
	StyleBold
	StyleDotted
	StyleSolid
)

// Shape is a node outline shape.
type Shape int

// Node shapes. ShapeDefault leaves the attribute to Graphviz.
const (
	ShapeDefault Shape = iota
	ShapeBox
	ShapePolygon
	ShapeEllipse
	ShapeOval
	ShapeCircle
	ShapePoint
	ShapeDoubleCircle
	ShapeDoubleOctagon
	ShapeTripleOctagon
	ShapeInvTriangle
	ShapeInvTrapezium
	ShapeInvHouse
	ShapeEgg
	ShapeTriangle
	ShapePlaintext
	ShapePlain
	ShapeDiamond
	ShapeTrapezium
	ShapeParallelogram
	ShapeHouse
	ShapePentagon
	ShapeHexagon
	ShapeSeptagon
	ShapeOctagon
)

// The keyword tables deliberately omit the zero values, so a miss doubles
// as the "leave it to Graphviz" signal.
var (
	rankNames = mustNames(
		hashtable.P(int(RankSame), "same"),
		hashtable.P(int(RankMin), "min"),
		hashtable.P(int(RankMax), "max"),
		hashtable.P(int(RankSource), "source"),
		hashtable.P(int(RankSink), "sink"))

	colorNames = mustNames(
		hashtable.P(int(ColorRed), "red"),
		hashtable.P(int(ColorBlue), "blue"),
		hashtable.P(int(ColorGreen), "green"),
		hashtable.P(int(ColorBlack), "black"),
		hashtable.P(int(ColorYellow), "yellow"),
		hashtable.P(int(ColorOrange), "orange"))

	styleNames = mustNames(
		hashtable.P(int(StyleFilled), "filled"),
		hashtable.P(int(StyleRounded), "rounded"),
		hashtable.P(int(StyleDashed), "dashed"),
		hashtable.P(int(StyleDiagonals), "diagonals"),
		hashtable.P(int(StyleInvis), "invis"),
		hashtable.P(int(StyleBold), "bold"),
		hashtable.P(int(StyleDotted), "dotted"),
		hashtable.P(int(StyleSolid), "solid"))

	shapeNames = mustNames(
		hashtable.P(int(ShapeBox), "box"),
		hashtable.P(int(ShapePolygon), "polygon"),
		hashtable.P(int(ShapeEllipse), "ellipse"),
		hashtable.P(int(ShapeOval), "oval"),
		hashtable.P(int(ShapeCircle), "circle"),
		hashtable.P(int(ShapePoint), "point"),
		hashtable.P(int(ShapeDoubleCircle), "doublecircle"),
		hashtable.P(int(ShapeDoubleOctagon), "doubleoctagon"),
		hashtable.P(int(ShapeTripleOctagon), "tripleoctagon"),
		hashtable.P(int(ShapeInvTriangle), "invtriangle"),
		hashtable.P(int(ShapeInvTrapezium), "invtrapezium"),
		hashtable.P(int(ShapeInvHouse), "invhouse"),
		hashtable.P(int(ShapeEgg), "egg"),
		hashtable.P(int(ShapeTriangle), "triangle"),
		hashtable.P(int(ShapePlaintext), "plaintext"),
		hashtable.P(int(ShapePlain), "plain"),
		hashtable.P(int(ShapeDiamond), "diamond"),
		hashtable.P(int(ShapeTrapezium), "trapezium"),
		hashtable.P(int(ShapeParallelogram), "parallelogram"),
		hashtable.P(int(ShapeHouse), "house"),
		hashtable.P(int(ShapePentagon), "pentagon"),
		hashtable.P(int(ShapeHexagon), "hexagon"),
		hashtable.P(int(ShapeSeptagon), "septagon"),
		hashtable.P(int(ShapeOctagon), "octagon"))
)

func mustNames(pairs ...hashtable.Pair[int, string]) *hashtable.Table[int, string] {
	t, err := hashtable.Of(hashtable.Ints(), pairs...)
	if err != nil {
		panic(err)
	}
	return t
}

func lookupName(t *hashtable.Table[int, string], v int) string {
	name, ok := t.Lookup(v)
	if !ok {
		return ""
	}
	return name
}

// String returns the DOT keyword, or "" for [RankNone] and unknown values.
func (r Rank) String() string { return lookupName(rankNames, int(r)) }

// String returns the DOT keyword, or "" for [ColorDefault] and unknown values.
func (c Color) String() string { return lookupName(colorNames, int(c)) }

// String returns the DOT keyword, or "" for [StyleDefault] and unknown values.
func (s Style) String() string { return lookupName(styleNames, int(s)) }

// String returns the DOT keyword, or "" for [ShapeDefault] and unknown values.
func (s Shape) String() string { return lookupName(shapeNames, int(s)) }
