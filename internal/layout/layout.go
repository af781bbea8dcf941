// Package layout positions a graph.Graph's nodes for SVG rendering:
// a simple grid layout and a hierarchical layout that follows the L5X
// containment hierarchy (controller/task/program/routine). Ported from
// plcviz/src/layout/{grid,hierarchical}.rs.
package layout

import (
	"math"
	"sort"

	"github.com/radevgit/plceye/internal/graph"
)

// Layout positions every node in g in place.
type Layout interface {
	Apply(g *graph.Graph)
	Dimensions(g *graph.Graph) (width, height uint32)
}

// GridLayout places nodes left-to-right, top-to-bottom in a fixed
// number of columns, ignoring node type or parentage — the simplest
// layout, suited to flat tag/UDT listings.
type GridLayout struct {
	Columns    int
	CellWidth  float64
	CellHeight float64
	Padding    float64
}

// NewGridLayout returns a GridLayout with plcviz's original defaults.
func NewGridLayout() GridLayout {
	return GridLayout{Columns: 4, CellWidth: 150, CellHeight: 80, Padding: 20}
}

func (l GridLayout) Apply(g *graph.Graph) {
	for i := range g.Nodes {
		col := i % l.Columns
		row := i / l.Columns
		g.Nodes[i].X = l.Padding + float64(col)*l.CellWidth
		g.Nodes[i].Y = l.Padding + float64(row)*l.CellHeight
	}
}

func (l GridLayout) Dimensions(g *graph.Graph) (uint32, uint32) {
	n := len(g.Nodes)
	rows := (n + l.Columns - 1) / l.Columns
	width := l.Padding*2 + float64(l.Columns)*l.CellWidth
	height := l.Padding*2 + float64(rows)*l.CellHeight
	return uint32(width), uint32(height)
}

// HierarchicalLayout groups nodes into layers by graph.NodeType
// (overridable per node via Node.Layer), packs each layer left to
// right grouped by parent, and then re-centers each parent's children
// underneath it — a Sugiyama-style layered layout using the L5X
// structure itself as the layering hint, rather than an edge-crossing
// minimization pass.
type HierarchicalLayout struct {
	LayerHeight  float64
	NodeSpacing  float64
	Padding      float64
	GroupSpacing float64
}

// NewHierarchicalLayout returns a HierarchicalLayout with plcviz's
// original defaults.
func NewHierarchicalLayout() HierarchicalLayout {
	return HierarchicalLayout{LayerHeight: 100, NodeSpacing: 30, Padding: 40, GroupSpacing: 50}
}

func (l HierarchicalLayout) Apply(g *graph.Graph) {
	if len(g.Nodes) == 0 {
		return
	}

	layers := make(map[uint32][]int)
	for idx, n := range g.Nodes {
		layers[n.Layer] = append(layers[n.Layer], idx)
	}

	var layerKeys []uint32
	for k := range layers {
		layerKeys = append(layerKeys, k)
	}
	sort.Slice(layerKeys, func(i, j int) bool { return layerKeys[i] < layerKeys[j] })

	for layerIdx, layerNum := range layerKeys {
		groups := l.groupByParent(g, layers[layerNum])

		x := l.Padding
		for _, group := range groups {
			for _, nodeIdx := range group {
				n := &g.Nodes[nodeIdx]
				n.X = x
				n.Y = l.Padding + float64(layerIdx)*l.LayerHeight
				x += n.Width + l.NodeSpacing
			}
			x += l.GroupSpacing - l.NodeSpacing
		}
	}

	l.centerChildrenUnderParents(g)
}

// groupByParent partitions nodeIndices into groups sharing the same
// parent, ordering the no-parent group first and the rest
// lexicographically by parent ID for stable output.
func (l HierarchicalLayout) groupByParent(g *graph.Graph, nodeIndices []int) [][]int {
	groups := make(map[string][]int)
	for _, idx := range nodeIndices {
		groups[g.Nodes[idx].Parent] = append(groups[g.Nodes[idx].Parent], idx)
	}

	var keys []string
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a == "" {
			return b != ""
		}
		if b == "" {
			return false
		}
		return a < b
	})

	out := make([][]int, 0, len(keys))
	for _, k := range keys {
		out = append(out, groups[k])
	}
	return out
}

func (l HierarchicalLayout) centerChildrenUnderParents(g *graph.Graph) {
	children := make(map[graph.NodeId][]int)
	for idx, n := range g.Nodes {
		if n.Parent != "" {
			children[n.Parent] = append(children[n.Parent], idx)
		}
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		kids, ok := children[n.ID]
		if !ok || len(kids) == 0 {
			continue
		}

		left := math.Inf(1)
		right := math.Inf(-1)
		for _, idx := range kids {
			c := &g.Nodes[idx]
			left = math.Min(left, c.X)
			right = math.Max(right, c.X+c.Width)
		}
		childrenCenter := (left + right) / 2
		parentCenter := n.X + n.Width/2
		shift := parentCenter - childrenCenter
		if math.Abs(shift) > 1 {
			for _, idx := range kids {
				g.Nodes[idx].X += shift
			}
		}
	}
}

func (l HierarchicalLayout) Dimensions(g *graph.Graph) (uint32, uint32) {
	if len(g.Nodes) == 0 {
		return 400, 300
	}
	maxX, maxY := 0.0, 0.0
	for _, n := range g.Nodes {
		maxX = math.Max(maxX, n.X+n.Width)
		maxY = math.Max(maxY, n.Y+n.Height)
	}
	return uint32(maxX + l.Padding), uint32(maxY + l.Padding)
}
