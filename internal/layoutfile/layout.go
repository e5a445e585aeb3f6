// Package layoutfile parses the YAML layout files that describe a tab's
// initial partition, adapting the teacher's flat PaneSpec{Name, Size,
// Command} shape (internal/tmux/layouts.go) into a tree that can carry
// nested splits rather than a single row of percentage-sized panes.
package layoutfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/zmux-dev/zmux/internal/geom"
)

// Split is the orientation of a Node's children.
type Split string

const (
	// SplitVertical arranges children left-to-right.
	SplitVertical Split = "vertical"
	// SplitHorizontal arranges children top-to-bottom.
	SplitHorizontal Split = "horizontal"
)

// Node is one entry in a layout file: either a leaf pane (Command set,
// no Children) or an internal split (Children set, no Command).
type Node struct {
	Name    string  `yaml:"name,omitempty"`
	Command string  `yaml:"command,omitempty"`
	Size    float64 `yaml:"size,omitempty"` // percent share of the parent axis; 0 = auto
	Fixed   int     `yaml:"fixed,omitempty"`

	Split    Split  `yaml:"split,omitempty"`
	Children []Node `yaml:"children,omitempty"`
}

// File is the root of a parsed layout file.
type File struct {
	Name string `yaml:"name"`
	Root Node   `yaml:"root"`
}

// Parse decodes a layout file from YAML bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing layout file: %w", err)
	}
	if err := validate(&f.Root); err != nil {
		return nil, fmt.Errorf("invalid layout %q: %w", f.Name, err)
	}
	return &f, nil
}

func validate(n *Node) error {
	isLeaf := len(n.Children) == 0
	if isLeaf && n.Command == "" && n.Name == "" {
		return fmt.Errorf("leaf node has neither name nor command")
	}
	if !isLeaf {
		if n.Split != SplitVertical && n.Split != SplitHorizontal {
			return fmt.Errorf("internal node missing a valid split orientation")
		}
		for i := range n.Children {
			if err := validate(&n.Children[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// PaneSlot is one resolved leaf from a layout tree: its geometry plus
// the command the PTY host should spawn for it.
type PaneSlot struct {
	Name    string
	Command string
	Geom    geom.PaneGeom
}

// Resolve walks the layout tree against a viewport of viewportCols by
// viewportRows cells, assigning each leaf a PaneGeom. Children within a
// split share the axis evenly unless they specify an explicit Size
// (percent of their immediate parent) or Fixed (cell count); since the
// tab's pane map is flat (spec.md §3), nested percentages are flattened
// here into dimensions expressed as a share of the whole viewport rather
// than of each leaf's immediate parent, so the resulting PaneGeom can be
// resolved directly against the viewport later without re-walking the
// tree.
func Resolve(f *File, viewportCols, viewportRows int) ([]PaneSlot, error) {
	var slots []PaneSlot
	root := geom.ResolvedRect{X: 0, Y: 0, Cols: viewportCols, Rows: viewportRows}
	rootDim := geom.PaneGeom{Cols: geom.Percent(100), Rows: geom.Percent(100)}
	if err := resolveNode(&f.Root, root, rootDim, viewportCols, viewportRows, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// resolveNode computes a node's absolute rectangle (rect) and the
// viewport-relative Dimension pair that produces it (dim), then, for
// leaves, emits a PaneSlot; for splits, partitions rect/dim among its
// children along the split axis.
func resolveNode(n *Node, rect geom.ResolvedRect, dim geom.PaneGeom, viewportCols, viewportRows int, out *[]PaneSlot) error {
	if len(n.Children) == 0 {
		geomOut := geom.PaneGeom{X: rect.X, Y: rect.Y, Cols: dim.Cols, Rows: dim.Rows}
		*out = append(*out, PaneSlot{Name: n.Name, Command: n.Command, Geom: geomOut})
		return nil
	}

	dims := childDimensions(n)
	x, y := rect.X, rect.Y

	for i := range n.Children {
		childDim := dim
		childRect := rect
		switch n.Split {
		case SplitVertical:
			cells := dims[i].Resolve(rect.Cols)
			childRect.X, childRect.Cols = x, cells
			childDim.Cols = flatten(dims[i], cells, viewportCols)
			x += cells
		case SplitHorizontal:
			cells := dims[i].Resolve(rect.Rows)
			childRect.Y, childRect.Rows = y, cells
			childDim.Rows = flatten(dims[i], cells, viewportRows)
			y += cells
		default:
			return fmt.Errorf("node %q: unknown split %q", n.Name, n.Split)
		}
		if err := resolveNode(&n.Children[i], childRect, childDim, viewportCols, viewportRows, out); err != nil {
			return err
		}
	}
	return nil
}

// flatten re-expresses a locally-assigned Dimension as a share of the
// whole viewport: Fixed dimensions are viewport-independent and pass
// through unchanged, Percent dimensions are recomputed from the cells
// they actually resolved to.
func flatten(local geom.Dimension, resolvedCells, viewportCells int) geom.Dimension {
	if local.IsFixed() {
		return local
	}
	if viewportCells == 0 {
		return geom.Percent(0)
	}
	return geom.Percent(100 * float64(resolvedCells) / float64(viewportCells))
}

// childDimensions computes each child's Dimension along the split axis:
// explicit Fixed/Size values are honoured, and any remaining share is
// split evenly among children that specified neither, renormalised so
// the Percent values sum to 100.
func childDimensions(n *Node) []geom.Dimension {
	dims := make([]geom.Dimension, len(n.Children))
	var explicitPercent float64
	var autoCount int

	for i, c := range n.Children {
		switch {
		case c.Fixed > 0:
			dims[i] = geom.Fixed(c.Fixed)
		case c.Size > 0:
			dims[i] = geom.Percent(c.Size)
			explicitPercent += c.Size
		default:
			autoCount++
		}
	}

	remaining := 100.0 - explicitPercent
	if remaining < 0 {
		remaining = 0
	}
	autoShare := 0.0
	if autoCount > 0 {
		autoShare = remaining / float64(autoCount)
	}
	for i, c := range n.Children {
		if c.Fixed <= 0 && c.Size <= 0 {
			dims[i] = geom.Percent(autoShare)
		}
	}
	return dims
}
