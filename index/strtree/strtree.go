/*
Copyright © 2026 the geocol authors.
This file is part of geocol.

geocol is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

geocol is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with geocol.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package strtree implements a static, bulk-loaded bounding box tree using
// the Sort-Tile-Recursive packing algorithm.
//
// A Tree is built once from all of its entries and cannot be modified
// afterwards. Query order depends only on the input order, so identical
// input always yields identical results.
package strtree

import (
	"math"
	"sort"

	"github.com/ctessum/geom"
)

// DefaultNodeCapacity is the maximum number of children per node used when
// no capacity is given.
const DefaultNodeCapacity = 10

// Item is an entry in the tree: a bounding box tagged with the index of the
// object it belongs to.
type Item struct {
	Bounds *geom.Bounds
	Index  int
}

type node struct {
	bounds   *geom.Bounds
	children []*node
	items    []Item // only set on leaves
}

// Tree is a packed bounding box tree.
type Tree struct {
	root     *node
	size     int
	capacity int
}

// New bulk-loads a tree from items. Items with nil, empty or NaN bounds are
// not indexed. A nodeCapacity below 2 selects DefaultNodeCapacity.
func New(items []Item, nodeCapacity int) *Tree {
	if nodeCapacity < 2 {
		nodeCapacity = DefaultNodeCapacity
	}
	t := &Tree{capacity: nodeCapacity}

	entries := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Bounds == nil || it.Bounds.Empty() || hasNaN(it.Bounds) {
			continue
		}
		entries = append(entries, it)
	}
	t.size = len(entries)
	if t.size == 0 {
		return t
	}

	var level []*node
	for _, group := range pack(entries, func(it Item) *geom.Bounds { return it.Bounds }, nodeCapacity) {
		n := &node{items: group, bounds: geom.NewBounds()}
		for _, it := range group {
			n.bounds.Extend(it.Bounds)
		}
		level = append(level, n)
	}
	for len(level) > 1 {
		var parents []*node
		for _, group := range pack(level, func(n *node) *geom.Bounds { return n.bounds }, nodeCapacity) {
			p := &node{children: group, bounds: geom.NewBounds()}
			for _, c := range group {
				p.bounds.Extend(c.bounds)
			}
			parents = append(parents, p)
		}
		level = parents
	}
	t.root = level[0]
	return t
}

// hasNaN reports whether any ordinate of b is NaN. NaN never overlaps, and
// extending a node with it would hide the node's other items.
func hasNaN(b *geom.Bounds) bool {
	return math.IsNaN(b.Min.X) || math.IsNaN(b.Min.Y) || math.IsNaN(b.Max.X) || math.IsNaN(b.Max.Y)
}

// pack groups xs into runs of at most capacity elements using
// Sort-Tile-Recursive ordering: xs is sorted by x center and cut into
// vertical slices, and each slice is sorted by y center and cut into groups.
func pack[T any](xs []T, box func(T) *geom.Bounds, capacity int) [][]T {
	n := len(xs)
	groupCount := (n + capacity - 1) / capacity
	sliceCount := int(math.Ceil(math.Sqrt(float64(groupCount))))
	sliceSize := sliceCount * capacity

	sorted := make([]T, n)
	copy(sorted, xs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return centerX(box(sorted[i])) < centerX(box(sorted[j]))
	})

	groups := make([][]T, 0, groupCount)
	for start := 0; start < n; start += sliceSize {
		slice := sorted[start:min(start+sliceSize, n)]
		sort.SliceStable(slice, func(i, j int) bool {
			return centerY(box(slice[i])) < centerY(box(slice[j]))
		})
		for s := 0; s < len(slice); s += capacity {
			e := min(s+capacity, len(slice))
			groups = append(groups, slice[s:e:e])
		}
	}
	return groups
}

func centerX(b *geom.Bounds) float64 { return (b.Min.X + b.Max.X) / 2 }
func centerY(b *geom.Bounds) float64 { return (b.Min.Y + b.Max.Y) / 2 }

// Len returns the number of indexed items.
func (t *Tree) Len() int { return t.size }

// Bounds returns the extent of all indexed items, or empty bounds if the
// tree is empty.
func (t *Tree) Bounds() *geom.Bounds {
	if t.root == nil {
		return geom.NewBounds()
	}
	return t.root.bounds.Copy()
}

// Depth returns the number of levels in the tree.
func (t *Tree) Depth() int {
	d := 0
	for n := t.root; n != nil; d++ {
		if len(n.children) == 0 {
			return d + 1
		}
		n = n.children[0]
	}
	return d
}

// SearchIntersect calls fn with the index of every item whose bounds
// intersect b, in tree order. Bounds that only touch are considered to
// intersect. Iteration stops early if fn returns false.
func (t *Tree) SearchIntersect(b *geom.Bounds, fn func(index int) bool) {
	if t.root == nil || b == nil || b.Empty() {
		return
	}
	t.root.search(b, fn)
}

func (n *node) search(b *geom.Bounds, fn func(int) bool) bool {
	if !n.bounds.Overlaps(b) {
		return true
	}
	for _, it := range n.items {
		if it.Bounds.Overlaps(b) && !fn(it.Index) {
			return false
		}
	}
	for _, c := range n.children {
		if !c.search(b, fn) {
			return false
		}
	}
	return true
}

// Query returns the indices of all items whose bounds intersect b.
func (t *Tree) Query(b *geom.Bounds) []int {
	var o []int
	t.SearchIntersect(b, func(i int) bool {
		o = append(o, i)
		return true
	})
	return o
}
