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

package geocol

import (
	"fmt"

	cgeom "github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/geocol/engine"
	"github.com/spatialmodel/geocol/index/strtree"
	"github.com/twpayne/go-geom"
)

// MatchPairs holds the result of a spatial join: Left[i] and Right[i] are
// the row indices of the i'th matching pair.
type MatchPairs struct {
	Left, Right []int
}

// Len returns the number of matching pairs.
func (m MatchPairs) Len() int { return len(m.Left) }

func (m *MatchPairs) add(left, right int) {
	m.Left = append(m.Left, left)
	m.Right = append(m.Right, right)
}

// Joiner matches the rows of two geometry columns.
type Joiner struct {
	Engine engine.Engine

	// NodeCapacity is the maximum number of children per index node.
	// Zero selects strtree.DefaultNodeCapacity.
	NodeCapacity int

	// Log receives debug statistics about each join. It may be nil.
	Log logrus.FieldLogger
}

// SpatialJoin matches the rows of left and right with a Joiner using
// engine e.
func SpatialJoin(e engine.Engine, left, right Geometries, p engine.Predicate) (MatchPairs, error) {
	j := Joiner{Engine: e}
	return j.Join(left, right, p)
}

// Join returns every pair of rows (l, r) where the geometries left[l] and
// right[r] satisfy predicate p, with the left geometry as the first
// operand. Null and empty geometries never match. Pairs are ordered by
// right row; within a right row they follow index order.
//
// The left column is indexed by bounding box and each right geometry is
// tested against the left geometries whose boxes intersect its own. Left
// geometries are prepared the first time they are tested and the prepared
// forms are released when Join returns. Any malformed geometry or engine
// failure aborts the join.
func (j *Joiner) Join(left, right Geometries, p engine.Predicate) (MatchPairs, error) {
	var m MatchPairs
	if len(left) == 0 || len(right) == 0 {
		return m, nil
	}

	leftGeoms := make([]geom.T, len(left))
	items := make([]strtree.Item, 0, len(left))
	for i, v := range left {
		if !v.Valid {
			continue
		}
		g, err := decodeCodec(j.Engine, v.V)
		if err != nil {
			return MatchPairs{}, fmt.Errorf("geocol: join: left row %d: %w", i, err)
		}
		if engine.IsEmpty(g) {
			continue
		}
		leftGeoms[i] = g
		items = append(items, strtree.Item{Bounds: bounds(g), Index: i})
	}
	tree := strtree.New(items, j.NodeCapacity)
	if tree.Len() == 0 {
		return m, nil
	}

	prepared := make([]engine.Prepared, len(left))
	defer func() {
		for _, pg := range prepared {
			if pg != nil {
				pg.Destroy()
			}
		}
	}()

	var candidates, numPrepared, failed int
	for r, v := range right {
		if !v.Valid {
			continue
		}
		g, err := decodeCodec(j.Engine, v.V)
		if err != nil {
			return MatchPairs{}, fmt.Errorf("geocol: join: right row %d: %w", r, err)
		}
		if engine.IsEmpty(g) {
			continue
		}
		tree.SearchIntersect(bounds(g), func(l int) bool {
			candidates++
			failed = l
			if p == engine.BBoxIntersects {
				m.add(l, r)
				return true
			}
			pg := prepared[l]
			if pg == nil {
				if pg, err = j.Engine.Prepare(leftGeoms[l]); err != nil {
					err = engineError(err)
					return false
				}
				prepared[l] = pg
				numPrepared++
			}
			var ok bool
			if ok, err = pg.Test(p, g); err != nil {
				err = engineError(fmt.Errorf("%v: %w", p, err))
				return false
			}
			if ok {
				m.add(l, r)
			}
			return true
		})
		if err != nil {
			return MatchPairs{}, fmt.Errorf("geocol: join: left row %d, right row %d: %w", failed, r, err)
		}
	}

	if j.Log != nil {
		j.Log.WithFields(logrus.Fields{
			"predicate":  p.String(),
			"indexed":    tree.Len(),
			"depth":      tree.Depth(),
			"candidates": candidates,
			"prepared":   numPrepared,
			"matches":    m.Len(),
		}).Debug("spatial join complete")
	}
	return m, nil
}

// bounds returns the bounding box of a non-empty geometry.
func bounds(g geom.T) *cgeom.Bounds {
	b := g.Bounds()
	return &cgeom.Bounds{
		Min: cgeom.Point{X: b.Min(0), Y: b.Min(1)},
		Max: cgeom.Point{X: b.Max(0), Y: b.Max(1)},
	}
}
