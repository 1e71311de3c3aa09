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

package ewkb

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Geometry is a decoded geometry tree.
type Geometry struct {
	Header

	// Coords holds the coordinates of points and simple curves,
	// CoordinateDimension() ordinates per coordinate.
	Coords []float64

	// Parts holds the rings of polygonal kinds, exterior ring first, and the
	// components of all other composite kinds. Polygon and Triangle rings
	// have Type LineString.
	Parts []*Geometry
}

// Empty reports whether g has no coordinates. A point whose ordinates are
// all NaN is empty.
func (g *Geometry) Empty() bool {
	if g.Type == Point {
		for _, v := range g.Coords {
			if !math.IsNaN(v) {
				return false
			}
		}
		return true
	}
	if len(g.Coords) > 0 {
		return false
	}
	for _, p := range g.Parts {
		if !p.Empty() {
			return false
		}
	}
	return true
}

// Decode reads the complete geometry at the start of b. Nested geometries
// carry their own byte order and flags. Bytes after the geometry are
// ignored.
func Decode(b []byte) (*Geometry, error) {
	g, _, err := decode(b, 0)
	return g, err
}

// maxDepth bounds the nesting of collections.
const maxDepth = 32

func decode(b []byte, depth int) (*Geometry, int, error) {
	if depth > maxDepth {
		return nil, 0, fmt.Errorf("ewkb: geometries nested more than %d deep", maxDepth)
	}
	h, off, err := DecodeHeader(b)
	if err != nil {
		return nil, 0, err
	}
	r := reader{b: b, off: off, order: h.ByteOrder.Binary(), dims: h.CoordinateDimension()}
	g := &Geometry{Header: h}

	switch h.Type {
	case Point:
		g.Coords, err = r.coords(1)
	case LineString, CircularString:
		g.Coords, err = r.sequence()
	case Polygon, Triangle:
		var n int
		if n, err = r.count(4); err != nil {
			break
		}
		g.Parts = make([]*Geometry, 0, n)
		for i := 0; i < n && err == nil; i++ {
			ring := &Geometry{Header: Header{ByteOrder: h.ByteOrder, Type: LineString, HasZ: h.HasZ, HasM: h.HasM}}
			ring.Coords, err = r.sequence()
			g.Parts = append(g.Parts, ring)
		}
	case CompoundCurve, CurvePolygon, MultiPoint, MultiLineString, MultiPolygon,
		MultiCurve, MultiSurface, GeometryCollection, PolyhedralSurface, Tin:
		var n int
		if n, err = r.count(MinHeaderSize); err != nil {
			break
		}
		g.Parts = make([]*Geometry, 0, n)
		for i := 0; i < n; i++ {
			part, size, perr := decode(b[r.off:], depth+1)
			if perr != nil {
				return nil, 0, fmt.Errorf("ewkb: %v part %d: %w", h.Type, i, perr)
			}
			r.off += size
			g.Parts = append(g.Parts, part)
		}
	default:
		err = fmt.Errorf("ewkb: %v has no binary encoding", h.Type)
	}
	if err != nil {
		return nil, 0, err
	}
	return g, r.off, nil
}

type reader struct {
	b     []byte
	off   int
	order binary.ByteOrder
	dims  int
}

// count reads an element count, checking that n elements of at least
// minSize bytes each can fit in the remaining input.
func (r *reader) count(minSize int) (int, error) {
	if len(r.b)-r.off < 4 {
		return 0, fmt.Errorf("ewkb: truncated count at byte %d", r.off)
	}
	n := int(r.order.Uint32(r.b[r.off:]))
	r.off += 4
	if n < 0 || (minSize > 0 && n > (len(r.b)-r.off)/minSize) {
		return 0, fmt.Errorf("ewkb: count %d at byte %d exceeds input", n, r.off-4)
	}
	return n, nil
}

func (r *reader) sequence() ([]float64, error) {
	n, err := r.count(8 * r.dims)
	if err != nil {
		return nil, err
	}
	return r.coords(n)
}

func (r *reader) coords(n int) ([]float64, error) {
	size := 8 * r.dims * n
	if len(r.b)-r.off < size {
		return nil, fmt.Errorf("ewkb: truncated coordinates at byte %d", r.off)
	}
	c := make([]float64, r.dims*n)
	for i := range c {
		c[i] = math.Float64frombits(r.order.Uint64(r.b[r.off:]))
		r.off += 8
	}
	return c, nil
}
