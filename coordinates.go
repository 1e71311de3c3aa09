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
	"math"

	"github.com/spatialmodel/geocol/engine"
	"github.com/spatialmodel/geocol/ewkb"
	"github.com/twpayne/go-geom"
)

// CoordinateBuffer holds the coordinates of a geometry as consecutive
// tuples of Stride ordinates in the order X, Y, Z, M. Ordinates the
// geometry does not have are NaN.
type CoordinateBuffer struct {
	Stride int
	Data   []float64
}

// Len returns the number of coordinates in b.
func (b CoordinateBuffer) Len() int {
	if b.Stride == 0 {
		return 0
	}
	return len(b.Data) / b.Stride
}

// At returns coordinate i.
func (b CoordinateBuffer) At(i int) []float64 {
	return b.Data[i*b.Stride : (i+1)*b.Stride : (i+1)*b.Stride]
}

// FlattenCoordinates returns every coordinate of t in traversal order:
// the coordinates of point-like and linear geometries in sequence, the
// exterior ring of a polygon followed by its interior rings, and the
// components of multi-part geometries and collections in index order.
// Empty geometries contribute no coordinates. stride must be 2, 3 or 4.
func FlattenCoordinates(t engine.Tree, stride int) (CoordinateBuffer, error) {
	if stride < 2 || stride > 4 {
		return CoordinateBuffer{}, fmt.Errorf("geocol: invalid coordinate stride %d; must be 2, 3 or 4", stride)
	}
	b := CoordinateBuffer{Stride: stride, Data: []float64{}}
	if err := b.flatten(t); err != nil {
		return CoordinateBuffer{}, err
	}
	return b, nil
}

func (b *CoordinateBuffer) flatten(t engine.Tree) error {
	if t.Empty() {
		return nil
	}
	switch k := t.Type(); k {
	case ewkb.Point, ewkb.LineString, ewkb.CircularString, ewkb.Curve:
		b.appendSequence(t.Coords(), t.Layout())
	case ewkb.Polygon, ewkb.CurvePolygon, ewkb.Triangle, ewkb.Surface:
		for i := 0; i < t.NumRings(); i++ {
			if err := b.flatten(t.Ring(i)); err != nil {
				return err
			}
		}
	case ewkb.MultiPoint, ewkb.MultiLineString, ewkb.MultiCurve, ewkb.CompoundCurve,
		ewkb.MultiPolygon, ewkb.MultiSurface, ewkb.GeometryCollection,
		ewkb.PolyhedralSurface, ewkb.Tin:
		for i := 0; i < t.NumParts(); i++ {
			if err := b.flatten(t.Part(i)); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("geocol: cannot flatten coordinates of geometry kind %v", k)
	}
	return nil
}

// appendSequence appends flat coordinates with the given layout,
// reordered to X, Y, Z, M and cut to the buffer stride.
func (b *CoordinateBuffer) appendSequence(flat []float64, layout geom.Layout) {
	in := layout.Stride()
	if in == 0 {
		return
	}
	zi, mi := layout.ZIndex(), layout.MIndex()
	for i := 0; i+in <= len(flat); i += in {
		c := flat[i : i+in]
		b.Data = append(b.Data, c[0], c[1])
		if b.Stride >= 3 {
			b.Data = append(b.Data, ordinate(c, zi))
		}
		if b.Stride == 4 {
			b.Data = append(b.Data, ordinate(c, mi))
		}
	}
}

func ordinate(c []float64, i int) float64 {
	if i < 0 {
		return math.NaN()
	}
	return c[i]
}

// Coordinates flattens every geometry in col into a buffer with the given
// stride. See FlattenCoordinates.
func Coordinates(col Geometries, stride int) (Column[CoordinateBuffer], error) {
	return CoordinatesFrom(trees, col, stride)
}

// CoordinatesFrom is like Coordinates but decodes geometries with d.
func CoordinatesFrom(d engine.TreeDecoder, col Geometries, stride int) (Column[CoordinateBuffer], error) {
	return Apply1(col, func(b []byte) (CoordinateBuffer, error) {
		t, err := decodeTree(d, b)
		if err != nil {
			return CoordinateBuffer{}, err
		}
		return FlattenCoordinates(t, stride)
	})
}

var trees engine.TreeDecoder = engine.EWKB{}

// decodeTree reports malformed headers like decodeCodec does.
func decodeTree(d engine.TreeDecoder, b []byte) (engine.Tree, error) {
	if _, _, err := ewkb.DecodeHeader(b); err != nil {
		return nil, err
	}
	t, err := d.DecodeTree(b)
	if err != nil {
		return nil, engineError(err)
	}
	return t, nil
}
