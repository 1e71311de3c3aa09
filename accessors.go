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

// codec is used by all operations that need a full geometry.
var codec engine.Codec = engine.EWKB{}

func decode(b []byte) (geom.T, error) { return decodeCodec(codec, b) }

// decodeCodec checks the header of b before handing it to c, so that
// malformed input is reported the same way on every path.
func decodeCodec(c engine.Codec, b []byte) (geom.T, error) {
	if _, _, err := ewkb.DecodeHeader(b); err != nil {
		return nil, err
	}
	g, err := c.Decode(b)
	if err != nil {
		return nil, engineError(err)
	}
	return g, nil
}

func encode(g geom.T) ([]byte, error) {
	b, err := codec.Encode(engine.AsLineString(g))
	if err != nil {
		return nil, engineError(err)
	}
	return b, nil
}

// decodeWith decodes b and passes the result to fn.
func decodeWith[O any](fn func(geom.T) (O, error)) func([]byte) (O, error) {
	return func(b []byte) (O, error) {
		g, err := decode(b)
		if err != nil {
			var zero O
			return zero, err
		}
		return fn(g)
	}
}

// unsupported returns an error recovered as null by the broadcast contract.
func unsupported(op string, g geom.T) error {
	return fmt.Errorf("%w: %s of %v", ErrUnsupportedForGeometryKind, op, engine.Kind(g))
}

// IsEmpty reports whether the geometries in col have no coordinates.
func IsEmpty(col Geometries) (Column[bool], error) {
	return Apply1(col, decodeWith(func(g geom.T) (bool, error) {
		return engine.IsEmpty(g), nil
	}))
}

// Bounds returns the bounding box of every geometry in col as
// [xmin, ymin, xmax, ymax]. The box of an empty geometry is all NaN.
func Bounds(col Geometries) (Column[[4]float64], error) {
	return Apply1(col, decodeWith(func(g geom.T) ([4]float64, error) {
		if engine.IsEmpty(g) {
			nan := math.NaN()
			return [4]float64{nan, nan, nan, nan}, nil
		}
		b := g.Bounds()
		return [4]float64{b.Min(0), b.Min(1), b.Max(0), b.Max(1)}, nil
	}))
}

// pointOrdinate returns the ordinate at layout index idx(layout) of a
// point, or NaN for other geometries.
func pointOrdinate(col Geometries, idx func(geom.Layout) int) (Column[float64], error) {
	return Apply1(col, decodeWith(func(g geom.T) (float64, error) {
		p, ok := g.(*geom.Point)
		if !ok || engine.IsEmpty(p) {
			return math.NaN(), nil
		}
		return ordinate(p.FlatCoords(), idx(p.Layout())), nil
	}))
}

// X returns the X ordinate of points, and NaN for other geometries.
func X(col Geometries) (Column[float64], error) {
	return pointOrdinate(col, func(geom.Layout) int { return 0 })
}

// Y returns the Y ordinate of points, and NaN for other geometries.
func Y(col Geometries) (Column[float64], error) {
	return pointOrdinate(col, func(geom.Layout) int { return 1 })
}

// Z returns the Z ordinate of points, and NaN for other geometries and
// points without Z.
func Z(col Geometries) (Column[float64], error) {
	return pointOrdinate(col, geom.Layout.ZIndex)
}

// M returns the M ordinate of points, and NaN for other geometries and
// points without M.
func M(col Geometries) (Column[float64], error) {
	return pointOrdinate(col, geom.Layout.MIndex)
}

// NumPoints returns the number of points of linear geometries, and 0 for
// other geometries.
func NumPoints(col Geometries) (Column[int], error) {
	return Apply1(col, decodeWith(func(g geom.T) (int, error) {
		if l, ok := g.(*geom.LineString); ok {
			return l.NumCoords(), nil
		}
		return 0, nil
	}))
}

// NumInteriorRings returns the number of holes of polygons, and 0 for
// other geometries.
func NumInteriorRings(col Geometries) (Column[int], error) {
	return Apply1(col, decodeWith(func(g geom.T) (int, error) {
		if p, ok := g.(*geom.Polygon); ok && p.NumLinearRings() > 0 {
			return p.NumLinearRings() - 1, nil
		}
		return 0, nil
	}))
}

// NumGeometries returns the number of components of multi-part geometries
// and collections, 1 for other non-empty geometries and 0 for empty ones.
func NumGeometries(col Geometries) (Column[int], error) {
	return Apply1(col, decodeWith(func(g geom.T) (int, error) {
		switch g.(type) {
		case *geom.MultiPoint, *geom.MultiLineString, *geom.MultiPolygon, *geom.GeometryCollection:
			return engine.NumParts(g), nil
		}
		if engine.IsEmpty(g) {
			return 0, nil
		}
		return 1, nil
	}))
}

// NumCoordinates returns the total number of coordinates of every
// geometry in col.
func NumCoordinates(col Geometries) (Column[int], error) {
	return Apply1(col, func(b []byte) (int, error) {
		t, err := decodeTree(trees, b)
		if err != nil {
			return 0, err
		}
		c, err := FlattenCoordinates(t, 2)
		return c.Len(), err
	})
}

// withSRID copies the SRID of parent onto a component extracted from it.
func withSRID(part, parent geom.T) ([]byte, error) {
	part, err := engine.SetSRID(engine.AsLineString(part), parent.SRID())
	if err != nil {
		return nil, engineError(err)
	}
	return encode(part)
}

// ExteriorRing returns the exterior ring of polygons as a line string.
// Other geometries produce null.
func ExteriorRing(col Geometries) (Geometries, error) {
	return Apply1(col, decodeWith(func(g geom.T) ([]byte, error) {
		p, ok := g.(*geom.Polygon)
		if !ok || p.NumLinearRings() == 0 {
			return nil, unsupported("exterior ring", g)
		}
		return withSRID(p.LinearRing(0), p)
	}))
}

// InteriorRingN returns hole n of polygons as a line string. Other
// geometries and out of range indices produce null.
func InteriorRingN(col Geometries, n Column[int]) (Geometries, error) {
	return Apply2(col, n, func(b []byte, n int) ([]byte, error) {
		g, err := decode(b)
		if err != nil {
			return nil, err
		}
		p, ok := g.(*geom.Polygon)
		if !ok || n < 0 || n+1 >= p.NumLinearRings() {
			return nil, unsupported(fmt.Sprintf("interior ring %d", n), g)
		}
		return withSRID(p.LinearRing(n+1), p)
	})
}

// GeometryN returns component n of multi-part geometries and collections.
// Any other geometry is its own component 0.
func GeometryN(col Geometries, n Column[int]) (Geometries, error) {
	return Apply2(col, n, func(b []byte, n int) ([]byte, error) {
		g, err := decode(b)
		if err != nil {
			return nil, err
		}
		switch g.(type) {
		case *geom.MultiPoint, *geom.MultiLineString, *geom.MultiPolygon, *geom.GeometryCollection:
			if n < 0 || n >= engine.NumParts(g) {
				break
			}
			return withSRID(engine.Part(g, n), g)
		default:
			if n == 0 && !engine.IsEmpty(g) {
				return b, nil
			}
		}
		return nil, unsupported(fmt.Sprintf("geometry %d", n), g)
	})
}

// PointN returns point n of linear geometries. Other geometries and out of
// range indices produce null.
func PointN(col Geometries, n Column[int]) (Geometries, error) {
	return Apply2(col, n, func(b []byte, n int) ([]byte, error) {
		g, err := decode(b)
		if err != nil {
			return nil, err
		}
		l, ok := g.(*geom.LineString)
		if !ok || n < 0 || n >= l.NumCoords() {
			return nil, unsupported(fmt.Sprintf("point %d", n), g)
		}
		s := l.Layout().Stride()
		flat := l.FlatCoords()[n*s : (n+1)*s]
		return encode(geom.NewPointFlat(l.Layout(), flat).SetSRID(l.SRID()))
	})
}

// SetSRID returns the geometries of col with their SRID replaced. The
// coordinates are not transformed; see ToSRID.
func SetSRID(col Geometries, srid Column[int32]) (Geometries, error) {
	return Apply2(col, srid, func(b []byte, srid int32) ([]byte, error) {
		g, err := decode(b)
		if err != nil {
			return nil, err
		}
		g, err = engine.SetSRID(g, int(srid))
		if err != nil {
			return nil, engineError(err)
		}
		return encode(g)
	})
}

// FlipCoordinates swaps the X and Y ordinates of every geometry in col.
func FlipCoordinates(col Geometries) (Geometries, error) {
	return Apply1(col, decodeWith(func(g geom.T) ([]byte, error) {
		if err := eachSequence(g, func(flat []float64, stride int) error {
			for i := 0; i+1 < len(flat); i += stride {
				flat[i], flat[i+1] = flat[i+1], flat[i]
			}
			return nil
		}); err != nil {
			return nil, err
		}
		return encode(g)
	}))
}

// eachSequence calls fn with the flat coordinates of every non-collection
// geometry in g. The coordinates may be modified in place.
func eachSequence(g geom.T, fn func(flat []float64, stride int) error) error {
	if c, ok := g.(*geom.GeometryCollection); ok {
		for _, part := range c.Geoms() {
			if err := eachSequence(part, fn); err != nil {
				return err
			}
		}
		return nil
	}
	return fn(g.FlatCoords(), g.Stride())
}

// FromXY builds points from X and Y columns.
func FromXY(x, y Column[float64]) (Geometries, error) {
	return Apply2(x, y, func(x, y float64) ([]byte, error) {
		return encode(geom.NewPointFlat(geom.XY, []float64{x, y}))
	})
}

// FromXYZ builds three dimensional points from X, Y and Z columns.
func FromXYZ(x, y, z Column[float64]) (Geometries, error) {
	return Apply3(x, y, z, func(x, y, z float64) ([]byte, error) {
		return encode(geom.NewPointFlat(geom.XYZ, []float64{x, y, z}))
	})
}
