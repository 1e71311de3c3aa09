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
	"bytes"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/kr/pretty"
	"github.com/twpayne/go-geom"
)

func polygonWithHole() *geom.Polygon {
	return geom.NewPolygonFlat(geom.XY, []float64{
		0, 0, 10, 0, 10, 10, 0, 10, 0, 0,
		1, 1, 2, 1, 2, 2, 1, 1,
	}, []int{10, 18}).SetSRID(4326)
}

func TestPointOrdinates(t *testing.T) {
	col := Geometries{
		Some(enc(t, geom.NewPointFlat(geom.XYZM, []float64{1, 2, 3, 4}))),
		Some(enc(t, geom.NewPointFlat(geom.XYM, []float64{5, 6, 7}))),
		Some(enc(t, box(0, 0, 1, 1))),
		Null[[]byte](),
	}
	tests := []struct {
		name string
		f    func(Geometries) (Column[float64], error)
		want []float64
	}{
		{"x", X, []float64{1, 5, nan, 0}},
		{"y", Y, []float64{2, 6, nan, 0}},
		{"z", Z, []float64{3, nan, nan, 0}},
		{"m", M, []float64{4, 7, nan, 0}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			o, err := test.f(col)
			if err != nil {
				t.Fatal(err)
			}
			if o[3].Valid {
				t.Errorf("want null for null input")
			}
			if !sameFloats(test.want, o.Values()) {
				t.Errorf("want %v but have %v", test.want, o.Values())
			}
		})
	}
}

func TestBounds(t *testing.T) {
	col := Geometries{
		Some(enc(t, geom.NewLineStringFlat(geom.XY, []float64{3, -1, -2, 4}))),
		Some(enc(t, geom.NewMultiPoint(geom.XY))),
	}
	o, err := Bounds(col)
	if err != nil {
		t.Fatal(err)
	}
	if want := [4]float64{-2, -1, 3, 4}; o[0].V != want {
		t.Errorf("want %v but have %v", want, o[0].V)
	}
	for _, v := range o[1].V {
		if !math.IsNaN(v) {
			t.Errorf("empty geometry: want NaN bounds but have %v", o[1].V)
			break
		}
	}
}

func TestCounts(t *testing.T) {
	mp := geom.NewMultiPointFlat(geom.XY, []float64{0, 0, 1, 1, 2, 2})
	col := Geometries{
		Some(enc(t, point(1, 1))),
		Some(enc(t, geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1, 2, 2}))),
		Some(enc(t, polygonWithHole())),
		Some(enc(t, mp)),
		Some(enc(t, geom.NewLineString(geom.XY))),
	}
	tests := []struct {
		name string
		f    func(Geometries) (Column[int], error)
		want []int
	}{
		{"points", NumPoints, []int{0, 3, 0, 0, 0}},
		{"interior rings", NumInteriorRings, []int{0, 0, 1, 0, 0}},
		{"geometries", NumGeometries, []int{1, 1, 1, 3, 0}},
		{"coordinates", NumCoordinates, []int{1, 3, 9, 3, 0}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			o, err := test.f(col)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(test.want, o.Values()) {
				t.Errorf("want %v but have %v", test.want, o.Values())
			}
		})
	}

	empty, err := IsEmpty(col)
	if err != nil {
		t.Fatal(err)
	}
	if want := []bool{false, false, false, false, true}; !reflect.DeepEqual(want, empty.Values()) {
		t.Errorf("want %v but have %v", want, empty.Values())
	}
}

func TestRings(t *testing.T) {
	col := Geometries{
		Some(enc(t, polygonWithHole())),
		Some(enc(t, point(0, 0))),
	}
	ext, err := ExteriorRing(col)
	if err != nil {
		t.Fatal(err)
	}
	if ext[1].Valid {
		t.Errorf("point has no exterior ring but have %v", ext[1])
	}
	ring, ok := dec(t, ext[0].V).(*geom.LineString)
	if !ok {
		t.Fatalf("want line string but have %T", dec(t, ext[0].V))
	}
	if ring.SRID() != 4326 || ring.NumCoords() != 5 {
		t.Errorf("exterior ring: have SRID %d and %d coordinates", ring.SRID(), ring.NumCoords())
	}

	holes, err := InteriorRingN(col, ColumnOf(0))
	if err != nil {
		t.Fatal(err)
	}
	hole := dec(t, holes[0].V)
	if want := []float64{1, 1, 2, 1, 2, 2, 1, 1}; !sameFloats(want, hole.FlatCoords()) {
		t.Errorf("interior ring: %v", pretty.Diff(want, hole.FlatCoords()))
	}
	if holes[1].Valid {
		t.Errorf("point has no interior ring")
	}

	// Out of range indices give null.
	holes, err = InteriorRingN(col[:1], ColumnOf(1, -1))
	if err != nil {
		t.Fatal(err)
	}
	if holes.NullCount() != 2 {
		t.Errorf("want nulls for out of range rings but have %v", holes)
	}
}

func TestGeometryNAndPointN(t *testing.T) {
	mp := geom.NewMultiPointFlat(geom.XY, []float64{0, 0, 1, 1, 2, 2}).SetSRID(32633)
	line := geom.NewLineStringFlat(geom.XYZ, []float64{0, 0, 0, 1, 1, 1})
	col := Geometries{Some(enc(t, mp)), Some(enc(t, line))}

	parts, err := GeometryN(col, ColumnOf(1))
	if err != nil {
		t.Fatal(err)
	}
	p := dec(t, parts[0].V).(*geom.Point)
	if p.X() != 1 || p.Y() != 1 || p.SRID() != 32633 {
		t.Errorf("want POINT(1 1) with SRID 32633 but have %v %d", p.FlatCoords(), p.SRID())
	}
	if parts[1].Valid {
		t.Errorf("line string has no component 1")
	}

	parts, err = GeometryN(col[1:], ColumnOf(0))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(parts[0].V, col[1].V) {
		t.Errorf("a single geometry is its own component 0")
	}

	pts, err := PointN(col, ColumnOf(1))
	if err != nil {
		t.Fatal(err)
	}
	if pts[0].Valid {
		t.Errorf("multi point has no point n")
	}
	p = dec(t, pts[1].V).(*geom.Point)
	if !sameFloats(p.FlatCoords(), []float64{1, 1, 1}) || p.Layout() != geom.XYZ {
		t.Errorf("want POINT Z (1 1 1) but have %v", p.FlatCoords())
	}
}

func TestSetSRIDAndFromXY(t *testing.T) {
	pts, err := FromXY(ColumnOf(1.0, 2.0, 3.0), ColumnOf(5.0))
	if err != nil {
		t.Fatal(err)
	}
	pts, err = SetSRID(pts, ColumnOf[int32](4326))
	if err != nil {
		t.Fatal(err)
	}
	srids, err := SRID(pts)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int32{4326, 4326, 4326}; !reflect.DeepEqual(want, srids.Values()) {
		t.Errorf("want %v but have %v", want, srids.Values())
	}
	ys, err := Y(pts)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{5, 5, 5}; !sameFloats(want, ys.Values()) {
		t.Errorf("want %v but have %v", want, ys.Values())
	}

	pts, err = FromXYZ(ColumnOf(1.0), ColumnOf(2.0), ColumnOf(3.0, 4.0))
	if err != nil {
		t.Fatal(err)
	}
	zs, err := Z(pts)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{3, 4}; !sameFloats(want, zs.Values()) {
		t.Errorf("want %v but have %v", want, zs.Values())
	}
}

func TestFlipCoordinates(t *testing.T) {
	c := geom.NewGeometryCollection()
	if err := c.Push(point(1, 2), geom.NewLineStringFlat(geom.XY, []float64{3, 4, 5, 6})); err != nil {
		t.Fatal(err)
	}
	o, err := FlipCoordinates(Geometries{Some(enc(t, c))})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Coordinates(o, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{2, 1, 4, 3, 6, 5}; !sameFloats(want, b[0].V.Data) {
		t.Errorf("want %v but have %v", want, b[0].V.Data)
	}
}

func TestEngineFailure(t *testing.T) {
	// A valid header followed by a truncated payload.
	b := enc(t, geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1}))
	_, err := NumPoints(Geometries{Some(b[:12])})
	if !errors.Is(err, ErrEngineFailure) {
		t.Errorf("want engine failure but have %v", err)
	}
}
