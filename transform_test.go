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
	"strings"
	"testing"

	"github.com/twpayne/go-geom"
)

func TestDefaultSpatialReferences(t *testing.T) {
	r := DefaultSpatialReferences()
	for _, srid := range []int{4326, 4269, 4267, 3857, 32601, 32660, 32701, 32760} {
		if _, ok := r[srid]; !ok {
			t.Errorf("missing SRID %d", srid)
		}
	}
	if len(r) != 4+120 {
		t.Errorf("want 124 definitions but have %d", len(r))
	}
}

func TestReadSpatialReferences(t *testing.T) {
	const doc = `
[srs]
2163 = "+proj=laea +lat_0=45 +lon_0=-100 +x_0=0 +y_0=0 +a=6370997 +b=6370997 +units=m +no_defs"
"102003" = "+proj=aea +lat_1=29.5 +lat_2=45.5 +lat_0=37.5 +lon_0=-96 +x_0=0 +y_0=0 +datum=NAD83 +units=m +no_defs"
`
	r, err := ReadSpatialReferences(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if len(r) != 2 || !strings.HasPrefix(r[2163], "+proj=laea") || !strings.HasPrefix(r[102003], "+proj=aea") {
		t.Errorf("unexpected definitions %v", r)
	}

	d := DefaultSpatialReferences()
	d.Merge(r)
	if _, ok := d[102003]; !ok {
		t.Error("merge did not add definitions")
	}

	if _, err := ReadSpatialReferences(strings.NewReader("[srs]\nabc = \"+proj=longlat\"\n")); err == nil {
		t.Error("want error for non-numeric SRID")
	}
}

func TestProjectionCacheUnknown(t *testing.T) {
	c, err := NewProjectionCache(SpatialReferences{4326: "+proj=longlat +datum=WGS84 +no_defs"}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.SR(4326); err != nil {
		t.Fatal(err)
	}
	for _, srid := range []int{0, 9999} {
		_, err := c.Transform(4326, srid)
		var se *SpatialReferenceError
		if !errors.Is(err, ErrUnknownSpatialReference) || !errors.As(err, &se) || se.SRID != srid {
			t.Errorf("SRID %d: want unknown spatial reference but have %v", srid, err)
		}
	}
}

func TestToSRID(t *testing.T) {
	col := Geometries{
		Some(enc(t, point(10, 0).SetSRID(4326))),
		Some(enc(t, point(5, 5).SetSRID(3857))),
		Null[[]byte](),
	}
	o, err := ToSRID(col, ColumnOf[int32](3857), nil)
	if err != nil {
		t.Fatal(err)
	}
	p := dec(t, o[0].V).(*geom.Point)
	if p.SRID() != 3857 {
		t.Errorf("want SRID 3857 but have %d", p.SRID())
	}
	if math.Abs(p.X()-1113194.9) > 1 || math.Abs(p.Y()) > 1e-6 {
		t.Errorf("want (1113194.9, 0) but have (%f, %f)", p.X(), p.Y())
	}
	if !bytes.Equal(o[1].V, col[1].V) {
		t.Error("geometry already in the target SRID should be unchanged")
	}
	if o[2].Valid {
		t.Error("want null for null input")
	}
}

func TestToSRIDKeepsZM(t *testing.T) {
	g := geom.NewLineStringFlat(geom.XYZM, []float64{10, 0, 100, 7, 0, 0, -5, 8}).SetSRID(4326)
	o, err := ToSRID(ColumnOf(enc(t, g)), ColumnOf[int32](3857), nil)
	if err != nil {
		t.Fatal(err)
	}
	flat := dec(t, o[0].V).FlatCoords()
	if len(flat) != 8 {
		t.Fatalf("want 8 ordinates but have %v", flat)
	}
	if math.Abs(flat[0]-1113194.9) > 1 || math.Abs(flat[1]) > 1e-6 {
		t.Errorf("want (1113194.9, 0) but have (%f, %f)", flat[0], flat[1])
	}
	if flat[2] != 100 || flat[3] != 7 || flat[6] != -5 || flat[7] != 8 {
		t.Errorf("Z and M should be unchanged: %v", flat)
	}
}

func TestToSRIDUnknown(t *testing.T) {
	col := Geometries{Some(enc(t, point(1, 1)))}
	_, err := ToSRID(col, ColumnOf[int32](4326), nil)
	if !errors.Is(err, ErrUnknownSpatialReference) {
		t.Errorf("want unknown spatial reference for SRID 0 but have %v", err)
	}
	var re *RowError
	if !errors.As(err, &re) || re.Row != 0 {
		t.Errorf("want row 0 error but have %v", err)
	}

	c, err := NewProjectionCache(DefaultSpatialReferences(), 0)
	if err != nil {
		t.Fatal(err)
	}
	col = Geometries{Some(enc(t, point(1, 1).SetSRID(4326)))}
	if _, err := ToSRID(col, ColumnOf[int32](2163), c); !errors.Is(err, ErrUnknownSpatialReference) {
		t.Errorf("want unknown spatial reference for SRID 2163 but have %v", err)
	}
}
