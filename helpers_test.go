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
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/spatialmodel/geocol/engine"
	"github.com/spatialmodel/geocol/ewkb"
	"github.com/twpayne/go-geom"
)

// wkb assembles little endian EWKB by hand, for kinds go-geom cannot encode.
type wkb []byte

func (w wkb) header(t ewkb.Type, z, m bool) wkb {
	return ewkb.AppendHeader(w, ewkb.Header{ByteOrder: ewkb.NDR, Type: t, HasZ: z, HasM: m})
}

func (w wkb) count(n int) wkb { return binary.LittleEndian.AppendUint32(w, uint32(n)) }

func (w wkb) coords(vs ...float64) wkb {
	for _, v := range vs {
		w = binary.LittleEndian.AppendUint64(w, math.Float64bits(v))
	}
	return w
}

// enc encodes g as little endian EWKB.
func enc(t *testing.T, g geom.T) []byte {
	t.Helper()
	b, err := engine.EWKB{}.Encode(g)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func dec(t *testing.T, b []byte) geom.T {
	t.Helper()
	g, err := engine.EWKB{}.Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func point(x, y float64) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{x, y})
}

func box(x0, y0, x1, y1 float64) *geom.Polygon {
	return geom.NewPolygonFlat(geom.XY, []float64{x0, y0, x1, y0, x1, y1, x0, y1, x0, y0}, []int{10})
}

// sameFloats compares float slices treating NaNs as equal.
func sameFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
			return false
		}
	}
	return true
}

var errFakePredicate = errors.New("fake predicate failure")

// fakeEngine decodes with the real codec and evaluates predicates on
// bounding boxes. It counts prepared geometries.
type fakeEngine struct {
	engine.EWKB
	prepared, destroyed int
	tests               int
	fail                bool
}

func (e *fakeEngine) Prepare(g geom.T) (engine.Prepared, error) {
	e.prepared++
	return &fakePrepared{e: e, b: g.Bounds()}, nil
}

type fakePrepared struct {
	e         *fakeEngine
	b         *geom.Bounds
	destroyed bool
}

func (p *fakePrepared) Test(pred engine.Predicate, other geom.T) (bool, error) {
	p.e.tests++
	if p.e.fail {
		return false, errFakePredicate
	}
	o := other.Bounds()
	overlaps := p.b.Min(0) <= o.Max(0) && o.Min(0) <= p.b.Max(0) &&
		p.b.Min(1) <= o.Max(1) && o.Min(1) <= p.b.Max(1)
	switch pred {
	case engine.BBoxIntersects, engine.Intersects:
		return overlaps, nil
	case engine.Contains:
		return contains(p.b, o), nil
	case engine.Within:
		return contains(o, p.b), nil
	}
	return false, errFakePredicate
}

func contains(a, b *geom.Bounds) bool {
	return a.Min(0) <= b.Min(0) && a.Min(1) <= b.Min(1) && a.Max(0) >= b.Max(0) && a.Max(1) >= b.Max(1)
}

func (p *fakePrepared) Destroy() {
	if p.destroyed {
		panic("double destroy")
	}
	p.destroyed = true
	p.e.destroyed++
}

// fakeTree is a Tree of arbitrary kind, for kinds the codec cannot
// produce.
type fakeTree struct {
	kind   ewkb.Type
	layout geom.Layout
	coords []float64
	rings  []engine.Tree
	parts  []engine.Tree
}

func (f fakeTree) Type() ewkb.Type { return f.kind }
func (f fakeTree) Layout() geom.Layout { return f.layout }
func (f fakeTree) Coords() []float64 { return f.coords }
func (f fakeTree) NumRings() int { return len(f.rings) }
func (f fakeTree) Ring(i int) engine.Tree { return f.rings[i] }
func (f fakeTree) NumParts() int { return len(f.parts) }
func (f fakeTree) Part(i int) engine.Tree { return f.parts[i] }

func (f fakeTree) Empty() bool {
	if len(f.coords) > 0 {
		return false
	}
	for _, r := range f.rings {
		if !r.Empty() {
			return false
		}
	}
	for _, p := range f.parts {
		if !p.Empty() {
			return false
		}
	}
	return true
}
