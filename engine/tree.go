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

package engine

import (
	"fmt"
	"math"

	"github.com/spatialmodel/geocol/ewkb"
	"github.com/twpayne/go-geom"
)

// Tree is a structural view of a geometry: the accessors needed to walk
// nested geometries down to their coordinate sequences.
type Tree interface {
	// Type returns the geometry kind. Linear rings report LineString.
	Type() ewkb.Type
	Empty() bool
	Layout() geom.Layout

	// Coords returns the flat coordinate sequence of a point-like or
	// linear geometry, with Layout().Stride() ordinates per coordinate.
	Coords() []float64

	// NumRings and Ring give access to the rings of polygonal
	// geometries, exterior ring first.
	NumRings() int
	Ring(i int) Tree

	// NumParts and Part give access to the components of multi-part
	// geometries and collections.
	NumParts() int
	Part(i int) Tree
}

// A TreeDecoder decodes binary geometries into Trees.
type TreeDecoder interface {
	DecodeTree(b []byte) (Tree, error)
}

// DecodeTree implements TreeDecoder. The kinds go-geom represents are
// decoded with Decode; the curve and surface kinds are read directly.
func (c EWKB) DecodeTree(b []byte) (Tree, error) {
	h, _, err := ewkb.DecodeHeader(b)
	if err != nil {
		return nil, err
	}
	if h.Type >= ewkb.Point && h.Type <= ewkb.GeometryCollection {
		g, err := c.Decode(b)
		if err != nil {
			return nil, err
		}
		return Wrap(g), nil
	}
	g, err := ewkb.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("engine: decoding EWKB: %w", err)
	}
	return Parsed(g), nil
}

// Parsed returns a Tree view of a geometry read by ewkb.Decode.
func Parsed(g *ewkb.Geometry) Tree { return parsed{g} }

type parsed struct{ g *ewkb.Geometry }

func (p parsed) Type() ewkb.Type { return p.g.Type }

func (p parsed) Empty() bool { return p.g.Empty() }

func (p parsed) Layout() geom.Layout {
	switch {
	case p.g.HasZ && p.g.HasM:
		return geom.XYZM
	case p.g.HasZ:
		return geom.XYZ
	case p.g.HasM:
		return geom.XYM
	}
	return geom.XY
}

func (p parsed) Coords() []float64 { return p.g.Coords }

func (p parsed) NumRings() int {
	switch p.g.Type {
	case ewkb.Polygon, ewkb.Triangle, ewkb.CurvePolygon:
		return len(p.g.Parts)
	}
	return 0
}

func (p parsed) Ring(i int) Tree { return parsed{p.g.Parts[i]} }

func (p parsed) NumParts() int {
	switch p.g.Type {
	case ewkb.Polygon, ewkb.Triangle, ewkb.CurvePolygon:
		return 0
	}
	return len(p.g.Parts)
}

func (p parsed) Part(i int) Tree { return parsed{p.g.Parts[i]} }

// Wrap returns a Tree view of g.
func Wrap(g geom.T) Tree { return node{g} }

type node struct{ g geom.T }

func (n node) Type() ewkb.Type { return Kind(n.g) }

func (n node) Empty() bool { return IsEmpty(n.g) }

func (n node) Layout() geom.Layout { return n.g.Layout() }

func (n node) Coords() []float64 {
	switch n.g.(type) {
	case *geom.Point, *geom.LineString, *geom.LinearRing:
		return n.g.FlatCoords()
	}
	return nil
}

func (n node) NumRings() int {
	if p, ok := n.g.(*geom.Polygon); ok {
		return p.NumLinearRings()
	}
	return 0
}

func (n node) Ring(i int) Tree {
	return node{n.g.(*geom.Polygon).LinearRing(i)}
}

func (n node) NumParts() int { return NumParts(n.g) }

func (n node) Part(i int) Tree { return node{Part(n.g, i)} }

// Kind returns the binary type code matching g.
func Kind(g geom.T) ewkb.Type {
	switch g.(type) {
	case *geom.Point:
		return ewkb.Point
	case *geom.LineString, *geom.LinearRing:
		return ewkb.LineString
	case *geom.Polygon:
		return ewkb.Polygon
	case *geom.MultiPoint:
		return ewkb.MultiPoint
	case *geom.MultiLineString:
		return ewkb.MultiLineString
	case *geom.MultiPolygon:
		return ewkb.MultiPolygon
	case *geom.GeometryCollection:
		return ewkb.GeometryCollection
	}
	return ewkb.Unknown
}

// IsEmpty reports whether g has no coordinates. A point whose ordinates are
// all NaN is the binary encoding of an empty point.
func IsEmpty(g geom.T) bool {
	switch g := g.(type) {
	case *geom.Point:
		for _, v := range g.FlatCoords() {
			if !math.IsNaN(v) {
				return false
			}
		}
		return true
	case *geom.LineString, *geom.LinearRing, *geom.Polygon:
		return len(g.FlatCoords()) == 0
	}
	for i := 0; i < NumParts(g); i++ {
		if !IsEmpty(Part(g, i)) {
			return false
		}
	}
	return true
}

// NumParts returns the number of components of a multi-part geometry or
// collection, and 0 for all other geometries.
func NumParts(g geom.T) int {
	switch g := g.(type) {
	case *geom.MultiPoint:
		return g.NumPoints()
	case *geom.MultiLineString:
		return g.NumLineStrings()
	case *geom.MultiPolygon:
		return g.NumPolygons()
	case *geom.GeometryCollection:
		return g.NumGeoms()
	}
	return 0
}

// Part returns the i'th component of a multi-part geometry or collection.
// It panics if g has no parts.
func Part(g geom.T, i int) geom.T {
	switch g := g.(type) {
	case *geom.MultiPoint:
		return g.Point(i)
	case *geom.MultiLineString:
		return g.LineString(i)
	case *geom.MultiPolygon:
		return g.Polygon(i)
	case *geom.GeometryCollection:
		return g.Geom(i)
	}
	panic("engine: geometry has no parts")
}
