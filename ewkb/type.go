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

import "fmt"

// Type is the base geometry kind carried in the low-order bits of the
// EWKB type word.
type Type uint32

// The geometry kinds known to the extended binary format.
const (
	Unknown Type = iota
	Point
	LineString
	Polygon
	MultiPoint
	MultiLineString
	MultiPolygon
	GeometryCollection
	CircularString
	CompoundCurve
	CurvePolygon
	MultiCurve
	MultiSurface
	Curve
	Surface
	PolyhedralSurface
	Tin
	Triangle
)

// numTypes is the number of known type codes.
const numTypes = 18

var typeNames = [numTypes]string{
	"Unknown",
	"Point",
	"LineString",
	"Polygon",
	"MultiPoint",
	"MultiLineString",
	"MultiPolygon",
	"GeometryCollection",
	"CircularString",
	"CompoundCurve",
	"CurvePolygon",
	"MultiCurve",
	"MultiSurface",
	"Curve",
	"Surface",
	"PolyhedralSurface",
	"Tin",
	"Triangle",
}

// Valid reports whether t is one of the 18 known codes.
func (t Type) Valid() bool { return t < numTypes }

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", uint32(t))
	}
	return typeNames[t]
}

// ParseType returns the Type with the given name, e.g. "MultiPolygon".
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return Unknown, fmt.Errorf("ewkb: unknown geometry type name %q", name)
}
