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

import "github.com/spatialmodel/geocol/ewkb"

// These operations read only the binary header of each geometry.

func header(b []byte) (ewkb.Header, error) {
	h, _, err := ewkb.DecodeHeader(b)
	return h, err
}

// Headers decodes the header of every geometry in col.
func Headers(col Geometries) (Column[ewkb.Header], error) {
	return Apply1(col, header)
}

// GeometryType returns the kind of every geometry in col.
func GeometryType(col Geometries) (Column[ewkb.Type], error) {
	return Apply1(col, func(b []byte) (ewkb.Type, error) {
		h, err := header(b)
		return h.Type, err
	})
}

// CoordinateDimension returns the number of ordinates per coordinate of
// every geometry in col.
func CoordinateDimension(col Geometries) (Column[int], error) {
	return Apply1(col, func(b []byte) (int, error) {
		h, err := header(b)
		return h.CoordinateDimension(), err
	})
}

// SRID returns the spatial reference identifier of every geometry in col,
// or 0 for geometries that do not carry one.
func SRID(col Geometries) (Column[int32], error) {
	return Apply1(col, func(b []byte) (int32, error) {
		h, err := header(b)
		return h.SRID, err
	})
}

// HasZ reports whether the geometries in col have Z ordinates.
func HasZ(col Geometries) (Column[bool], error) {
	return Apply1(col, func(b []byte) (bool, error) {
		h, err := header(b)
		return h.HasZ, err
	})
}

// HasM reports whether the geometries in col have M ordinates.
func HasM(col Geometries) (Column[bool], error) {
	return Apply1(col, func(b []byte) (bool, error) {
		h, err := header(b)
		return h.HasM, err
	})
}
