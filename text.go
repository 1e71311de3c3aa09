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
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// FromWKT parses well-known text into geometries.
func FromWKT(text Column[string]) (Geometries, error) {
	return Apply1(text, func(s string) ([]byte, error) {
		g, err := wkt.Unmarshal(s)
		if err != nil {
			return nil, engineError(err)
		}
		return encode(g)
	})
}

// ToWKT renders geometries as well-known text. The SRID is not included.
func ToWKT(col Geometries) (Column[string], error) {
	return Apply1(col, decodeWith(func(g geom.T) (string, error) {
		s, err := wkt.Marshal(g)
		return s, engineError(err)
	}))
}

// FromGeoJSON parses GeoJSON geometry objects.
func FromGeoJSON(text Column[string]) (Geometries, error) {
	return Apply1(text, func(s string) ([]byte, error) {
		var g geom.T
		if err := geojson.Unmarshal([]byte(s), &g); err != nil {
			return nil, engineError(err)
		}
		return encode(g)
	})
}

// ToGeoJSON renders geometries as GeoJSON geometry objects.
func ToGeoJSON(col Geometries) (Column[string], error) {
	return Apply1(col, decodeWith(func(g geom.T) (string, error) {
		b, err := geojson.Marshal(g)
		return string(b), engineError(err)
	}))
}
