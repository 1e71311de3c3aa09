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
	"encoding/binary"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

// EWKB is a Codec for the extended well-known binary format.
// The zero value encodes little endian.
type EWKB struct {
	// ByteOrder is used for encoding. Decoding honors the byte order
	// stored in each geometry.
	ByteOrder binary.ByteOrder
}

// Decode implements Codec.
func (c EWKB) Decode(b []byte) (geom.T, error) {
	g, err := ewkb.Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("engine: decoding EWKB: %v", err)
	}
	return g, nil
}

// Encode implements Codec.
func (c EWKB) Encode(g geom.T) ([]byte, error) {
	order := c.ByteOrder
	if order == nil {
		order = ewkb.NDR
	}
	b, err := ewkb.Marshal(g, order)
	if err != nil {
		return nil, fmt.Errorf("engine: encoding EWKB: %v", err)
	}
	return b, nil
}

// SetSRID returns g with its SRID set to srid.
func SetSRID(g geom.T, srid int) (geom.T, error) {
	switch g := g.(type) {
	case *geom.Point:
		return g.SetSRID(srid), nil
	case *geom.LineString:
		return g.SetSRID(srid), nil
	case *geom.Polygon:
		return g.SetSRID(srid), nil
	case *geom.MultiPoint:
		return g.SetSRID(srid), nil
	case *geom.MultiLineString:
		return g.SetSRID(srid), nil
	case *geom.MultiPolygon:
		return g.SetSRID(srid), nil
	case *geom.GeometryCollection:
		return g.SetSRID(srid), nil
	}
	return nil, fmt.Errorf("engine: cannot set SRID on %T", g)
}

// AsLineString converts a linear ring to a line string so it can be encoded;
// the binary format has no ring type. Other geometries are returned as is.
func AsLineString(g geom.T) geom.T {
	if r, ok := g.(*geom.LinearRing); ok {
		return geom.NewLineStringFlat(r.Layout(), r.FlatCoords()).SetSRID(r.SRID())
	}
	return g
}
