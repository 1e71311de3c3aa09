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

// Package engine defines the geometry engine capability that geocol
// delegates geometric work to, and a pure-Go EWKB codec built on go-geom.
//
// Geometry handles are go-geom geom.T values. They are scoped to the row
// or pair being processed and are never retained past it.
package engine

import (
	"github.com/twpayne/go-geom"
)

// Codec converts between encoded geometries and geometry trees.
// Encode followed by Decode preserves type, SRID and dimensionality.
type Codec interface {
	Decode(b []byte) (geom.T, error)
	Encode(g geom.T) ([]byte, error)
}

// Preparer builds prepared geometries for repeated predicate testing.
type Preparer interface {
	Prepare(g geom.T) (Prepared, error)
}

// Engine is the full capability needed by the spatial join.
type Engine interface {
	Codec
	Preparer
}

// Prepared is a geometry paired with an acceleration structure for
// evaluating predicates against many other geometries. The prepared
// geometry is always the first operand: Test(Within, b) reports whether the
// prepared geometry is within b.
type Prepared interface {
	Test(p Predicate, other geom.T) (bool, error)

	// Destroy releases any resources held by the prepared geometry.
	Destroy()
}
