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

	"github.com/spatialmodel/geocol/engine"
)

// Evaluate tests predicate p between corresponding rows of a and b, with
// the geometry from a as the first operand. When a is a single geometry it
// is prepared once and tested against every row of b.
func Evaluate(e engine.Engine, p engine.Predicate, a, b Geometries) (Column[bool], error) {
	n, err := broadcastLen(len(a), len(b))
	if err != nil {
		return nil, err
	}
	var scalar engine.Prepared
	if len(a) == 1 && a[0].Valid && n != 0 {
		g, err := decodeCodec(e, a[0].V)
		if err != nil {
			return nil, &RowError{Row: 0, Err: err}
		}
		scalar, err = e.Prepare(g)
		if err != nil {
			return nil, &RowError{Row: 0, Err: engineError(err)}
		}
		defer scalar.Destroy()
	}
	return Apply2(a, b, func(ab, bb []byte) (bool, error) {
		gb, err := decodeCodec(e, bb)
		if err != nil {
			return false, err
		}
		prep := scalar
		if prep == nil {
			ga, err := decodeCodec(e, ab)
			if err != nil {
				return false, err
			}
			if prep, err = e.Prepare(ga); err != nil {
				return false, engineError(err)
			}
			defer prep.Destroy()
		}
		ok, err := prep.Test(p, gb)
		if err != nil {
			return false, engineError(fmt.Errorf("%v: %w", p, err))
		}
		return ok, nil
	})
}
