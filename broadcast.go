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

import "errors"

// broadcastLen returns the length of the output of an element-wise
// operation over columns of the given lengths. Every length must be 1 or
// equal to every other length that is not 1.
func broadcastLen(lengths ...int) (int, error) {
	n := 1
	for _, l := range lengths {
		if l == 1 {
			continue
		}
		if n != 1 && l != n {
			return 0, &ShapeError{Lengths: lengths}
		}
		n = l
	}
	return n, nil
}

// at returns element i of c, broadcasting scalars.
func at[T any](c Column[T], i int) Value[T] {
	if len(c) == 1 {
		return c[0]
	}
	return c[i]
}

// emit stores the result of a row function in o.
func emit[O any](o Column[O], i int, v O, err error) error {
	switch {
	case err == nil:
		o[i] = Some(v)
	case errors.Is(err, ErrUnsupportedForGeometryKind):
		// left null
	default:
		return &RowError{Row: i, Err: err}
	}
	return nil
}

// Apply1 calls fn on every non-null element of a and collects the results.
// Null elements produce null outputs without calling fn. The first error
// returned by fn aborts the evaluation, except for
// ErrUnsupportedForGeometryKind which produces a null output for that row.
func Apply1[A, O any](a Column[A], fn func(A) (O, error)) (Column[O], error) {
	o := make(Column[O], len(a))
	for i, va := range a {
		if !va.Valid {
			continue
		}
		v, err := fn(va.V)
		if err := emit(o, i, v, err); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Apply2 is like Apply1 for a row function of two arguments. Columns of
// length 1 are broadcast against the other column; any other length
// difference is a shape mismatch, detected before fn is called.
func Apply2[A, B, O any](a Column[A], b Column[B], fn func(A, B) (O, error)) (Column[O], error) {
	n, err := broadcastLen(len(a), len(b))
	if err != nil {
		return nil, err
	}
	o := make(Column[O], n)
	for i := range o {
		va, vb := at(a, i), at(b, i)
		if !va.Valid || !vb.Valid {
			continue
		}
		v, err := fn(va.V, vb.V)
		if err := emit(o, i, v, err); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Apply3 is like Apply2 for a row function of three arguments.
func Apply3[A, B, C, O any](a Column[A], b Column[B], c Column[C], fn func(A, B, C) (O, error)) (Column[O], error) {
	n, err := broadcastLen(len(a), len(b), len(c))
	if err != nil {
		return nil, err
	}
	o := make(Column[O], n)
	for i := range o {
		va, vb, vc := at(a, i), at(b, i), at(c, i)
		if !va.Valid || !vb.Valid || !vc.Valid {
			continue
		}
		v, err := fn(va.V, vb.V, vc.V)
		if err := emit(o, i, v, err); err != nil {
			return nil, err
		}
	}
	return o, nil
}
