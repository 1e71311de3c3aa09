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

// Value is an optional column element. The zero value is null.
type Value[T any] struct {
	V     T
	Valid bool
}

// Some returns a non-null value.
func Some[T any](v T) Value[T] { return Value[T]{V: v, Valid: true} }

// Null returns a null value.
func Null[T any]() Value[T] { return Value[T]{} }

// Column is a sequence of optional values. A column of length one is a
// scalar and is broadcast against longer columns.
type Column[T any] []Value[T]

// Geometries is a column of EWKB-encoded geometries.
type Geometries = Column[[]byte]

// ColumnOf returns a column holding vs, none of which are null.
func ColumnOf[T any](vs ...T) Column[T] {
	c := make(Column[T], len(vs))
	for i, v := range vs {
		c[i] = Some(v)
	}
	return c
}

// NullCount returns the number of null elements in c.
func (c Column[T]) NullCount() int {
	var n int
	for _, v := range c {
		if !v.Valid {
			n++
		}
	}
	return n
}

// Values returns the elements of c, with the zero value in place of nulls.
func (c Column[T]) Values() []T {
	o := make([]T, len(c))
	for i, v := range c {
		o[i] = v.V
	}
	return o
}
