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

/*
Package geocol performs vectorized geometric computation over columns of
geometries stored in the extended well-known binary (EWKB) format.

Every element-wise operation follows the same broadcasting contract (see
Apply1, Apply2 and Apply3): inputs of length one are broadcast, null inputs
produce null outputs, and the first row error aborts the whole column.
Metadata queries such as GeometryType and SRID read only the binary header;
all other operations decode geometries through the go-geom codec in the
engine package. Spatial joins between two columns are performed by Joiner.
*/
package geocol

// Version gives the version number.
const Version = "0.1.0"
