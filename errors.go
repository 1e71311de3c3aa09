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
	"errors"
	"fmt"

	"github.com/spatialmodel/geocol/ewkb"
)

var (
	// ErrMalformedHeader is returned for truncated input or input with an
	// unrecognized byte order or geometry type code.
	ErrMalformedHeader = ewkb.ErrMalformedHeader

	// ErrShapeMismatch is returned when inputs cannot be broadcast together.
	ErrShapeMismatch = errors.New("geocol: shape mismatch")

	// ErrUnsupportedForGeometryKind is returned by row functions asked for
	// a part the geometry kind does not have. The broadcast contract
	// recovers it as a null output for that row only.
	ErrUnsupportedForGeometryKind = errors.New("geocol: unsupported for geometry kind")

	// ErrEngineFailure wraps failures surfaced by the geometry engine or
	// projection library.
	ErrEngineFailure = errors.New("geocol: engine failure")

	// ErrUnknownSpatialReference is returned when an SRID has no
	// projection definition.
	ErrUnknownSpatialReference = errors.New("geocol: unknown spatial reference")
)

// ShapeError reports the input lengths of a call that could not be
// broadcast.
type ShapeError struct {
	Lengths []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("geocol: cannot broadcast columns of lengths %v; "+
		"each must have length 1 or the same length as the others", e.Lengths)
}

// Is makes ShapeError match ErrShapeMismatch.
func (e *ShapeError) Is(target error) bool { return target == ErrShapeMismatch }

// RowError is the error that aborted a column evaluation.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string { return fmt.Sprintf("geocol: row %d: %v", e.Row, e.Err) }

func (e *RowError) Unwrap() error { return e.Err }

// engineError marks err as an engine failure.
func engineError(err error) error {
	if err == nil || errors.Is(err, ErrEngineFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrEngineFailure, err)
}

// SpatialReferenceError reports an SRID that could not be resolved.
type SpatialReferenceError struct {
	SRID int
	Err  error // optional cause, e.g. an unparsable definition
}

func (e *SpatialReferenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geocol: unknown spatial reference %d: %v", e.SRID, e.Err)
	}
	return fmt.Sprintf("geocol: unknown spatial reference %d", e.SRID)
}

// Is makes SpatialReferenceError match ErrUnknownSpatialReference.
func (e *SpatialReferenceError) Is(target error) bool { return target == ErrUnknownSpatialReference }

func (e *SpatialReferenceError) Unwrap() error { return e.Err }
