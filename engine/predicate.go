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
	"fmt"
	"strings"
)

// Predicate is a binary spatial relationship.
type Predicate int

// Supported predicates. BBoxIntersects only compares bounding boxes; all
// others are evaluated exactly by the engine.
const (
	BBoxIntersects Predicate = iota
	Intersects
	Within
	Contains
	Overlaps
	Crosses
	Touches
	Covers
	CoveredBy
	ContainsProperly
)

var predicateNames = []string{
	BBoxIntersects:   "intersects_bbox",
	Intersects:       "intersects",
	Within:           "within",
	Contains:         "contains",
	Overlaps:         "overlaps",
	Crosses:          "crosses",
	Touches:          "touches",
	Covers:           "covers",
	CoveredBy:        "covered_by",
	ContainsProperly: "contains_properly",
}

func (p Predicate) String() string {
	if p < 0 || int(p) >= len(predicateNames) {
		return fmt.Sprintf("Predicate(%d)", int(p))
	}
	return predicateNames[p]
}

// ParsePredicate returns the predicate with the given name. Names are
// case-insensitive and dashes may be used in place of underscores.
func ParsePredicate(name string) (Predicate, error) {
	n := strings.ToLower(strings.Replace(name, "-", "_", -1))
	for i, pn := range predicateNames {
		if pn == n {
			return Predicate(i), nil
		}
	}
	return 0, fmt.Errorf("engine: unknown predicate %q", name)
}
