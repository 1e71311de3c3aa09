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
	"io"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/geom/proj"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/cast"
	"github.com/spatialmodel/geocol/engine"
	"github.com/twpayne/go-geom"
)

// SpatialReferences maps SRIDs to projection definitions in PROJ.4 or WKT
// format.
type SpatialReferences map[int]string

// DefaultSpatialReferences returns definitions for geographic WGS84, NAD83
// and NAD27, web Mercator and the WGS84 UTM zones.
func DefaultSpatialReferences() SpatialReferences {
	r := SpatialReferences{
		4326: "+proj=longlat +datum=WGS84 +no_defs",
		4269: "+proj=longlat +datum=NAD83 +no_defs",
		4267: "+proj=longlat +ellps=clrk66 +towgs84=-8,160,176,0,0,0,0 +no_defs",
		3857: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs",
	}
	for zone := 1; zone <= 60; zone++ {
		r[32600+zone] = fmt.Sprintf("+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs", zone)
		r[32700+zone] = fmt.Sprintf("+proj=utm +zone=%d +south +datum=WGS84 +units=m +no_defs", zone)
	}
	return r
}

// ReadSpatialReferences reads projection definitions from a TOML document
// with a single table mapping SRIDs to definitions:
//
//	[srs]
//	2163 = "+proj=laea +lat_0=45 +lon_0=-100 +x_0=0 +y_0=0 +a=6370997 +b=6370997 +units=m +no_defs"
func ReadSpatialReferences(r io.Reader) (SpatialReferences, error) {
	var doc struct {
		SRS map[string]string `toml:"srs"`
	}
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("geocol: reading spatial references: %v", err)
	}
	o := make(SpatialReferences, len(doc.SRS))
	for k, def := range doc.SRS {
		srid, err := cast.ToIntE(k)
		if err != nil {
			return nil, fmt.Errorf("geocol: reading spatial references: invalid SRID %q", k)
		}
		o[srid] = def
	}
	return o, nil
}

// Merge adds the definitions in o to r, replacing existing ones.
func (r SpatialReferences) Merge(o SpatialReferences) {
	for k, v := range o {
		r[k] = v
	}
}

// DefaultProjectionCacheSize is the number of parsed spatial references
// and transforms a ProjectionCache holds when no size is given.
const DefaultProjectionCacheSize = 32

// ProjectionCache holds parsed spatial references and coordinate
// transforms for the duration of one ToSRID call. It is not safe for
// concurrent use and must not be shared between calls.
type ProjectionCache struct {
	refs       SpatialReferences
	srs        *lru.Cache[int, *proj.SR]
	transforms *lru.Cache[[2]int, proj.Transformer]
}

// NewProjectionCache returns a cache resolving SRIDs through refs. A size
// below 1 selects DefaultProjectionCacheSize.
func NewProjectionCache(refs SpatialReferences, size int) (*ProjectionCache, error) {
	if size < 1 {
		size = DefaultProjectionCacheSize
	}
	srs, err := lru.New[int, *proj.SR](size)
	if err != nil {
		return nil, err
	}
	transforms, err := lru.New[[2]int, proj.Transformer](size)
	if err != nil {
		return nil, err
	}
	return &ProjectionCache{refs: refs, srs: srs, transforms: transforms}, nil
}

// SR returns the parsed spatial reference for srid.
func (c *ProjectionCache) SR(srid int) (*proj.SR, error) {
	if sr, ok := c.srs.Get(srid); ok {
		return sr, nil
	}
	def, ok := c.refs[srid]
	if !ok || srid == 0 {
		return nil, &SpatialReferenceError{SRID: srid}
	}
	sr, err := proj.Parse(def)
	if err != nil {
		return nil, &SpatialReferenceError{SRID: srid, Err: err}
	}
	c.srs.Add(srid, sr)
	return sr, nil
}

// Transform returns a function transforming coordinates from one SRID to
// another.
func (c *ProjectionCache) Transform(from, to int) (proj.Transformer, error) {
	key := [2]int{from, to}
	if t, ok := c.transforms.Get(key); ok {
		return t, nil
	}
	src, err := c.SR(from)
	if err != nil {
		return nil, err
	}
	dst, err := c.SR(to)
	if err != nil {
		return nil, err
	}
	t, err := src.NewTransform(dst)
	if err != nil {
		return nil, engineError(err)
	}
	c.transforms.Add(key, t)
	return t, nil
}

// ToSRID transforms the coordinates of every geometry in col to the
// spatial reference srid. Geometries that already have the target SRID and
// empty geometries are returned unchanged. Z and M ordinates are not
// modified. If cache is nil, a cache over DefaultSpatialReferences is
// created for this call.
func ToSRID(col Geometries, srid Column[int32], cache *ProjectionCache) (Geometries, error) {
	if cache == nil {
		var err error
		if cache, err = NewProjectionCache(DefaultSpatialReferences(), 0); err != nil {
			return nil, err
		}
	}
	return Apply2(col, srid, func(b []byte, srid int32) ([]byte, error) {
		g, err := decode(b)
		if err != nil {
			return nil, err
		}
		to := int(srid)
		if g.SRID() == to || engine.IsEmpty(g) {
			return b, nil
		}
		t, err := cache.Transform(g.SRID(), to)
		if err != nil {
			return nil, err
		}
		if err := transformCoords(g, t); err != nil {
			return nil, err
		}
		if g, err = engine.SetSRID(g, to); err != nil {
			return nil, engineError(err)
		}
		return encode(g)
	})
}

// transformCoords applies t in place to the X and Y ordinates of g.
func transformCoords(g geom.T, t proj.Transformer) error {
	return eachSequence(g, func(flat []float64, stride int) error {
		for i := 0; i+1 < len(flat); i += stride {
			if math.IsNaN(flat[i]) {
				continue
			}
			x, y, err := t(flat[i], flat[i+1])
			if err != nil {
				return engineError(err)
			}
			flat[i], flat[i+1] = x, y
		}
		return nil
	})
}
