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

// Package geosengine implements the engine capability on top of the GEOS
// library through go-geos. Geometries are decoded with the pure-Go EWKB
// codec and handed to GEOS only for predicate evaluation.
//
// An Engine owns a GEOS context and must not be used concurrently; create
// one per invocation.
package geosengine

import (
	"fmt"

	"github.com/spatialmodel/geocol/engine"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geos"
)

// Engine is a GEOS-backed engine.Engine.
type Engine struct {
	engine.EWKB
	ctx *geos.Context
}

// New returns an Engine with its own GEOS context.
func New() *Engine {
	return &Engine{ctx: geos.NewContext()}
}

func (e *Engine) toGEOS(g geom.T) (gg *geos.Geom, err error) {
	b, err := e.Encode(engine.AsLineString(g))
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("geosengine: %v", r)
		}
	}()
	gg, err = e.ctx.NewGeomFromWKB(b)
	if err != nil {
		return nil, fmt.Errorf("geosengine: %v", err)
	}
	return gg, nil
}

// Prepare implements engine.Preparer.
func (e *Engine) Prepare(g geom.T) (p engine.Prepared, err error) {
	gg, err := e.toGEOS(g)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			gg.Destroy()
			err = fmt.Errorf("geosengine: preparing geometry: %v", r)
		}
	}()
	return &prepared{e: e, g: gg, pg: gg.Prepare()}, nil
}

type prepared struct {
	e  *Engine
	g  *geos.Geom
	pg *geos.PrepGeom
}

// Test implements engine.Prepared.
func (p *prepared) Test(pred engine.Predicate, other geom.T) (ok bool, err error) {
	o, err := p.e.toGEOS(other)
	if err != nil {
		return false, err
	}
	defer o.Destroy()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("geosengine: evaluating %v: %v", pred, r)
		}
	}()
	switch pred {
	case engine.BBoxIntersects:
		a, b := p.g.Bounds(), o.Bounds()
		return a.MinX <= b.MaxX && a.MinY <= b.MaxY && a.MaxX >= b.MinX && a.MaxY >= b.MinY, nil
	case engine.Intersects:
		return p.pg.Intersects(o), nil
	case engine.Within:
		return p.pg.Within(o), nil
	case engine.Contains:
		return p.pg.Contains(o), nil
	case engine.Overlaps:
		return p.pg.Overlaps(o), nil
	case engine.Crosses:
		return p.pg.Crosses(o), nil
	case engine.Touches:
		return p.pg.Touches(o), nil
	case engine.Covers:
		return p.pg.Covers(o), nil
	case engine.CoveredBy:
		return p.pg.CoveredBy(o), nil
	case engine.ContainsProperly:
		return p.pg.ContainsProperly(o), nil
	}
	return false, fmt.Errorf("geosengine: unsupported predicate %v", pred)
}

// Destroy implements engine.Prepared.
func (p *prepared) Destroy() {
	p.pg.Destroy()
	p.g.Destroy()
}
