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
Package ewkb decodes the header of geometries in the extended well-known
binary format without reading their coordinates. Decode reads complete
geometries of every kind, including the curve and surface kinds.

The header layout is:

	byte 0     byte order (0 = big endian, 1 = little endian)
	bytes 1-4  type word: base type in the low bits, plus the flags
	           0x80000000 (Z), 0x40000000 (M) and 0x20000000 (SRID)
	bytes 5-8  SRID as a signed 32-bit integer, only when the SRID flag is set
*/
package ewkb

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ByteOrder is the endianness flag stored in the first byte of a geometry.
type ByteOrder uint8

// Byte order flags.
const (
	XDR ByteOrder = 0 // big endian
	NDR ByteOrder = 1 // little endian
)

func (o ByteOrder) String() string {
	switch o {
	case XDR:
		return "XDR"
	case NDR:
		return "NDR"
	}
	return fmt.Sprintf("ByteOrder(%d)", uint8(o))
}

// Binary returns the encoding/binary byte order matching o.
func (o ByteOrder) Binary() binary.ByteOrder {
	if o == XDR {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Type word flags.
const (
	flagZ    = 0x80000000
	flagM    = 0x40000000
	flagSRID = 0x20000000

	flagMask = flagZ | flagM | flagSRID
)

// Header sizes in bytes.
const (
	MinHeaderSize  = 5
	SRIDHeaderSize = 9
)

// ErrMalformedHeader is returned when a geometry is too short to hold its
// header or declares an unknown byte order or type code.
var ErrMalformedHeader = errors.New("ewkb: malformed header")

// Header holds the metadata stored in front of a geometry payload.
type Header struct {
	ByteOrder ByteOrder
	Type      Type
	HasZ      bool
	HasM      bool

	// HasSRID is false exactly when the SRID flag is unset, in which
	// case SRID is zero.
	HasSRID bool
	SRID    int32
}

// CoordinateDimension returns the number of ordinates per coordinate.
func (h Header) CoordinateDimension() int {
	d := 2
	if h.HasZ {
		d++
	}
	if h.HasM {
		d++
	}
	return d
}

// DecodeHeader reads the header at the start of b. It returns the header and
// the offset in b where the geometry payload begins.
func DecodeHeader(b []byte) (Header, int, error) {
	var h Header
	if len(b) < MinHeaderSize {
		return h, 0, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedHeader, len(b), MinHeaderSize)
	}
	switch ByteOrder(b[0]) {
	case XDR, NDR:
		h.ByteOrder = ByteOrder(b[0])
	default:
		return h, 0, fmt.Errorf("%w: invalid byte order flag %d", ErrMalformedHeader, b[0])
	}
	order := h.ByteOrder.Binary()

	word := order.Uint32(b[1:5])
	h.Type = Type(word &^ flagMask)
	if !h.Type.Valid() {
		return h, 0, fmt.Errorf("%w: unknown geometry type code %d", ErrMalformedHeader, uint32(h.Type))
	}
	h.HasZ = word&flagZ != 0
	h.HasM = word&flagM != 0
	if word&flagSRID == 0 {
		return h, MinHeaderSize, nil
	}
	if len(b) < SRIDHeaderSize {
		return h, 0, fmt.Errorf("%w: SRID flag set but only %d bytes", ErrMalformedHeader, len(b))
	}
	h.HasSRID = true
	h.SRID = int32(order.Uint32(b[5:9]))
	return h, SRIDHeaderSize, nil
}

// AppendHeader appends the encoding of h to dst. It is the inverse of
// DecodeHeader and is mostly useful for building test fixtures and for
// rewriting headers in place.
func AppendHeader(dst []byte, h Header) []byte {
	order := h.ByteOrder.Binary()
	word := uint32(h.Type)
	if h.HasZ {
		word |= flagZ
	}
	if h.HasM {
		word |= flagM
	}
	if h.HasSRID {
		word |= flagSRID
	}
	dst = append(dst, byte(h.ByteOrder))
	var buf [4]byte
	order.PutUint32(buf[:], word)
	dst = append(dst, buf[:]...)
	if h.HasSRID {
		order.PutUint32(buf[:], uint32(h.SRID))
		dst = append(dst, buf[:]...)
	}
	return dst
}
