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

package geocolutil

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spatialmodel/geocol"
)

// nullText marks a null value in text columns.
const nullText = "NULL"

// ReadGeometries reads a geometry column with one hex-encoded EWKB value
// per line. Empty lines and lines reading NULL are null values.
func ReadGeometries(r io.Reader) (geocol.Geometries, error) {
	var col geocol.Geometries
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for line := 1; s.Scan(); line++ {
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.EqualFold(text, nullText) {
			col = append(col, geocol.Null[[]byte]())
			continue
		}
		b, err := hex.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("geocolutil: line %d: %v", line, err)
		}
		col = append(col, geocol.Some(b))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("geocolutil: reading geometries: %v", err)
	}
	return col, nil
}

// WriteGeometries writes col in the format read by ReadGeometries.
func WriteGeometries(w io.Writer, col geocol.Geometries) error {
	return writeColumn(w, col, func(b []byte) string { return strings.ToUpper(hex.EncodeToString(b)) })
}

// writeColumn writes one formatted value per line.
func writeColumn[T any](w io.Writer, col geocol.Column[T], format func(T) string) error {
	bw := bufio.NewWriter(w)
	for _, v := range col {
		text := nullText
		if v.Valid {
			text = format(v.V)
		}
		if _, err := fmt.Fprintln(bw, text); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// isStdin reports whether path names standard input.
func isStdin(path string) bool { return path == "" || path == "-" }

// openInput opens a file, or returns stdin for "-" or an empty path.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if isStdin(path) {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("geocolutil: %v", err)
	}
	return f, nil
}

// readInput reads a geometry column from a file, or from stdin for "-".
func readInput(path string, stdin io.Reader) (geocol.Geometries, error) {
	f, err := openInput(path, stdin)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGeometries(f)
}
