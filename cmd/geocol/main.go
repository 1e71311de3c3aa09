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

// Command geocol is a command-line interface for vectorized operations on
// columns of EWKB geometries.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/geocol/geocolutil"
)

func main() {
	cfg := geocolutil.InitializeConfig()
	if err := cfg.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
