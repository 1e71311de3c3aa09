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

// Package geocolutil holds the command-line interface to geocol.
package geocolutil

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/geocol"
	"github.com/spatialmodel/geocol/engine"
	"github.com/spatialmodel/geocol/engine/geosengine"
	"github.com/spatialmodel/geocol/ewkb"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Cfg holds configuration information and the commands that use it.
type Cfg struct {
	*viper.Viper

	// Log receives progress and debug information.
	Log *logrus.Logger

	Root, versionCmd, headerCmd, coordsCmd, sjoinCmd, tosridCmd *cobra.Command
}

type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

// InitializeConfig creates the command tree and binds its flags to a new
// configuration.
func InitializeConfig() *Cfg {
	cfg := &Cfg{
		Viper: viper.New(),
		Log:   logrus.StandardLogger(),
	}

	cfg.Root = &cobra.Command{
		Use:   "geocol",
		Short: "Vectorized geometry operations on columns of EWKB values.",
		Long: `geocol reads columns of geometries, one hex-encoded EWKB value per line,
and applies geometry operations to them. Empty lines and lines reading NULL
are null values, which propagate to the output.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GEOCOL_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return cfg.setConfig() },
	}

	cfg.versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "version prints the version number of this version of geocol.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("geocol v%s\n", geocol.Version)
		},
		DisableAutoGenTag: true,
	}

	cfg.headerCmd = &cobra.Command{
		Use:   "header",
		Short: "Print geometry metadata.",
		Long: `header prints the geometry type, coordinate dimension, SRID and
Z and M flags of every input geometry, reading only the binary headers.`,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := readInput(cfg.GetString("input"), cmd.InOrStdin())
			if err != nil {
				return err
			}
			headers, err := geocol.Headers(col)
			if err != nil {
				return err
			}
			return writeColumn(cmd.OutOrStdout(), headers, func(h ewkb.Header) string {
				return fmt.Sprintf("%v\t%d\t%d\t%t\t%t", h.Type, h.CoordinateDimension(), h.SRID, h.HasZ, h.HasM)
			})
		},
	}

	cfg.coordsCmd = &cobra.Command{
		Use:   "coords",
		Short: "Print geometry coordinates.",
		Long: `coords prints the coordinates of every input geometry on one line,
with coordinates separated by semicolons and ordinates by spaces. Missing
ordinates are printed as NaN.`,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := readInput(cfg.GetString("input"), cmd.InOrStdin())
			if err != nil {
				return err
			}
			coords, err := geocol.Coordinates(col, cfg.GetInt("stride"))
			if err != nil {
				return err
			}
			return writeColumn(cmd.OutOrStdout(), coords, formatCoordinates)
		},
	}

	cfg.sjoinCmd = &cobra.Command{
		Use:   "sjoin",
		Short: "Spatially join two geometry columns.",
		Long: `sjoin prints the left and right row indices of every pair of
geometries from the --left and --right inputs that satisfy --predicate.`,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := engine.ParsePredicate(cfg.GetString("predicate"))
			if err != nil {
				return err
			}
			leftPath, rightPath := cfg.GetString("left"), cfg.GetString("right")
			if isStdin(leftPath) && isStdin(rightPath) {
				return fmt.Errorf("geocolutil: sjoin: --left and --right cannot both read standard input")
			}
			left, err := readInput(leftPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			right, err := readInput(rightPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			j := geocol.Joiner{
				Engine:       geosengine.New(),
				NodeCapacity: cfg.GetInt("NodeCapacity"),
				Log:          cfg.Log,
			}
			m, err := j.Join(left, right, p)
			if err != nil {
				return err
			}
			cfg.Log.WithField("matches", m.Len()).Info("spatial join finished")
			out := cmd.OutOrStdout()
			for i := range m.Left {
				if _, err := fmt.Fprintf(out, "%d\t%d\n", m.Left[i], m.Right[i]); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cfg.tosridCmd = &cobra.Command{
		Use:   "tosrid",
		Short: "Transform geometries to another spatial reference.",
		Long: `tosrid transforms every input geometry to the spatial reference --srid.
Additional spatial reference definitions can be supplied in a TOML file
with the --srs flag.`,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := cfg.spatialReferences()
			if err != nil {
				return err
			}
			cache, err := geocol.NewProjectionCache(refs, cfg.GetInt("ProjectionCacheSize"))
			if err != nil {
				return err
			}
			col, err := readInput(cfg.GetString("input"), cmd.InOrStdin())
			if err != nil {
				return err
			}
			srid, err := cast.ToInt32E(cfg.Get("srid"))
			if err != nil {
				return fmt.Errorf("geocolutil: invalid srid: %v", err)
			}
			out, err := geocol.ToSRID(col, geocol.ColumnOf(srid), cache)
			if err != nil {
				return err
			}
			return WriteGeometries(cmd.OutOrStdout(), out)
		},
	}

	cfg.Root.AddCommand(cfg.versionCmd, cfg.headerCmd, cfg.coordsCmd, cfg.sjoinCmd, cfg.tosridCmd)

	// Options are the configuration options available to geocol.
	options := []option{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel sets the logging verbosity: one of panic, fatal, error,
              warn, info, debug or trace.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "input",
			usage: `
              input specifies the file to read geometries from, one
              hex-encoded EWKB value per line. "-" reads standard input.`,
			shorthand:  "i",
			defaultVal: "-",
			flagsets:   []*pflag.FlagSet{cfg.headerCmd.Flags(), cfg.coordsCmd.Flags(), cfg.tosridCmd.Flags()},
		},
		{
			name: "left",
			usage: `
              left specifies the file holding the left (indexed) geometry
              column of a spatial join. "-" reads standard input; at most
              one of left and right may do so.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.sjoinCmd.Flags()},
		},
		{
			name: "right",
			usage: `
              right specifies the file holding the right (probing) geometry
              column of a spatial join. "-" reads standard input.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.sjoinCmd.Flags()},
		},
		{
			name: "stride",
			usage: `
              stride specifies the number of ordinates per output coordinate:
              2 (XY), 3 (XYZ) or 4 (XYZM).`,
			defaultVal: 2,
			flagsets:   []*pflag.FlagSet{cfg.coordsCmd.Flags()},
		},
		{
			name: "predicate",
			usage: `
              predicate specifies the spatial join predicate: one of
              intersects_bbox, intersects, within, contains, overlaps, crosses,
              touches, covers, covered_by or contains_properly.`,
			shorthand:  "p",
			defaultVal: "intersects",
			flagsets:   []*pflag.FlagSet{cfg.sjoinCmd.Flags()},
		},
		{
			name: "NodeCapacity",
			usage: `
              NodeCapacity specifies the maximum number of children of each
              spatial index node.`,
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{cfg.sjoinCmd.Flags()},
		},
		{
			name: "srid",
			usage: `
              srid specifies the spatial reference to transform geometries to.`,
			defaultVal: 4326,
			flagsets:   []*pflag.FlagSet{cfg.tosridCmd.Flags()},
		},
		{
			name: "srs",
			usage: `
              srs specifies a TOML file with additional spatial reference
              definitions in an [srs] table mapping SRIDs to PROJ.4 strings.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.tosridCmd.Flags()},
		},
		{
			name: "ProjectionCacheSize",
			usage: `
              ProjectionCacheSize specifies how many parsed spatial references
              and transforms to keep while transforming a column.`,
			defaultVal: geocol.DefaultProjectionCacheSize,
			flagsets:   []*pflag.FlagSet{cfg.tosridCmd.Flags()},
		},
	}

	// Set the prefix for configuration environment variables.
	cfg.SetEnvPrefix("GEOCOL")
	cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
	return cfg
}

func (cfg *Cfg) setConfig() error {
	if cfgpath := cfg.GetString("config"); cfgpath != "" {
		cfg.SetConfigFile(cfgpath)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("geocol: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("geocol: %v", err)
	}
	cfg.Log.SetLevel(level)
	cfg.Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// spatialReferences returns the default spatial references plus any read
// from the file named by the srs option.
func (cfg *Cfg) spatialReferences() (geocol.SpatialReferences, error) {
	refs := geocol.DefaultSpatialReferences()
	path := cfg.GetString("srs")
	if path == "" {
		return refs, nil
	}
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("geocolutil: %v", err)
	}
	defer f.Close()
	extra, err := geocol.ReadSpatialReferences(f)
	if err != nil {
		return nil, err
	}
	cfg.Log.WithField("count", len(extra)).Debug("read spatial references")
	refs.Merge(extra)
	return refs, nil
}

func formatCoordinates(b geocol.CoordinateBuffer) string {
	var sb strings.Builder
	for i := 0; i < b.Len(); i++ {
		if i > 0 {
			sb.WriteString(";")
		}
		for j, v := range b.At(i) {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return sb.String()
}
