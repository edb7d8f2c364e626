// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"math"

	"github.com/goccy/go-json"
	"github.com/momeni/geoshare/pkg/adapter/nmea"
	"github.com/momeni/geoshare/pkg/core/model"
	"github.com/spf13/cobra"
)

var geoCmd = &cobra.Command{
	Use:   "geo",
	Short: "Offline geo URI tools",
	Long: `Offline geo URI tools which need neither a config file nor
a database. Results are printed as JSON lines.`,
}

var geoParseCmd = &cobra.Command{
	Use:   "parse <uri>...",
	Short: "Parse geo URIs",
	Long: `Parse each argument as a geo URI and print one JSON object
per argument, having the input, a geo_uri boolean which is false if
the input was not a geo URI, and the parsed coordinate (or null).`,
	Args: cobra.MinimumNArgs(1),
	RunE: parseGeoURIs,
}

type parseOutput struct {
	Input      string               `json:"input"`
	GeoURI     bool                 `json:"geo_uri"`
	Coordinate *model.GeoCoordinate `json:"coordinate"`
}

func parseGeoURIs(cmd *cobra.Command, args []string) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, uri := range args {
		out := parseOutput{Input: uri}
		if gc, ok := model.ParseGeoURI(uri); ok {
			out.GeoURI = true
			out.Coordinate = &gc
		}
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encoding %q result: %w", uri, err)
		}
	}
	return nil
}

var formatFlags struct {
	lat, lon, alt, accuracy float64
}

var geoFormatCmd = &cobra.Command{
	Use:   "format",
	Short: "Format a coordinate as a geo URI",
	Long: `Format the --lat and --lon coordinate (with the optional
--alt altitude and --accuracy uncertainty in meters) as a geo URI.`,
	Args: cobra.NoArgs,
	RunE: formatGeoURI,
}

func formatGeoURI(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	gc := model.GeoCoordinate{
		Latitude:  model.Some(formatFlags.lat),
		Longitude: model.Some(formatFlags.lon),
	}
	if f.Changed("alt") {
		gc.Altitude = model.Some(formatFlags.alt)
	}
	if f.Changed("accuracy") {
		gc.Accuracy = model.Some(formatFlags.accuracy)
	}
	for _, v := range []float64{
		formatFlags.lat, formatFlags.lon,
		formatFlags.alt, formatFlags.accuracy,
	} {
		if math.IsNaN(v) {
			return fmt.Errorf("NaN cannot be formatted")
		}
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), model.FormatGeoURI(gc))
	return err
}

var geoNMEACmd = &cobra.Command{
	Use:   "nmea [sentence]...",
	Short: "Convert NMEA 0183 sentences to geo URIs",
	Long: `Convert the RMC, GGA, or GLL NMEA 0183 sentences (from the
arguments, or from the standard input lines if there is no argument)
to geo URIs and print one JSON object per position, having the geo URI
and the coordinate. Invalid arguments are reported as errors, while
invalid lines of the standard input are skipped.`,
	RunE: convertNMEA,
}

type nmeaOutput struct {
	GeoURI     string              `json:"geo_uri"`
	Coordinate model.GeoCoordinate `json:"coordinate"`
}

func convertNMEA(cmd *cobra.Command, args []string) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	emit := func(gc model.GeoCoordinate) error {
		return enc.Encode(nmeaOutput{
			GeoURI:     model.FormatGeoURI(gc),
			Coordinate: gc,
		})
	}
	if len(args) == 0 {
		return nmea.Scan(cmd.Context(), cmd.InOrStdin(), emit)
	}
	for _, s := range args {
		gc, err := nmea.FromSentence(s)
		if err != nil {
			return fmt.Errorf("converting %q: %w", s, err)
		}
		if err := emit(gc); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	f := geoFormatCmd.Flags()
	f.Float64Var(&formatFlags.lat, "lat", 0, "latitude in decimal degrees")
	f.Float64Var(&formatFlags.lon, "lon", 0, "longitude in decimal degrees")
	f.Float64Var(&formatFlags.alt, "alt", 0, "altitude in meters")
	f.Float64Var(&formatFlags.accuracy, "accuracy", 0, "uncertainty in meters")
	_ = geoFormatCmd.MarkFlagRequired("lat")
	_ = geoFormatCmd.MarkFlagRequired("lon")
	geoCmd.AddCommand(geoParseCmd, geoFormatCmd, geoNMEACmd)
	rootCmd.AddCommand(geoCmd)
}
