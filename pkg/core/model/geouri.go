// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"log/slog"
	"strings"
)

// GeoURIScheme is the scheme prefix of the geo URIs, as registered by
// RFC 5870. It is matched case-sensitively.
const GeoURIScheme = "geo:"

// GeoCoordinate is a geographical position which is decoded from a
// geo URI. All fields are always present, while each one may or may
// not hold a value. The latitude and longitude are in decimal degrees,
// the altitude is in meters, and the accuracy is the radius of the
// horizontal uncertainty (in meters) as given by the u= parameter.
// The altitude accuracy, heading, and speed fields are never filled
// by a geo URI. They exist so a GeoCoordinate can be used wherever a
// full geolocation reading is expected.
type GeoCoordinate struct {
	Latitude         Optional[float64] `json:"latitude"`
	Longitude        Optional[float64] `json:"longitude"`
	Altitude         Optional[float64] `json:"altitude"`
	Accuracy         Optional[float64] `json:"accuracy"`
	AltitudeAccuracy Optional[float64] `json:"altitude_accuracy"`
	Heading          Optional[float64] `json:"heading"`
	Speed            Optional[float64] `json:"speed"`
}

// Coordinate returns the latitude and longitude pair of c and true.
// If either of them is absent, false will be returned.
func (c GeoCoordinate) Coordinate() (Coordinate, bool) {
	lat, ok1 := c.Latitude.Get()
	lon, ok2 := c.Longitude.Get()
	if !ok1 || !ok2 {
		return Coordinate{}, false
	}
	return Coordinate{Lat: lat, Lon: lon}, true
}

// LogValue implements slog.LogValuer, logging the geo URI fields of c
// as a group.
func (c GeoCoordinate) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("lat", c.Latitude),
		slog.Any("lon", c.Longitude),
		slog.Any("alt", c.Altitude),
		slog.Any("u", c.Accuracy),
	)
}

// ParseGeoURI parses the uri string as a geo URI with this format
//
//	geo:<lat>,<lon>[,<alt>][;<param>]*
//
// which may be surrounded by white spaces. If uri does not start with
// the geo: scheme (after trimming) or if it spans multiple lines, it is
// not a geo URI and false will be returned. This is not an error and
// callers should treat it as having nothing to show.
//
// Otherwise, every field is parsed independently by ParseFloatPrefix.
// Fields which are missing or have no numeric prefix are left absent
// in the returned GeoCoordinate. Parameter segments are searched for
// an u= substring and the text after it is taken as the accuracy.
// All parameter segments are visited, so the last one which contains
// u= determines the accuracy (even when its value is not a number).
// Other parameters are ignored. Values are not range checked.
func ParseGeoURI(uri string) (GeoCoordinate, bool) {
	s := strings.TrimFunc(uri, isSpace)
	rest, found := strings.CutPrefix(s, GeoURIScheme)
	if !found || strings.ContainsFunc(rest, isLineTerminator) {
		return GeoCoordinate{}, false
	}
	parts := strings.Split(rest, ";")
	coords := strings.Split(parts[0], ",")
	var accuracy Optional[float64]
	for _, param := range parts[1:] {
		if _, v, ok := strings.Cut(param, "u="); ok {
			accuracy = parseField(v)
		}
	}
	return GeoCoordinate{
		Latitude:  parseNthField(coords, 0),
		Longitude: parseNthField(coords, 1),
		Altitude:  parseNthField(coords, 2),
		Accuracy:  accuracy,
	}, true
}

func parseNthField(fields []string, i int) Optional[float64] {
	if i >= len(fields) {
		return None[float64]()
	}
	return parseField(fields[i])
}

func parseField(s string) Optional[float64] {
	f, ok := ParseFloatPrefix(s)
	if !ok {
		return None[float64]()
	}
	return Some(f)
}

// FormatGeoURI serializes the latitude, longitude, altitude, and
// accuracy of c as a geo URI. The altitude and u= parameter are only
// written if they are present, while an absent latitude or longitude
// is written as an empty field. Parsing the result with ParseGeoURI
// gives back the same four fields.
func FormatGeoURI(c GeoCoordinate) string {
	var b strings.Builder
	b.WriteString(GeoURIScheme)
	writeField(&b, c.Latitude)
	b.WriteByte(',')
	writeField(&b, c.Longitude)
	if c.Altitude.IsSet() {
		b.WriteByte(',')
		writeField(&b, c.Altitude)
	}
	if c.Accuracy.IsSet() {
		b.WriteString(";u=")
		writeField(&b, c.Accuracy)
	}
	return b.String()
}

func writeField(b *strings.Builder, o Optional[float64]) {
	if f, ok := o.Get(); ok {
		b.WriteString(formatFloat(f))
	}
}
