// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"math"
	"testing"

	"github.com/momeni/geoshare/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func some(f float64) model.Optional[float64] {
	return model.Some(f)
}

var none = model.None[float64]()

func TestParseGeoURINotMatching(t *testing.T) {
	for _, uri := range []string{
		"",
		"   ",
		"geo",
		"not-a-geo:51,41",
		"GEO:51,41",
		"https://example.org/?q=geo:51,41",
		"x geo:51,41",
		"geo:51,41\nfoo",
		"geo:51\r,41",
		"geo:51,\u202841",
	} {
		gc, ok := model.ParseGeoURI(uri)
		assert.False(t, ok, "uri=%q", uri)
		assert.Equal(t, model.GeoCoordinate{}, gc, "uri=%q", uri)
	}
}

func TestParseGeoURI(t *testing.T) {
	for _, tc := range []struct {
		name     string
		uri      string
		expected model.GeoCoordinate
	}{
		{
			name: "lat and lon",
			uri:  "geo:51,41",
			expected: model.GeoCoordinate{
				Latitude:  some(51),
				Longitude: some(41),
			},
		},
		{
			name: "with altitude",
			uri:  "geo:51,41,100",
			expected: model.GeoCoordinate{
				Latitude:  some(51),
				Longitude: some(41),
				Altitude:  some(100),
			},
		},
		{
			name: "with uncertainty",
			uri:  "geo:51,41;u=5",
			expected: model.GeoCoordinate{
				Latitude:  some(51),
				Longitude: some(41),
				Accuracy:  some(5),
			},
		},
		{
			name: "unknown params are ignored",
			uri:  "geo:51,41,100;u=5;crs=wgs84",
			expected: model.GeoCoordinate{
				Latitude:  some(51),
				Longitude: some(41),
				Altitude:  some(100),
				Accuracy:  some(5),
			},
		},
		{
			name: "params before uncertainty",
			uri:  "geo:51,41;crs=wgs84;u=35.5",
			expected: model.GeoCoordinate{
				Latitude:  some(51),
				Longitude: some(41),
				Accuracy:  some(35.5),
			},
		},
		{
			name: "non-numeric latitude",
			uri:  "geo:abc,41",
			expected: model.GeoCoordinate{
				Latitude:  none,
				Longitude: some(41),
			},
		},
		{
			name: "surrounding white spaces",
			uri:  "  geo:51,41  ",
			expected: model.GeoCoordinate{
				Latitude:  some(51),
				Longitude: some(41),
			},
		},
		{
			name: "surrounding line breaks and tabs",
			uri:  "\n\tgeo:51,41\r\n",
			expected: model.GeoCoordinate{
				Latitude:  some(51),
				Longitude: some(41),
			},
		},
		{
			name: "leading spaces of fields",
			uri:  "geo: 51, 41",
			expected: model.GeoCoordinate{
				Latitude:  some(51),
				Longitude: some(41),
			},
		},
		{
			name: "trailing garbage of fields",
			uri:  "geo:51.5N,-0.12W,20m;u=5m",
			expected: model.GeoCoordinate{
				Latitude:  some(51.5),
				Longitude: some(-0.12),
				Altitude:  some(20),
				Accuracy:  some(5),
			},
		},
		{
			name:     "empty body",
			uri:      "geo:",
			expected: model.GeoCoordinate{},
		},
		{
			name: "missing longitude",
			uri:  "geo:51",
			expected: model.GeoCoordinate{
				Latitude: some(51),
			},
		},
		{
			name: "extra coordinate fields",
			uri:  "geo:1,2,3,4,5",
			expected: model.GeoCoordinate{
				Latitude:  some(1),
				Longitude: some(2),
				Altitude:  some(3),
			},
		},
		{
			name: "empty altitude",
			uri:  "geo:1,2,",
			expected: model.GeoCoordinate{
				Latitude:  some(1),
				Longitude: some(2),
			},
		},
		{
			name: "last uncertainty wins",
			uri:  "geo:1,2;u=3;u=4",
			expected: model.GeoCoordinate{
				Latitude:  some(1),
				Longitude: some(2),
				Accuracy:  some(4),
			},
		},
		{
			name: "last uncertainty wins even if not numeric",
			uri:  "geo:1,2;u=3;u=x",
			expected: model.GeoCoordinate{
				Latitude:  some(1),
				Longitude: some(2),
				Accuracy:  none,
			},
		},
		{
			name: "uncertainty within another param",
			uri:  "geo:1,2;menu=7",
			expected: model.GeoCoordinate{
				Latitude:  some(1),
				Longitude: some(2),
				Accuracy:  some(7),
			},
		},
		{
			name: "out of range values",
			uri:  "geo:123.4,-500,-20",
			expected: model.GeoCoordinate{
				Latitude:  some(123.4),
				Longitude: some(-500),
				Altitude:  some(-20),
			},
		},
		{
			name: "exponents",
			uri:  "geo:5e1,-4.1E+1;u=1e-2",
			expected: model.GeoCoordinate{
				Latitude:  some(50),
				Longitude: some(-41),
				Accuracy:  some(0.01),
			},
		},
		{
			name: "infinity",
			uri:  "geo:Infinity,-Infinity",
			expected: model.GeoCoordinate{
				Latitude:  some(math.Inf(1)),
				Longitude: some(math.Inf(-1)),
			},
		},
		{
			name: "internal white spaces",
			uri:  "geo:5 1,4\u00a01",
			expected: model.GeoCoordinate{
				Latitude:  some(5),
				Longitude: some(4),
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			gc, ok := model.ParseGeoURI(tc.uri)
			require.True(t, ok, "expected %q to be a geo URI", tc.uri)
			assert.Equal(t, tc.expected, gc)
			assert.False(t, gc.AltitudeAccuracy.IsSet())
			assert.False(t, gc.Heading.IsSet())
			assert.False(t, gc.Speed.IsSet())
		})
	}
}

func TestFormatGeoURI(t *testing.T) {
	for _, tc := range []struct {
		gc       model.GeoCoordinate
		expected string
	}{
		{
			gc:       model.GeoCoordinate{Latitude: some(51), Longitude: some(41)},
			expected: "geo:51,41",
		},
		{
			gc: model.GeoCoordinate{
				Latitude:  some(51.5074),
				Longitude: some(-0.1278),
				Altitude:  some(11),
				Accuracy:  some(2.5),
			},
			expected: "geo:51.5074,-0.1278,11;u=2.5",
		},
		{
			gc:       model.GeoCoordinate{Longitude: some(41), Accuracy: some(5)},
			expected: "geo:,41;u=5",
		},
		{
			gc:       model.GeoCoordinate{},
			expected: "geo:,",
		},
		{
			gc: model.GeoCoordinate{
				Latitude:  some(1e-9),
				Longitude: some(2e22),
			},
			expected: "geo:1e-09,2e+22",
		},
		{
			gc: model.GeoCoordinate{
				Latitude:  some(math.Inf(1)),
				Longitude: some(math.Inf(-1)),
			},
			expected: "geo:Infinity,-Infinity",
		},
	} {
		assert.Equal(t, tc.expected, model.FormatGeoURI(tc.gc))
	}
}

func TestGeoURIRoundTrip(t *testing.T) {
	for _, uri := range []string{
		"geo:51,41",
		"geo:51,41,100",
		"geo:51,41;u=5",
		"geo:51,41,100;u=5;crs=wgs84",
		"geo:abc,41",
		"geo:-33.8688197,151.2092955,58.25;u=0.1",
		"geo:0.1,0.2,0.30000000000000004",
		"geo:1e-7,123456789012345678901234",
		"geo:Infinity,1",
		"geo:",
	} {
		gc, ok := model.ParseGeoURI(uri)
		require.True(t, ok, "uri=%q", uri)
		formatted := model.FormatGeoURI(gc)
		again, ok := model.ParseGeoURI(formatted)
		require.True(t, ok, "formatted=%q", formatted)
		assert.Equal(t, gc, again, "uri=%q formatted=%q", uri, formatted)
	}
}

func TestGeoCoordinateCoordinate(t *testing.T) {
	gc, _ := model.ParseGeoURI("geo:51,41")
	c, ok := gc.Coordinate()
	require.True(t, ok)
	assert.Equal(t, model.Coordinate{Lat: 51, Lon: 41}, c)

	gc, _ = model.ParseGeoURI("geo:51,x")
	_, ok = gc.Coordinate()
	assert.False(t, ok)

	assert.Equal(t,
		model.GeoCoordinate{Latitude: some(1), Longitude: some(2)},
		model.Coordinate{Lat: 1, Lon: 2}.GeoCoordinate(),
	)
}
