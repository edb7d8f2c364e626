// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package geors_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/momeni/geoshare/pkg/adapter/restful/gin/geors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	geors.Register(e.Group("/api/gsweb/v1"))
	return e
}

func serve(t *testing.T, e *gin.Engine, req *http.Request, res any) int {
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), res), "body is not json")
	return w.Code
}

func TestParse(t *testing.T) {
	e := newEngine()
	for _, tc := range []struct {
		uri      string
		expected string
	}{
		{
			uri: "geo:51.5,-0.12,20;u=5",
			expected: `{"geo_uri":true,"coordinate":{
				"latitude":51.5,"longitude":-0.12,"altitude":20,
				"accuracy":5,"altitude_accuracy":null,
				"heading":null,"speed":null}}`,
		},
		{
			uri: "geo:abc,41",
			expected: `{"geo_uri":true,"coordinate":{
				"latitude":null,"longitude":41,"altitude":null,
				"accuracy":null,"altitude_accuracy":null,
				"heading":null,"speed":null}}`,
		},
		{
			uri:      "https://example.org",
			expected: `{"geo_uri":false,"coordinate":null}`,
		},
		{
			uri:      "",
			expected: `{"geo_uri":false,"coordinate":null}`,
		},
	} {
		w := httptest.NewRecorder()
		req, err := http.NewRequest(
			http.MethodGet,
			"/api/gsweb/v1/geo?uri="+url.QueryEscape(tc.uri),
			nil,
		)
		require.NoError(t, err)
		e.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "uri=%q", tc.uri)
		assert.JSONEq(t, tc.expected, w.Body.String(), "uri=%q", tc.uri)
	}
}

func formReq(t *testing.T, path string, form url.Values) *http.Request {
	req, err := http.NewRequest(
		http.MethodPost, path, strings.NewReader(form.Encode()),
	)
	require.NoError(t, err)
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestFormat(t *testing.T) {
	e := newEngine()
	res := &struct {
		GeoURI string `json:"geo_uri"`
	}{}
	code := serve(t, e, formReq(t, "/api/gsweb/v1/geo/format", url.Values{
		"lat":      {"51.5074"},
		"lon":      {"-0.1278"},
		"accuracy": {"2.5"},
	}), res)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "geo:51.5074,-0.1278;u=2.5", res.GeoURI)
}

func TestFormatBadRequest(t *testing.T) {
	e := newEngine()
	for _, tc := range []struct {
		name  string
		form  url.Values
		field string
		part  string
	}{
		{
			name:  "missing lat",
			form:  url.Values{"lon": {"1"}},
			field: "Lat",
			part:  "failed on the 'required' tag",
		},
		{
			name:  "non-numeric lon",
			form:  url.Values{"lat": {"1"}, "lon": {"east"}},
			field: "lon",
			part:  "The lon is not a number.",
		},
		{
			name:  "NaN altitude",
			form:  url.Values{"lat": {"1"}, "lon": {"2"}, "alt": {"NaN"}},
			field: "alt",
			part:  "The alt is not a number.",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res := map[string][]string{}
			code := serve(t, e, formReq(t, "/api/gsweb/v1/geo/format", tc.form), &res)
			assert.Equal(t, http.StatusBadRequest, code)
			if assert.Len(t, res[tc.field], 1, "res=%v", res) {
				assert.Contains(t, res[tc.field][0], tc.part)
			}
		})
	}
}
