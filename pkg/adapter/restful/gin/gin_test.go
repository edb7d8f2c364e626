// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/geoshare/internal/test/dbcontainer"
	"github.com/momeni/geoshare/pkg/adapter/config"
	"github.com/momeni/geoshare/pkg/adapter/config/settings"
	"github.com/momeni/geoshare/pkg/adapter/db/postgres"
	"github.com/momeni/geoshare/pkg/adapter/restful/gin"
	"github.com/momeni/geoshare/pkg/adapter/restful/gin/routes"
	"github.com/momeni/geoshare/pkg/core/model"
	"github.com/stretchr/testify/suite"
)

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pool *postgres.Pool
	Gin  *gin.Engine
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	defer func() {
		for i := len(dfrs) - 1; i >= 0; i-- {
			dfrs[i]()
		}
	}()
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	igts.Gin = gin.New(gin.Logger(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	maxTimeout := settings.Duration(time.Hour)
	err := routes.Register(igts.Gin, igts.Pool, config.Usecases{
		Beacons: config.Beacons{
			MaxTimeout: &maxTimeout,
		},
	}, nil)
	igts.Require().NoError(err, "failed to register Gin routes")
}

func urlEncoded(m map[string]string) io.Reader {
	u := url.Values{}
	for k, v := range m {
		u.Set(k, v)
	}
	return strings.NewReader(u.Encode())
}

func (igts *IntegrationGinTestSuite) sendReqRecvResp(
	method, path string, body io.Reader, res any,
) int {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, routes.Prefix+path, body)
	igts.Require().NoError(err, "cannot create %s request", method)
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	igts.Gin.ServeHTTP(w, req)
	b := w.Body.Bytes()
	igts.NoError(json.Unmarshal(b, res), "body is not json")
	return w.Code
}

func (igts *IntegrationGinTestSuite) startBeacon(room string) *model.Beacon {
	b := &model.Beacon{}
	code := igts.sendReqRecvResp(
		http.MethodPost, "/rooms/"+room+"/beacons",
		urlEncoded(map[string]string{
			"owner":       "@alice:example.org",
			"description": "on my way",
			"timeout":     "10m",
		}), b,
	)
	igts.Require().Equal(http.StatusCreated, code)
	return b
}

func (igts *IntegrationGinTestSuite) TestStartBadRequest() {
	for _, tc := range []struct {
		name  string
		body  io.Reader
		field string
		part  string
	}{
		{
			name:  "no body",
			body:  nil,
			field: "detail",
			part:  "missing form body",
		},
		{
			name:  "no owner",
			body:  urlEncoded(nil),
			field: "Owner",
			part:  "failed on the 'required' tag",
		},
		{
			name: "invalid timeout",
			body: urlEncoded(map[string]string{
				"owner": "@bob:example.org", "timeout": "soon",
			}),
			field: "timeout",
			part:  "invalid duration",
		},
	} {
		igts.Run(tc.name, func() {
			res := map[string]any{}
			code := igts.sendReqRecvResp(
				http.MethodPost, "/rooms/r0/beacons", tc.body, &res,
			)
			igts.Equal(http.StatusBadRequest, code)
			igts.Contains(res, tc.field)
			igts.Contains(stringOf(res[tc.field]), tc.part)
		})
	}
	res := map[string]any{}
	code := igts.sendReqRecvResp(
		http.MethodPost, "/rooms/r0/beacons",
		urlEncoded(map[string]string{
			"owner": "@bob:example.org", "timeout": "2h",
		}), &res,
	)
	igts.Equal(http.StatusBadRequest, code)
	igts.Contains(stringOf(res["detail"]), "exceeds 1h0m0s")

	res = map[string]any{}
	code = igts.sendReqRecvResp(
		http.MethodPost, "/rooms/r0/beacons",
		urlEncoded(map[string]string{
			"owner": "@bob:example.org", "timeout": "500us",
		}), &res,
	)
	igts.Equal(http.StatusBadRequest, code)
	igts.Contains(stringOf(res["detail"]), "shorter than 1ms")
}

func stringOf(v any) string {
	switch vv := v.(type) {
	case string:
		return vv
	case []any:
		if len(vv) == 1 {
			s, _ := vv[0].(string)
			return s
		}
	}
	return ""
}

func (igts *IntegrationGinTestSuite) TestLifecycle() {
	b := igts.startBeacon("room1")
	igts.True(b.Live)
	igts.Equal(10*time.Minute, b.Timeout)

	loc := &model.BeaconLocation{}
	code := igts.sendReqRecvResp(
		http.MethodPost, "/beacons/"+b.ID.String()+"/locations",
		urlEncoded(map[string]string{"geo_uri": "geo:51,41;u=5"}), loc,
	)
	igts.Require().Equal(http.StatusCreated, code)
	igts.Equal("geo:51,41;u=5", loc.GeoURI)
	igts.Equal(model.Some(5.0), loc.Coordinate.Accuracy)

	c2 := igts.startBeacon("room1")
	code = igts.sendReqRecvResp(
		http.MethodPost, "/beacons/"+c2.ID.String()+"/locations",
		urlEncoded(map[string]string{"geo_uri": "geo:50,36"}), loc,
	)
	igts.Require().Equal(http.StatusCreated, code)

	v := &model.RoomView{}
	code = igts.sendReqRecvResp(http.MethodGet, "/rooms/room1/beacons", nil, v)
	igts.Require().Equal(http.StatusOK, code)
	igts.Len(v.Beacons, 2)
	igts.Equal(&model.Bounds{North: 51, East: 41, West: 36, South: 50}, v.Bounds)
	igts.Equal("geo:50.5,38.5", v.CenterGeoURI)

	stopped := &model.Beacon{}
	code = igts.sendReqRecvResp(
		http.MethodDelete, "/beacons/"+b.ID.String(), nil, stopped,
	)
	igts.Require().Equal(http.StatusOK, code)
	igts.False(stopped.Live)

	res := map[string]string{}
	code = igts.sendReqRecvResp(
		http.MethodPost, "/beacons/"+b.ID.String()+"/locations",
		urlEncoded(map[string]string{"geo_uri": "geo:52,42"}), &res,
	)
	igts.Equal(http.StatusConflict, code)

	v = &model.RoomView{}
	code = igts.sendReqRecvResp(http.MethodGet, "/rooms/room1/beacons", nil, v)
	igts.Require().Equal(http.StatusOK, code)
	igts.Len(v.Beacons, 1)
	igts.Equal("geo:50,36", v.CenterGeoURI)
}

func (igts *IntegrationGinTestSuite) TestPublishBadRequest() {
	b := igts.startBeacon("room2")
	for _, tc := range []struct {
		name, path, uri, detail string
		code                    int
	}{
		{
			name:   "not a geo URI",
			path:   "/beacons/" + b.ID.String() + "/locations",
			uri:    "https://example.org",
			detail: "not a geo URI",
			code:   http.StatusBadRequest,
		},
		{
			name:   "missing longitude",
			path:   "/beacons/" + b.ID.String() + "/locations",
			uri:    "geo:51",
			detail: "geo URI lacks latitude or longitude",
			code:   http.StatusBadRequest,
		},
		{
			name:   "missing beacon",
			path:   "/beacons/" + uuid.NewString() + "/locations",
			uri:    "geo:51,41",
			detail: "expected one row, but got 0",
			code:   http.StatusNotFound,
		},
	} {
		igts.Run(tc.name, func() {
			res := map[string]string{}
			code := igts.sendReqRecvResp(
				http.MethodPost, tc.path,
				urlEncoded(map[string]string{"geo_uri": tc.uri}), &res,
			)
			igts.Equal(tc.code, code)
			igts.Equal(tc.detail, res["detail"])
		})
	}
	res := map[string][]string{}
	code := igts.sendReqRecvResp(
		http.MethodDelete, "/beacons/not-a-uuid", nil, &res,
	)
	igts.Equal(http.StatusBadRequest, code)
	igts.Equal([]string{"Path param bid is not UUID."}, res["bid"])
}
