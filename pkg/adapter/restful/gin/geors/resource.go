// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package geors realizes the geo resource, exposing the geo URI
// parser and formatter as REST APIs. It needs no database.
package geors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/geoshare/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/geoshare/pkg/core/model"
)

type resource struct {
}

// Register instantiates a resource with these REST APIs:
//  1. GET request to /api/gsweb/v1/geo?uri=...
//     in order to parse a geo URI,
//  2. POST request to /api/gsweb/v1/geo/format
//     in order to format a coordinate as a geo URI.
func Register(r *gin.RouterGroup) {
	rs := &resource{}
	r.GET("geo", rs.Parse)
	r.POST("geo/format", rs.Format)
}

type parseReq struct {
	URI string `form:"uri"`
}

type parseResp struct {
	GeoURI     bool                 `json:"geo_uri"`
	Coordinate *model.GeoCoordinate `json:"coordinate"`
}

// Parse responds with geo_uri=false and a null coordinate if the uri
// query param is not a geo URI (including when it is missing), since
// that is an expected outcome and not a bad request.
func (rs *resource) Parse(c *gin.Context) {
	req := &parseReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return
	}
	resp := parseResp{}
	if gc, ok := model.ParseGeoURI(req.URI); ok {
		resp.GeoURI = true
		resp.Coordinate = &gc
	}
	c.JSON(http.StatusOK, resp)
}

type formatResp struct {
	GeoURI string `json:"geo_uri"`
}

func (rs *resource) Format(c *gin.Context) {
	gc := rs.DserFormatReq(c)
	if gc == nil {
		return
	}
	c.JSON(http.StatusOK, formatResp{GeoURI: model.FormatGeoURI(*gc)})
}
