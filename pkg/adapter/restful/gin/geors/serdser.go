// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package geors

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/geoshare/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/geoshare/pkg/core/model"
)

type rawFormatReq struct {
	Lat      string `form:"lat" binding:"required"`
	Lon      string `form:"lon" binding:"required"`
	Alt      string `form:"alt"`
	Accuracy string `form:"accuracy"`
}

// DserFormatReq deserializes the format request. The lat and lon are
// mandatory, while alt and accuracy may be omitted. Values are only
// checked to be numbers, since geo URIs are formatted without range
// checks. Invalid requests are answered with 400 and nil is returned.
func (rs *resource) DserFormatReq(c *gin.Context) *model.GeoCoordinate {
	req := &rawFormatReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	var errs map[string][]string
	gc := &model.GeoCoordinate{
		Latitude:  parseOpt(&errs, "lat", req.Lat),
		Longitude: parseOpt(&errs, "lon", req.Lon),
		Altitude:  parseOpt(&errs, "alt", req.Alt),
		Accuracy:  parseOpt(&errs, "accuracy", req.Accuracy),
	}
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return gc
}

func parseOpt(
	errs *map[string][]string, name, s string,
) model.Optional[float64] {
	if s == "" {
		return model.None[float64]()
	}
	f, err := strconv.ParseFloat(s, 64)
	ok := err == nil && !math.IsNaN(f)
	if !serdser.Assert(errs, ok, name, "The "+name+" is not a number.") {
		return model.None[float64]()
	}
	return model.Some(f)
}
