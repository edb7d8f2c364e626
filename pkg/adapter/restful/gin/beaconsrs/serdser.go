// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package beaconsrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/geoshare/pkg/adapter/restful/gin/serdser"
)

type rawStartReq struct {
	Owner       string `form:"owner" binding:"required"`
	Description string `form:"description" binding:"max=1024"`
	Timeout     string `form:"timeout"`
}

type startReq struct {
	RoomID      string
	Owner       string
	Description string
	Timeout     time.Duration
}

func (rs *resource) DserStartReq(c *gin.Context) *startReq {
	req := &rawStartReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	val := &startReq{
		RoomID:      c.Param("rid"),
		Owner:       req.Owner,
		Description: req.Description,
	}
	if req.Timeout != "" {
		d, err := time.ParseDuration(req.Timeout)
		if err != nil {
			var errs map[string][]string
			serdser.AddErr(&errs, "timeout", err.Error())
			c.JSON(http.StatusBadRequest, errs)
			return nil
		}
		val.Timeout = d
	}
	return val
}

type rawPublishReq struct {
	GeoURI    string    `form:"geo_uri" binding:"required"`
	Timestamp time.Time `form:"timestamp" time_format:"2006-01-02T15:04:05Z07:00"`
}

type publishReq struct {
	BeaconID  uuid.UUID
	GeoURI    string
	Timestamp time.Time
}

func (rs *resource) DserPublishReq(c *gin.Context) *publishReq {
	bid, ok := dserBeaconID(c)
	if !ok {
		return nil
	}
	req := &rawPublishReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	return &publishReq{
		BeaconID:  bid,
		GeoURI:    req.GeoURI,
		Timestamp: req.Timestamp,
	}
}

func dserBeaconID(c *gin.Context) (uuid.UUID, bool) {
	bid, err := uuid.Parse(c.Param("bid"))
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "bid", "Path param bid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return uuid.UUID{}, false
	}
	return bid, true
}
