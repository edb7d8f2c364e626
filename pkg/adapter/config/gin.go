// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import "github.com/momeni/geoshare/pkg/adapter/restful/gin"

// Gin contains the Gin-Gonic engine instantiation settings.
type Gin struct {
	Logger   *bool // Whether to register the request logger middleware
	Recovery *bool // Whether to register the panic recovery middleware
}

// NewEngine creates a Gin engine with the enabled middlewares.
// Settings must be normalized beforehand.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}
