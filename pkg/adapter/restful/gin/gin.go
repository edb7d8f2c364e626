// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the Gin-Gonic engine, so other packages can create
// an engine and its middlewares without importing gin directly.
// The request logs and recovered panics are reported by the default
// slog logger.
package gin

import (
	"log/slog"

	"github.com/FabienMht/ginslog/logger"
	"github.com/FabienMht/ginslog/recovery"
	"github.com/gin-gonic/gin"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns a middleware which logs each request using slog.
func Logger() HandlerFunc {
	return logger.New(slog.Default())
}

// Recovery returns a middleware which recovers from panics, logs them
// using slog, and responds with 500 status code.
func Recovery() HandlerFunc {
	return recovery.New(slog.Default())
}
