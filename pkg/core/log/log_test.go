// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/geoshare/pkg/core/log"
	"github.com/momeni/geoshare/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestLogAttrs(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	defer slog.SetDefault(prev)
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelInfo,
	})))

	ctx := context.Background()
	gc, _ := model.ParseGeoURI("geo:51,41")
	bid := uuid.MustParse("0f0e0d0c-0b0a-4908-8706-050403020100")
	log.Debug(ctx, "hidden")
	log.Warn(ctx, "published",
		log.ID("beacon", bid),
		log.Valuer("coordinate", gc),
		log.Err("err", errors.New("boom")),
		log.Err("none", nil),
	)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=published")
	assert.Contains(t, out, "beacon=0f0e0d0c-0b0a-4908-8706-050403020100")
	assert.Contains(t, out, "coordinate.lat=51")
	assert.Contains(t, out, "coordinate.alt=none")
	assert.Contains(t, out, "err=boom")
	assert.Contains(t, out, "none=no-error")
	assert.Contains(t, out, "log_test.go", "source must be the caller")
}
