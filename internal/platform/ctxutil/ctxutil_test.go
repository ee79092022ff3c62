// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minhvban/vidora/internal/platform/ctxutil"
	"github.com/minhvban/vidora/internal/platform/sec"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := ctxutil.WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

func TestRequestID_MissingReturnsEmpty(t *testing.T) {
	assert.Empty(t, ctxutil.GetRequestID(context.Background()))
}

func TestLogger_RoundTrip(t *testing.T) {
	logger := slog.Default().With(slog.String("test", "yes"))
	ctx := ctxutil.WithLogger(context.Background(), logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

func TestLogger_MissingFallsBackToDefault(t *testing.T) {
	// A bare context must still yield a usable logger.
	assert.NotNil(t, ctxutil.GetLogger(context.Background()))
}

func TestAuthUser_RoundTrip(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "user-1", Nick: "minh"}
	ctx := ctxutil.WithAuthUser(context.Background(), claims)

	got := ctxutil.GetAuthUser(ctx)
	assert.Same(t, claims, got)
}

func TestAuthUser_MissingReturnsNil(t *testing.T) {
	assert.Nil(t, ctxutil.GetAuthUser(context.Background()))
}
