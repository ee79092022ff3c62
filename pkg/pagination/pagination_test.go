// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minhvban/vidora/pkg/pagination"
)

func TestFromRequest_Defaults(t *testing.T) {
	request := httptest.NewRequest("GET", "/videos", nil)

	params := pagination.FromRequest(request)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset())
}

func TestFromRequest_Clamping(t *testing.T) {
	// 1. Oversized limits fall back to the default.
	request := httptest.NewRequest("GET", "/videos?page=3&limit=9999", nil)
	params := pagination.FromRequest(request)
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)

	// 2. Garbage and negative values fall back too.
	request = httptest.NewRequest("GET", "/videos?page=-1&limit=abc", nil)
	params = pagination.FromRequest(request)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
}

func TestNewMeta_TotalPages(t *testing.T) {
	meta := pagination.NewMeta(2, 20, 45)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 45, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	// An empty result set still reports a sane shape.
	empty := pagination.NewMeta(1, 20, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
