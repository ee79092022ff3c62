// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minhvban/vidora/pkg/slug"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Late Night Synthwave", "late-night-synthwave"},
		{"Café au Lait", "cafe-au-lait"},
		{"  spaced   out  ", "spaced-out"},
		{"UPPER_case.mixed", "upper-case-mixed"},
		{"100% Pure!!", "100-pure"},
		{"tiếng Việt", "tieng-viet"},
		{"---", ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, slug.From(c.input), c.input)
	}
}
