// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package render_test

import (
	"testing"

	. "gopkg.in/check.v1"

	"github.com/k14s/hostexpr/pkg/render"
)

func Test(t *testing.T) { TestingT(t) }

type ScalarS struct{}

var _ = Suite(&ScalarS{})

// scalars render on a single line regardless of format
func (s *ScalarS) TestScalars(c *C) {
	for _, format := range []render.Format{render.FormatJSON, render.FormatYAML, render.FormatYAMLNice} {
		r := render.NewRenderer(format)

		c.Check(r.Value(nil), Equals, "null")
		c.Check(r.Value(true), Equals, "true")
		c.Check(r.Value(false), Equals, "false")
		c.Check(r.Value(int64(42)), Equals, "42")
		c.Check(r.Value(1.5), Equals, "1.5")
		c.Check(r.Value("plain text"), Equals, "plain text")
		c.Check(r.Value(""), Equals, "")
	}
}

func (s *ScalarS) TestFormatAccessors(c *C) {
	r := render.NewRenderer(render.FormatJSON)
	c.Check(r.Format(), Equals, render.FormatJSON)

	r.SetFormat(render.FormatYAML)
	c.Check(r.Format(), Equals, render.FormatYAML)
}
