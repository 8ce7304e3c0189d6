// Package sanitize strips HTML from free-text registration fields.
// Team names, colleges, and cities end up in admin pages and in outbound
// email bodies, so markup is removed at the door.
package sanitize

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML elements and attributes from s. The result is
// plain text: entities the policy escaped are folded back so names like
// "St. Joseph's College" store as typed. Output encoding happens at render
// time, not here.
func Text(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}
