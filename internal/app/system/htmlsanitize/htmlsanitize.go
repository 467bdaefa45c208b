// Package htmlsanitize strips dangerous markup from user-supplied
// content before it is stored. Board posts, chat messages, and charter
// content all pass through here.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	policy *bluemonday.Policy
)

// ugc returns the shared sanitization policy: basic user-generated
// content formatting plus tables, with scripts and event handlers
// removed.
func ugc() *bluemonday.Policy {
	once.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
		policy = p
	})
	return policy
}

// Sanitize returns s with disallowed markup removed. Plain text passes
// through unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc().Sanitize(s)
}
