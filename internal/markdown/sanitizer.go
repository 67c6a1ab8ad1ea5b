package markdown

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-airmd/pkg/interfaces"
)

// Sanitizer scrubs rendered HTML with a bluemonday user generated content
// policy. Class attributes survive so language-* and prose classes stay intact.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer constructs the default sanitizer.
func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	return &Sanitizer{policy: policy}
}

// Sanitize implements interfaces.HTMLSanitizer.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

var _ interfaces.HTMLSanitizer = (*Sanitizer)(nil)
