package markdown

import (
	"fmt"

	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark/ast"
)

const fallbackHeadingID = "heading"

// slugIDs generates heading ids through go-slug, suffixing duplicates with a
// counter (intro, intro-1, intro-2).
type slugIDs struct {
	values map[string]struct{}
}

func newSlugIDs() *slugIDs {
	return &slugIDs{values: map[string]struct{}{}}
}

func (s *slugIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	base, err := slug.Normalize(string(value))
	if err != nil || base == "" {
		base = fallbackHeadingID
		if kind != ast.KindHeading {
			base = "id"
		}
	}

	candidate := base
	for i := 1; ; i++ {
		if _, taken := s.values[candidate]; !taken {
			break
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	s.values[candidate] = struct{}{}
	return []byte(candidate)
}

func (s *slugIDs) Put(value []byte) {
	s.values[string(value)] = struct{}{}
}
