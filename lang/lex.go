package lang

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	placeholderToken int = iota
	anyToken
)

var placeholderMatcher = parsly.NewToken(placeholderToken, "Placeholder", matcher.NewSeqBlock("#{", "}"))
var anyMatcher = parsly.NewToken(anyToken, "Any", newAnyMatcher())

type anyByte struct {
}

func (a *anyByte) Match(cursor *parsly.Cursor) (matched int) {
	if cursor.Pos < cursor.InputSize {
		return 1
	}
	return 0
}

func newAnyMatcher() parsly.Matcher {
	return &anyByte{}
}
