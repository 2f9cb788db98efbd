package boo

import (
	"regexp"
)

// declarationPattern matches a version declaration in a plugin header, e.g.
// " * Version: 1.2.3". The token stops at whitespace or '*'.
var declarationPattern = regexp.MustCompile(`\* Version:\s*([^\s*]+)`)

// declarationPrefix is written in front of every replaced version.
const declarationPrefix = "* Version: "

// Locator finds and rewrites the version declaration in main-file content.
// It performs no I/O.
type Locator struct {
	codec Codec
}

// NewLocator returns a Locator that validates new versions with codec.
func NewLocator(codec Codec) Locator {
	return Locator{codec: codec}
}

// Find returns the version token of the first declaration in content.
func (l Locator) Find(content string) (string, error) {
	m := declarationPattern.FindStringSubmatch(content)
	if m == nil {
		return "", newError(CodeSearchNotFound, "version declaration not found")
	}
	return m[1], nil
}

// Replace rewrites every declaration in content to newVersion. Bytes outside
// the matched declarations are returned unchanged.
func (l Locator) Replace(content, newVersion string) (string, error) {
	if _, err := l.codec.ToInt(newVersion); err != nil {
		return "", err
	}
	if !declarationPattern.MatchString(content) {
		return "", newError(CodeSearchNotFound, "version declaration not found")
	}
	return declarationPattern.ReplaceAllLiteralString(content, declarationPrefix+newVersion), nil
}

// Count returns the number of declarations in content.
func (l Locator) Count(content string) int {
	return len(declarationPattern.FindAllStringIndex(content, -1))
}
