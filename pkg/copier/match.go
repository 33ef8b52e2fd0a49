package copier

import (
	"github.com/gobwas/glob"

	"github.com/sidkik/solvecopy/pkg/errors"
)

// Matcher decides whether a file name in the source directory is a
// Candidate File.
type Matcher struct {
	include glob.Glob
	exclude []glob.Glob
}

// NewMatcher compiles a Matcher that accepts names starting with `prefix`,
// unless they contain `excludeMarker` or match one of the `except` globs.
// An empty excludeMarker excludes nothing.
func NewMatcher(prefix, excludeMarker string, except []string) (Matcher, error) {
	include, err := glob.Compile(glob.QuoteMeta(prefix) + "*")
	if err != nil {
		return Matcher{}, errors.WithContext(err, "compile prefix")
	}

	var exclude []glob.Glob
	if excludeMarker != "" {
		markerGlob, err := glob.Compile("*" + glob.QuoteMeta(excludeMarker) + "*")
		if err != nil {
			return Matcher{}, errors.WithContext(err, "compile exclude marker")
		}
		exclude = append(exclude, markerGlob)
	}

	for _, pattern := range except {
		exceptGlob, err := glob.Compile(pattern)
		if err != nil {
			return Matcher{}, errors.WithContext(err, "compile except pattern "+pattern)
		}
		exclude = append(exclude, exceptGlob)
	}
	return Matcher{include: include, exclude: exclude}, nil
}

// Match returns whether name is eligible for copying.
func (m Matcher) Match(name string) bool {
	if !m.include.Match(name) {
		return false
	}

	for _, g := range m.exclude {
		if g.Match(name) {
			return false
		}
	}
	return true
}
