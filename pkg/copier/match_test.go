package copier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher(t *testing.T) {
	tests := []struct {
		name          string
		prefix        string
		excludeMarker string
		except        []string
		file          string
		exp           bool
	}{
		{"PrefixMatch", "sudokupad-", "(1)", nil, "sudokupad-abc.json", true},
		{"PrefixOnly", "sudokupad-", "(1)", nil, "sudokupad-", true},
		{"NoPrefix", "sudokupad-", "(1)", nil, "puzzle.json", false},
		{"PrefixNotAtStart", "sudokupad-", "(1)", nil, "x-sudokupad-abc.json", false},
		{"DuplicateMarker", "sudokupad-", "(1)", nil, "sudokupad-abc(1).json", false},
		{"OtherDuplicateNumber", "sudokupad-", "(1)", nil, "sudokupad-abc(2).json", true},
		{"NoMarker", "sudokupad-", "", nil, "sudokupad-abc(1).json", true},
		{"ExceptGlob", "sudokupad-", "(1)", []string{"*.crdownload"}, "sudokupad-a.crdownload", false},
		{"ExceptGlobMiss", "sudokupad-", "(1)", []string{"*.crdownload"}, "sudokupad-a.gif", true},
		{"PrefixWithMeta", "solve[1]*", "", nil, "solve[1]*-a", true},
		{"PrefixMetaIsLiteral", "solve[1]*", "", nil, "solve1-a", false},
		{"MarkerWithMeta", "s", "*", nil, "s*x", false},
		{"MarkerMetaIsLiteral", "s", "*", nil, "sx", true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			matcher, err := NewMatcher(test.prefix, test.excludeMarker, test.except)
			require.NoError(t, err)
			assert.Equal(t, test.exp, matcher.Match(test.file))
		})
	}
}
