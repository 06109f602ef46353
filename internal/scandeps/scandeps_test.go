package scandeps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name:     "single quoted",
			src:      `var a = require('./a');`,
			expected: []string{"./a"},
		},
		{
			name:     "double quoted",
			src:      `var a = require("lib/ajax");`,
			expected: []string{"lib/ajax"},
		},
		{
			name: "order of appearance",
			src: `var b = require('./b');
var a = require('../a');
var c = require("c");`,
			expected: []string{"./b", "../a", "c"},
		},
		{
			name:     "duplicates preserved",
			src:      `require('./x'); require('./y'); require('./x');`,
			expected: []string{"./x", "./y", "./x"},
		},
		{
			name:     "whitespace inside the call",
			src:      `require (  './spaced'  );`,
			expected: []string{"./spaced"},
		},
		{
			name:     "no imports",
			src:      `exports.answer = 42;`,
			expected: []string{},
		},
		{
			name:     "non-literal argument is ignored",
			src:      `require(someVariable); require('./real');`,
			expected: []string{"./real"},
		},
		{
			// The scan is lexical, so a match inside a comment is
			// extracted. That is the documented behavior.
			name:     "comment false positive",
			src:      `// see require('./commented') for details`,
			expected: []string{"./commented"},
		},
	}

	s := New("")
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, s.Extract([]byte(tc.src)))
		})
	}
}

func TestExtract_CustomCallName(t *testing.T) {
	s := New("import_module")
	src := `import_module('./a'); require('./ignored');`
	assert.Equal(t, []string{"./a"}, s.Extract([]byte(src)))
}

func TestExtract_EmptyLiteral(t *testing.T) {
	s := New("")
	assert.Equal(t, []string{""}, s.Extract([]byte(`require('')`)))
}
