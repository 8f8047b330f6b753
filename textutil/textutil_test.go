package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"removes control chars", "hello\tworld", "helloworld"},
		{"preserves newlines", "hello\nworld", "hello\nworld"},
		{"collapses empty lines", "a\n\n\nb", "a\n\nb"},
		{"strips whitespace", "  hello  ", "hello"},
		{"crlf to lf", "a\r\nb", "a\nb"},
		{"cr to lf", "a\rb", "a\nb"},
		{"vertical tab", "a\vb", "a\nb"},
		{"nfkc normalization", "ℍello", "Hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestRemoveNewlines(t *testing.T) {
	assert.Equal(t, "hello world", RemoveNewlines("hello\nworld"))
	assert.Equal(t, "a b c", RemoveNewlines("a  b   c"))
	assert.Equal(t, "", RemoveNewlines("  \n\t "))
}

func TestTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		nbytes   int
		expected string
	}{
		{"no truncation", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncates", "hello world", 5, "hello"},
		{"strips after trim", "hello ", 6, "hello"},
		{"multibyte boundary dropped", "é", 1, ""},
		{"multibyte kept when whole", "é", 2, "é"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Trim(tt.input, tt.nbytes))
		})
	}
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"lowercase and strip space", "Hello World", "helloworld"},
		{"strips accents", "café", "cafe"},
		{"strips punctuation", "hello, world!", "helloworld"},
		{"keeps digits and symbols", "a+b=3", "a+b=3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Collapse(tt.input))
		})
	}
}

func TestCategoryPredicates(t *testing.T) {
	assert.True(t, isCategoryC('\x00'))       // NUL is Cc
	assert.True(t, isCategoryC('\u200b'))     // ZERO WIDTH SPACE is Cf
	assert.True(t, isCategoryC('\U000E0000')) // unassigned counts as C
	assert.False(t, isCategoryC('a'))
	assert.True(t, isCategoryCMP('!'))        // punctuation
	assert.True(t, isCategoryCMP('\u0301'))   // combining acute accent is Mn
	assert.False(t, isCategoryCMP('7'))
}
