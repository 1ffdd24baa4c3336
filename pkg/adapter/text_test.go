package adapter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"tags stripped", "<p>hello <b>bold</b> world</p>", "hello bold world"},
		{"entities unescaped", "fish &amp; chips", "fish & chips"},
		{"whitespace collapsed", "  a \n\t b  ", "a b"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanHTML(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abcde", 2))
	assert.Equal(t, "héllo", truncate("héllo", 5), "rune count, not bytes")
	assert.Equal(t, "hél", truncate("héllo", 3))
}

func TestTitleKey(t *testing.T) {
	assert.Equal(t, "title:hello world", titleKey("title:", "  Hello   WORLD "))
	long := strings.Repeat("x", 200)
	assert.Len(t, titleKey("v:", long), 2+100)
}

func TestCleanDate(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Published: 2024-01-15", "2024-01-15"},
		{"posted 2024-01-15", "2024-01-15"},
		{"Updated: Jan 2, 2024", "Jan 2, 2024"},
		{"2024-01-15", "2024-01-15"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanDate(tt.in), "input %q", tt.in)
	}
}

func TestCompileIgnores(t *testing.T) {
	res := compileIgnores([]string{"(?i)webinar", "[broken", "event"})
	assert.Len(t, res, 2, "invalid patterns are skipped, not fatal")
	assert.True(t, ignored("Join our WEBINAR now", res))
	assert.True(t, ignored("community event", res))
	assert.False(t, ignored("release notes", res))
}
