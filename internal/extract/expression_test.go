package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		name       string
		expr       string
		resolution string
		selector   string
		body       string
	}{
		{
			name:       "simple",
			expr:       "foo=120&(bar:baz)",
			resolution: "120",
			selector:   "(bar:baz)",
			body:       "bar:baz",
		},
		{
			name:       "null resolution token",
			expr:       "resolution=null&(builtin:host.cpu.usage:splitBy():avg:auto:sort(value(avg,descending)):limit(10)):limit(100):names",
			resolution: "null",
			selector:   "(builtin:host.cpu.usage:splitBy():avg:auto:sort(value(avg,descending)):limit(10)):limit(100):names",
			body:       "(builtin:host.cpu.usage:splitBy():avg:auto:sort(value(avg,descending)):limit(10)):limit(100):names",
		},
		{
			name:       "minute resolution",
			expr:       "resolution=1m&(builtin:host.mem.usage)",
			resolution: "1m",
			selector:   "(builtin:host.mem.usage)",
			body:       "builtin:host.mem.usage",
		},
		{
			name:       "split at last ampersand before paren",
			expr:       "resolution=1m&(a:b)&(c:d)",
			resolution: "1m&(a:b)",
			selector:   "(c:d)",
			body:       "c:d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := ParseExpression(tt.expr)
			require.True(t, ok)
			assert.Equal(t, tt.resolution, parsed.Resolution)
			assert.Equal(t, tt.selector, parsed.Selector)
			assert.Equal(t, tt.body, parsed.Body())
		})
	}
}

func TestParseExpression_NoMatch(t *testing.T) {
	for _, expr := range []string{
		"",
		"builtin:host.cpu.usage",
		"resolution=null",
		"resolution=null&builtin:host.cpu.usage",
		"&(builtin:host.cpu.usage)",
	} {
		_, ok := ParseExpression(expr)
		assert.False(t, ok, "expression %q should not match", expr)
	}
}

func TestExtractor_LegacyResolution(t *testing.T) {
	e := NewExtractor("")

	assert.Equal(t, "120", e.resolution("null"))
	assert.Equal(t, "120", e.resolution(""))
	assert.Equal(t, "5m", e.resolution("5m"))

	custom := NewExtractor("60")
	assert.Equal(t, "60", custom.resolution("null"))
}
