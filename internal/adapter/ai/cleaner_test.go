package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSON(t *testing.T) {
	t.Parallel()
	c := NewCleaner()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a": 1}`, `{"a": 1}`},
		{"plain array", `["x", "y"]`, `["x", "y"]`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n[\"x\"]\n```", `["x"]`},
		{"prose around object", `Sure, here it is: {"a": 1} hope that helps`, `{"a": 1}`},
		{"nested braces", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`},
		{"braces in strings", `{"a": "closing } brace"}`, `{"a": "closing } brace"}`},
		{"trailing comma", `{"a": 1,}`, `{"a": 1}`},
		{"array before object", `["x"] and {"a": 1}`, `["x"]`},
		{"no json", "I cannot help with that.", ""},
		{"unbalanced", `{"a": 1`, ""},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, c.CleanJSON(tc.in))
		})
	}
}
