package debugexport

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cityapp-admin/internal/store"
)

var fixedNow = time.Date(2024, 7, 9, 18, 30, 5, 0, time.UTC)

func TestRenderJSON_ConfigScenario(t *testing.T) {
	got, err := RenderJSON([]byte(`{"city":"Jundiaí","tags":["a","b"],"active":true}`))
	require.NoError(t, err)

	want := "{\n  city: \"Jundiaí\",\n  tags: [\n    \"a\",\n    \"b\"\n  ],\n  active: true\n}"
	assert.Equal(t, want, got)
}

func TestRender_Scalars(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"x", `"x"`},
		{"line\nbreak", `"line\nbreak"`},
		{int64(42), "42"},
		{3.5, "3.5"},
		{false, "false"},
		{nil, "null"},
		{map[string]any{}, "{}"},
		{[]any{}, "[]"},
	}
	for _, tt := range tests {
		got, err := Render(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestRender_NestedMapSortsKeys(t *testing.T) {
	got, err := Render(map[string]any{
		"name":    "Ana",
		"profile": map[string]any{"zip": "13201", "city": "Jundiaí"},
		"roles":   []any{map[string]any{"id": 1}},
	})
	require.NoError(t, err)

	want := strings.Join([]string{
		"{",
		`  name: "Ana",`,
		"  profile: {",
		`    city: "Jundiaí",`,
		`    zip: "13201"`,
		"  },",
		"  roles: [",
		"    {",
		"      id: 1",
		"    }",
		"  ]",
		"}",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRender_TimestampsAsStrings(t *testing.T) {
	got, err := Render(map[string]any{"createdAt": fixedNow})
	require.NoError(t, err)
	assert.Equal(t, "{\n  createdAt: \"2024-07-09T18:30:05Z\"\n}", got)
}

func TestRender_RawMessageKeepsOrder(t *testing.T) {
	got, err := Render(json.RawMessage(`{"b":1,"a":2}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n  b: 1,\n  a: 2\n}", got)
}

func TestRenderJSON_Invalid(t *testing.T) {
	_, err := RenderJSON([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestFormat_Header(t *testing.T) {
	text, err := Format("config", json.RawMessage(`{"city":"Jundiaí","tags":["a","b"],"active":true}`), fixedNow)
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	assert.Equal(t, "DEBUG EXPORT: CONFIG", lines[1])
	assert.Equal(t, "Generated at: 2024-07-09T18:30:05Z", lines[2])
	assert.True(t, strings.HasSuffix(text, "{\n  city: \"Jundiaí\",\n  tags: [\n    \"a\",\n    \"b\"\n  ],\n  active: true\n}\n"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "debug-config-20240709-183005.txt", FileName("config", fixedNow))
	assert.Equal(t, "debug-users_abc-20240709-183005.txt", FileName("users/abc", fixedNow))
	assert.Equal(t, "debug-export-20240709-183005.txt", FileName("", fixedNow))
}

func TestExport_WritesToSink(t *testing.T) {
	sink, err := store.NewLocal(t.TempDir())
	require.NoError(t, err)

	loc, err := Export(context.Background(), sink, "config", map[string]any{"active": true}, fixedNow)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(loc, "debug-config-20240709-183005.txt"))

	data, ok := sink.Get(context.Background(), "debug-config-20240709-183005.txt")
	require.True(t, ok)
	assert.Contains(t, string(data), "DEBUG EXPORT: CONFIG")
	assert.Contains(t, string(data), "active: true")
}
