package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveField_Apply(t *testing.T) {
	fields := map[string]any{"isMaster": true, "name": "X"}

	assert.True(t, RemoveField{Name: "isMaster"}.Apply(fields))
	assert.False(t, RemoveField{Name: "isComissao"}.Apply(fields), "absent field is a no-op")
	assert.Equal(t, map[string]any{"name": "X"}, fields)
}

func TestRemoveFields(t *testing.T) {
	assert.Equal(t, []RemoveField{{Name: "a"}, {Name: "b"}}, RemoveFields("a", "b"))
	assert.Empty(t, RemoveFields())
}

func TestDocument_Clone(t *testing.T) {
	d := Document{ID: "a", Fields: map[string]any{
		"tags":    []any{"x"},
		"profile": map[string]any{"city": "Jundiaí"},
	}}

	c := d.Clone()
	c.Fields["tags"].([]any)[0] = "y"
	c.Fields["profile"].(map[string]any)["city"] = "Campinas"

	assert.Equal(t, "x", d.Fields["tags"].([]any)[0])
	assert.Equal(t, "Jundiaí", d.Fields["profile"].(map[string]any)["city"])
	assert.True(t, d.Has("tags"))
	assert.False(t, d.Has("isMaster"))
}

func TestCity_ToMap(t *testing.T) {
	m := City{Name: "Jundiaí", State: "SP", IBGECode: "3525904"}.ToMap()
	assert.Equal(t, "Jundiaí", m["name"])
	assert.Equal(t, true, m["official"])
}
