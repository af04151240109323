package model

// RemoveField is a write that deletes one top-level field from a document.
// Applying it to a document without that field is a no-op, not an error.
type RemoveField struct {
	Name string
}

// Apply deletes the field from fields, if present. It reports whether the
// field was there.
func (r RemoveField) Apply(fields map[string]any) bool {
	if _, ok := fields[r.Name]; !ok {
		return false
	}
	delete(fields, r.Name)
	return true
}

// RemoveFields builds one RemoveField per name.
func RemoveFields(names ...string) []RemoveField {
	ops := make([]RemoveField, len(names))
	for i, n := range names {
		ops[i] = RemoveField{Name: n}
	}
	return ops
}
