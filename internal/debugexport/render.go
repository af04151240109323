// Package debugexport renders document contents as indented text for
// debugging and writes them to a downloadable file.
package debugexport

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

const indentUnit = "  "

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Render formats value as nested text: braces for mappings, brackets for
// sequences, unquoted keys and quoted strings. Raw JSON ([]byte or
// json.RawMessage) keeps its key order; Go maps are rendered with sorted keys.
func Render(value any) (string, error) {
	var raw []byte
	switch v := value.(type) {
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	default:
		var err error
		raw, err = jsonAPI.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("encoding value: %w", err)
		}
	}
	return RenderJSON(raw)
}

// RenderJSON formats a JSON document, preserving object key order.
func RenderJSON(raw []byte) (string, error) {
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("invalid JSON")
	}
	var b strings.Builder
	writeValue(&b, gjson.ParseBytes(raw), 0)
	return b.String(), nil
}

func writeValue(b *strings.Builder, r gjson.Result, depth int) {
	switch {
	case r.IsObject():
		writeContainer(b, r, depth, "{", "}", true)
	case r.IsArray():
		writeContainer(b, r, depth, "[", "]", false)
	case r.Type == gjson.String:
		b.WriteString(strconv.Quote(r.Str))
	default:
		// Numbers keep their source text; true, false and null are literal.
		b.WriteString(strings.TrimSpace(r.Raw))
	}
}

func writeContainer(b *strings.Builder, r gjson.Result, depth int, open, close string, keyed bool) {
	type entry struct {
		key   string
		value gjson.Result
	}
	var entries []entry
	r.ForEach(func(k, v gjson.Result) bool {
		entries = append(entries, entry{key: k.Str, value: v})
		return true
	})

	if len(entries) == 0 {
		b.WriteString(open + close)
		return
	}

	pad := strings.Repeat(indentUnit, depth+1)
	b.WriteString(open + "\n")
	for i, e := range entries {
		b.WriteString(pad)
		if keyed {
			b.WriteString(e.key + ": ")
		}
		writeValue(b, e.value, depth+1)
		if i < len(entries)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(indentUnit, depth) + close)
}
