package debugexport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cityapp-admin/internal/store"
)

const rule = "=================================================="

// Format renders value under a header naming the label and the generation
// time.
func Format(label string, value any, now time.Time) (string, error) {
	body, err := Render(value)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", label, err)
	}

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("DEBUG EXPORT: " + strings.ToUpper(label) + "\n")
	b.WriteString("Generated at: " + now.UTC().Format(time.RFC3339) + "\n")
	b.WriteString(rule + "\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	return b.String(), nil
}

// FileName returns the artifact name for an export of label taken at now.
func FileName(label string, now time.Time) string {
	return fmt.Sprintf("debug-%s-%s.txt", safeName(label), now.UTC().Format("20060102-150405"))
}

// Export formats value and writes it to sink. It returns where the file
// was written.
func Export(ctx context.Context, sink store.Store, label string, value any, now time.Time) (string, error) {
	text, err := Format(label, value, now)
	if err != nil {
		return "", err
	}
	loc, err := sink.Put(ctx, FileName(label, now), []byte(text))
	if err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return loc, nil
}

// safeName makes a label filesystem-safe.
func safeName(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "export"
	}
	return b.String()
}
