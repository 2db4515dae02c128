// Package chat formats catalog answers for the assistant chat widget.
package chat

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ayush-assistant/herbcatalog/internal/domain"
)

const notSpecified = "Not specified"

// markdown renders reply text. Hard wraps keep one reply field per line; raw
// HTML coming from catalog data is dropped because WithUnsafe is not set.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Reply builds the plain-text answer for h, one field per line.
func Reply(h domain.Herb) string {
	return strings.Join([]string{
		fmt.Sprintf("🌿 %s (%s)", orDefault(h.Name, "This herb"), orDefault(h.Category, "AYUSH herb")),
		"Benefits: " + list(h.Benefits),
		"Used for: " + list(h.UsedFor),
		"Forms: " + list(h.Forms),
		"Dosage: " + orDefault(h.Dosage, "Consult a professional"),
		"Precautions: " + list(h.Precautions),
	}, "\n")
}

// RenderHTML converts reply text to an HTML fragment for widgets that
// display rich messages.
func RenderHTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("chat.RenderHTML: %w", err)
	}
	return buf.String(), nil
}

func list(items []string) string {
	if len(items) == 0 {
		return notSpecified
	}
	return strings.Join(items, ", ")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
