package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_CarriesGlyphAndText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category Category
		text     string
		glyph    string
	}{
		{"success", CategorySuccess, "pip found", "✓"},
		{"warning", CategoryWarning, "manifest missing", "⚠"},
		{"error", CategoryError, "python not found", "✗"},
		{"info", CategoryInfo, "checking dependencies", "ℹ"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := Render(tt.category, tt.text)
			assert.Contains(t, out, tt.glyph)
			assert.Contains(t, out, tt.text)
		})
	}
}

func TestHeader_FramedByRules(t *testing.T) {
	t.Parallel()

	out := Header("ClipABit Plugin Installer")
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], strings.Repeat("=", bannerWidth))
	assert.Contains(t, lines[1], "ClipABit Plugin Installer")
	assert.Contains(t, lines[2], strings.Repeat("=", bannerWidth))
}

func TestRender_IsPure(t *testing.T) {
	t.Parallel()

	first := Render(CategorySuccess, "same input")
	second := Render(CategorySuccess, "same input")
	assert.Equal(t, first, second)
}
