package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultGlamourStyle is used when no style is configured
const DefaultGlamourStyle = "dark"

// bodyRenderer renders slide markdown at a given width. Renderers and
// output are cached per width since a resize is the only thing that changes
// the wrap.
type bodyRenderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
	cache     map[bodyKey]string
}

type bodyKey struct {
	slide int
	width int
}

func newBodyRenderer(style string) *bodyRenderer {
	if style == "" {
		style = DefaultGlamourStyle
	}
	return &bodyRenderer{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
		cache:     make(map[bodyKey]string),
	}
}

// render returns the body of slide wrapped to width. On renderer failure
// the raw markdown is returned along with the error.
func (b *bodyRenderer) render(slide int, body string, width int) (string, error) {
	key := bodyKey{slide: slide, width: width}
	if out, ok := b.cache[key]; ok {
		return out, nil
	}

	r, ok := b.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(b.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return body, fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		b.renderers[width] = r
	}

	out, err := r.Render(body)
	if err != nil {
		return body, fmt.Errorf("failed to render slide %d: %w", slide, err)
	}
	out = strings.Trim(out, "\n")
	b.cache[key] = out
	return out, nil
}

// reset drops cached output after the slides changed
func (b *bodyRenderer) reset() {
	b.cache = make(map[bodyKey]string)
}
