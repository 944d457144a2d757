package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"carousel/internal/carousel"
)

// View renders the UI
func (m *Model) View() string {
	if m.paused {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	pad := strings.Repeat(" ", padX)
	var b strings.Builder
	b.WriteString(pad + m.styles.Title.Render(m.title()) + "\n\n")

	l := m.layout()
	if !l.ok {
		b.WriteString(pad + m.styles.StatusError.Render("window too small") + "\n")
		return b.String()
	}

	for _, line := range m.renderStrip(l) {
		b.WriteString(pad + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderDots() + "\n")
	b.WriteString(pad + m.renderStatus() + "\n")
	b.WriteString(pad + m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) title() string {
	if m.deck.Title != "" {
		return m.deck.Title
	}
	return "carousel"
}

// renderStrip draws the part of the slide surface inside the viewport.
// Only slides overlapping the viewport are rendered.
func (m *Model) renderStrip(l layout) []string {
	n := len(m.slides)
	lines := make([]string, 0, l.viewH)
	if n == 0 {
		for range l.viewH {
			lines = append(lines, "")
		}
		return lines
	}

	shift := m.shift(l)
	pitch := l.slideLen() + l.gap
	view := l.viewW
	if l.vertical {
		view = l.viewH
	}
	first := min(shift/pitch, n-1)
	last := min((shift+view)/pitch, n-1)
	skip := shift - first*pitch

	if l.vertical {
		var all []string
		for i := first; i <= last; i++ {
			if i > first {
				for range l.gap {
					all = append(all, "")
				}
			}
			all = append(all, strings.Split(m.renderSlide(i, l), "\n")...)
		}
		for r := skip; r < skip+l.viewH; r++ {
			if r < len(all) {
				lines = append(lines, all[r])
			} else {
				lines = append(lines, "")
			}
		}
		return lines
	}

	blocks := make([][]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		blocks = append(blocks, strings.Split(m.renderSlide(i, l), "\n"))
	}
	spacer := strings.Repeat(" ", l.gap)
	blank := strings.Repeat(" ", l.slideW)
	for r := range l.viewH {
		var row strings.Builder
		for j, block := range blocks {
			if j > 0 {
				row.WriteString(spacer)
			}
			if r < len(block) {
				row.WriteString(block[r])
			} else {
				row.WriteString(blank)
			}
		}
		lines = append(lines, ansi.Cut(row.String(), skip, skip+l.viewW))
	}
	return lines
}

// renderSlide draws slide i as a bordered box of exactly the slide size
func (m *Model) renderSlide(i int, l layout) string {
	slide := m.slides[i]
	vis := m.items[i].Visibility()

	style := m.styles.Slide
	if vis.Active {
		style = m.styles.ActiveSlide
	}
	innerW := max(l.slideW-4, 1)
	innerH := max(l.slideH-2, 1)

	body, err := m.bodies.render(i, slide.Body, innerW)
	if err != nil {
		m.logger.Warn("rendering slide body", "slide", i, "err", err)
	}

	content := make([]string, 0, innerH)
	content = append(content, m.styles.SlideTitle.Render(ansi.Truncate(slide.Title, innerW, "…")))
	if body != "" {
		content = append(content, "")
		for _, line := range strings.Split(body, "\n") {
			content = append(content, ansi.Truncate(line, innerW, ""))
		}
	}
	if len(content) > innerH {
		content = content[:innerH]
	}

	text := strings.Join(content, "\n")
	if !vis.Visible {
		text = m.styles.Dim.Render(text)
	}
	return style.
		Width(l.slideW - 2).
		Height(l.slideH - 2).
		MaxHeight(l.slideH).
		Render(text)
}

// renderDots draws one dot per rendered trigger
func (m *Model) renderDots() string {
	var b strings.Builder
	x := 0
	for _, d := range m.dotSpans() {
		b.WriteString(strings.Repeat(" ", d.x-x))
		v := m.triggers[d.ordinal].Visibility()
		dot, style := "○", m.styles.Dot
		if v.Active {
			dot, style = "●", m.styles.ActiveDot
		}
		if d.ordinal == m.focus {
			style = style.Inherit(m.styles.FocusedDot)
		}
		b.WriteString(style.Render(dot))
		x = d.x + 1
	}
	return b.String()
}

func (m *Model) renderStatus() string {
	if m.statusErr {
		return m.styles.StatusError.Render(m.status)
	}

	parts := []string{}
	if n := len(m.items); n > 0 {
		pos, total := m.items[m.state.CurrentIndex()].Position()
		parts = append(parts, fmt.Sprintf("%d/%d", pos, total))
	}
	parts = append(parts, m.state.CurrentValue())
	if m.state.Options().AutoPlayInterval > 0 {
		if m.state.IsAutoplay() {
			parts = append(parts, m.styles.Playing.Render("▶ playing"))
		} else {
			parts = append(parts, "⏸ paused")
		}
	}
	if phase := m.drag.Phase(); phase != carousel.Idle {
		parts = append(parts, phase.String())
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return m.styles.Status.Render(strings.Join(parts, " · "))
}
