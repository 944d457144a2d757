package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"carousel/internal/domain"
)

// slidePagerMsg contains the result of a slide pager command
type slidePagerMsg struct {
	value string
	err   error
}

// pauseRenderingMsg and resumeRenderingMsg bracket the time the pager owns
// the terminal
type (
	pauseRenderingMsg  struct{}
	resumeRenderingMsg struct{}
)

// showInPager hands the terminal to ov until the user quits it
func showInPager(program *tea.Program, content string) error {
	if err := program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// ov must be off the screen before bubbletea redraws
		time.Sleep(100 * time.Millisecond)
		_ = program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// leave nothing behind on the alt screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// slideDocument is the pager text for one slide: title, rule, body
func slideDocument(slide domain.Slide, body string) string {
	var b strings.Builder
	b.WriteString(slide.Title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(len([]rune(slide.Title)), 3)))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	return b.String()
}

// openPager returns a command that shows the given slide in the ov pager
func (m *Model) openPager(slide domain.Slide, body string) tea.Cmd {
	program := m.program
	content := slideDocument(slide, body)
	return func() tea.Msg {
		program.Send(pauseRenderingMsg{})
		err := showInPager(program, content)
		program.Send(resumeRenderingMsg{})
		return slidePagerMsg{value: slide.Value, err: err}
	}
}
