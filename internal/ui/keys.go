package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the carousel key bindings
type KeyMap struct {
	Prev     key.Binding
	Next     key.Binding
	First    key.Binding
	Last     key.Binding
	FocusFwd key.Binding
	FocusBwd key.Binding
	Activate key.Binding
	Autoplay key.Binding
	Open     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the bindings for a horizontal carousel
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last"),
		),
		FocusFwd: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next dot"),
		),
		FocusBwd: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev dot"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show dot"),
		),
		Autoplay: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "autoplay"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open slide"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// vertical rebinds prev/next to the vertical arrows
func (k KeyMap) vertical() KeyMap {
	k.Prev = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev"))
	k.Next = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next"))
	return k
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Autoplay, k.Open, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.FocusFwd, k.FocusBwd, k.Activate},
		{k.Autoplay, k.Open, k.Help, k.Quit},
	}
}
